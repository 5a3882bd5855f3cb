package handler

import (
	"Glintz/internal/pkg/consts"
	"Glintz/internal/pkg/redis"
	"Glintz/internal/pkg/response"
	"Glintz/internal/pkg/security"
	"Glintz/internal/service"
	"context"
	"fmt"
	log "log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WsHandler struct{}

func NewWsHandler() *WsHandler {
	return &WsHandler{}
}

// Connect 建立长连接，订阅本用户的消息频道并实时下推
func (s *WsHandler) Connect(c *gin.Context) {
	// 鉴权
	token := c.Query("token")
	if token == "" {
		response.Error(c, service.UnauthorizedError)
		return
	}
	// 注销过的令牌和 HTTP 中间件走同一份 Redis 黑名单
	signature, err := security.ExtractSignature(token)
	if err != nil {
		response.Error(c, service.UnauthorizedError)
		return
	}
	denied, err := redis.GetValue(c.Request.Context(), consts.JWTDenyKey+signature)
	if err != nil {
		response.Error(c, service.UnExpectedError)
		return
	}
	if denied != "" {
		response.Error(c, service.UnauthorizedError)
		return
	}

	claims, err := security.ValidateToken(token)
	if err != nil {
		log.Warn("WS 鉴权失败", "err", err)
		response.Error(c, service.UnauthorizedError)
		return
	}
	userID := claims.UserID

	// 升级 Websocket
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("WS 协议升级失败", "err", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	channel := fmt.Sprintf("%s%d", consts.IMUserChannelKey, userID)
	pubsub := redis.Subscribe(context.Background(), channel)
	defer func() {
		_ = pubsub.Close()
	}()

	log.Info("用户 WS 连接已建立", "userID", userID)

	stopChan := make(chan struct{})

	// 读循环：监听客户端主动断开
	go func() {
		for {
			_, _, err := conn.ReadMessage()
			if err != nil {
				close(stopChan)
				return
			}
		}
	}()

	// 写循环：监听 Redis 并推送至客户端
	redisCh := pubsub.Channel()
	for {
		select {
		case msg := <-redisCh:
			_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload))
			if err != nil {
				log.Error("WS 推送失败", "userID", userID, "err", err)
				return
			}
		case <-stopChan:
			log.Info("用户 WS 连接已断开", "userID", userID)
			return
		}
	}
}
