package handler

import (
	"Glintz/internal/api/dto"
	"Glintz/internal/pkg/response"
	"Glintz/internal/pkg/util"
	"Glintz/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type IMHandler struct {
	imSvc service.IMService
}

func NewIMHandler(imSvc service.IMService) *IMHandler {
	return &IMHandler{imSvc: imSvc}
}

// SendMessage 发私信，响应固定为 {success, message}
func (s *IMHandler) SendMessage(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.SendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	result, err := s.imSvc.SendMessage(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *IMHandler) GetHistory(c *gin.Context) {
	userID := c.GetUint64("user_id")
	convID, ok := parseIDParam(c, "conversation_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	lastSeq, _ := strconv.ParseUint(c.DefaultQuery("last_seq", "0"), 10, 64)
	_, pageSize := getPage(c)

	messages, err := s.imSvc.GetHistory(c.Request.Context(), userID, convID, lastSeq, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, messages)
}

func (s *IMHandler) SyncMessages(c *gin.Context) {
	userID := c.GetUint64("user_id")
	convID, ok := parseIDParam(c, "conversation_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	afterSeq, _ := strconv.ParseUint(c.DefaultQuery("after_seq", "0"), 10, 64)
	_, pageSize := getPage(c)

	messages, err := s.imSvc.SyncMessages(c.Request.Context(), userID, convID, afterSeq, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, messages)
}

func (s *IMHandler) ListConversations(c *gin.Context) {
	userID := c.GetUint64("user_id")

	conversations, err := s.imSvc.ListConversations(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, conversations)
}

func (s *IMHandler) MarkAsRead(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.MarkAsReadReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.imSvc.MarkAsRead(c.Request.Context(), userID, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.AckDTO{Success: true})
}
