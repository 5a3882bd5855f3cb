package service

import (
	"Glintz/internal/api/dto"
	"Glintz/internal/pkg/consts"
	"Glintz/internal/pkg/minio"
	"Glintz/internal/pkg/mongo"
	"Glintz/internal/pkg/redis"
	"Glintz/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

type IMService interface {
	SendMessage(ctx context.Context, senderID uint64, req *dto.SendMessageReq) (*dto.SendMessageDTO, error)
	GetHistory(ctx context.Context, userID, convID, lastSeq uint64, pageSize int) ([]*dto.MessageDTO, error)
	SyncMessages(ctx context.Context, userID, convID, afterSeq uint64, limit int) ([]*dto.MessageDTO, error)
	ListConversations(ctx context.Context, userID uint64) ([]*dto.ConversationDTO, error)
	MarkAsRead(ctx context.Context, userID uint64, req *dto.MarkAsReadReq) error
}

type IMServiceImpl struct {
	conversationRepo repository.ConversationRepo
	messageRepo      mongo.MessageRepo
	userRepo         repository.UserRepo
}

func NewIMService(conversationRepo repository.ConversationRepo, messageRepo mongo.MessageRepo, userRepo repository.UserRepo) IMService {
	return &IMServiceImpl{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		userRepo:         userRepo,
	}
}

// peerKey 单聊会话标识，小 UID 在前保证两个方向落到同一会话
func peerKey(a, b uint64) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d_%d", a, b)
}

// SendMessage 发私信
// 会话定序走 MySQL 行锁，消息正文入 MongoDB，最后向对端的
// Redis 频道推送一份用于 WebSocket 实时下发。
func (s *IMServiceImpl) SendMessage(ctx context.Context, senderID uint64, req *dto.SendMessageReq) (*dto.SendMessageDTO, error) {
	if req.TargetUserID == senderID {
		return nil, ErrMessageSelf
	}

	target, err := s.userRepo.GetUserByID(ctx, req.TargetUserID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrTargetUserInvalid
	}

	conv, err := s.conversationRepo.GetOrCreateConversation(ctx, peerKey(senderID, req.TargetUserID), []uint64{senderID, req.TargetUserID})
	if err != nil {
		return nil, err
	}

	seq, err := s.conversationRepo.IncrMaxSeq(ctx, conv.ID, req.Content, senderID)
	if err != nil {
		return nil, err
	}

	msg := &mongo.Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		Content:        req.Content,
		Seq:            seq,
		CreatedAt:      time.Now(),
	}
	if err = s.messageRepo.SaveMessage(ctx, msg); err != nil {
		return nil, err
	}

	// 自己发的自己已读
	if err = s.conversationRepo.UpdateReadSeq(ctx, conv.ID, senderID, seq); err != nil {
		log.WarnContext(ctx, "failed to advance sender read seq", "convId", conv.ID, "err", err)
	}

	out := toMessageDTO(msg)
	if payload, err := json.Marshal(out); err == nil {
		channel := fmt.Sprintf("%s%d", consts.IMUserChannelKey, req.TargetUserID)
		if err = redis.Publish(ctx, channel, payload); err != nil {
			log.WarnContext(ctx, "failed to publish message", "channel", channel, "err", err)
		}
	}

	return &dto.SendMessageDTO{Success: true, Message: out}, nil
}

// GetHistory 翻历史消息，非会话成员拒绝
func (s *IMServiceImpl) GetHistory(ctx context.Context, userID, convID, lastSeq uint64, pageSize int) ([]*dto.MessageDTO, error) {
	if err := s.requireMember(ctx, convID, userID); err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.GetHistory(ctx, convID, lastSeq, pageSize)
	if err != nil {
		return nil, err
	}
	return toMessageDTOs(messages), nil
}

// SyncMessages 增量拉取序号之后的新消息
func (s *IMServiceImpl) SyncMessages(ctx context.Context, userID, convID, afterSeq uint64, limit int) ([]*dto.MessageDTO, error) {
	if err := s.requireMember(ctx, convID, userID); err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.GetSince(ctx, convID, afterSeq, limit)
	if err != nil {
		return nil, err
	}
	return toMessageDTOs(messages), nil
}

// ListConversations 会话列表，未读数来自 max_msg_seq 与已读进度的差值
func (s *IMServiceImpl) ListConversations(ctx context.Context, userID uint64) ([]*dto.ConversationDTO, error) {
	members, err := s.conversationRepo.GetUserConversationMemList(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ConversationDTO, 0, len(members))
	for _, m := range members {
		item := &dto.ConversationDTO{
			ConversationID: m.Conversation.ID,
			LastMsgContent: m.Conversation.LastMsgContent,
			LastSenderID:   m.Conversation.LastSenderID,
			LastMessageAt:  m.Conversation.LastMessageAt,
			UnreadCount:    m.UnreadCount,
		}

		peerID := parsePeerID(m.Conversation.PeerKey, userID)
		if peerID != 0 {
			item.PeerID = peerID
			peer, err := s.userRepo.GetUserByID(ctx, peerID)
			if err != nil {
				return nil, err
			}
			if peer != nil {
				item.PeerUsername = peer.Username
				item.PeerAvatar = minio.ResolvePublicURL(peer.Profile.AvatarURL)
			}
		}
		result = append(result, item)
	}
	return result, nil
}

// MarkAsRead 推进已读进度
// 序号封顶到会话当前最大值，回退和原地重放都按无操作处理。
func (s *IMServiceImpl) MarkAsRead(ctx context.Context, userID uint64, req *dto.MarkAsReadReq) error {
	member, err := s.conversationRepo.GetMember(ctx, req.ConversationID, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrConversation
	}

	conv, err := s.conversationRepo.GetConversation(ctx, req.ConversationID)
	if err != nil {
		return err
	}
	if conv == nil {
		return ErrConversation
	}

	seq := req.Sequence
	if seq > conv.MaxMsgSeq {
		seq = conv.MaxMsgSeq
	}
	if seq <= member.ReadMsgSeq {
		return nil
	}
	return s.conversationRepo.UpdateReadSeq(ctx, req.ConversationID, userID, seq)
}

func (s *IMServiceImpl) requireMember(ctx context.Context, convID, userID uint64) error {
	isMember, err := s.conversationRepo.IsMember(ctx, convID, userID)
	if err != nil {
		return err
	}
	if !isMember {
		return ErrConversation
	}
	return nil
}

// parsePeerID 从 "小uid_大uid" 形式的会话标识里取出对端 UID
func parsePeerID(key string, selfID uint64) uint64 {
	parts := strings.SplitN(key, "_", 2)
	if len(parts) != 2 {
		return 0
	}
	a, err1 := strconv.ParseUint(parts[0], 10, 64)
	b, err2 := strconv.ParseUint(parts[1], 10, 64)
	if err1 != nil || err2 != nil {
		return 0
	}
	if a == selfID {
		return b
	}
	return a
}

func toMessageDTO(msg *mongo.Message) *dto.MessageDTO {
	return &dto.MessageDTO{
		ID:             msg.ID,
		ConversationID: msg.ConversationID,
		SenderID:       msg.SenderID,
		Content:        msg.Content,
		Seq:            msg.Seq,
		CreatedAt:      msg.CreatedAt,
	}
}

func toMessageDTOs(messages []*mongo.Message) []*dto.MessageDTO {
	result := make([]*dto.MessageDTO, 0, len(messages))
	for _, msg := range messages {
		result = append(result, toMessageDTO(msg))
	}
	return result
}
