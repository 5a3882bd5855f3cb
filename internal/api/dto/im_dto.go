package dto

import "time"

// SendMessageReq 发送私信请求体
type SendMessageReq struct {
	TargetUserID uint64 `json:"target_user_id" binding:"required"`
	Content      string `json:"content" binding:"required" validate:"min=1,max=2000"`
}

// MessageDTO 消息明细响应
type MessageDTO struct {
	ID             string    `json:"id,omitempty"`
	ConversationID uint64    `json:"conversation_id"`
	SenderID       uint64    `json:"sender_id"`
	Content        string    `json:"content"`
	Seq            uint64    `json:"seq"`
	CreatedAt      time.Time `json:"created_at"`
}

// SendMessageDTO 发送结果
type SendMessageDTO struct {
	Success bool        `json:"success"`
	Message *MessageDTO `json:"message"`
}

// ConversationDTO 会话列表项响应
type ConversationDTO struct {
	ConversationID uint64    `json:"conversation_id"`
	PeerID         uint64    `json:"peer_id"`
	PeerUsername   string    `json:"peer_username"`
	PeerAvatar     string    `json:"peer_avatar"`
	LastMsgContent string    `json:"last_msg_content"`
	LastSenderID   uint64    `json:"last_sender_id"`
	LastMessageAt  time.Time `json:"last_message_at"`
	UnreadCount    uint64    `json:"unread_count"`
}

// MarkAsReadReq 标记为已读请求
type MarkAsReadReq struct {
	ConversationID uint64 `json:"conversation_id" binding:"required"`
	Sequence       uint64 `json:"sequence" binding:"required"` // 客户端当前看到的最后一条消息序号
}
