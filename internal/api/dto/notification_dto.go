package dto

// NotificationDTO 通知视图
type NotificationDTO struct {
	ID        uint64  `json:"id"`
	Type      string  `json:"type"`
	PostID    *uint64 `json:"post_id,omitempty"`
	CommentID *uint64 `json:"comment_id,omitempty"`
	IsRead    bool    `json:"is_read"`
	CreatedAt string  `json:"created_at"`

	// Sender
	SenderID       uint64 `json:"sender_id"`
	SenderUsername string `json:"sender_username"`
	SenderAvatar   string `json:"sender_avatar"`
}

// UnreadCountDTO 未读数响应
type UnreadCountDTO struct {
	Count int64 `json:"count"`
}

// AckDTO 无返回体操作的固定响应
type AckDTO struct {
	Success bool `json:"success"`
}
