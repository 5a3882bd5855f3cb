package model

import (
	"time"
)

const (
	NotificationTypeLike    = "like"
	NotificationTypeComment = "comment"
	NotificationTypeFollow  = "follow"
	NotificationTypeMention = "mention"
)

// Notification 行为通知，与计数更新同事务写入。
// 仅 is_read 可变，其余字段写入后不再修改。
type Notification struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	RecipientID uint64    `gorm:"not null;index:idx_recipient_id" json:"recipientId"`
	SenderID    uint64    `gorm:"not null" json:"senderId"`
	Type        string    `gorm:"type:varchar(20);not null" json:"type"`
	PostID      *uint64   `json:"postId"`
	CommentID   *uint64   `json:"commentId"`
	IsRead      bool      `gorm:"not null;default:0;index:idx_is_read" json:"isRead"`
	CreatedAt   time.Time `gorm:"index:idx_notify_created_at" json:"createdAt"`

	Sender User `gorm:"foreignKey:SenderID;references:ID"`
}

func (Notification) TableName() string {
	return "notifications"
}
