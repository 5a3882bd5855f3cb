package repository

import (
	"Glintz/internal/model"
	"context"

	"gorm.io/gorm"
)

type NotificationRepo interface {
	ListByRecipient(ctx context.Context, recipientID uint64, limit, offset int) ([]*model.Notification, error)
	CountUnread(ctx context.Context, recipientID uint64) (int64, error)
	MarkAllRead(ctx context.Context, recipientID uint64) error
}

type NotificationRepoImpl struct {
	db *gorm.DB
}

func NewNotificationRepo(db *gorm.DB) NotificationRepo {
	return &NotificationRepoImpl{db: db}
}

// ListByRecipient 通知列表，按时间倒序，带发送者
func (s *NotificationRepoImpl) ListByRecipient(ctx context.Context, recipientID uint64, limit, offset int) ([]*model.Notification, error) {
	var notifications []*model.Notification
	result := s.db.WithContext(ctx).
		Preload("Sender.Profile").
		Where("recipient_id = ?", recipientID).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&notifications)

	if result.Error != nil {
		return nil, result.Error
	}
	return notifications, nil
}

// CountUnread 未读数
func (s *NotificationRepoImpl) CountUnread(ctx context.Context, recipientID uint64) (int64, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&count)

	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// MarkAllRead 全部置为已读
func (s *NotificationRepoImpl) MarkAllRead(ctx context.Context, recipientID uint64) error {
	return s.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		UpdateColumn("is_read", true).Error
}
