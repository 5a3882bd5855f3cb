package service

import (
	"Glintz/internal/api/dto"
	"Glintz/internal/model"
	"Glintz/internal/pkg/consts"
	"Glintz/internal/pkg/minio"
	"Glintz/internal/pkg/redis"
	"Glintz/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"time"
)

type NotificationService interface {
	List(ctx context.Context, userID uint64, limit, offset int) ([]*dto.NotificationDTO, error)
	UnreadCount(ctx context.Context, userID uint64) (int64, error)
	MarkAllRead(ctx context.Context, userID uint64) error
}

type NotificationServiceImpl struct {
	notificationRepo repository.NotificationRepo
}

func NewNotificationService(notificationRepo repository.NotificationRepo) NotificationService {
	return &NotificationServiceImpl{notificationRepo: notificationRepo}
}

// List 通知列表，打开即视为已读
// 返回体里保留本次读取时的已读状态，置读发生在读取之后。
func (s *NotificationServiceImpl) List(ctx context.Context, userID uint64, limit, offset int) ([]*dto.NotificationDTO, error) {
	notifications, err := s.notificationRepo.ListByRecipient(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	if err = s.notificationRepo.MarkAllRead(ctx, userID); err != nil {
		log.WarnContext(ctx, "failed to mark notifications read", "userId", userID, "err", err)
	}

	result := make([]*dto.NotificationDTO, 0, len(notifications))
	for _, n := range notifications {
		result = append(result, toNotificationDTO(n))
	}
	return result, nil
}

// UnreadCount 未读数，缓存一分钟
// 置读不清这份缓存，角标在一个周期内偏大是预期行为。
func (s *NotificationServiceImpl) UnreadCount(ctx context.Context, userID uint64) (int64, error) {
	key := fmt.Sprintf("%s%d", consts.NotifyUnreadCountKey, userID)
	if count, found, err := redis.GetInt64(ctx, key); err == nil && found {
		return count, nil
	}

	count, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return 0, err
	}

	if err = redis.SetWithExpiration(ctx, key, count, consts.NotifyUnreadCountTTL); err != nil {
		log.WarnContext(ctx, "failed to cache unread count", "err", err)
	}
	return count, nil
}

// MarkAllRead 手动全部置读
func (s *NotificationServiceImpl) MarkAllRead(ctx context.Context, userID uint64) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

func toNotificationDTO(n *model.Notification) *dto.NotificationDTO {
	out := &dto.NotificationDTO{
		ID:        n.ID,
		Type:      n.Type,
		PostID:    n.PostID,
		CommentID: n.CommentID,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
		SenderID:  n.SenderID,
	}
	if n.Sender.ID != 0 {
		out.SenderUsername = n.Sender.Username
		out.SenderAvatar = minio.ResolvePublicURL(n.Sender.Profile.AvatarURL)
	}
	return out
}
