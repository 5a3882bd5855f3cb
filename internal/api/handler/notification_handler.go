package handler

import (
	"Glintz/internal/api/dto"
	"Glintz/internal/pkg/response"
	"Glintz/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationSvc service.NotificationService
}

func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

func (s *NotificationHandler) List(c *gin.Context) {
	userID := c.GetUint64("user_id")
	limit, offset := pageToLimitOffset(c)

	notifications, err := s.notificationSvc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, notifications)
}

func (s *NotificationHandler) UnreadCount(c *gin.Context) {
	userID := c.GetUint64("user_id")

	count, err := s.notificationSvc.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.UnreadCountDTO{Count: count})
}

func (s *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID := c.GetUint64("user_id")

	if err := s.notificationSvc.MarkAllRead(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.AckDTO{Success: true})
}
