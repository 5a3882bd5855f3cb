package handler

import (
	"Glintz/internal/pkg/response"
	"Glintz/internal/service"

	"github.com/gin-gonic/gin"
)

type UserFollowHandler struct {
	followSvc service.FollowService
}

func NewUserFollowHandler(followSvc service.FollowService) *UserFollowHandler {
	return &UserFollowHandler{followSvc: followSvc}
}

func (s *UserFollowHandler) Follow(c *gin.Context) {
	userID := c.GetUint64("user_id")
	targetID, ok := parseIDParam(c, "target_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	state, err := s.followSvc.Follow(c.Request.Context(), userID, targetID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, state)
}

func (s *UserFollowHandler) Unfollow(c *gin.Context) {
	userID := c.GetUint64("user_id")
	targetID, ok := parseIDParam(c, "target_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	state, err := s.followSvc.Unfollow(c.Request.Context(), userID, targetID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, state)
}

func (s *UserFollowHandler) ListFollowers(c *gin.Context) {
	targetID, ok := parseIDParam(c, "target_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	limit, offset := pageToLimitOffset(c)

	users, err := s.followSvc.ListFollowers(c.Request.Context(), targetID, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, users)
}

func (s *UserFollowHandler) ListFollowing(c *gin.Context) {
	targetID, ok := parseIDParam(c, "target_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	limit, offset := pageToLimitOffset(c)

	users, err := s.followSvc.ListFollowing(c.Request.Context(), targetID, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, users)
}
