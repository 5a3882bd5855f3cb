package handler

import (
	"Glintz/internal/api/dto"
	"Glintz/internal/pkg/response"
	"Glintz/internal/pkg/util"
	"Glintz/internal/service"

	"github.com/gin-gonic/gin"
)

type PostActionHandler struct {
	engagementSvc service.EngagementService
}

func NewPostActionHandler(engagementSvc service.EngagementService) *PostActionHandler {
	return &PostActionHandler{engagementSvc: engagementSvc}
}

// LikePost 点赞开关，响应固定为 {is_liked, likes_count}
func (s *PostActionHandler) LikePost(c *gin.Context) {
	userID := c.GetUint64("user_id")
	postID, ok := parseIDParam(c, "post_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	state, err := s.engagementSvc.LikePost(c.Request.Context(), userID, postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, state)
}

func (s *PostActionHandler) LikeComment(c *gin.Context) {
	userID := c.GetUint64("user_id")
	commentID, ok := parseIDParam(c, "comment_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	state, err := s.engagementSvc.LikeComment(c.Request.Context(), userID, commentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, state)
}

func (s *PostActionHandler) CreateComment(c *gin.Context) {
	userID := c.GetUint64("user_id")
	postID, ok := parseIDParam(c, "post_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var req dto.CommentCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	comment, err := s.engagementSvc.CreateComment(c.Request.Context(), userID, postID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comment)
}

func (s *PostActionHandler) DeleteComment(c *gin.Context) {
	userID := c.GetUint64("user_id")
	commentID, ok := parseIDParam(c, "comment_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := s.engagementSvc.DeleteComment(c.Request.Context(), commentID, userID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.AckDTO{Success: true})
}

func (s *PostActionHandler) GetComments(c *gin.Context) {
	postID, ok := parseIDParam(c, "post_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	limit, offset := pageToLimitOffset(c)

	comments, err := s.engagementSvc.GetComments(c.Request.Context(), postID, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comments)
}
