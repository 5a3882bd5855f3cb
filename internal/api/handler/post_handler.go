package handler

import (
	"Glintz/internal/api/dto"
	"Glintz/internal/pkg/response"
	"Glintz/internal/pkg/util"
	"Glintz/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc service.PostService
}

func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{postSvc: postSvc}
}

func (s *PostHandler) CreatePost(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.CreatePostDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	post, err := s.postSvc.CreatePost(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) UpdatePost(c *gin.Context) {
	userID := c.GetUint64("user_id")
	postID, ok := parseIDParam(c, "post_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var req dto.UpdatePostDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	post, err := s.postSvc.UpdatePost(c.Request.Context(), postID, userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) DeletePost(c *gin.Context) {
	userID := c.GetUint64("user_id")
	postID, ok := parseIDParam(c, "post_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := s.postSvc.DeletePost(c.Request.Context(), postID, userID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.AckDTO{Success: true})
}

func (s *PostHandler) GetPost(c *gin.Context) {
	viewerID := c.GetUint64("user_id")
	postID, ok := parseIDParam(c, "post_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	post, err := s.postSvc.GetPost(c.Request.Context(), postID, viewerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) Feed(c *gin.Context) {
	userID := c.GetUint64("user_id")
	page, pageSize := getPage(c)

	feed, err := s.postSvc.GetFeed(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, feed)
}

func (s *PostHandler) Explore(c *gin.Context) {
	userID := c.GetUint64("user_id")
	page, pageSize := getPage(c)

	posts, err := s.postSvc.GetExplore(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

func (s *PostHandler) Trending(c *gin.Context) {
	viewerID := c.GetUint64("user_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 50 {
		limit = 10
	}

	posts, err := s.postSvc.GetTrending(c.Request.Context(), viewerID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

func (s *PostHandler) Search(c *gin.Context) {
	viewerID := c.GetUint64("user_id")
	keyword := c.Query("q")
	page, pageSize := getPage(c)

	posts, err := s.postSvc.Search(c.Request.Context(), viewerID, keyword, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

func (s *PostHandler) GetUserPosts(c *gin.Context) {
	viewerID := c.GetUint64("user_id")
	targetID, ok := parseIDParam(c, "target_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	page, pageSize := getPage(c)

	posts, err := s.postSvc.GetUserPosts(c.Request.Context(), targetID, viewerID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}
