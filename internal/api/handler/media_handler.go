package handler

import (
	"Glintz/internal/api/dto"
	"Glintz/internal/pkg/response"
	"Glintz/internal/service"

	"github.com/gin-gonic/gin"
)

type MediaHandler struct {
	mediaSvc service.MediaService
}

func NewMediaHandler(mediaSvc service.MediaService) *MediaHandler {
	return &MediaHandler{mediaSvc: mediaSvc}
}

// Upload 图片上传，avatar=1 时按头像尺寸压缩
func (s *MediaHandler) Upload(c *gin.Context) {
	userID := c.GetUint64("user_id")

	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	reader, err := file.Open()
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	defer func() { _ = reader.Close() }()

	isAvatar := c.Query("avatar") == "1"

	result, err := s.mediaSvc.UploadImage(c.Request.Context(), userID, file.Filename, reader, isAvatar)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Library 当前用户的媒体库
func (s *MediaHandler) Library(c *gin.Context) {
	userID := c.GetUint64("user_id")
	page, pageSize := getPage(c)

	items, err := s.mediaSvc.GetMediaLibrary(c.Request.Context(), userID, pageSize, page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, items)
}

// Delete 删除自己上传的媒体
func (s *MediaHandler) Delete(c *gin.Context) {
	userID := c.GetUint64("user_id")
	mediaID, ok := parseIDParam(c, "media_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := s.mediaSvc.DeleteMedia(c.Request.Context(), userID, mediaID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.AckDTO{Success: true})
}
