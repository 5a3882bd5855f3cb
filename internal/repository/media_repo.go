package repository

import (
	"Glintz/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type MediaRepo interface {
	CreateMediaFile(ctx context.Context, media *model.MediaFile) error
	GetByObjectKey(ctx context.Context, objectKey string) (*model.MediaFile, error)
	GetByID(ctx context.Context, id uint64) (*model.MediaFile, error)
	GetUserMediaFiles(ctx context.Context, userID uint64, limit, offset int) ([]*model.MediaFile, error)
	MarkPromoted(ctx context.Context, id uint64) error
	FindOrphans(ctx context.Context, olderThan time.Time, limit int) ([]*model.MediaFile, error)
	DeleteMediaFile(ctx context.Context, id uint64) error
}

type MediaRepoImpl struct {
	db *gorm.DB
}

func NewMediaRepo(db *gorm.DB) MediaRepo {
	return &MediaRepoImpl{db: db}
}

// CreateMediaFile 记录上传对象的元数据
func (s *MediaRepoImpl) CreateMediaFile(ctx context.Context, media *model.MediaFile) error {
	return s.db.WithContext(ctx).Create(media).Error
}

// GetByObjectKey 按对象键取元数据
func (s *MediaRepoImpl) GetByObjectKey(ctx context.Context, objectKey string) (*model.MediaFile, error) {
	var media model.MediaFile
	result := s.db.WithContext(ctx).
		Where("object_key = ?", objectKey).
		First(&media)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &media, nil
}

// GetByID 按主键取元数据
func (s *MediaRepoImpl) GetByID(ctx context.Context, id uint64) (*model.MediaFile, error) {
	var media model.MediaFile
	result := s.db.WithContext(ctx).First(&media, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &media, nil
}

// GetUserMediaFiles 用户媒体库，按上传时间倒序
func (s *MediaRepoImpl) GetUserMediaFiles(ctx context.Context, userID uint64, limit, offset int) ([]*model.MediaFile, error) {
	var files []*model.MediaFile
	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&files)

	if result.Error != nil {
		return nil, result.Error
	}
	return files, nil
}

// MarkPromoted 标记对象已从临时桶转入主桶
func (s *MediaRepoImpl) MarkPromoted(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Model(&model.MediaFile{}).
		Where("id = ?", id).
		UpdateColumn("promoted", true).Error
}

// FindOrphans 找出超过时限仍未被帖子或头像引用的对象
func (s *MediaRepoImpl) FindOrphans(ctx context.Context, olderThan time.Time, limit int) ([]*model.MediaFile, error) {
	var orphans []*model.MediaFile
	result := s.db.WithContext(ctx).
		Where("created_at < ?", olderThan).
		Where("object_key NOT IN (?)", s.db.Model(&model.Post{}).
			Select("image_url").Where("image_url <> ''")).
		Where("object_key NOT IN (?)", s.db.Model(&model.Profile{}).
			Select("avatar_url").Where("avatar_url <> ''")).
		Limit(limit).
		Find(&orphans)

	if result.Error != nil {
		return nil, result.Error
	}
	return orphans, nil
}

// DeleteMediaFile 删除元数据行
func (s *MediaRepoImpl) DeleteMediaFile(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Delete(&model.MediaFile{}, id).Error
}
