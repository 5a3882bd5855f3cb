package repository

import (
	"Glintz/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type PostRepo interface {
	CreatePost(ctx context.Context, post *model.Post) error
	UpdatePost(ctx context.Context, post *model.Post) error
	DeletePost(ctx context.Context, postID, userID uint64) (bool, error)
	GetPostByID(ctx context.Context, postID uint64) (*model.Post, error)
	GetFeedPosts(ctx context.Context, authorIDs []uint64, limit, offset int) ([]*model.Post, error)
	CountFeedPosts(ctx context.Context, authorIDs []uint64) (int64, error)
	GetLatestPosts(ctx context.Context, limit, offset int) ([]*model.Post, error)
	GetTrendingPosts(ctx context.Context, since time.Time, limit int) ([]*model.Post, error)
	SearchPosts(ctx context.Context, keyword string, limit, offset int) ([]*model.Post, error)
	GetLikedPostIDs(ctx context.Context, userID uint64, postIDs []uint64) ([]uint64, error)
	GetUserPosts(ctx context.Context, userID uint64, limit, offset int) ([]*model.Post, error)
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) PostRepo {
	return &PostRepoImpl{db: db}
}

// CreatePost 发帖，作者的 posts_count 在同一事务里递增
func (s *PostRepoImpl) CreatePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		return tx.Model(&model.Profile{}).
			Where("user_id = ?", post.UserID).
			UpdateColumn("posts_count", gorm.Expr("posts_count + ?", 1)).Error
	})
}

// UpdatePost 改帖，只动正文和图片两列，计数不经此路径
func (s *PostRepoImpl) UpdatePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", post.ID).
		Select("content", "image_url").
		Updates(post).Error
}

// DeletePost 删帖，仅作者本人可删
// posts_count 同事务递减并钳制在零以上；点赞和评论行随外键级联清除。
func (s *PostRepoImpl) DeletePost(ctx context.Context, postID, userID uint64) (bool, error) {
	deleted := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Post{}).
			Where("id = ? AND user_id = ?", postID, userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return nil
		}

		if err := tx.Where("post_id = ?", postID).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&model.Comment{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ? AND user_id = ?", postID, userID).
			Delete(&model.Post{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		deleted = true

		return tx.Model(&model.Profile{}).
			Where("user_id = ?", userID).
			UpdateColumn("posts_count",
				gorm.Expr("CASE WHEN posts_count > 0 THEN posts_count - 1 ELSE 0 END")).Error
	})
	return deleted, err
}

// GetPostByID 取单条帖子，带作者
func (s *PostRepoImpl) GetPostByID(ctx context.Context, postID uint64) (*model.Post, error) {
	var post model.Post
	result := s.db.WithContext(ctx).
		Preload("User.Profile").
		Where("id = ?", postID).
		First(&post)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &post, nil
}

// GetFeedPosts 关注流，作者集合由调用方给出
func (s *PostRepoImpl) GetFeedPosts(ctx context.Context, authorIDs []uint64, limit, offset int) ([]*model.Post, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}

	var posts []*model.Post
	result := s.db.WithContext(ctx).
		Preload("User.Profile").
		Where("user_id IN ?", authorIDs).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&posts)

	if result.Error != nil {
		return nil, result.Error
	}
	return posts, nil
}

// CountFeedPosts 关注流总量，为空时上层回退到全站流
func (s *PostRepoImpl) CountFeedPosts(ctx context.Context, authorIDs []uint64) (int64, error) {
	if len(authorIDs) == 0 {
		return 0, nil
	}

	var count int64
	result := s.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("user_id IN ?", authorIDs).
		Count(&count)

	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// GetLatestPosts 全站最新帖子
func (s *PostRepoImpl) GetLatestPosts(ctx context.Context, limit, offset int) ([]*model.Post, error) {
	var posts []*model.Post
	result := s.db.WithContext(ctx).
		Preload("User.Profile").
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&posts)

	if result.Error != nil {
		return nil, result.Error
	}
	return posts, nil
}

// GetTrendingPosts 时间窗内按点赞数、评论数、发布时间三级倒序
func (s *PostRepoImpl) GetTrendingPosts(ctx context.Context, since time.Time, limit int) ([]*model.Post, error) {
	var posts []*model.Post
	result := s.db.WithContext(ctx).
		Preload("User.Profile").
		Where("created_at >= ?", since).
		Order("likes_count desc, comments_count desc, created_at desc").
		Limit(limit).
		Find(&posts)

	if result.Error != nil {
		return nil, result.Error
	}
	return posts, nil
}

// SearchPosts 正文或作者用户名模糊匹配
func (s *PostRepoImpl) SearchPosts(ctx context.Context, keyword string, limit, offset int) ([]*model.Post, error) {
	pattern := "%" + keyword + "%"

	var posts []*model.Post
	result := s.db.WithContext(ctx).
		Preload("User.Profile").
		Joins("JOIN users ON users.id = posts.user_id").
		Where("posts.content LIKE ? OR users.username LIKE ?", pattern, pattern).
		Order("posts.created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&posts)

	if result.Error != nil {
		return nil, result.Error
	}
	return posts, nil
}

// GetLikedPostIDs 批量查询当前用户点过赞的帖子，单条 IN 查询避免 N+1
func (s *PostRepoImpl) GetLikedPostIDs(ctx context.Context, userID uint64, postIDs []uint64) ([]uint64, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}

	var ids []uint64
	result := s.db.WithContext(ctx).
		Model(&model.Like{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids)

	if result.Error != nil {
		return nil, result.Error
	}
	return ids, nil
}

// GetUserPosts 某用户的帖子列表
func (s *PostRepoImpl) GetUserPosts(ctx context.Context, userID uint64, limit, offset int) ([]*model.Post, error) {
	var posts []*model.Post
	result := s.db.WithContext(ctx).
		Preload("User.Profile").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&posts)

	if result.Error != nil {
		return nil, result.Error
	}
	return posts, nil
}
