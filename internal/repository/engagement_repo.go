package repository

import (
	"Glintz/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EngagementRepo interface {
	CreatePostLike(ctx context.Context, like *model.Like, notif *model.Notification) (bool, error)
	DeletePostLike(ctx context.Context, userID, postID uint64) (bool, error)
	CreateCommentLike(ctx context.Context, like *model.Like) (bool, error)
	DeleteCommentLike(ctx context.Context, userID, commentID uint64) (bool, error)
	HasPostLike(ctx context.Context, userID, postID uint64) (bool, error)
	HasCommentLike(ctx context.Context, userID, commentID uint64) (bool, error)
	CreateComment(ctx context.Context, comment *model.Comment, notif *model.Notification) error
	DeleteComment(ctx context.Context, commentID, userID uint64) (bool, error)
	GetCommentByID(ctx context.Context, commentID uint64) (*model.Comment, error)
	GetCommentsByPost(ctx context.Context, postID uint64, limit, offset int) ([]*model.Comment, error)
}

type EngagementRepoImpl struct {
	db *gorm.DB
}

func NewEngagementRepo(db *gorm.DB) EngagementRepo {
	return &EngagementRepoImpl{db: db}
}

// CreatePostLike 帖子点赞
// 唯一索引冲突视为已点过，事务退化为空操作返回 false；
// 成功插入时 likes_count 与通知写入同一事务。
func (s *EngagementRepoImpl) CreatePostLike(ctx context.Context, like *model.Like, notif *model.Notification) (bool, error) {
	if !like.TargetValid() || like.PostID == nil {
		return false, gorm.ErrInvalidData
	}

	created := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
			DoNothing: true,
		}).Create(like)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		created = true

		if err := tx.Model(&model.Post{}).
			Where("id = ?", *like.PostID).
			UpdateColumn("likes_count", gorm.Expr("likes_count + ?", 1)).Error; err != nil {
			return err
		}

		if notif != nil {
			return tx.Create(notif).Error
		}
		return nil
	})
	return created, err
}

// DeletePostLike 取消帖子点赞，likes_count 同事务递减并钳制在零以上
func (s *EngagementRepoImpl) DeletePostLike(ctx context.Context, userID, postID uint64) (bool, error) {
	deleted := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND post_id = ?", userID, postID).
			Delete(&model.Like{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		deleted = true

		return tx.Model(&model.Post{}).
			Where("id = ?", postID).
			UpdateColumn("likes_count",
				gorm.Expr("CASE WHEN likes_count > 0 THEN likes_count - 1 ELSE 0 END")).Error
	})
	return deleted, err
}

// CreateCommentLike 评论点赞只落行，不动任何计数也不发通知
func (s *EngagementRepoImpl) CreateCommentLike(ctx context.Context, like *model.Like) (bool, error) {
	if !like.TargetValid() || like.CommentID == nil {
		return false, gorm.ErrInvalidData
	}

	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "comment_id"}},
		DoNothing: true,
	}).Create(like)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteCommentLike 取消评论点赞
func (s *EngagementRepoImpl) DeleteCommentLike(ctx context.Context, userID, commentID uint64) (bool, error) {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Delete(&model.Like{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// HasPostLike 当前用户是否赞过该帖
func (s *EngagementRepoImpl) HasPostLike(ctx context.Context, userID, postID uint64) (bool, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&model.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count)

	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// HasCommentLike 当前用户是否赞过该评论
func (s *EngagementRepoImpl) HasCommentLike(ctx context.Context, userID, commentID uint64) (bool, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&model.Like{}).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Count(&count)

	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// CreateComment 发评论，comments_count 与通知写入同一事务
func (s *EngagementRepoImpl) CreateComment(ctx context.Context, comment *model.Comment, notif *model.Notification) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.Post{}).
			Where("id = ?", comment.PostID).
			UpdateColumn("comments_count", gorm.Expr("comments_count + ?", 1)).Error; err != nil {
			return err
		}

		if notif != nil {
			notif.CommentID = &comment.ID
			return tx.Create(notif).Error
		}
		return nil
	})
}

// DeleteComment 删评论，直接回复一并清除
// comments_count 按被删行数递减，不会降到零以下。
func (s *EngagementRepoImpl) DeleteComment(ctx context.Context, commentID, userID uint64) (bool, error) {
	deleted := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment model.Comment
		result := tx.Where("id = ? AND user_id = ?", commentID, userID).First(&comment)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return nil
			}
			return result.Error
		}

		var replyIDs []uint64
		if err := tx.Model(&model.Comment{}).
			Where("parent_id = ?", commentID).
			Pluck("id", &replyIDs).Error; err != nil {
			return err
		}

		victimIDs := append([]uint64{commentID}, replyIDs...)
		if err := tx.Where("comment_id IN ?", victimIDs).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id IN ?", victimIDs).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		deleted = true

		removed := len(victimIDs)
		return tx.Model(&model.Post{}).
			Where("id = ?", comment.PostID).
			UpdateColumn("comments_count",
				gorm.Expr("CASE WHEN comments_count >= ? THEN comments_count - ? ELSE 0 END", removed, removed)).Error
	})
	return deleted, err
}

// GetCommentByID 取单条评论，带作者
func (s *EngagementRepoImpl) GetCommentByID(ctx context.Context, commentID uint64) (*model.Comment, error) {
	var comment model.Comment
	result := s.db.WithContext(ctx).
		Preload("User.Profile").
		Where("id = ?", commentID).
		First(&comment)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &comment, nil
}

// GetCommentsByPost 帖子的顶层评论及其直接回复，按时间正序
func (s *EngagementRepoImpl) GetCommentsByPost(ctx context.Context, postID uint64, limit, offset int) ([]*model.Comment, error) {
	var comments []*model.Comment
	result := s.db.WithContext(ctx).
		Preload("User.Profile").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc")
		}).
		Preload("Replies.User.Profile").
		Where("post_id = ? AND parent_id IS NULL", postID).
		Order("created_at asc").
		Limit(limit).
		Offset(offset).
		Find(&comments)

	if result.Error != nil {
		return nil, result.Error
	}
	return comments, nil
}
