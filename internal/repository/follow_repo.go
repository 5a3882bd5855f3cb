package repository

import (
	"Glintz/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FollowRepo interface {
	CreateFollow(ctx context.Context, follow *model.Follow, notif *model.Notification) (bool, error)
	DeleteFollow(ctx context.Context, followerID, followingID uint64) (bool, error)
	GetFollow(ctx context.Context, followerID, followingID uint64) (*model.Follow, error)
	GetFollowingIDs(ctx context.Context, followerID uint64) ([]uint64, error)
	GetFollowingIDSet(ctx context.Context, followerID uint64, candidateIDs []uint64) (map[uint64]struct{}, error)
	ListFollowers(ctx context.Context, userID uint64, limit, offset int) ([]*model.User, error)
	ListFollowing(ctx context.Context, userID uint64, limit, offset int) ([]*model.User, error)
}

type FollowRepoImpl struct {
	db *gorm.DB
}

func NewFollowRepo(db *gorm.DB) FollowRepo {
	return &FollowRepoImpl{db: db}
}

// CreateFollow 建立关注关系
// 插入、两侧计数与通知落在同一事务里；主键冲突视为已关注，
// 整个事务退化为空操作并返回 false。
func (s *FollowRepoImpl) CreateFollow(ctx context.Context, follow *model.Follow, notif *model.Notification) (bool, error) {
	created := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "follower_id"}, {Name: "following_id"}},
			DoNothing: true,
		}).Create(follow)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		created = true

		if err := tx.Model(&model.Profile{}).
			Where("user_id = ?", follow.FollowingID).
			UpdateColumn("followers_count", gorm.Expr("followers_count + ?", 1)).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Profile{}).
			Where("user_id = ?", follow.FollowerID).
			UpdateColumn("following_count", gorm.Expr("following_count + ?", 1)).Error; err != nil {
			return err
		}

		if notif != nil {
			return tx.Create(notif).Error
		}
		return nil
	})
	return created, err
}

// DeleteFollow 解除关注关系，计数同事务递减并钳制在零以上
// 关系不存在时为空操作，返回 false。
func (s *FollowRepoImpl) DeleteFollow(ctx context.Context, followerID, followingID uint64) (bool, error) {
	deleted := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("follower_id = ? AND following_id = ?", followerID, followingID).
			Delete(&model.Follow{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		deleted = true

		if err := tx.Model(&model.Profile{}).
			Where("user_id = ?", followingID).
			UpdateColumn("followers_count",
				gorm.Expr("CASE WHEN followers_count > 0 THEN followers_count - 1 ELSE 0 END")).Error; err != nil {
			return err
		}
		return tx.Model(&model.Profile{}).
			Where("user_id = ?", followerID).
			UpdateColumn("following_count",
				gorm.Expr("CASE WHEN following_count > 0 THEN following_count - 1 ELSE 0 END")).Error
	})
	return deleted, err
}

// GetFollow 查询单条关注关系
func (s *FollowRepoImpl) GetFollow(ctx context.Context, followerID, followingID uint64) (*model.Follow, error) {
	var follow model.Follow
	result := s.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		First(&follow)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &follow, nil
}

// GetFollowingIDs 取用户关注的全部 UID，用于信息流组装
func (s *FollowRepoImpl) GetFollowingIDs(ctx context.Context, followerID uint64) ([]uint64, error) {
	var ids []uint64
	result := s.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ?", followerID).
		Pluck("following_id", &ids)

	if result.Error != nil {
		return nil, result.Error
	}
	return ids, nil
}

// GetFollowingIDSet 批量判断候选 UID 中哪些已被当前用户关注，单条 IN 查询
func (s *FollowRepoImpl) GetFollowingIDSet(ctx context.Context, followerID uint64, candidateIDs []uint64) (map[uint64]struct{}, error) {
	set := make(map[uint64]struct{}, len(candidateIDs))
	if len(candidateIDs) == 0 {
		return set, nil
	}

	var ids []uint64
	result := s.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ? AND following_id IN ?", followerID, candidateIDs).
		Pluck("following_id", &ids)

	if result.Error != nil {
		return nil, result.Error
	}
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// ListFollowers 粉丝列表，按关注时间倒序
func (s *FollowRepoImpl) ListFollowers(ctx context.Context, userID uint64, limit, offset int) ([]*model.User, error) {
	var users []*model.User
	result := s.db.WithContext(ctx).
		Preload("Profile").
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.following_id = ?", userID).
		Order("follows.created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&users)

	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

// ListFollowing 关注列表，按关注时间倒序
func (s *FollowRepoImpl) ListFollowing(ctx context.Context, userID uint64, limit, offset int) ([]*model.User, error) {
	var users []*model.User
	result := s.db.WithContext(ctx).
		Preload("Profile").
		Joins("JOIN follows ON follows.following_id = users.id").
		Where("follows.follower_id = ?", userID).
		Order("follows.created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&users)

	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}
