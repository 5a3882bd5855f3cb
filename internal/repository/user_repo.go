package repository

import (
	"Glintz/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type UserRepo interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, userID uint64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	SearchUsers(ctx context.Context, keyword string, limit, offset int) ([]*model.User, error)
	GetSuggestedUsers(ctx context.Context, userID uint64, limit int) ([]*model.User, error)
	UpdateProfile(ctx context.Context, profile *model.Profile) error
	GetProfileByUserID(ctx context.Context, userID uint64) (*model.Profile, error)
}

type UserRepoImpl struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &UserRepoImpl{db: db}
}

// CreateUser 创建用户及其资料行，同一事务
func (s *UserRepoImpl) CreateUser(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if user.Profile.UserID == 0 {
			user.Profile.UserID = user.ID
			return tx.Create(&user.Profile).Error
		}
		return nil
	})
}

// GetUserByID 按主键取用户，带资料
func (s *UserRepoImpl) GetUserByID(ctx context.Context, userID uint64) (*model.User, error) {
	var user model.User
	result := s.db.WithContext(ctx).
		Preload("Profile").
		Where("id = ?", userID).
		First(&user)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &user, nil
}

// GetUserByUsername 按用户名取用户，带资料
func (s *UserRepoImpl) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	result := s.db.WithContext(ctx).
		Preload("Profile").
		Where("username = ?", username).
		First(&user)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &user, nil
}

// SearchUsers 用户名模糊匹配
func (s *UserRepoImpl) SearchUsers(ctx context.Context, keyword string, limit, offset int) ([]*model.User, error) {
	var users []*model.User
	result := s.db.WithContext(ctx).
		Preload("Profile").
		Where("username LIKE ?", "%"+keyword+"%").
		Order("username asc").
		Limit(limit).
		Offset(offset).
		Find(&users)

	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

// GetSuggestedUsers 好友的好友优先，不足时补全站内其他用户
// 排除自己和已关注的人
func (s *UserRepoImpl) GetSuggestedUsers(ctx context.Context, userID uint64, limit int) ([]*model.User, error) {
	followingSub := s.db.Model(&model.Follow{}).
		Select("following_id").
		Where("follower_id = ?", userID)

	var users []*model.User
	result := s.db.WithContext(ctx).
		Preload("Profile").
		Where("id <> ?", userID).
		Where("id NOT IN (?)", followingSub).
		Where("id IN (?)", s.db.Model(&model.Follow{}).
			Select("following_id").
			Where("follower_id IN (?)", s.db.Model(&model.Follow{}).
				Select("following_id").
				Where("follower_id = ?", userID))).
		Limit(limit).
		Find(&users)

	if result.Error != nil {
		return nil, result.Error
	}

	if len(users) >= limit {
		return users, nil
	}

	// 二度关系不足，按最新注册补齐
	exclude := make([]uint64, 0, len(users)+1)
	exclude = append(exclude, userID)
	for _, u := range users {
		exclude = append(exclude, u.ID)
	}

	var filler []*model.User
	result = s.db.WithContext(ctx).
		Preload("Profile").
		Where("id NOT IN ?", exclude).
		Where("id NOT IN (?)", s.db.Model(&model.Follow{}).
			Select("following_id").
			Where("follower_id = ?", userID)).
		Order("created_at desc").
		Limit(limit - len(users)).
		Find(&filler)

	if result.Error != nil {
		return nil, result.Error
	}

	return append(users, filler...), nil
}

// UpdateProfile 更新用户资料，计数字段不经过此入口
func (s *UserRepoImpl) UpdateProfile(ctx context.Context, profile *model.Profile) error {
	return s.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("user_id = ?", profile.UserID).
		Select("bio", "avatar_url", "location", "website", "birth_date").
		Updates(profile).Error
}

// GetProfileByUserID 取资料行
func (s *UserRepoImpl) GetProfileByUserID(ctx context.Context, userID uint64) (*model.Profile, error) {
	var profile model.Profile
	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &profile, nil
}
