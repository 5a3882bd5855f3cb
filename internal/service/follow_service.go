package service

import (
	"Glintz/internal/api/dto"
	"Glintz/internal/model"
	"Glintz/internal/repository"
	"context"
	log "log/slog"

	"github.com/jinzhu/copier"
)

type FollowService interface {
	Follow(ctx context.Context, followerID, targetID uint64) (*dto.FollowStateDTO, error)
	Unfollow(ctx context.Context, followerID, targetID uint64) (*dto.FollowStateDTO, error)
	ListFollowers(ctx context.Context, userID uint64, limit, offset int) ([]*dto.UserDTO, error)
	ListFollowing(ctx context.Context, userID uint64, limit, offset int) ([]*dto.UserDTO, error)
}

type FollowServiceImpl struct {
	followRepo repository.FollowRepo
	userRepo   repository.UserRepo
}

func NewFollowService(followRepo repository.FollowRepo, userRepo repository.UserRepo) FollowService {
	return &FollowServiceImpl{followRepo: followRepo, userRepo: userRepo}
}

// Follow 关注目标用户
// 已关注时为空操作；关注自己直接拒绝；给对方发 follow 通知，
// 通知与关系行、两侧计数在同一事务提交。
func (s *FollowServiceImpl) Follow(ctx context.Context, followerID, targetID uint64) (*dto.FollowStateDTO, error) {
	if followerID == targetID {
		return nil, ErrUserFollowSelf
	}

	target, err := s.userRepo.GetUserByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrUserNotFound
	}

	follow := &model.Follow{FollowerID: followerID, FollowingID: targetID}
	notif := &model.Notification{
		RecipientID: targetID,
		SenderID:    followerID,
		Type:        model.NotificationTypeFollow,
	}

	created, err := s.followRepo.CreateFollow(ctx, follow, notif)
	if err != nil {
		return nil, err
	}
	if created {
		log.InfoContext(ctx, "follow created", "follower", followerID, "following", targetID)
	}

	return s.followState(ctx, followerID, targetID)
}

// Unfollow 取消关注，关系不存在时为空操作
func (s *FollowServiceImpl) Unfollow(ctx context.Context, followerID, targetID uint64) (*dto.FollowStateDTO, error) {
	if followerID == targetID {
		return nil, ErrUserFollowSelf
	}

	target, err := s.userRepo.GetUserByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrUserNotFound
	}

	if _, err = s.followRepo.DeleteFollow(ctx, followerID, targetID); err != nil {
		return nil, err
	}

	return s.followState(ctx, followerID, targetID)
}

func (s *FollowServiceImpl) followState(ctx context.Context, followerID, targetID uint64) (*dto.FollowStateDTO, error) {
	profile, err := s.userRepo.GetProfileByUserID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrUserNotFound
	}

	follow, err := s.followRepo.GetFollow(ctx, followerID, targetID)
	if err != nil {
		return nil, err
	}

	return &dto.FollowStateDTO{
		IsFollowing:    follow != nil,
		FollowersCount: profile.FollowersCount,
	}, nil
}

// ListFollowers 粉丝列表
func (s *FollowServiceImpl) ListFollowers(ctx context.Context, userID uint64, limit, offset int) ([]*dto.UserDTO, error) {
	users, err := s.followRepo.ListFollowers(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.toUserDTOs(users), nil
}

// ListFollowing 关注列表
func (s *FollowServiceImpl) ListFollowing(ctx context.Context, userID uint64, limit, offset int) ([]*dto.UserDTO, error) {
	users, err := s.followRepo.ListFollowing(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.toUserDTOs(users), nil
}

func (s *FollowServiceImpl) toUserDTOs(users []*model.User) []*dto.UserDTO {
	result := make([]*dto.UserDTO, 0, len(users))
	for _, user := range users {
		out := &dto.UserDTO{}
		_ = copier.Copy(out, &user.Profile)
		out.UserID = user.ID
		out.Username = user.Username
		result = append(result, out)
	}
	return result
}
