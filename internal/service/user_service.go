package service

import (
	"Glintz/internal/api/dto"
	"Glintz/internal/model"
	"Glintz/internal/pkg/consts"
	"Glintz/internal/pkg/minio"
	"Glintz/internal/pkg/redis"
	"Glintz/internal/pkg/security"
	"Glintz/internal/repository"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
)

type UserService interface {
	Register(ctx context.Context, req *dto.RegisterDTO) (*dto.AuthDTO, error)
	Login(ctx context.Context, req *dto.CredentialDTO) (*dto.AuthDTO, error)
	Logout(ctx context.Context, token string) error
	GetProfile(ctx context.Context, targetUserID, viewerID uint64) (*dto.UserDTO, error)
	UpdateProfile(ctx context.Context, userID uint64, req *dto.UpdateProfileDTO) (*dto.UserDTO, error)
	SearchUsers(ctx context.Context, keyword string, limit, offset int) ([]*dto.UserDTO, error)
	GetSuggestedUsers(ctx context.Context, userID uint64, limit int) ([]*dto.UserDTO, error)
}

type UserServiceImpl struct {
	userRepo   repository.UserRepo
	followRepo repository.FollowRepo
	mediaRepo  repository.MediaRepo
}

func NewUserService(userRepo repository.UserRepo, followRepo repository.FollowRepo, mediaRepo repository.MediaRepo) UserService {
	return &UserServiceImpl{userRepo: userRepo, followRepo: followRepo, mediaRepo: mediaRepo}
}

// Register 注册并直接签发令牌
func (s *UserServiceImpl) Register(ctx context.Context, req *dto.RegisterDTO) (*dto.AuthDTO, error) {
	existing, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserUsernameExist
	}

	hashed, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: req.Username,
		Password: hashed,
		Profile: model.Profile{
			Bio:       req.Bio,
			AvatarURL: consts.DefaultAvatarURL,
		},
	}
	if err = s.userRepo.CreateUser(ctx, user); err != nil {
		// 预检查挡不住并发注册，唯一索引兜底
		if isDuplicateError(err) {
			return nil, ErrUserUsernameExist
		}
		return nil, err
	}

	token, err := security.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "user registered", "userId", user.ID, "username", user.Username)
	return &dto.AuthDTO{Token: token, User: s.toUserDTO(user, false)}, nil
}

// Login 用户名密码登录
func (s *UserServiceImpl) Login(ctx context.Context, req *dto.CredentialDTO) (*dto.AuthDTO, error) {
	if req.Username == "" || req.Password == "" {
		return nil, ErrMissingLoginCredentials
	}

	user, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err = security.CheckPasswordHash(req.Password, user.Password); err != nil {
		return nil, ErrPasswordIncorrect
	}

	token, err := security.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	return &dto.AuthDTO{Token: token, User: s.toUserDTO(user, false)}, nil
}

// Logout 把令牌签名挂入黑名单直到自然过期
func (s *UserServiceImpl) Logout(ctx context.Context, token string) error {
	claims, err := security.ValidateToken(token)
	if err != nil {
		return UnauthorizedError
	}

	sig, err := security.ExtractSignature(token)
	if err != nil {
		return UnauthorizedError
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return redis.SetWithExpiration(ctx, consts.JWTDenyKey+sig, "1", ttl)
}

// GetProfile 查看资料页，计数直接读冗余列
func (s *UserServiceImpl) GetProfile(ctx context.Context, targetUserID, viewerID uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserByID(ctx, targetUserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	isFollowing := false
	if viewerID != 0 && viewerID != targetUserID {
		follow, err := s.followRepo.GetFollow(ctx, viewerID, targetUserID)
		if err != nil {
			return nil, err
		}
		isFollowing = follow != nil
	}

	return s.toUserDTO(user, isFollowing), nil
}

// UpdateProfile 更新资料，计数字段不可经此修改
func (s *UserServiceImpl) UpdateProfile(ctx context.Context, userID uint64, req *dto.UpdateProfileDTO) (*dto.UserDTO, error) {
	profile, err := s.userRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrUserNotFound
	}

	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.AvatarURL != nil {
		avatarKey := minio.ObjectKeyFromURL(*req.AvatarURL)
		profile.AvatarURL = avatarKey
		promoteMediaObject(ctx, s.mediaRepo, avatarKey)
	}
	if req.Location != nil {
		profile.Location = *req.Location
	}
	if req.Website != nil {
		profile.Website = *req.Website
	}
	if req.BirthDate != nil {
		profile.BirthDate = req.BirthDate
	}

	if err = s.userRepo.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}

	return s.GetProfile(ctx, userID, 0)
}

// SearchUsers 用户名模糊搜索
func (s *UserServiceImpl) SearchUsers(ctx context.Context, keyword string, limit, offset int) ([]*dto.UserDTO, error) {
	if keyword == "" {
		return []*dto.UserDTO{}, nil
	}

	users, err := s.userRepo.SearchUsers(ctx, keyword, limit, offset)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.UserDTO, 0, len(users))
	for _, user := range users {
		result = append(result, s.toUserDTO(user, false))
	}
	return result, nil
}

// GetSuggestedUsers 推荐关注，缓存一小时，过期前不感知关注关系变化
func (s *UserServiceImpl) GetSuggestedUsers(ctx context.Context, userID uint64, limit int) ([]*dto.UserDTO, error) {
	if limit <= 0 {
		limit = consts.SuggestUserLimit
	}

	key := fmt.Sprintf("%s%d:%d", consts.SuggestedUsersKey, userID, limit)
	if cached, err := redis.GetValue(ctx, key); err == nil && cached != "" {
		var result []*dto.UserDTO
		if err = json.Unmarshal([]byte(cached), &result); err == nil {
			return result, nil
		}
	}

	users, err := s.userRepo.GetSuggestedUsers(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.UserDTO, 0, len(users))
	for _, user := range users {
		result = append(result, s.toUserDTO(user, false))
	}

	if payload, err := json.Marshal(result); err == nil {
		if err = redis.SetWithExpiration(ctx, key, payload, consts.SuggestedUsersTTL); err != nil {
			log.WarnContext(ctx, "failed to cache suggested users", "err", err)
		}
	}
	return result, nil
}

func isDuplicateError(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

func (s *UserServiceImpl) toUserDTO(user *model.User, isFollowing bool) *dto.UserDTO {
	out := &dto.UserDTO{}
	_ = copier.Copy(out, &user.Profile)
	out.AvatarURL = minio.ResolvePublicURL(user.Profile.AvatarURL)
	out.UserID = user.ID
	out.Username = user.Username
	out.IsFollowing = isFollowing
	out.CreatedAt = &user.CreatedAt
	return out
}
