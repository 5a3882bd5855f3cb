package dto

import "time"

// RegisterDTO 注册
type RegisterDTO struct {
	Username string `json:"username" binding:"required" validate:"min=3,max=20"`
	Password string `json:"password" binding:"required" validate:"min=6,max=20"`
	Bio      string `json:"bio" validate:"omitempty,max=500"`
}

// CredentialDTO 登录凭证
type CredentialDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthDTO 登录/注册成功响应
type AuthDTO struct {
	Token string   `json:"token"`
	User  *UserDTO `json:"user"`
}

// UserDTO 用户资料视图
type UserDTO struct {
	UserID         uint64     `json:"user_id"`
	Username       string     `json:"username"`
	Bio            string     `json:"bio"`
	AvatarURL      string     `json:"avatar_url"`
	Location       string     `json:"location"`
	Website        string     `json:"website"`
	BirthDate      *string    `json:"birth_date,omitempty"`
	FollowersCount int        `json:"followers_count"`
	FollowingCount int        `json:"following_count"`
	PostsCount     int        `json:"posts_count"`
	IsFollowing    bool       `json:"is_following"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
}

// UpdateProfileDTO 修改资料请求
type UpdateProfileDTO struct {
	Bio       *string `json:"bio" validate:"omitempty,max=500"`
	AvatarURL *string `json:"avatar_url"`
	Location  *string `json:"location" validate:"omitempty,max=100"`
	Website   *string `json:"website" validate:"omitempty,max=200"`
	BirthDate *string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
}

// FollowStateDTO 关注操作响应
type FollowStateDTO struct {
	IsFollowing    bool `json:"is_following"`
	FollowersCount int  `json:"followers_count"`
}
