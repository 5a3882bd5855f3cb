package model

import "time"

// Profile 与 User 同事务创建，计数字段只由行为事务维护
type Profile struct {
	ID        uint64  `gorm:"primaryKey" json:"id"`
	UserID    uint64  `gorm:"not null;uniqueIndex:idx_profile_user" json:"userId"`
	Bio       string  `gorm:"type:varchar(500)" json:"bio"`
	AvatarURL string  `gorm:"type:varchar(255)" json:"avatarUrl"`
	Location  string  `gorm:"type:varchar(100)" json:"location"`
	Website   string  `gorm:"type:varchar(200)" json:"website"`
	BirthDate *string `gorm:"type:date" json:"birthDate"`

	FollowersCount int `gorm:"not null;default:0" json:"followersCount"`
	FollowingCount int `gorm:"not null;default:0" json:"followingCount"`
	PostsCount     int `gorm:"not null;default:0" json:"postsCount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Profile) TableName() string {
	return "user_profiles"
}
