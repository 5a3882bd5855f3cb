package model

import (
	"time"
)

type Post struct {
	ID            uint64 `gorm:"primaryKey"`
	UserID        uint64 `gorm:"not null;index:idx_user_id" json:"user_id"`
	Content       string `gorm:"type:varchar(2000);not null" json:"content"`
	ImageURL      string `gorm:"type:varchar(255)" json:"image_url"`
	LikesCount    int    `gorm:"not null;default:0" json:"likes_count"`
	CommentsCount int    `gorm:"not null;default:0" json:"comments_count"`
	CreatedAt     time.Time `gorm:"index:idx_created_at" json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// 关联关系
	User     User      `gorm:"foreignKey:UserID;references:ID"`
	Comments []Comment `gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Post) TableName() string {
	return "posts"
}
