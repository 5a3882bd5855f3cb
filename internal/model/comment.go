package model

import (
	"time"
)

type Comment struct {
	ID       uint64  `gorm:"primaryKey"`
	PostID   uint64  `gorm:"not null;index:idx_post_id" json:"postId"`
	UserID   uint64  `gorm:"not null" json:"userId"`
	Content  string  `gorm:"type:varchar(1000);not null" json:"content"`
	ParentID *uint64 `gorm:"index:idx_parent_id" json:"parentId"` // 空表示直接评论帖子，仅支持一层回复
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User    User      `gorm:"foreignKey:UserID;references:ID"`
	Replies []Comment `gorm:"foreignKey:ParentID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Comment) TableName() string {
	return "comments"
}
