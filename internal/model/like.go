package model

import (
	"time"
)

// Like 点赞目标为帖子或评论，二者必须恰好设置其一。
// (user_id, post_id) 与 (user_id, comment_id) 各自唯一，重复点赞由约束兜底。
type Like struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    uint64    `gorm:"not null;uniqueIndex:idx_user_post;uniqueIndex:idx_user_comment" json:"userId"`
	PostID    *uint64   `gorm:"uniqueIndex:idx_user_post;index:idx_like_post_id" json:"postId"`
	CommentID *uint64   `gorm:"uniqueIndex:idx_user_comment;index:idx_comment_id" json:"commentId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Like) TableName() string {
	return "likes"
}

// TargetValid 校验目标恰好设置其一
func (l *Like) TargetValid() bool {
	return (l.PostID != nil) != (l.CommentID != nil)
}
