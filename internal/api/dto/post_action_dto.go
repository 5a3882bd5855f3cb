package dto

// LikeStateDTO 帖子点赞切换响应
type LikeStateDTO struct {
	IsLiked    bool `json:"is_liked"`
	LikesCount int  `json:"likes_count"`
}

// CommentLikeStateDTO 评论点赞切换响应，评论不维护点赞计数
type CommentLikeStateDTO struct {
	IsLiked bool `json:"is_liked"`
}

// CommentCreateDTO 创建评论请求
type CommentCreateDTO struct {
	Content  string  `json:"content" binding:"required" validate:"min=1,max=1000"`
	ParentID *uint64 `json:"parent_id"` // 为空表示一级评论
}

// CommentDTO 评论视图
type CommentDTO struct {
	ID        uint64 `json:"id"`
	PostID    uint64 `json:"post_id"`
	Content   string `json:"content"`
	ParentID  *uint64 `json:"parent_id,omitempty"`
	CreatedAt string `json:"created_at"`

	UserID    uint64 `json:"user_id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`

	Replies []*CommentDTO `json:"replies,omitempty"`
}
