package dto

// CreatePostDTO 发帖请求
type CreatePostDTO struct {
	Content  string `json:"content" binding:"required" validate:"min=1,max=2000"`
	ImageURL string `json:"image_url"`
}

// UpdatePostDTO 改帖请求，ImageURL 为空指针表示保持原图不动
type UpdatePostDTO struct {
	Content  string  `json:"content" binding:"required" validate:"min=1,max=2000"`
	ImageURL *string `json:"image_url"`
}

// PostDTO 帖子视图
type PostDTO struct {
	ID            uint64 `json:"id"`
	Content       string `json:"content"`
	ImageURL      string `json:"image_url"`
	LikesCount    int    `json:"likes_count"`
	CommentsCount int    `json:"comments_count"`
	IsLiked       bool   `json:"is_liked"`
	CreatedAt     string `json:"created_at"`

	// User
	UserID    uint64 `json:"user_id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

// FeedDTO 信息流响应
// Source 标明内容来源：following 为关注流，discover 为全站回退流
type FeedDTO struct {
	Posts    []*PostDTO `json:"posts"`
	Source   string     `json:"source"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
}

// PostListDTO 普通帖子列表响应
type PostListDTO struct {
	Posts    []*PostDTO `json:"posts"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
}

const (
	FeedSourceFollowing = "following"
	FeedSourceDiscover  = "discover"
)
