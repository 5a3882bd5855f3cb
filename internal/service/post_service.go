package service

import (
	"Glintz/internal/api/dto"
	"Glintz/internal/model"
	"Glintz/internal/pkg/consts"
	"Glintz/internal/pkg/minio"
	"Glintz/internal/pkg/redis"
	"Glintz/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
)

type PostService interface {
	CreatePost(ctx context.Context, userID uint64, req *dto.CreatePostDTO) (*dto.PostDTO, error)
	UpdatePost(ctx context.Context, postID, userID uint64, req *dto.UpdatePostDTO) (*dto.PostDTO, error)
	DeletePost(ctx context.Context, postID, userID uint64) error
	GetPost(ctx context.Context, postID, viewerID uint64) (*dto.PostDTO, error)
	GetFeed(ctx context.Context, userID uint64, page, pageSize int) (*dto.FeedDTO, error)
	GetExplore(ctx context.Context, userID uint64, page, pageSize int) (*dto.PostListDTO, error)
	GetTrending(ctx context.Context, viewerID uint64, limit int) ([]*dto.PostDTO, error)
	Search(ctx context.Context, viewerID uint64, keyword string, page, pageSize int) (*dto.PostListDTO, error)
	GetUserPosts(ctx context.Context, targetUserID, viewerID uint64, page, pageSize int) (*dto.PostListDTO, error)
}

type PostServiceImpl struct {
	postRepo       repository.PostRepo
	followRepo     repository.FollowRepo
	engagementRepo repository.EngagementRepo
	mediaRepo      repository.MediaRepo
}

func NewPostService(postRepo repository.PostRepo, followRepo repository.FollowRepo, engagementRepo repository.EngagementRepo, mediaRepo repository.MediaRepo) PostService {
	return &PostServiceImpl{
		postRepo:       postRepo,
		followRepo:     followRepo,
		engagementRepo: engagementRepo,
		mediaRepo:      mediaRepo,
	}
}

// CreatePost 发帖，作者计数在仓储事务里维护
// 图片字段统一归一成对象键入库，临时对象随引用转正。
// 不清任何列表缓存，新帖最多延迟一个缓存周期出现在别人的信息流里。
func (s *PostServiceImpl) CreatePost(ctx context.Context, userID uint64, req *dto.CreatePostDTO) (*dto.PostDTO, error) {
	imageKey := minio.ObjectKeyFromURL(req.ImageURL)
	post := &model.Post{
		UserID:   userID,
		Content:  req.Content,
		ImageURL: imageKey,
	}
	if err := s.postRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	promoteMediaObject(ctx, s.mediaRepo, imageKey)

	log.InfoContext(ctx, "post created", "postId", post.ID, "userId", userID)
	return s.GetPost(ctx, post.ID, userID)
}

// UpdatePost 改帖，仅作者可改，帖子不存在或不属于作者时报 404
func (s *PostServiceImpl) UpdatePost(ctx context.Context, postID, userID uint64, req *dto.UpdatePostDTO) (*dto.PostDTO, error) {
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil || post.UserID != userID {
		return nil, ErrPostNotFound
	}

	post.Content = req.Content
	if req.ImageURL != nil {
		imageKey := minio.ObjectKeyFromURL(*req.ImageURL)
		post.ImageURL = imageKey
		promoteMediaObject(ctx, s.mediaRepo, imageKey)
	}
	if err = s.postRepo.UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	return s.GetPost(ctx, postID, userID)
}

// DeletePost 删帖，仅作者可删，帖子不存在或不属于作者时报 404
func (s *PostServiceImpl) DeletePost(ctx context.Context, postID, userID uint64) error {
	deleted, err := s.postRepo.DeletePost(ctx, postID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrPostNotFound
	}
	return nil
}

// GetPost 帖子详情，带当前用户的点赞状态
func (s *PostServiceImpl) GetPost(ctx context.Context, postID, viewerID uint64) (*dto.PostDTO, error) {
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	out := toPostDTO(post)
	if viewerID != 0 {
		liked, err := s.engagementRepo.HasPostLike(ctx, viewerID, postID)
		if err != nil {
			return nil, err
		}
		out.IsLiked = liked
	}
	return out, nil
}

// GetFeed 关注流，含自己的帖子
// 关注圈一条帖子都没有时整页回退到全站最新。结果缓存五分钟，
// 缓存体不含 is_liked，注解在缓存读取之后批量补上。
func (s *PostServiceImpl) GetFeed(ctx context.Context, userID uint64, page, pageSize int) (*dto.FeedDTO, error) {
	key := fmt.Sprintf("%s%d:%d:%d", consts.UserFeedKey, userID, pageSize, page)
	if cached, err := redis.GetValue(ctx, key); err == nil && cached != "" {
		var feed dto.FeedDTO
		if err = json.Unmarshal([]byte(cached), &feed); err == nil {
			if err = s.annotateLiked(ctx, userID, feed.Posts); err != nil {
				return nil, err
			}
			return &feed, nil
		}
	}

	followingIDs, err := s.followRepo.GetFollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	authorIDs := append(followingIDs, userID)

	total, err := s.postRepo.CountFeedPosts(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	feed := &dto.FeedDTO{Page: page, PageSize: pageSize}
	var posts []*model.Post
	if total == 0 {
		feed.Source = dto.FeedSourceDiscover
		posts, err = s.postRepo.GetLatestPosts(ctx, pageSize, (page-1)*pageSize)
	} else {
		feed.Source = dto.FeedSourceFollowing
		posts, err = s.postRepo.GetFeedPosts(ctx, authorIDs, pageSize, (page-1)*pageSize)
	}
	if err != nil {
		return nil, err
	}
	feed.Posts = toPostDTOs(posts)

	if payload, err := json.Marshal(feed); err == nil {
		if err = redis.SetWithExpiration(ctx, key, payload, consts.UserFeedTTL); err != nil {
			log.WarnContext(ctx, "failed to cache feed", "err", err)
		}
	}

	if err = s.annotateLiked(ctx, userID, feed.Posts); err != nil {
		return nil, err
	}
	return feed, nil
}

// GetExplore 发现页，全站最新，不走缓存
func (s *PostServiceImpl) GetExplore(ctx context.Context, userID uint64, page, pageSize int) (*dto.PostListDTO, error) {
	posts, err := s.postRepo.GetLatestPosts(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	result := &dto.PostListDTO{Posts: toPostDTOs(posts), Page: page, PageSize: pageSize}
	if err = s.annotateLiked(ctx, userID, result.Posts); err != nil {
		return nil, err
	}
	return result, nil
}

// GetTrending 七天窗口内按赞数、评论数、时间三级排序
// 列表对所有人相同，缓存半小时；is_liked 按查看者补注
func (s *PostServiceImpl) GetTrending(ctx context.Context, viewerID uint64, limit int) ([]*dto.PostDTO, error) {
	key := fmt.Sprintf("%s%d", consts.TrendingPostsKey, limit)
	if cached, err := redis.GetValue(ctx, key); err == nil && cached != "" {
		var result []*dto.PostDTO
		if err = json.Unmarshal([]byte(cached), &result); err == nil {
			if err = s.annotateLiked(ctx, viewerID, result); err != nil {
				return nil, err
			}
			return result, nil
		}
	}

	since := time.Now().Add(-consts.TrendingWindow)
	posts, err := s.postRepo.GetTrendingPosts(ctx, since, limit)
	if err != nil {
		return nil, err
	}

	result := toPostDTOs(posts)
	if payload, err := json.Marshal(result); err == nil {
		if err = redis.SetWithExpiration(ctx, key, payload, consts.TrendingPostsTTL); err != nil {
			log.WarnContext(ctx, "failed to cache trending posts", "err", err)
		}
	}

	if err = s.annotateLiked(ctx, viewerID, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Search 正文或作者用户名包含匹配，空关键词返回空集
func (s *PostServiceImpl) Search(ctx context.Context, viewerID uint64, keyword string, page, pageSize int) (*dto.PostListDTO, error) {
	result := &dto.PostListDTO{Posts: []*dto.PostDTO{}, Page: page, PageSize: pageSize}
	if keyword == "" {
		return result, nil
	}

	posts, err := s.postRepo.SearchPosts(ctx, keyword, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	result.Posts = toPostDTOs(posts)
	if err = s.annotateLiked(ctx, viewerID, result.Posts); err != nil {
		return nil, err
	}
	return result, nil
}

// GetUserPosts 某用户主页的帖子列表
func (s *PostServiceImpl) GetUserPosts(ctx context.Context, targetUserID, viewerID uint64, page, pageSize int) (*dto.PostListDTO, error) {
	posts, err := s.postRepo.GetUserPosts(ctx, targetUserID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	result := &dto.PostListDTO{Posts: toPostDTOs(posts), Page: page, PageSize: pageSize}
	if err = s.annotateLiked(ctx, viewerID, result.Posts); err != nil {
		return nil, err
	}
	return result, nil
}

// annotateLiked 单条 IN 查询批量补注当前用户的点赞状态
func (s *PostServiceImpl) annotateLiked(ctx context.Context, viewerID uint64, posts []*dto.PostDTO) error {
	if viewerID == 0 || len(posts) == 0 {
		return nil
	}

	ids := make([]uint64, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}

	likedIDs, err := s.postRepo.GetLikedPostIDs(ctx, viewerID, ids)
	if err != nil {
		return err
	}

	liked := make(map[uint64]struct{}, len(likedIDs))
	for _, id := range likedIDs {
		liked[id] = struct{}{}
	}
	for _, p := range posts {
		_, p.IsLiked = liked[p.ID]
	}
	return nil
}

func toPostDTO(post *model.Post) *dto.PostDTO {
	out := &dto.PostDTO{
		ID:            post.ID,
		Content:       post.Content,
		ImageURL:      minio.ResolvePublicURL(post.ImageURL),
		LikesCount:    post.LikesCount,
		CommentsCount: post.CommentsCount,
		CreatedAt:     post.CreatedAt.Format(time.RFC3339),
		UserID:        post.UserID,
	}
	if post.User.ID != 0 {
		out.Username = post.User.Username
		out.AvatarURL = minio.ResolvePublicURL(post.User.Profile.AvatarURL)
	}
	return out
}

func toPostDTOs(posts []*model.Post) []*dto.PostDTO {
	result := make([]*dto.PostDTO, 0, len(posts))
	for _, post := range posts {
		result = append(result, toPostDTO(post))
	}
	return result
}

// InvalidateUserCache 清除某用户的各类读缓存
// 写路径目前不调用它，读接口在 TTL 内返回旧值是预期行为。
func InvalidateUserCache(ctx context.Context, userID uint64) {
	patterns := []string{
		fmt.Sprintf("%s%d:*", consts.UserFeedKey, userID),
		fmt.Sprintf("%s%d:*", consts.SuggestedUsersKey, userID),
	}
	for _, pattern := range patterns {
		if err := redis.DeleteByPattern(ctx, pattern); err != nil {
			log.WarnContext(ctx, "failed to invalidate cache", "pattern", pattern, "err", err)
		}
	}
	if err := redis.DeleteKey(ctx, fmt.Sprintf("%s%d", consts.NotifyUnreadCountKey, userID)); err != nil {
		log.WarnContext(ctx, "failed to invalidate unread count", "err", err)
	}
}
