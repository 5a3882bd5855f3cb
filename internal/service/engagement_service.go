package service

import (
	"Glintz/internal/api/dto"
	"Glintz/internal/model"
	"Glintz/internal/pkg/minio"
	"Glintz/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"time"

	"gorm.io/gorm"
)

type EngagementService interface {
	LikePost(ctx context.Context, userID, postID uint64) (*dto.LikeStateDTO, error)
	LikeComment(ctx context.Context, userID, commentID uint64) (*dto.CommentLikeStateDTO, error)
	CreateComment(ctx context.Context, userID, postID uint64, req *dto.CommentCreateDTO) (*dto.CommentDTO, error)
	DeleteComment(ctx context.Context, commentID, userID uint64) error
	GetComments(ctx context.Context, postID uint64, limit, offset int) ([]*dto.CommentDTO, error)
}

type EngagementServiceImpl struct {
	engagementRepo repository.EngagementRepo
	postRepo       repository.PostRepo
}

func NewEngagementService(engagementRepo repository.EngagementRepo, postRepo repository.PostRepo) EngagementService {
	return &EngagementServiceImpl{engagementRepo: engagementRepo, postRepo: postRepo}
}

// LikePost 点赞开关
// 先尝试插入，唯一索引命中说明已赞过，转为取消。自己赞自己的帖子
// 不发通知，likes_count 照常变动。
func (s *EngagementServiceImpl) LikePost(ctx context.Context, userID, postID uint64) (*dto.LikeStateDTO, error) {
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	like := &model.Like{UserID: userID, PostID: &postID}

	var notif *model.Notification
	if post.UserID != userID {
		notif = &model.Notification{
			RecipientID: post.UserID,
			SenderID:    userID,
			Type:        model.NotificationTypeLike,
			PostID:      &postID,
		}
	}

	created, err := s.engagementRepo.CreatePostLike(ctx, like, notif)
	if err != nil {
		if errors.Is(err, gorm.ErrInvalidData) {
			return nil, ErrLikeTargetInvalid
		}
		return nil, err
	}

	isLiked := true
	if !created {
		if _, err = s.engagementRepo.DeletePostLike(ctx, userID, postID); err != nil {
			return nil, err
		}
		isLiked = false
	}

	fresh, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if fresh == nil {
		return nil, ErrPostNotFound
	}

	return &dto.LikeStateDTO{IsLiked: isLiked, LikesCount: fresh.LikesCount}, nil
}

// LikeComment 评论点赞开关，只落行，不动计数也不发通知
func (s *EngagementServiceImpl) LikeComment(ctx context.Context, userID, commentID uint64) (*dto.CommentLikeStateDTO, error) {
	comment, err := s.engagementRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrPostCommentNotFound
	}

	like := &model.Like{UserID: userID, CommentID: &commentID}
	created, err := s.engagementRepo.CreateCommentLike(ctx, like)
	if err != nil {
		if errors.Is(err, gorm.ErrInvalidData) {
			return nil, ErrLikeTargetInvalid
		}
		return nil, err
	}

	if created {
		return &dto.CommentLikeStateDTO{IsLiked: true}, nil
	}

	if _, err = s.engagementRepo.DeleteCommentLike(ctx, userID, commentID); err != nil {
		return nil, err
	}
	return &dto.CommentLikeStateDTO{IsLiked: false}, nil
}

// CreateComment 发评论
// 只允许一层回复，父评论必须属于同一帖子。评论自己的帖子不发通知。
func (s *EngagementServiceImpl) CreateComment(ctx context.Context, userID, postID uint64, req *dto.CommentCreateDTO) (*dto.CommentDTO, error) {
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	if req.ParentID != nil {
		parent, err := s.engagementRepo.GetCommentByID(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil || parent.PostID != postID {
			return nil, ErrPostCommentNotFound
		}
		if parent.ParentID != nil {
			return nil, ErrCommentReplyDepth
		}
	}

	comment := &model.Comment{
		PostID:   postID,
		UserID:   userID,
		Content:  req.Content,
		ParentID: req.ParentID,
	}

	var notif *model.Notification
	if post.UserID != userID {
		notif = &model.Notification{
			RecipientID: post.UserID,
			SenderID:    userID,
			Type:        model.NotificationTypeComment,
			PostID:      &postID,
		}
	}

	if err = s.engagementRepo.CreateComment(ctx, comment, notif); err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "comment created", "commentId", comment.ID, "postId", postID)

	full, err := s.engagementRepo.GetCommentByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}
	return toCommentDTO(full), nil
}

// DeleteComment 删评论，非本人或不存在时报 404
func (s *EngagementServiceImpl) DeleteComment(ctx context.Context, commentID, userID uint64) error {
	deleted, err := s.engagementRepo.DeleteComment(ctx, commentID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrPostCommentNotFound
	}
	return nil
}

// GetComments 帖子的评论树，一层回复
func (s *EngagementServiceImpl) GetComments(ctx context.Context, postID uint64, limit, offset int) ([]*dto.CommentDTO, error) {
	comments, err := s.engagementRepo.GetCommentsByPost(ctx, postID, limit, offset)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.CommentDTO, 0, len(comments))
	for _, comment := range comments {
		result = append(result, toCommentDTO(comment))
	}
	return result, nil
}

func toCommentDTO(comment *model.Comment) *dto.CommentDTO {
	if comment == nil {
		return nil
	}

	out := &dto.CommentDTO{
		ID:        comment.ID,
		PostID:    comment.PostID,
		Content:   comment.Content,
		ParentID:  comment.ParentID,
		CreatedAt: comment.CreatedAt.Format(time.RFC3339),
		UserID:    comment.UserID,
	}
	if comment.User.ID != 0 {
		out.Username = comment.User.Username
		out.AvatarURL = minio.ResolvePublicURL(comment.User.Profile.AvatarURL)
	}
	for _, reply := range comment.Replies {
		r := reply
		out.Replies = append(out.Replies, toCommentDTO(&r))
	}
	return out
}
