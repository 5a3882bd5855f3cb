package service

import (
	"Glintz/internal/api/dto"
	"Glintz/internal/model"
	"Glintz/internal/pkg/consts"
	"Glintz/internal/pkg/minio"
	"Glintz/internal/pkg/util"
	"Glintz/internal/repository"
	"bytes"
	"context"
	"fmt"
	"io"
	log "log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

type MediaService interface {
	UploadImage(ctx context.Context, userID uint64, fileName string, reader io.ReadSeeker, isAvatar bool) (*dto.MediaUploadDTO, error)
	GetMediaLibrary(ctx context.Context, userID uint64, pageSize, page int) ([]*dto.MediaItemDTO, error)
	DeleteMedia(ctx context.Context, userID, mediaID uint64) error
}

type MediaServiceImpl struct {
	mediaRepo repository.MediaRepo
}

func NewMediaService(mediaRepo repository.MediaRepo) MediaService {
	return &MediaServiceImpl{mediaRepo: mediaRepo}
}

// UploadImage 上传图片
// 类型以文件头嗅探为准，超出边长上限的图片先等比压到上限，
// 再写入临时桶并落一条元数据。对象在被帖子或头像引用时转正，
// 一直没被引用的由临时桶的过期策略回收。
func (s *MediaServiceImpl) UploadImage(ctx context.Context, userID uint64, fileName string, reader io.ReadSeeker, isAvatar bool) (*dto.MediaUploadDTO, error) {
	contentType, err := util.GetSafeContentType(reader)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(contentType, consts.MimePrefixImage) {
		return nil, ErrFileNotSupported
	}

	maxEdge := consts.MaxImageEdge
	if isAvatar {
		maxEdge = consts.MaxAvatarEdge
	}

	data, width, height, err := util.ShrinkImage(reader, contentType, maxEdge)
	if err != nil {
		return nil, ErrFileNotSupported
	}

	objectKey := fmt.Sprintf("%d/%s%s", userID, uuid.NewString(), path.Ext(fileName))
	if _, err = minio.UploadTempFile(ctx, objectKey, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return nil, err
	}

	media := &model.MediaFile{
		UserID:    userID,
		ObjectKey: objectKey,
		FileName:  fileName,
		MimeType:  contentType,
		Size:      int64(len(data)),
		Width:     width,
		Height:    height,
		CreatedAt: time.Now(),
	}
	if err = s.mediaRepo.CreateMediaFile(ctx, media); err != nil {
		// 对象已入桶，元数据失败时清掉避免悬空
		if cleanupErr := minio.DeleteTempFile(ctx, objectKey); cleanupErr != nil {
			log.WarnContext(ctx, "failed to cleanup uploaded object", "objectKey", objectKey, "err", cleanupErr)
		}
		return nil, err
	}

	return &dto.MediaUploadDTO{
		ObjectKey: objectKey,
		URL:       minio.GetTempPublicURL(objectKey),
		MimeType:  contentType,
		Size:      int64(len(data)),
		Width:     width,
		Height:    height,
	}, nil
}

// GetMediaLibrary 当前用户的媒体库分页
func (s *MediaServiceImpl) GetMediaLibrary(ctx context.Context, userID uint64, pageSize, page int) ([]*dto.MediaItemDTO, error) {
	files, err := s.mediaRepo.GetUserMediaFiles(ctx, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.MediaItemDTO, 0, len(files))
	for _, f := range files {
		url := minio.GetTempPublicURL(f.ObjectKey)
		if f.Promoted {
			url = minio.GetPublicURL(f.ObjectKey)
		}
		items = append(items, &dto.MediaItemDTO{
			ID:        f.ID,
			ObjectKey: f.ObjectKey,
			URL:       url,
			FileName:  f.FileName,
			MimeType:  f.MimeType,
			Size:      f.Size,
			Width:     f.Width,
			Height:    f.Height,
			CreatedAt: f.CreatedAt.Format(time.RFC3339),
		})
	}
	return items, nil
}

// DeleteMedia 删除媒体，只有上传者本人可删，先清对象再删元数据
func (s *MediaServiceImpl) DeleteMedia(ctx context.Context, userID, mediaID uint64) error {
	media, err := s.mediaRepo.GetByID(ctx, mediaID)
	if err != nil {
		return err
	}
	if media == nil || media.UserID != userID {
		return ErrMediaNotFound
	}

	remove := minio.DeleteTempFile
	if media.Promoted {
		remove = minio.DeleteFile
	}
	if err = remove(ctx, media.ObjectKey); err != nil {
		// 对象删不掉时保留元数据行，留给清理任务重试
		log.WarnContext(ctx, "failed to delete media object", "objectKey", media.ObjectKey, "err", err)
		return err
	}
	return s.mediaRepo.DeleteMediaFile(ctx, media.ID)
}

// promoteMediaObject 被帖子或头像引用的临时对象转入主桶
// 不认识的键多半是站外链接，直接跳过；转正失败只记日志，
// 不阻塞引用它的业务写入。
func promoteMediaObject(ctx context.Context, mediaRepo repository.MediaRepo, objectKey string) {
	if objectKey == "" {
		return
	}

	media, err := mediaRepo.GetByObjectKey(ctx, objectKey)
	if err != nil {
		log.WarnContext(ctx, "failed to look up media for promotion", "objectKey", objectKey, "err", err)
		return
	}
	if media == nil || media.Promoted {
		return
	}

	if err = minio.PromoteTempObject(ctx, objectKey); err != nil {
		log.WarnContext(ctx, "failed to promote media object", "objectKey", objectKey, "err", err)
		return
	}
	if err = mediaRepo.MarkPromoted(ctx, media.ID); err != nil {
		log.WarnContext(ctx, "failed to mark media promoted", "id", media.ID, "err", err)
	}
}
