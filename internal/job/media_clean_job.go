package job

import (
	"Glintz/internal/pkg/minio"
	"Glintz/internal/repository"
	"context"
	log "log/slog"
	"time"
)

type MediaCleanupJob struct {
	mediaRepo repository.MediaRepo
}

func NewMediaCleanupJob(mediaRepo repository.MediaRepo) *MediaCleanupJob {
	return &MediaCleanupJob{mediaRepo: mediaRepo}
}

const orphanBatchSize = 200

// Run 清理超过 24 小时仍未被帖子或头像引用的上传对象
func (s *MediaCleanupJob) Run() {
	ctx := context.Background()
	log.Info("start media cleanup job")

	cutoff := time.Now().Add(-24 * time.Hour)
	count := 0

	for {
		orphans, err := s.mediaRepo.FindOrphans(ctx, cutoff, orphanBatchSize)
		if err != nil {
			log.Error("failed to scan orphan media", "err", err)
			return
		}
		if len(orphans) == 0 {
			break
		}

		cleaned := 0
		for _, media := range orphans {
			// 未转正的对象还在临时桶，可能已被过期策略回收
			remove := minio.DeleteTempFile
			if media.Promoted {
				remove = minio.DeleteFile
			}
			if err = remove(ctx, media.ObjectKey); err != nil {
				log.Error("failed to delete orphan file from minio", "objectKey", media.ObjectKey, "err", err)
				continue
			}
			if err = s.mediaRepo.DeleteMediaFile(ctx, media.ID); err != nil {
				log.Error("failed to delete media row", "id", media.ID, "err", err)
				continue
			}
			cleaned++
			count++
		}

		// 整批都删失败时不再重扫同一批
		if cleaned == 0 || len(orphans) < orphanBatchSize {
			break
		}
	}

	if count > 0 {
		log.Info("media cleanup job finished", "cleaned_count", count)
	}
}
