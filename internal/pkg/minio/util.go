package minio

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
)

// UploadTempFile 上传到临时桶，未被引用的对象由生命周期策略回收
func UploadTempFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	if Client == nil {
		return "", fmt.Errorf("minio client is not initialized")
	}

	uploadInfo, err := Client.PutObject(ctx, TempBucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload temp file: %w", err)
	}

	return uploadInfo.Key, nil
}

// PromoteTempObject 临时对象转正，拷贝到主桶后删除临时副本
func PromoteTempObject(ctx context.Context, objectName string) error {
	if Client == nil {
		return fmt.Errorf("minio client is not initialized")
	}

	_, err := Client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: MainBucket, Object: objectName},
		minio.CopySrcOptions{Bucket: TempBucket, Object: objectName},
	)
	if err != nil {
		return fmt.Errorf("failed to promote temp object: %w", err)
	}

	return Client.RemoveObject(ctx, TempBucket, objectName, minio.RemoveObjectOptions{})
}

// DeleteFile 删除主存储桶中的文件
func DeleteFile(ctx context.Context, objectName string) error {
	if Client == nil {
		return fmt.Errorf("minio client is not initialized")
	}

	err := Client.RemoveObject(ctx, MainBucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// DeleteTempFile 删除临时桶中的文件，对象已被生命周期策略回收时同样返回成功
func DeleteTempFile(ctx context.Context, objectName string) error {
	if Client == nil {
		return fmt.Errorf("minio client is not initialized")
	}

	err := Client.RemoveObject(ctx, TempBucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete temp file: %w", err)
	}

	return nil
}

// GetPublicURL 主桶对象的公共访问URL
func GetPublicURL(objectName string) string {
	if publicURLBase == "" {
		return objectName
	}
	return publicURLBase + MainBucket + "/" + objectName
}

// GetTempPublicURL 临时桶对象的公共访问URL，转正前的预览地址
func GetTempPublicURL(objectName string) string {
	if publicURLBase == "" {
		return objectName
	}
	return publicURLBase + TempBucket + "/" + objectName
}

// ObjectKeyFromURL 把本服务发出的公开链接还原成对象键
// 数据库里只存对象键，其他来源的输入原样返回。
func ObjectKeyFromURL(raw string) string {
	if publicURLBase == "" || raw == "" {
		return raw
	}
	for _, bucket := range []string{MainBucket, TempBucket} {
		prefix := publicURLBase + bucket + "/"
		if strings.HasPrefix(raw, prefix) {
			return strings.TrimPrefix(raw, prefix)
		}
	}
	return raw
}

// ResolvePublicURL 对象键渲染成外链，已是完整链接或空值的原样返回
func ResolvePublicURL(stored string) string {
	if stored == "" || strings.Contains(stored, "://") {
		return stored
	}
	return GetPublicURL(stored)
}
