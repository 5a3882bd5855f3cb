package dto

// MediaItemDTO 媒体库条目
type MediaItemDTO struct {
	ID        uint64 `json:"id"`
	ObjectKey string `json:"object_key"`
	URL       string `json:"url"`
	FileName  string `json:"file_name"`
	MimeType  string `json:"mime_type"`
	Size      int64  `json:"size"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	CreatedAt string `json:"created_at"`
}

// MediaUploadDTO 上传结果
type MediaUploadDTO struct {
	ObjectKey string `json:"object_key"`
	URL       string `json:"url"`
	MimeType  string `json:"mime_type"`
	Size      int64  `json:"size"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}
