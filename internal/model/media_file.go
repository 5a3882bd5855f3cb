package model

import "time"

// MediaFile 上传文件元数据，二进制内容存放在 MinIO
type MediaFile struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    uint64    `gorm:"not null;index:idx_media_user" json:"userId"`
	ObjectKey string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_object_key" json:"objectKey"`
	FileName  string    `gorm:"type:varchar(255)" json:"fileName"`
	MimeType  string    `gorm:"type:varchar(100)" json:"mimeType"`
	Size      int64     `gorm:"not null;default:0" json:"size"`
	Width     int       `gorm:"not null;default:0" json:"width"`
	Height    int       `gorm:"not null;default:0" json:"height"`
	Promoted  bool      `gorm:"not null;default:false" json:"promoted"`
	CreatedAt time.Time `json:"createdAt"`
}

func (MediaFile) TableName() string {
	return "media_files"
}
