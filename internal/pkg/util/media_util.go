package util

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"
)

// GetSafeContentType 基于文件头嗅探真实类型，不信任客户端声明
func GetSafeContentType(reader io.ReadSeeker) (string, error) {
	buf := make([]byte, 512)
	n, err := reader.Read(buf)
	if err != nil && err != io.EOF {
		return "", err
	}

	if _, err = reader.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	return http.DetectContentType(buf[:n]), nil
}

// ShrinkImage 将图片限制在 maxEdge 像素以内，小图原样返回
// 返回编码后的字节流和最终尺寸
func ShrinkImage(reader io.Reader, contentType string, maxEdge int) ([]byte, int, int, error) {
	img, err := imaging.Decode(reader, imaging.AutoOrientation(true))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("图片解码失败: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxEdge || h > maxEdge {
		img = imaging.Fit(img, maxEdge, maxEdge, imaging.Lanczos)
		bounds = img.Bounds()
		w, h = bounds.Dx(), bounds.Dy()
	}

	var out bytes.Buffer
	if err = encodeImage(&out, img, contentType); err != nil {
		return nil, 0, 0, err
	}

	return out.Bytes(), w, h, nil
}

func encodeImage(w io.Writer, img image.Image, contentType string) error {
	switch {
	case strings.Contains(contentType, "png"):
		return imaging.Encode(w, img, imaging.PNG)
	case strings.Contains(contentType, "gif"):
		return imaging.Encode(w, img, imaging.GIF)
	default:
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(85))
	}
}
