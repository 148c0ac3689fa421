// Package storage lưu tài liệu bất động sản lên Cloudinary.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// UploadInput mô tả file cần upload
type UploadInput struct {
	Folder      string
	Filename    string
	ContentType string
}

type UploadResult struct {
	URL      string
	PublicID string
	Size     int64
}

// Uploader lưu và xóa file trên storage từ xa
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, in UploadInput) (*UploadResult, error)
	Destroy(ctx context.Context, publicID, contentType string) error
}

type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryUploader(cld *cloudinary.Cloudinary) *CloudinaryUploader {
	return &CloudinaryUploader{cld: cld}
}

// NewCloudinaryFromParams tạo client từ cloud name / api key / secret
func NewCloudinaryFromParams(cloudName, apiKey, apiSecret string) (*cloudinary.Cloudinary, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, errors.New("cloudinary credentials are not configured")
	}
	return cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
}

// ResourceType đổi content type sang loại tài nguyên của Cloudinary
func ResourceType(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return "image"
	case strings.HasPrefix(contentType, "video/"):
		return "video"
	default:
		return "raw"
	}
}

// PublicID tạo public id duy nhất, giữ phần mở rộng cho file raw
func PublicID(filename, contentType string) string {
	id := uuid.NewString()
	if ResourceType(contentType) == "raw" {
		id += strings.ToLower(path.Ext(filename))
	}
	return id
}

func (u *CloudinaryUploader) Upload(ctx context.Context, file io.Reader, in UploadInput) (*UploadResult, error) {
	resp, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       in.Folder,
		PublicID:     PublicID(in.Filename, in.ContentType),
		ResourceType: ResourceType(in.ContentType),
	})
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", in.Filename, err)
	}
	if resp.Error.Message != "" {
		return nil, fmt.Errorf("upload %s: %s", in.Filename, resp.Error.Message)
	}
	return &UploadResult{URL: resp.SecureURL, PublicID: resp.PublicID, Size: int64(resp.Bytes)}, nil
}

func (u *CloudinaryUploader) Destroy(ctx context.Context, publicID, contentType string) error {
	resp, err := u.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: ResourceType(contentType),
	})
	if err != nil {
		return fmt.Errorf("destroy %s: %w", publicID, err)
	}
	if resp.Error.Message != "" {
		return fmt.Errorf("destroy %s: %s", publicID, resp.Error.Message)
	}
	// "not found" nghĩa là file đã bị xóa trước đó
	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("destroy %s: %s", publicID, resp.Result)
	}
	return nil
}
