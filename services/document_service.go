package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "propshare/errors"
	"propshare/models"
	"propshare/services/logger"
	"propshare/services/storage"

	"gorm.io/gorm"
)

// MaxDocumentSize giới hạn kích thước file tài liệu (20MB)
const MaxDocumentSize = 20 << 20

type DocumentService struct {
	db       *gorm.DB
	uploader storage.Uploader
	logger   logger.Logger
}

func NewDocumentService(db *gorm.DB, uploader storage.Uploader, l logger.Logger) *DocumentService {
	if l == nil {
		l = logger.NewNop()
	}
	return &DocumentService{db: db, uploader: uploader, logger: l}
}

type DocumentUpload struct {
	PropertyID  uint
	Name        string
	Filename    string
	ContentType string
	Size        int64
	UploadedBy  uint
	File        io.Reader
}

func (s *DocumentService) ensureUploader() error {
	if s.uploader == nil {
		return apperrors.New(apperrors.ErrCodeInvalidOperation, "Chưa cấu hình lưu trữ tài liệu", http.StatusNotImplemented)
	}
	return nil
}

// Upload đẩy file lên storage rồi lưu bản ghi; lưu DB lỗi thì xóa file đã upload
func (s *DocumentService) Upload(ctx context.Context, in DocumentUpload) (*models.Document, error) {
	if err := s.ensureUploader(); err != nil {
		return nil, err
	}
	if in.Size > MaxDocumentSize {
		return nil, apperrors.Validation("File quá lớn", map[string]any{"maxSize": MaxDocumentSize})
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Property{}).Where("id = ?", in.PropertyID).Count(&count).Error; err != nil {
		return nil, apperrors.DBError(err)
	}
	if count == 0 {
		return nil, apperrors.NotFound(apperrors.ErrCodePropertyNotFound, "Không tìm thấy bất động sản")
	}

	result, err := s.uploader.Upload(ctx, in.File, storage.UploadInput{
		Folder:      fmt.Sprintf("properties/%d", in.PropertyID),
		Filename:    in.Filename,
		ContentType: in.ContentType,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "Upload thất bại", http.StatusBadGateway)
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = in.Filename
	}
	size := result.Size
	if size == 0 {
		size = in.Size
	}
	doc := models.Document{
		PropertyID:  in.PropertyID,
		Name:        name,
		URL:         result.URL,
		PublicID:    result.PublicID,
		ContentType: in.ContentType,
		Size:        size,
		UploadedBy:  in.UploadedBy,
	}
	if err := s.db.WithContext(ctx).Create(&doc).Error; err != nil {
		if derr := s.uploader.Destroy(ctx, result.PublicID, in.ContentType); derr != nil {
			s.logger.Error("Không xóa được file %s sau khi lưu lỗi: %v", result.PublicID, derr)
		}
		return nil, apperrors.DBError(err)
	}
	s.logger.Info("Upload tài liệu %s cho bất động sản %d", doc.PublicID, doc.PropertyID)
	return &doc, nil
}

func (s *DocumentService) List(ctx context.Context, propertyID uint) ([]models.Document, error) {
	var docs []models.Document
	if err := s.db.WithContext(ctx).Where("property_id = ?", propertyID).Order("id desc").Find(&docs).Error; err != nil {
		return nil, apperrors.DBError(err)
	}
	return docs, nil
}

// Delete xóa file trên storage trước, sau đó xóa bản ghi
func (s *DocumentService) Delete(ctx context.Context, propertyID, id uint) error {
	if err := s.ensureUploader(); err != nil {
		return err
	}
	var doc models.Document
	if err := s.db.WithContext(ctx).Where("id = ? AND property_id = ?", id, propertyID).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound(apperrors.ErrCodeDBNotFound, "Không tìm thấy tài liệu")
		}
		return apperrors.DBError(err)
	}
	if err := s.uploader.Destroy(ctx, doc.PublicID, doc.ContentType); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "Không xóa được file", http.StatusBadGateway)
	}
	if err := s.db.WithContext(ctx).Delete(&doc).Error; err != nil {
		return apperrors.DBError(err)
	}
	return nil
}
