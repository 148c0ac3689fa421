package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"propshare/constants"
	apperrors "propshare/errors"
	"propshare/models"
	"propshare/services/logger"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type AmenityService struct {
	db     *gorm.DB
	rdb    *redis.Client
	logger logger.Logger
}

func NewAmenityService(db *gorm.DB, rdb *redis.Client, l logger.Logger) *AmenityService {
	if l == nil {
		l = logger.NewNop()
	}
	return &AmenityService{db: db, rdb: rdb, logger: l}
}

type AmenityFilter struct {
	Name   string
	Status *int
	Page   int
	Limit  int
}

func (s *AmenityService) List(ctx context.Context, filter AmenityFilter) ([]models.Amenity, int, error) {
	var all []models.Amenity
	if hit, err := GetFromRedis(ctx, s.rdb, constants.CacheKeyAmenities, &all); err != nil || !hit {
		if err := s.db.WithContext(ctx).Order("id").Find(&all).Error; err != nil {
			return nil, 0, apperrors.DBError(err)
		}
		if err := SetToRedis(ctx, s.rdb, constants.CacheKeyAmenities, all, time.Hour); err != nil {
			s.logger.Warn("Lỗi khi lưu amenities vào Redis: %v", err)
		}
	}

	name := normalizeInput(filter.Name)
	filtered := make([]models.Amenity, 0, len(all))
	for _, a := range all {
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		if name != "" && !strings.Contains(normalizeInput(a.Name), name) {
			continue
		}
		filtered = append(filtered, a)
	}

	total := len(filtered)
	if filter.Limit > 0 {
		start := min(filter.Page*filter.Limit, total)
		end := min(start+filter.Limit, total)
		filtered = filtered[start:end]
	}
	return filtered, total, nil
}

func (s *AmenityService) Get(ctx context.Context, id uint) (*models.Amenity, error) {
	var amenity models.Amenity
	if err := s.db.WithContext(ctx).First(&amenity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(apperrors.ErrCodeDBNotFound, "Không tìm thấy tiện ích")
		}
		return nil, apperrors.DBError(err)
	}
	return &amenity, nil
}

func validateAmenity(a *models.Amenity) error {
	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" {
		return apperrors.NewAppError(apperrors.ErrCodeRequiredField, "Tên tiện ích không được để trống", nil)
	}
	if err := a.ValidateStatus(); err != nil {
		return apperrors.NewAppError(apperrors.ErrCodeValidation, "Trạng thái không hợp lệ", err)
	}
	return nil
}

func (s *AmenityService) Create(ctx context.Context, amenity models.Amenity) (*models.Amenity, error) {
	created, err := s.CreateBatch(ctx, []models.Amenity{amenity})
	if err != nil {
		return nil, err
	}
	return &created[0], nil
}

// CreateBatch tạo nhiều tiện ích trong một transaction, lỗi một cái thì không tạo cái nào
func (s *AmenityService) CreateBatch(ctx context.Context, amenities []models.Amenity) ([]models.Amenity, error) {
	if len(amenities) == 0 {
		return nil, apperrors.Validation("Danh sách tiện ích trống", nil)
	}
	for i := range amenities {
		amenities[i].ID = 0
		if err := validateAmenity(&amenities[i]); err != nil {
			return nil, err
		}
	}
	if err := s.db.WithContext(ctx).Create(&amenities).Error; err != nil {
		return nil, apperrors.DBError(err)
	}
	s.invalidate(ctx)
	return amenities, nil
}

func (s *AmenityService) Update(ctx context.Context, id uint, name, icon string) (*models.Amenity, error) {
	amenity, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) != "" {
		amenity.Name = name
	}
	if icon != "" {
		amenity.Icon = icon
	}
	if err := validateAmenity(amenity); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Save(amenity).Error; err != nil {
		return nil, apperrors.DBError(err)
	}
	s.invalidate(ctx)
	return amenity, nil
}

func (s *AmenityService) UpdateStatus(ctx context.Context, id uint, status int) (*models.Amenity, error) {
	amenity, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	amenity.Status = status
	if err := amenity.ValidateStatus(); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeValidation, "Trạng thái không hợp lệ", err)
	}
	if err := s.db.WithContext(ctx).Model(amenity).Update("status", status).Error; err != nil {
		return nil, apperrors.DBError(err)
	}
	s.invalidate(ctx)
	return amenity, nil
}

// Delete gỡ tiện ích khỏi mọi bất động sản rồi xóa
func (s *AmenityService) Delete(ctx context.Context, id uint) error {
	amenity, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM property_amenities WHERE amenity_id = ?", amenity.ID).Error; err != nil {
			return apperrors.DBError(err)
		}
		if err := tx.Delete(amenity).Error; err != nil {
			return apperrors.DBError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *AmenityService) invalidate(ctx context.Context) {
	if err := DeleteFromRedis(ctx, s.rdb, constants.CacheKeyAmenities, constants.CacheKeyProperties); err != nil {
		s.logger.Warn("Không xóa được cache amenities: %v", err)
	}
}
