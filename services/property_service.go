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
	"propshare/validator"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const propertyCacheTTL = 60 * time.Minute

type PropertyService struct {
	db     *gorm.DB
	rdb    *redis.Client
	logger logger.Logger
}

func NewPropertyService(db *gorm.DB, rdb *redis.Client, l logger.Logger) *PropertyService {
	if l == nil {
		l = logger.NewNop()
	}
	return &PropertyService{db: db, rdb: rdb, logger: l}
}

type PropertyFilter struct {
	Name   string
	Query  string
	Status *int
	Page   int
	Limit  int
}

// loadAll đọc toàn bộ bất động sản, ưu tiên Redis
func (s *PropertyService) loadAll(ctx context.Context) ([]models.Property, error) {
	var properties []models.Property
	if hit, err := GetFromRedis(ctx, s.rdb, constants.CacheKeyProperties, &properties); err != nil {
		s.logger.Warn("Lỗi khi đọc cache properties: %v", err)
	} else if hit {
		return properties, nil
	}

	if err := s.db.WithContext(ctx).Preload("Details").Preload("Amenities").Order("id desc").Find(&properties).Error; err != nil {
		return nil, apperrors.DBError(err)
	}
	if err := SetToRedis(ctx, s.rdb, constants.CacheKeyProperties, properties, propertyCacheTTL); err != nil {
		s.logger.Warn("Lỗi khi lưu dữ liệu vào Redis: %v", err)
	}
	return properties, nil
}

// List lọc theo trạng thái, tên và tìm kiếm gần đúng rồi phân trang
func (s *PropertyService) List(ctx context.Context, filter PropertyFilter) ([]models.Property, int, error) {
	all, err := s.loadAll(ctx)
	if err != nil {
		return nil, 0, err
	}

	filtered := make([]models.Property, 0, len(all))
	name := normalizeInput(filter.Name)
	for _, p := range all {
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		if name != "" && !strings.Contains(normalizeInput(p.Name), name) {
			continue
		}
		filtered = append(filtered, p)
	}
	if filter.Query != "" {
		filtered = RankProperties(filter.Query, filtered)
	}

	total := len(filtered)
	if filter.Limit > 0 {
		start := filter.Page * filter.Limit
		if start > total {
			start = total
		}
		end := start + filter.Limit
		if end > total {
			end = total
		}
		filtered = filtered[start:end]
	}
	return filtered, total, nil
}

func (s *PropertyService) Get(ctx context.Context, id uint) (*models.Property, error) {
	var property models.Property
	err := s.db.WithContext(ctx).Preload("Details").Preload("Amenities").Preload("Documents").First(&property, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(apperrors.ErrCodePropertyNotFound, "Không tìm thấy bất động sản")
		}
		return nil, apperrors.DBError(err)
	}
	return &property, nil
}

type PropertyInput struct {
	Name             string
	Address          string
	ShortDescription string
	Description      string
	Avatar           string
	PropertyShare    int
	Status           *int
	AmenityIDs       []uint
}

func (s *PropertyService) Create(ctx context.Context, input PropertyInput) (*models.Property, error) {
	property := models.Property{
		Name:                   strings.TrimSpace(input.Name),
		Address:                input.Address,
		ShortDescription:       input.ShortDescription,
		Description:            input.Description,
		Avatar:                 input.Avatar,
		PropertyShare:          input.PropertyShare,
		PropertyRemainingShare: input.PropertyShare,
		Status:                 constants.PropertyStatusActive,
	}
	if input.Status != nil {
		property.Status = *input.Status
	}
	if err := validator.ValidateProperty(&property); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&property).Error; err != nil {
			return apperrors.DBError(err)
		}
		return replaceAmenities(tx, &property, input.AmenityIDs)
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return s.Get(ctx, property.ID)
}

// Update cập nhật thông tin; đổi tổng cổ phần thì số cổ phần còn lại được tính lại
// theo số đã bán và không được nhỏ hơn số đã bán.
func (s *PropertyService) Update(ctx context.Context, id uint, input PropertyInput) (*models.Property, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var property models.Property
		if err := tx.First(&property, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound(apperrors.ErrCodePropertyNotFound, "Không tìm thấy bất động sản")
			}
			return apperrors.DBError(err)
		}

		if strings.TrimSpace(input.Name) != "" {
			property.Name = strings.TrimSpace(input.Name)
		}
		property.Address = input.Address
		property.ShortDescription = input.ShortDescription
		property.Description = input.Description
		if input.Avatar != "" {
			property.Avatar = input.Avatar
		}
		if input.Status != nil {
			property.Status = *input.Status
		}
		previousShare := property.PropertyShare
		if input.PropertyShare > 0 && input.PropertyShare != previousShare {
			sold := previousShare - property.PropertyRemainingShare
			if input.PropertyShare < sold {
				return shareBelowSold(sold, input.PropertyShare)
			}
			property.PropertyShare = input.PropertyShare
			property.PropertyRemainingShare = input.PropertyShare - sold
		}
		if err := validator.ValidateProperty(&property); err != nil {
			return err
		}
		// Cổ phần do Allocate trừ song song nên không ghi đè bằng giá trị đã đọc
		if err := tx.Omit(clause.Associations, "property_share", "property_remaining_share").Save(&property).Error; err != nil {
			return apperrors.DBError(err)
		}
		if delta := property.PropertyShare - previousShare; delta != 0 {
			res := tx.Model(&models.Property{}).
				Where("id = ? AND property_share = ? AND property_remaining_share + ? >= 0", property.ID, previousShare, delta).
				Updates(map[string]interface{}{
					"property_share":           property.PropertyShare,
					"property_remaining_share": gorm.Expr("property_remaining_share + ?", delta),
				})
			if res.Error != nil {
				return apperrors.DBError(res.Error)
			}
			if res.RowsAffected == 0 {
				var current models.Property
				if err := tx.First(&current, property.ID).Error; err != nil {
					return apperrors.DBError(err)
				}
				return shareBelowSold(current.PropertyShare-current.PropertyRemainingShare, property.PropertyShare)
			}
		}
		if input.AmenityIDs != nil {
			return replaceAmenities(tx, &property, input.AmenityIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return s.Get(ctx, id)
}

func shareBelowSold(sold, requested int) error {
	return apperrors.NewAppError(apperrors.ErrCodeInsufficientShares, "Tổng cổ phần không được nhỏ hơn số đã bán", nil).
		WithDetails(map[string]any{"sold": sold, "requested": requested})
}

func replaceAmenities(tx *gorm.DB, property *models.Property, ids []uint) error {
	if ids == nil {
		return nil
	}
	var amenities []models.Amenity
	if len(ids) > 0 {
		if err := tx.Where("id IN ?", ids).Find(&amenities).Error; err != nil {
			return apperrors.DBError(err)
		}
		if len(amenities) != len(uniqueIDs(ids)) {
			return apperrors.Validation("Tiện ích không tồn tại", map[string]any{"amenityIds": ids})
		}
	}
	if err := tx.Model(property).Association("Amenities").Replace(amenities); err != nil {
		return apperrors.DBError(err)
	}
	property.Amenities = amenities
	return nil
}

func uniqueIDs(ids []uint) map[uint]struct{} {
	out := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}

// SetAmenities thay toàn bộ tiện ích của bất động sản
func (s *PropertyService) SetAmenities(ctx context.Context, id uint, amenityIDs []uint) (*models.Property, error) {
	property, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if amenityIDs == nil {
		amenityIDs = []uint{}
	}
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return replaceAmenities(tx, property, amenityIDs)
	}); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return s.Get(ctx, id)
}

// UpsertDetails tạo hoặc cập nhật cấu hình mùa và số đêm của bất động sản
func (s *PropertyService) UpsertDetails(ctx context.Context, propertyID uint, details models.PropertyDetails) (*models.PropertyDetails, error) {
	if _, err := s.Get(ctx, propertyID); err != nil {
		return nil, err
	}
	if err := validator.ValidatePropertyDetails(&details); err != nil {
		return nil, err
	}

	var existing models.PropertyDetails
	err := s.db.WithContext(ctx).Where("property_id = ?", propertyID).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		details.ID = 0
	case err != nil:
		return nil, apperrors.DBError(err)
	default:
		details.ID = existing.ID
		details.CreatedAt = existing.CreatedAt
	}
	details.PropertyID = propertyID
	if err := s.db.WithContext(ctx).Save(&details).Error; err != nil {
		return nil, apperrors.DBError(err)
	}
	s.invalidate(ctx)
	return &details, nil
}

// Delete chỉ cho xóa khi chưa bán cổ phần nào và không còn tài liệu
func (s *PropertyService) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var property models.Property
		if err := tx.First(&property, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound(apperrors.ErrCodePropertyNotFound, "Không tìm thấy bất động sản")
			}
			return apperrors.DBError(err)
		}
		var owned, documents int64
		if err := tx.Model(&models.UserProperty{}).Where("property_id = ?", id).Count(&owned).Error; err != nil {
			return apperrors.DBError(err)
		}
		if owned > 0 {
			return apperrors.Conflict(apperrors.ErrCodeConflict, "Bất động sản đã có chủ sở hữu, không thể xóa")
		}
		if err := tx.Model(&models.Document{}).Where("property_id = ?", id).Count(&documents).Error; err != nil {
			return apperrors.DBError(err)
		}
		if documents > 0 {
			return apperrors.Conflict(apperrors.ErrCodeConflict, "Cần xóa tài liệu của bất động sản trước")
		}
		if err := tx.Model(&property).Association("Amenities").Clear(); err != nil {
			return apperrors.DBError(err)
		}
		if err := tx.Where("property_id = ?", id).Delete(&models.PropertyDetails{}).Error; err != nil {
			return apperrors.DBError(err)
		}
		if err := tx.Delete(&property).Error; err != nil {
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

func (s *PropertyService) invalidate(ctx context.Context) {
	if err := DeleteFromRedis(ctx, s.rdb, constants.CacheKeyProperties); err != nil {
		s.logger.Warn("Không xóa được cache properties: %v", err)
	}
}
