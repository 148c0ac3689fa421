package services

import (
	"context"
	"errors"
	"strings"
	"time"

	apperrors "propshare/errors"
	"propshare/models"
	"propshare/services/logger"
	"propshare/validator"

	"gorm.io/gorm"
)

type HolidayService struct {
	db     *gorm.DB
	logger logger.Logger
}

func NewHolidayService(db *gorm.DB, l logger.Logger) *HolidayService {
	if l == nil {
		l = logger.NewNop()
	}
	return &HolidayService{db: db, logger: l}
}

// HolidayFilter lọc theo tên và khoảng ngày; kỳ nghỉ giao với [FromDate, ToDate] được trả về
type HolidayFilter struct {
	Name       string
	PropertyID *uint
	FromDate   time.Time
	ToDate     time.Time
	Page       int
	Limit      int
}

func (s *HolidayService) List(ctx context.Context, filter HolidayFilter) ([]models.Holiday, int64, error) {
	tx := s.db.WithContext(ctx).Model(&models.Holiday{})
	if filter.Name != "" {
		tx = tx.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Name)+"%")
	}
	if filter.PropertyID != nil {
		tx = tx.Where("property_id IS NULL OR property_id = ?", *filter.PropertyID)
	}
	if !filter.FromDate.IsZero() {
		tx = tx.Where("to_date >= ? OR recurring_yearly = ?", filter.FromDate, true)
	}
	if !filter.ToDate.IsZero() {
		tx = tx.Where("from_date <= ? OR recurring_yearly = ?", filter.ToDate, true)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, apperrors.DBError(err)
	}
	if filter.Limit > 0 {
		tx = tx.Offset(filter.Page * filter.Limit).Limit(filter.Limit)
	}
	var holidays []models.Holiday
	if err := tx.Order("from_date").Find(&holidays).Error; err != nil {
		return nil, 0, apperrors.DBError(err)
	}
	return holidays, total, nil
}

func (s *HolidayService) Get(ctx context.Context, id uint) (*models.Holiday, error) {
	var holiday models.Holiday
	if err := s.db.WithContext(ctx).First(&holiday, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(apperrors.ErrCodeDBNotFound, "Không tìm thấy ngày nghỉ")
		}
		return nil, apperrors.DBError(err)
	}
	return &holiday, nil
}

func (s *HolidayService) checkProperty(ctx context.Context, propertyID *uint) error {
	if propertyID == nil {
		return nil
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Property{}).Where("id = ?", *propertyID).Count(&count).Error; err != nil {
		return apperrors.DBError(err)
	}
	if count == 0 {
		return apperrors.NotFound(apperrors.ErrCodePropertyNotFound, "Không tìm thấy bất động sản")
	}
	return nil
}

func (s *HolidayService) Create(ctx context.Context, holiday models.Holiday) (*models.Holiday, error) {
	holiday.ID = 0
	holiday.Name = strings.TrimSpace(holiday.Name)
	if err := validator.ValidateHoliday(&holiday); err != nil {
		return nil, err
	}
	if err := s.checkProperty(ctx, holiday.PropertyID); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&holiday).Error; err != nil {
		return nil, apperrors.DBError(err)
	}
	s.logger.Info("Tạo ngày nghỉ %s", holiday.Name)
	return &holiday, nil
}

func (s *HolidayService) Update(ctx context.Context, id uint, input models.Holiday) (*models.Holiday, error) {
	holiday, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	holiday.Name = strings.TrimSpace(input.Name)
	holiday.FromDate = input.FromDate
	holiday.ToDate = input.ToDate
	holiday.PropertyID = input.PropertyID
	holiday.RecurringYearly = input.RecurringYearly
	if err := validator.ValidateHoliday(holiday); err != nil {
		return nil, err
	}
	if err := s.checkProperty(ctx, holiday.PropertyID); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Save(holiday).Error; err != nil {
		return nil, apperrors.DBError(err)
	}
	return holiday, nil
}

func (s *HolidayService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Holiday{}, id)
	if res.Error != nil {
		return apperrors.DBError(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound(apperrors.ErrCodeDBNotFound, "Không tìm thấy ngày nghỉ")
	}
	return nil
}
