package services

import (
	"context"
	"errors"
	"strings"

	"propshare/constants"
	apperrors "propshare/errors"
	"propshare/models"
	"propshare/services/logger"
	"propshare/validator"

	"gorm.io/gorm"
)

type UserService struct {
	db     *gorm.DB
	logger logger.Logger
}

type UserServiceOptions struct {
	DB     *gorm.DB
	Logger logger.Logger
}

func NewUserService(opts UserServiceOptions) *UserService {
	l := opts.Logger
	if l == nil {
		l = logger.NewNop()
	}
	return &UserService{db: opts.DB, logger: l}
}

type UserFilter struct {
	Name   string
	Email  string
	Role   int
	Status *int
	Page   int
	Limit  int
}

func (s *UserService) List(ctx context.Context, filter UserFilter) ([]models.User, int64, error) {
	tx := s.db.WithContext(ctx).Model(&models.User{})
	if filter.Name != "" {
		tx = tx.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Name)+"%")
	}
	if filter.Email != "" {
		tx = tx.Where("LOWER(email) LIKE ?", "%"+strings.ToLower(filter.Email)+"%")
	}
	if filter.Role != 0 {
		tx = tx.Where("role = ?", filter.Role)
	}
	if filter.Status != nil {
		tx = tx.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, apperrors.DBError(err)
	}
	if filter.Limit > 0 {
		tx = tx.Offset(filter.Page * filter.Limit).Limit(filter.Limit)
	}
	var users []models.User
	if err := tx.Order("id desc").Find(&users).Error; err != nil {
		return nil, 0, apperrors.DBError(err)
	}
	return users, total, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(apperrors.ErrCodeUserNotFound, "Không tìm thấy người dùng")
		}
		return nil, apperrors.DBError(err)
	}
	return &user, nil
}

type ProfileInput struct {
	Name        *string
	PhoneNumber *string
	Avatar      *string
	Gender      *int
	DateOfBirth *string
}

// UpdateProfile chỉ cập nhật các trường được gửi lên
func (s *UserService) UpdateProfile(ctx context.Context, id uint, input ProfileInput) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{}
	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.PhoneNumber != nil {
		if err := validator.ValidatePhone(*input.PhoneNumber); err != nil {
			return nil, err
		}
		updates["phone_number"] = *input.PhoneNumber
	}
	if input.Avatar != nil {
		updates["avatar"] = *input.Avatar
	}
	if input.Gender != nil {
		updates["gender"] = *input.Gender
	}
	if input.DateOfBirth != nil {
		updates["date_of_birth"] = *input.DateOfBirth
	}
	if len(updates) == 0 {
		return user, nil
	}
	if err := s.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		return nil, apperrors.DBError(err)
	}
	return s.Get(ctx, id)
}

func (s *UserService) UpdateStatus(ctx context.Context, id uint, status int) (*models.User, error) {
	if status != constants.UserStatusActive && status != constants.UserStatusInactive {
		return nil, apperrors.Validation("Trạng thái không hợp lệ", map[string]any{"status": status})
	}
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(user).Update("status", status).Error; err != nil {
		return nil, apperrors.DBError(err)
	}
	user.Status = status
	s.logger.Info("User %d chuyển trạng thái %d", id, status)
	return user, nil
}

// UpdateRole đổi role của user, role phải tồn tại trong bảng roles
func (s *UserService) UpdateRole(ctx context.Context, id uint, role int) (*models.User, error) {
	var roles []models.Role
	if err := s.db.WithContext(ctx).Find(&roles).Error; err != nil {
		return nil, apperrors.DBError(err)
	}
	if err := validator.ValidateRole(role, roles); err != nil {
		return nil, err
	}
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(user).Update("role", role).Error; err != nil {
		return nil, apperrors.DBError(err)
	}
	user.Role = role
	return user, nil
}
