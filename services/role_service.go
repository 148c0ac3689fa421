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
	"gorm.io/gorm/clause"
)

// DefaultRoles được seed khi migrate
var DefaultRoles = []models.Role{
	{ID: constants.RoleAdmin, Name: "admin", Description: "Quản trị hệ thống"},
	{ID: constants.RoleOwner, Name: "owner", Description: "Chủ sở hữu cổ phần"},
	{ID: constants.RoleStaff, Name: "staff", Description: "Nhân viên vận hành"},
}

type RoleService struct {
	db     *gorm.DB
	rdb    *redis.Client
	logger logger.Logger
}

func NewRoleService(db *gorm.DB, rdb *redis.Client, l logger.Logger) *RoleService {
	if l == nil {
		l = logger.NewNop()
	}
	return &RoleService{db: db, rdb: rdb, logger: l}
}

// SeedRoles tạo các role mặc định nếu chưa có
func SeedRoles(ctx context.Context, db *gorm.DB) error {
	roles := make([]models.Role, len(DefaultRoles))
	copy(roles, DefaultRoles)
	return db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&roles).Error
}

func (s *RoleService) List(ctx context.Context) ([]models.Role, error) {
	var roles []models.Role
	if hit, err := GetFromRedis(ctx, s.rdb, constants.CacheKeyRoles, &roles); err == nil && hit {
		return roles, nil
	}
	if err := s.db.WithContext(ctx).Order("id").Find(&roles).Error; err != nil {
		return nil, apperrors.DBError(err)
	}
	if err := SetToRedis(ctx, s.rdb, constants.CacheKeyRoles, roles, time.Hour); err != nil {
		s.logger.Warn("Lỗi khi lưu roles vào Redis: %v", err)
	}
	return roles, nil
}

func (s *RoleService) Create(ctx context.Context, role models.Role) (*models.Role, error) {
	role.Name = strings.TrimSpace(role.Name)
	if role.ID <= 0 || role.Name == "" {
		return nil, apperrors.Validation("Role cần có id và tên", nil)
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Role{}).Where("id = ? OR name = ?", role.ID, role.Name).Count(&count).Error; err != nil {
		return nil, apperrors.DBError(err)
	}
	if count > 0 {
		return nil, apperrors.Conflict(apperrors.ErrCodeDBDuplicate, "Role đã tồn tại")
	}
	if err := s.db.WithContext(ctx).Create(&role).Error; err != nil {
		return nil, apperrors.DBError(err)
	}
	s.invalidate(ctx)
	return &role, nil
}

func (s *RoleService) Update(ctx context.Context, id int, name, description string) (*models.Role, error) {
	var role models.Role
	if err := s.db.WithContext(ctx).First(&role, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(apperrors.ErrCodeDBNotFound, "Không tìm thấy role")
		}
		return nil, apperrors.DBError(err)
	}
	if strings.TrimSpace(name) != "" {
		role.Name = strings.TrimSpace(name)
	}
	role.Description = description
	if err := s.db.WithContext(ctx).Save(&role).Error; err != nil {
		return nil, apperrors.DBError(err)
	}
	s.invalidate(ctx)
	return &role, nil
}

// Delete không cho xóa role đang được gán cho user
func (s *RoleService) Delete(ctx context.Context, id int) error {
	var inUse int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("role = ?", id).Count(&inUse).Error; err != nil {
		return apperrors.DBError(err)
	}
	if inUse > 0 {
		return apperrors.Conflict(apperrors.ErrCodeConflict, "Role đang được sử dụng")
	}
	res := s.db.WithContext(ctx).Delete(&models.Role{}, id)
	if res.Error != nil {
		return apperrors.DBError(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound(apperrors.ErrCodeDBNotFound, "Không tìm thấy role")
	}
	s.invalidate(ctx)
	return nil
}

func (s *RoleService) invalidate(ctx context.Context) {
	if err := DeleteFromRedis(ctx, s.rdb, constants.CacheKeyRoles); err != nil {
		s.logger.Warn("Không xóa được cache roles: %v", err)
	}
}
