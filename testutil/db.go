// Package testutil chứa các helper dùng chung cho test.
package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"propshare/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB mở một database sqlite trong bộ nhớ riêng cho test và migrate toàn bộ model
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

// Date tạo ngày UTC
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FixedClock trả về clock luôn trả về t
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// SeedUser tạo user chủ sở hữu
func SeedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{Name: "Owner", Email: email, Role: 2, Status: 1}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// SeedProperty tạo bất động sản kèm cấu hình mùa
func SeedProperty(t *testing.T, db *gorm.DB, shares int, details models.PropertyDetails) models.Property {
	t.Helper()
	property := models.Property{
		Name:                   "Villa Test",
		PropertyShare:          shares,
		PropertyRemainingShare: shares,
		Status:                 1,
	}
	require.NoError(t, db.Create(&property).Error)
	details.PropertyID = property.ID
	require.NoError(t, db.Create(&details).Error)
	property.Details = &details
	return property
}
