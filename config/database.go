package config

import (
	"context"
	"fmt"

	"propshare/models"
	"propshare/services"
	"propshare/services/logger"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DSN trả về chuỗi kết nối; DATABASE_URL (postgres://...) được ưu tiên
func (c *DatabaseConfig) DSN() (string, error) {
	if c.URL != "" {
		dsn, err := pq.ParseURL(c.URL)
		if err != nil {
			return "", fmt.Errorf("invalid database url: %w", err)
		}
		if c.TimeZone != "" {
			dsn += " TimeZone=" + c.TimeZone
		}
		return dsn, nil
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		c.Host, c.User, c.Password, c.DBName, c.Port, c.SSLMode)
	if c.TimeZone != "" {
		dsn += " TimeZone=" + c.TimeZone
	}
	return dsn, nil
}

func ConnectDB(cfg DatabaseConfig, debug bool, l logger.Logger) (*gorm.DB, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("fail to connect to db: %w", err)
	}
	l.Info("Successfully connected to db %s", cfg.DBName)
	return db, nil
}

// Migrate tạo bảng và seed các role mặc định
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := services.SeedRoles(ctx, db); err != nil {
		return fmt.Errorf("seed roles: %w", err)
	}
	return nil
}
