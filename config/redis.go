package config

import (
	"context"
	"fmt"
	"time"

	"propshare/services/logger"

	"github.com/redis/go-redis/v9"
)

// Hàm kết nối đến Redis; không cấu hình addr thì chạy không cache
func ConnectRedis(ctx context.Context, cfg RedisConfig, l logger.Logger) (*redis.Client, error) {
	if cfg.Addr == "" {
		l.Warn("Chưa cấu hình Redis, chạy không có cache và khóa phân tán")
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	res, err := rdb.Ping(pingCtx).Result()
	if err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	l.Info("Kết nối Redis thành công: %s", res)
	return rdb, nil
}
