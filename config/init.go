package config

import (
	"context"
	"fmt"

	"propshare/services/logger"
	"propshare/services/notification"
	"propshare/services/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// App gom các thành phần hạ tầng dùng chung
type App struct {
	Config    *Config
	Logger    *logger.ZapLogger
	Router    *gin.Engine
	Melody    *melody.Melody
	Cron      *cron.Cron
	DB        *gorm.DB
	Redis     *redis.Client
	Uploader  storage.Uploader
	Mailer    notification.Mailer
	Publisher notification.Publisher
}

func NewLogger(cfg *Config) (*logger.ZapLogger, error) {
	return logger.New(logger.Config{
		Debug:       cfg.App.Debug,
		SentryDSN:   cfg.App.SentryDSN,
		Environment: cfg.App.Env,
	})
}

// NewRouter tạo gin engine với CORS
func NewRouter(cfg *Config) *gin.Engine {
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization")
	configCors.AllowCredentials = true
	if len(cfg.Server.AllowedOrigins) > 0 {
		configCors.AllowOrigins = cfg.Server.AllowedOrigins
	} else {
		configCors.AllowOriginFunc = func(origin string) bool {
			return true
		}
	}
	router.Use(cors.New(configCors))
	_ = router.SetTrustedProxies(nil)
	return router
}

// InitApp kết nối DB, Redis và khởi tạo các client bên ngoài đã được cấu hình
func InitApp(ctx context.Context, cfg *Config) (*App, error) {
	l, err := NewLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}
	app := &App{Config: cfg, Logger: l}
	if err := app.initComponents(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize components: %w", err)
	}

	app.Router = NewRouter(cfg)
	app.Melody = melody.New()
	app.Cron = cron.New()
	l.Info("All components initialized successfully")
	return app, nil
}

func (a *App) initComponents(ctx context.Context) error {
	cfg := a.Config
	var err error

	if a.DB, err = ConnectDB(cfg.Database, cfg.App.Debug, a.Logger); err != nil {
		return err
	}
	if a.Redis, err = ConnectRedis(ctx, cfg.Redis, a.Logger); err != nil {
		return err
	}

	if cld, err := storage.NewCloudinaryFromParams(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret); err == nil {
		a.Uploader = storage.NewCloudinaryUploader(cld)
	} else {
		a.Logger.Warn("Cloudinary chưa sẵn sàng: %v", err)
	}

	if cfg.SMTP.Host != "" {
		mailer, err := notification.NewSMTPMailer(notification.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		}, a.Logger)
		if err != nil {
			return err
		}
		a.Mailer = mailer
	}

	a.Publisher = notification.NoopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher, err := notification.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, a.Logger)
		if err != nil {
			return err
		}
		a.Publisher = publisher
	}
	return nil
}

// InitWebSocket gắn melody vào /ws; handshake phải xác thực trước đó bằng middleware
func InitWebSocket(router gin.IRoutes, m *melody.Melody, handlers ...gin.HandlerFunc) {
	handlers = append(handlers, func(c *gin.Context) {
		keys := map[string]interface{}{}
		if userID, ok := c.Get("userID"); ok {
			keys[notification.SessionUserKey] = userID
		}
		_ = m.HandleRequestWithKeys(c.Writer, c.Request, keys)
	})
	router.GET("/ws", handlers...)
}

// Close giải phóng kết nối khi tắt server
func (a *App) Close() {
	if a.Cron != nil {
		<-a.Cron.Stop().Done()
	}
	if a.Melody != nil {
		_ = a.Melody.Close()
	}
	if a.Publisher != nil {
		if err := a.Publisher.Close(); err != nil {
			a.Logger.Warn("Đóng publisher lỗi: %v", err)
		}
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	a.Logger.Sync()
}
