package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppConfig struct {
	Env       string `mapstructure:"env"`
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
	TimeZone string `mapstructure:"timezone"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
}

type GoogleConfig struct {
	ClientID string `mapstructure:"client_id"`
}

type CloudinaryConfig struct {
	CloudName string `mapstructure:"cloud_name"`
	APIKey    string `mapstructure:"api_key"`
	APISecret string `mapstructure:"api_secret"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type BookingConfig struct {
	LastMinuteWindowDays   int `mapstructure:"last_minute_window_days"`
	CancellationNoticeDays int `mapstructure:"cancellation_notice_days"`
}

type JobsConfig struct {
	Enabled          bool   `mapstructure:"enabled"`
	CompleteSchedule string `mapstructure:"complete_schedule"`
	RolloverSchedule string `mapstructure:"rollover_schedule"`
	RolloverPoolSize int    `mapstructure:"rollover_pool_size"`
}

// Config là toàn bộ cấu hình của ứng dụng
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Google     GoogleConfig     `mapstructure:"google"`
	Cloudinary CloudinaryConfig `mapstructure:"cloudinary"`
	SMTP       SMTPConfig       `mapstructure:"smtp"`
	Kafka      KafkaConfig      `mapstructure:"kafka"`
	Booking    BookingConfig    `mapstructure:"booking"`
	Jobs       JobsConfig       `mapstructure:"jobs"`
}

var envKeys = []string{
	"app.env", "app.debug", "app.sentry_dsn",
	"server.host", "server.port", "server.allowed_origins",
	"database.host", "database.port", "database.user", "database.password",
	"database.dbname", "database.sslmode", "database.timezone",
	"redis.addr", "redis.username", "redis.password", "redis.db",
	"jwt.secret", "jwt.ttl",
	"google.client_id",
	"cloudinary.cloud_name", "cloudinary.api_key", "cloudinary.api_secret",
	"smtp.host", "smtp.port", "smtp.username", "smtp.password", "smtp.from",
	"kafka.brokers", "kafka.topic",
	"booking.last_minute_window_days", "booking.cancellation_notice_days",
	"jobs.enabled", "jobs.complete_schedule", "jobs.rollover_schedule", "jobs.rollover_pool_size",
}

// Hàm nạp biến môi trường từ tệp `.env`
func LoadEnv(envPath string) {
	for _, name := range []string{".env", ".env.local"} {
		_ = godotenv.Overload(filepath.Join(envPath, name))
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "dev")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8083)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.timezone", "Asia/Ho_Chi_Minh")
	v.SetDefault("jwt.ttl", 72*time.Hour)
	v.SetDefault("smtp.port", 587)
	v.SetDefault("kafka.topic", "propshare.bookings")
	v.SetDefault("booking.last_minute_window_days", 14)
	v.SetDefault("booking.cancellation_notice_days", 14)
	v.SetDefault("jobs.enabled", true)
	v.SetDefault("jobs.complete_schedule", "0 1 * * *")
	v.SetDefault("jobs.rollover_schedule", "0 2 1 1 *")
	v.SetDefault("jobs.rollover_pool_size", 8)
}

// Load đọc file cấu hình (yaml) nếu có, sau đó ghi đè bằng biến môi trường PROPSHARE_*
func Load(configFile, envPath string) (*Config, error) {
	LoadEnv(envPath)

	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("config/")
	}
	v.SetEnvPrefix("PROPSHARE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys {
		_ = v.BindEnv(key)
	}
	_ = v.BindEnv("database.url", "PROPSHARE_DATABASE_URL", "DATABASE_URL")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate kiểm tra các giá trị bắt buộc
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("jwt.secret is required")
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("invalid server.port: %d", c.Server.Port)
	}
	if c.Booking.LastMinuteWindowDays < 0 || c.Booking.CancellationNoticeDays < 0 {
		return errors.New("booking windows must not be negative")
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
