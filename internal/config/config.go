package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Storage   StorageConfig
	Bunny     BunnyConfig     `mapstructure:"bunny"`
	Reward    RewardConfig    `mapstructure:"reward"`
	Admin     AdminConfig     `mapstructure:"admin"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// Runtime flags (set from the command line, not the config file).
	ForceMigrate bool `mapstructure:"-"`
	MigrateOnly  bool `mapstructure:"-"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

type StorageConfig struct {
	Type          string `mapstructure:"type"`
	LocalPath     string `mapstructure:"local_path"`
	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket"`
}

// BunnyConfig holds the Bunny Stream credentials used for exercise videos.
type BunnyConfig struct {
	LibraryID string `mapstructure:"library_id"`
	APIKey    string `mapstructure:"api_key"`
	BaseURL   string `mapstructure:"base_url"`
	EmbedBase string `mapstructure:"embed_base"`
}

// RewardConfig is the scheduling and scoring policy. The anchor date is a
// versioned constant: changing it reshuffles every user's schedule.
type RewardConfig struct {
	AnchorDate             string `mapstructure:"anchor_date"`
	PointsPerCompletion    int    `mapstructure:"points_per_completion"`
	DefaultDurationSeconds int    `mapstructure:"default_duration_seconds"`
	RankingLimit           int    `mapstructure:"ranking_limit"`
}

type AdminConfig struct {
	SecurityCode string `mapstructure:"security_code"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("PILATES")
	viper.AutomaticEnv()

	// Database
	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.dbname", "DATABASE_NAME")

	// Redis
	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")

	// JWT
	viper.BindEnv("jwt.secret", "JWT_SECRET")

	// Server
	viper.BindEnv("server.mode", "SERVER_MODE")

	// Storage
	viper.BindEnv("storage.type", "STORAGE_TYPE")
	viper.BindEnv("storage.minio_endpoint", "MINIO_ENDPOINT")
	viper.BindEnv("storage.minio_access_key", "MINIO_ACCESS_KEY")
	viper.BindEnv("storage.minio_secret_key", "MINIO_SECRET_KEY")
	viper.BindEnv("storage.minio_bucket", "MINIO_BUCKET")

	// Bunny Stream
	viper.BindEnv("bunny.library_id", "BUNNY_LIBRARY_ID")
	viper.BindEnv("bunny.api_key", "BUNNY_API_KEY")

	// Admin
	viper.BindEnv("admin.security_code", "ADMIN_SECURITY_CODE")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour

	if cfg.Server.Mode == "release" && len(cfg.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.JWT.Secret))
	}

	if cfg.Reward.AnchorDate == "" {
		cfg.Reward.AnchorDate = "2025-01-01"
	}
	if _, err := time.ParseInLocation("2006-01-02", cfg.Reward.AnchorDate, time.Local); err != nil {
		return nil, fmt.Errorf("invalid reward.anchor_date %q: %w", cfg.Reward.AnchorDate, err)
	}
	if cfg.Reward.PointsPerCompletion <= 0 {
		cfg.Reward.PointsPerCompletion = 25
	}
	if cfg.Reward.DefaultDurationSeconds <= 0 {
		cfg.Reward.DefaultDurationSeconds = 30
	}
	if cfg.Reward.RankingLimit <= 0 {
		cfg.Reward.RankingLimit = 50
	}

	if cfg.Storage.Type == "local" {
		if _, err := os.Stat(cfg.Storage.LocalPath); os.IsNotExist(err) {
			os.MkdirAll(cfg.Storage.LocalPath, 0755)
		}
	}

	return &cfg, nil
}

// Anchor returns the parsed anchor date at local midnight. LoadConfig
// validates the format, so a zero time only happens for a hand-built Config.
func (c *RewardConfig) Anchor() time.Time {
	t, err := time.ParseInLocation("2006-01-02", c.AnchorDate, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}
