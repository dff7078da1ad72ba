package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/aliskhannn/ek-phonics-bot/internal/domain/entities"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrInvalidConfig               = errors.New("invalid configuration")
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string  `mapstructure:"env"`      // current application environment (local, dev, production etc)
	TelegramAPIToken string  `mapstructure:"-"`        // Telegram API token loaded from environment
	Dataset          Dataset `mapstructure:"dataset"`  // dataset source section
	Quiz             Quiz    `mapstructure:"quiz"`     // quiz defaults section
	DB               DB      `mapstructure:"database"` // database configuration section
	Redis            Redis   `mapstructure:"redis"`    // session store section
	HTTP             HTTP    `mapstructure:"http"`     // JSON API section
}

// Dataset describes where the JSONL dataset comes from.
type Dataset struct {
	Path            string `mapstructure:"path"`             // file path or http(s) URL
	RefreshSchedule string `mapstructure:"refresh_schedule"` // cron spec, empty disables reloading
}

// Quiz contains defaults for new chats and session lifetime.
type Quiz struct {
	DefaultLength int           `mapstructure:"default_length"` // records sampled per quiz
	DefaultLevel  int           `mapstructure:"default_level"`  // 0 means all levels
	SessionTTL    time.Duration `mapstructure:"session_ttl"`    // lifetime of a stored session
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Enabled reports whether a database is configured.
func (db DB) Enabled() bool {
	return db.URL != ""
}

// Redis contains the optional session store parameters.
type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Enabled reports whether Redis is configured.
func (r Redis) Enabled() bool {
	return r.Addr != ""
}

// HTTP contains the optional JSON API parameters.
type HTTP struct {
	Addr string `mapstructure:"addr"` // listen address, empty disables the API
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	return load("./config")
}

func load(configPath string) (*Config, error) {
	// A .env file is optional; real environment variables take precedence.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("dataset.path", "assets/data/ek_v2_master.jsonl")
	v.SetDefault("dataset.refresh_schedule", "")
	v.SetDefault("quiz.default_length", 20)
	v.SetDefault("quiz.default_level", 1)
	v.SetDefault("quiz.session_ttl", "24h")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("http.addr", "")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("dataset.path", "DATASET_PATH")
	_ = v.BindEnv("redis.addr", "REDIS_ADDR")
	_ = v.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = v.BindEnv("http.addr", "HTTP_ADDR")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}

	cfg.DB.URL = v.GetString("database_url")

	if cfg.Dataset.Path == "" {
		return nil, fmt.Errorf("%w: DATASET_PATH", ErrMissingEnvironmentVariables)
	}

	if err := cfg.Quiz.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate rejects quiz defaults that every new chat would inherit.
// A default level of 0 selects all levels; a length of 0 falls back to the built-in default.
func (q Quiz) validate() error {
	if level := entities.Level(q.DefaultLevel); level != 0 && !level.Valid() {
		return fmt.Errorf("%w: quiz.default_level must be 0..%d, got %d",
			ErrInvalidConfig, len(entities.AllLevels), q.DefaultLevel)
	}
	if q.DefaultLength < 0 || q.DefaultLength > entities.MaxQuizLength {
		return fmt.Errorf("%w: quiz.default_length must be 0..%d, got %d",
			ErrInvalidConfig, entities.MaxQuizLength, q.DefaultLength)
	}
	return nil
}
