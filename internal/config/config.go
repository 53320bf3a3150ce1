package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
}

type Backend struct {
	BaseURL       string        `yaml:"base_url" env:"BACKEND_BASE_URL" env-default:"http://localhost:5001"`
	Timeout       time.Duration `yaml:"timeout" env:"BACKEND_TIMEOUT" env-default:"10s"`
	ImageFallback string        `yaml:"image_fallback" env:"BACKEND_IMAGE_FALLBACK" env-default:"/images/default-image.jpg"`
}

type Storage struct {
	Driver    string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"bolt"`
	Path      string `yaml:"path" env:"STORAGE_PATH" env-default:"storefront.db"`
	Namespace string `yaml:"namespace" env:"STORAGE_NAMESPACE" env-default:""`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost:6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type Checkout struct {
	ConfirmationDelay  time.Duration `yaml:"confirmation_delay" env:"CHECKOUT_CONFIRMATION_DELAY" env-default:"3s"`
	ClearCartOnSuccess bool          `yaml:"clear_cart_on_success" env:"CHECKOUT_CLEAR_CART_ON_SUCCESS" env-default:"false"`
}

// RateLimit bounds login attempts per email inside a sliding window.
// A zero MaxAttempts disables the throttle.
type RateLimit struct {
	MaxAttempts int64         `yaml:"max_attempts" env:"LOGIN_MAX_ATTEMPTS" env-default:"5"`
	WindowSize  time.Duration `yaml:"window_size" env:"LOGIN_WINDOW_SIZE" env-default:"15m"`
}

type Log struct {
	Level      string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	File       string `yaml:"file" env:"LOG_FILE"`
	MaxSizeMB  int    `yaml:"max_size_mb" env:"LOG_MAX_SIZE_MB" env-default:"100"`
	MaxBackups int    `yaml:"max_backups" env:"LOG_MAX_BACKUPS" env-default:"3"`
	MaxAgeDays int    `yaml:"max_age_days" env:"LOG_MAX_AGE_DAYS" env-default:"28"`
	Compress   bool   `yaml:"compress" env:"LOG_COMPRESS" env-default:"true"`
}

type Telemetry struct {
	Enabled     bool   `yaml:"enabled" env:"OTEL_ENABLED" env-default:"false"`
	Endpoint    string `yaml:"endpoint" env:"OTEL_EXPORTER_ENDPOINT" env-default:"localhost:4318"`
	ServiceName string `yaml:"service_name" env:"OTEL_SERVICE_NAME" env-default:"storefront"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-default:"development"`
	HTTPServer   `yaml:"http_server"`
	Backend      Backend      `yaml:"backend"`
	Storage      Storage      `yaml:"storage"`
	RedisConnect RedisConnect `yaml:"redis"`
	Checkout     Checkout     `yaml:"checkout"`
	RateLimit    RateLimit    `yaml:"rate_limit"`
	Log          Log          `yaml:"log"`
	Telemetry    Telemetry    `yaml:"telemetry"`
}

const (
	StorageDriverBolt  = "bolt"
	StorageDriverRedis = "redis"
)

var ErrConfigPathNotSet = errors.New("config path is not set")

// Load resolves the config path from the argument or CONFIG_PATH.
func Load(path string) (*Config, error) {

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	if path == "" {
		return nil, ErrConfigPathNotSet
	}

	return LoadConfigFromPath(path)
}

func LoadConfigFromPath(path string) (*Config, error) {

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case StorageDriverBolt, StorageDriverRedis:
	default:
		return fmt.Errorf("unsupported storage driver %q", c.Storage.Driver)
	}

	if c.Backend.BaseURL == "" {
		return errors.New("backend base url is required")
	}

	return nil
}

func (r *RedisConnect) GetDSN() string {
	if r.Username == "" && r.Password == "" {
		return fmt.Sprintf("redis://%s/%d", r.Host, r.DB)
	}

	return fmt.Sprintf("redis://%s:%s@%s/%d", r.Username, r.Password, r.Host, r.DB)
}

// ImageFallbackURL is the absolute URL served when a product has no image.
func (b *Backend) ImageFallbackURL() string {
	return b.BaseURL + b.ImageFallback
}
