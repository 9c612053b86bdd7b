// Package configs uygulama konfigürasyonunu .env dosyası ve ortam değişkenlerinden yükler.
package configs

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Depolama sürücüleri
const (
	StorageDriverMemory   = "memory"
	StorageDriverPostgres = "postgres"
	StorageDriverRedis    = "redis"
)

// AppConfig ortamdan okunan tüm ayarları tutar.
type AppConfig struct {
	Env     string `mapstructure:"APP_ENV"`
	Port    string `mapstructure:"APP_PORT"`
	BaseURL string `mapstructure:"APP_BASE_URL"` // Paylaşım linklerinin kökü

	StorageDriver     string `mapstructure:"STORAGE_DRIVER"`
	StorageQuotaBytes int64  `mapstructure:"STORAGE_QUOTA_BYTES"`

	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBSSLMode  string `mapstructure:"DB_SSLMODE"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	QRServiceURL string `mapstructure:"QR_SERVICE_URL"`
	QRSize       int    `mapstructure:"QR_SIZE"`
	QRTimeout    string `mapstructure:"QR_TIMEOUT"`

	CropViewportSize   int `mapstructure:"CROP_VIEWPORT_SIZE"`
	CropOutputSize     int `mapstructure:"CROP_OUTPUT_SIZE"`
	CropJPEGQuality    int `mapstructure:"CROP_JPEG_QUALITY"`
	CropMinZoomPercent int `mapstructure:"CROP_MIN_ZOOM"`
	CropMaxZoomPercent int `mapstructure:"CROP_MAX_ZOOM"`

	LogLevel      string `mapstructure:"LOG_LEVEL"`
	LogFile       string `mapstructure:"LOG_FILE"`
	SessionCookie string `mapstructure:"SESSION_COOKIE"`
}

var defaults = map[string]any{
	"APP_ENV":             "development",
	"APP_PORT":            "3000",
	"APP_BASE_URL":        "http://localhost:3000/",
	"STORAGE_DRIVER":      StorageDriverMemory,
	"STORAGE_QUOTA_BYTES": 5 * 1024 * 1024,
	"DB_HOST":             "localhost",
	"DB_PORT":             "5432",
	"DB_USER":             "postgres",
	"DB_PASSWORD":         "",
	"DB_NAME":             "kartvizit",
	"DB_SSLMODE":          "disable",
	"REDIS_ADDR":          "localhost:6379",
	"REDIS_PASSWORD":      "",
	"REDIS_DB":            0,
	"QR_SERVICE_URL":      "https://api.qrserver.com/v1/create-qr-code/",
	"QR_SIZE":             300,
	"QR_TIMEOUT":          "5s",
	"CROP_VIEWPORT_SIZE":  300,
	"CROP_OUTPUT_SIZE":    800,
	"CROP_JPEG_QUALITY":   85,
	"CROP_MIN_ZOOM":       10,
	"CROP_MAX_ZOOM":       300,
	"LOG_LEVEL":           "info",
	"LOG_FILE":            "",
	"SESSION_COOKIE":      "kartvizit_session",
}

// Load .env dosyasını (varsa) okur, ardından ortam değişkenlerinden AppConfig oluşturur.
// Ortam değişkenleri .env değerlerini ezer.
func Load() (*AppConfig, error) {
	_ = godotenv.Load() // .env yoksa sorun değil

	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *AppConfig) validate() error {
	if c.Port == "" {
		return errors.New("config: APP_PORT boş olamaz")
	}
	switch c.StorageDriver {
	case StorageDriverMemory, StorageDriverPostgres, StorageDriverRedis:
	default:
		return fmt.Errorf("config: bilinmeyen STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.StorageQuotaBytes <= 0 {
		return errors.New("config: STORAGE_QUOTA_BYTES pozitif olmalı")
	}
	if c.CropViewportSize <= 0 || c.CropOutputSize <= 0 {
		return errors.New("config: kırpma boyutları pozitif olmalı")
	}
	if c.CropJPEGQuality < 1 || c.CropJPEGQuality > 100 {
		return errors.New("config: CROP_JPEG_QUALITY 1-100 arasında olmalı")
	}
	if c.CropMinZoomPercent <= 0 || c.CropMaxZoomPercent < c.CropMinZoomPercent {
		return errors.New("config: CROP_MIN_ZOOM/CROP_MAX_ZOOM aralığı geçersiz")
	}
	return nil
}

// IsDevelopment geliştirme ortamında mı çalışıldığını söyler.
func (c *AppConfig) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// ListenAddr Fiber'ın dinleyeceği adres.
func (c *AppConfig) ListenAddr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

// QRFetchTimeout QR_TIMEOUT değerini ayrıştırır. Geçersizse 5 saniye döner.
func (c *AppConfig) QRFetchTimeout() time.Duration {
	d, err := time.ParseDuration(c.QRTimeout)
	if err != nil || d <= 0 {
		return 5 * time.Second
	}
	return d
}

// PostgresDSN GORM postgres sürücüsü için bağlantı dizesi.
func (c *AppConfig) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}
