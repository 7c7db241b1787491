package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultModel は画像合成に使う既定のモデル名です。
const DefaultModel = "gemini-2.5-flash-image"

// Config は環境変数から読み込むアプリケーション設定です。
type Config struct {
	AppEnv           string
	Port             string
	GeminiAPIKey     string
	GeminiModel      string
	LogLevel         string
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	MaxUploadBytes   int64
	SessionTTL       time.Duration
	CompressUploads  bool
	CompressQuality  int
	DefaultLocale    string
}

// Load は .env / .env.local (存在すれば) と環境変数から設定を読み込みます。
// 既に設定済みの環境変数は .env の値で上書きされません。
// APIキーが無くてもエラーにはしません。最初の生成時に失敗として報告されます。
func Load() (*Config, error) {
	_ = godotenv.Load(".env", ".env.local")
	return FromEnv(), nil
}

// FromEnv は .env を読まずに現在の環境変数だけから設定を作ります。
func FromEnv() *Config {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if strings.TrimSpace(apiKey) == "" {
		apiKey = os.Getenv("API_KEY")
	}

	return &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		GeminiAPIKey:     strings.TrimSpace(apiKey),
		GeminiModel:      getEnv("GEMINI_MODEL", DefaultModel),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 180)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		MaxUploadBytes:   int64(getEnvInt("MAX_UPLOAD_MB", 20)) << 20,
		SessionTTL:       time.Minute * time.Duration(getEnvInt("SESSION_TTL_MINUTES", 60)),
		CompressUploads:  getEnvBool("COMPRESS_UPLOADS", false),
		CompressQuality:  getEnvInt("COMPRESS_QUALITY", 85),
		DefaultLocale:    strings.ToLower(getEnv("DEFAULT_LOCALE", "en")),
	}
}

// IsProduction は本番環境かどうかを返します。
func (c *Config) IsProduction() bool {
	switch strings.ToLower(c.AppEnv) {
	case "production", "prod":
		return true
	}
	return false
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
