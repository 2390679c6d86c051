// Package config はアプリケーション全体の設定を環境変数から読み込みます。
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"disclosure_backend/internal/platform/db"
	"disclosure_backend/internal/platform/redis"

	"github.com/joho/godotenv"
)

const (
	defaultPort            = "8080"
	defaultRateLimitPerMin = 20
	defaultLLMTimeout      = 60 * time.Second
	providerGemini         = "gemini"
	providerOpenAI         = "openai"
)

// Config はサーバーとCLIが共有する設定です。
type Config struct {
	Port      string
	LogFormat string // json | text
	LogLevel  string // debug | info | warn | error
	JWTSecret string // 空の場合、/v1 は認証なしで公開されます

	KeywordsPath          string // 空の場合は組み込みの辞書
	SimilarIndustriesPath string

	LLMProvider           string // openai | gemini
	LLMAPIKey             string // プロバイダーに応じて OPENAI_API_KEY または GEMINI_API_KEY
	LLMModel              string
	LLMBaseURL            string
	LLMRateLimitPerMinute int
	LLMTimeout            time.Duration

	DB    db.Config
	Redis redis.Config
}

// Load は .env があれば読み込んだうえで、環境変数から設定を組み立てます。
// 既に設定されている環境変数は .env で上書きされません。
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv は現在の環境変数から設定を組み立てます。
func FromEnv() (Config, error) {
	cfg := Config{
		Port:                  getenv("PORT", defaultPort),
		LogFormat:             strings.ToLower(getenv("LOG_FORMAT", "text")),
		LogLevel:              strings.ToLower(getenv("LOG_LEVEL", "info")),
		JWTSecret:             os.Getenv("JWT_SECRET"),
		KeywordsPath:          os.Getenv("KEYWORDS_PATH"),
		SimilarIndustriesPath: os.Getenv("SIMILAR_INDUSTRIES_PATH"),
		LLMProvider:           strings.ToLower(getenv("LLM_PROVIDER", providerOpenAI)),
		LLMModel:              os.Getenv("LLM_MODEL"),
		LLMBaseURL:            os.Getenv("OPENAI_BASE_URL"),
		DB:                    db.LoadConfigFromEnv(),
		Redis:                 redis.LoadConfigFromEnv(),
	}

	switch cfg.LLMProvider {
	case providerOpenAI:
		cfg.LLMAPIKey = os.Getenv("OPENAI_API_KEY")
	case providerGemini:
		cfg.LLMAPIKey = os.Getenv("GEMINI_API_KEY")
	default:
		return Config{}, fmt.Errorf("LLM_PROVIDER must be %q or %q, got %q", providerOpenAI, providerGemini, cfg.LLMProvider)
	}

	var err error
	if cfg.LLMRateLimitPerMinute, err = intEnv("LLM_RATE_LIMIT_PER_MINUTE", defaultRateLimitPerMin); err != nil {
		return Config{}, err
	}
	if cfg.LLMTimeout, err = durationEnv("LLM_TIMEOUT", defaultLLMTimeout); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}
