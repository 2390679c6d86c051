// Package redis はキャッシュ用のRedisクライアントを提供します。
package redis

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config はRedis接続の設定です。Hostが空の場合、キャッシュは無効になります。
type Config struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration // 0の場合は日次更新時刻まで
}

// LoadConfigFromEnv は環境変数からRedis設定を読み込みます。
func LoadConfigFromEnv() Config {
	cfg := Config{
		Host:     os.Getenv("REDIS_HOST"),
		Port:     os.Getenv("REDIS_PORT"),
		Password: os.Getenv("REDIS_PASSWORD"),
	}
	if cfg.Port == "" {
		cfg.Port = "6379"
	}
	if n, err := strconv.Atoi(os.Getenv("REDIS_DB")); err == nil {
		cfg.DB = n
	}
	if d, err := time.ParseDuration(os.Getenv("CACHE_TTL")); err == nil && d > 0 {
		cfg.TTL = d
	}
	return cfg
}

// Addr は host:port 形式のアドレスを返します。
func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}

// NewRedisClient は接続を確認したクライアントを返します。
// Hostが空の場合は (nil, nil) を返し、呼び出し側はキャッシュなしで動作します。
func NewRedisClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.Host == "" {
		slog.Info("REDIS_HOST not set, cache disabled")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("Redis connection failed", "address", cfg.Addr(), "error", err)
		_ = rdb.Close()
		return nil, err
	}

	slog.Info("Redis connection successful", "address", cfg.Addr())
	return rdb, nil
}

// Pinger はRedisクライアントをreadinessチェック用のPingerとして扱います。
type Pinger struct {
	rdb *redis.Client
}

// NewPinger は指定されたクライアントのPingerを生成します。
func NewPinger(rdb *redis.Client) *Pinger {
	return &Pinger{rdb: rdb}
}

// Ping はRedisにPINGを送ります。
func (p *Pinger) Ping(ctx context.Context) error {
	return p.rdb.Ping(ctx).Err()
}
