// Package llm はリクエストごとのAPIキーからElaboratorを組み立てます。
// 呼び出しはすべて共有のレートリミッターを通ります。
package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"disclosure_backend/internal/feature/similarcompany/adapters/gemini"
	"disclosure_backend/internal/feature/similarcompany/adapters/openai"
	"disclosure_backend/internal/feature/similarcompany/usecase"
	"disclosure_backend/internal/shared/ratelimiter"
)

// サポートするLLMプロバイダー。
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config はLLMプロバイダーの設定です。
type Config struct {
	Provider      string // openai | gemini
	DefaultAPIKey string // リクエストにキーがない場合に使うサーバー側のキー
	Model         string
	BaseURL       string // 空の場合は各プロバイダーの既定エンドポイント
	HTTPClient    *http.Client
}

// BuildFunc はAPIキーから具体的なElaboratorを生成します。
type BuildFunc func(ctx context.Context, apiKey string) (usecase.Elaborator, error)

// Factory はAPIキーごとにElaboratorを用意します。
type Factory struct {
	defaultKey string
	build      BuildFunc
	limiter    ratelimiter.Limiter
}

// NewFactory は設定に応じたプロバイダーのFactoryを生成します。
func NewFactory(cfg Config, limiter ratelimiter.Limiter) (*Factory, error) {
	var build BuildFunc
	switch strings.ToLower(cfg.Provider) {
	case "", ProviderOpenAI:
		build = func(ctx context.Context, apiKey string) (usecase.Elaborator, error) {
			return openai.NewOpenAIElaborator(openai.Config{
				APIKey:     apiKey,
				Model:      cfg.Model,
				BaseURL:    cfg.BaseURL,
				HTTPClient: cfg.HTTPClient,
			})
		}
	case ProviderGemini:
		build = func(ctx context.Context, apiKey string) (usecase.Elaborator, error) {
			return gemini.NewGeminiElaborator(ctx, gemini.Config{
				APIKey:     apiKey,
				Model:      cfg.Model,
				BaseURL:    cfg.BaseURL,
				HTTPClient: cfg.HTTPClient,
			})
		}
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
	return NewFactoryWithBuilder(cfg.DefaultAPIKey, build, limiter), nil
}

// NewFactoryWithBuilder は任意の生成関数でFactoryを生成します。
func NewFactoryWithBuilder(defaultKey string, build BuildFunc, limiter ratelimiter.Limiter) *Factory {
	return &Factory{defaultKey: defaultKey, build: build, limiter: limiter}
}

// Elaborator はリクエストのAPIキー、なければサーバーの既定キーを使うElaboratorを返します。
// どちらのキーもない場合はnilを返します。
func (f *Factory) Elaborator(requestKey string) usecase.Elaborator {
	key := strings.TrimSpace(requestKey)
	if key == "" {
		key = f.defaultKey
	}
	if key == "" {
		return nil
	}
	return &rateLimitedElaborator{key: key, build: f.build, limiter: f.limiter}
}

// rateLimitedElaborator は呼び出しごとにレートリミッターで待機してからプロバイダーを呼び出します。
type rateLimitedElaborator struct {
	key     string
	build   BuildFunc
	limiter ratelimiter.Limiter
}

func (e *rateLimitedElaborator) Elaborate(ctx context.Context, prompt string) (string, error) {
	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter: %w", err)
		}
	}
	client, err := e.build(ctx, e.key)
	if err != nil {
		return "", err
	}
	return client.Elaborate(ctx, prompt)
}
