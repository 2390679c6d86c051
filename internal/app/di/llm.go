package di

import (
	"time"

	"disclosure_backend/internal/app/config"
	"disclosure_backend/internal/feature/similarcompany/adapters/llm"
	infrahttp "disclosure_backend/internal/platform/http"
	"disclosure_backend/internal/shared/ratelimiter"
)

// NewElaboratorFactory creates an LLM elaborator factory with a shared per-minute rate limiter.
func NewElaboratorFactory(cfg config.Config) (*llm.Factory, error) {
	return llm.NewFactory(llm.Config{
		Provider:      cfg.LLMProvider,
		DefaultAPIKey: cfg.LLMAPIKey,
		Model:         cfg.LLMModel,
		BaseURL:       cfg.LLMBaseURL,
		HTTPClient:    infrahttp.NewHTTPClient(cfg.LLMTimeout),
	}, ratelimiter.NewRateLimiter(cfg.LLMRateLimitPerMinute, time.Minute))
}
