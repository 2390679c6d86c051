package di

import (
	"fmt"
	"log/slog"

	"disclosure_backend/internal/app/config"
	assistantusecase "disclosure_backend/internal/feature/assistant/usecase"
	disclosureusecase "disclosure_backend/internal/feature/disclosure/usecase"
	"disclosure_backend/internal/feature/similarcompany/adapters/dictionary"
	"disclosure_backend/internal/feature/similarcompany/adapters/llm"
	similarusecase "disclosure_backend/internal/feature/similarcompany/usecase"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Services はサーバーとCLIが共有するユースケース群です。
type Services struct {
	Search         *disclosureusecase.SearchUsecase
	Ratios         *disclosureusecase.RatioUsecase
	Seed           *disclosureusecase.SeedUsecase
	SimilarCompany *similarusecase.SimilarCompanyUsecase
	Assistant      *assistantusecase.AssistantUsecase
	Elaborators    *llm.Factory
}

// NewServices は辞書を読み込み、ストア・LLM・各ユースケースを組み立てます。
// 辞書の検証に失敗した場合は起動できないためエラーを返します。
func NewServices(cfg config.Config, db *gorm.DB, rdb *redis.Client, logger *slog.Logger) (*Services, error) {
	dict, err := dictionary.Load(cfg.KeywordsPath, cfg.SimilarIndustriesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load dictionary: %w", err)
	}
	logger.Info("dictionary loaded", "keywords", len(dict.Keywords()), "categories", len(dict.Categories()))

	factory, err := NewElaboratorFactory(cfg)
	if err != nil {
		return nil, err
	}

	repo := NewDisclosureRepository(db, rdb, cfg.Redis.TTL)

	search := disclosureusecase.NewSearchUsecase(repo)
	ratios := disclosureusecase.NewRatioUsecase(repo)
	similar := similarusecase.NewSimilarCompanyUsecase(similarusecase.NewMatcher(dict, repo), logger)

	return &Services{
		Search:         search,
		Ratios:         ratios,
		Seed:           disclosureusecase.NewSeedUsecase(repo),
		SimilarCompany: similar,
		Assistant:      assistantusecase.NewAssistantUsecase(similar, ratios, search, factory, disclosureusecase.ParseRatioQuestion),
		Elaborators:    factory,
	}, nil
}
