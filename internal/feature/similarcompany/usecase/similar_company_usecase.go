package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"disclosure_backend/internal/feature/similarcompany/domain"
	"disclosure_backend/internal/feature/similarcompany/domain/entity"
)

// Elaborator はテキストを受け取りテキストを返すLLMの機能です。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type Elaborator interface {
	// Elaborate はプロンプトに対する生成結果を返します。
	Elaborate(ctx context.Context, prompt string) (string, error)
}

// KeywordMatcher は質問を産業分類と公示に解決します。
type KeywordMatcher interface {
	Match(ctx context.Context, query string) (*entity.QueryResult, error)
}

// SimilarCompanyUsecase はキーワードマッチングと任意のLLM補足説明をまとめます。
type SimilarCompanyUsecase struct {
	matcher KeywordMatcher
	logger  *slog.Logger
}

// NewSimilarCompanyUsecase は指定されたMatcherでSimilarCompanyUsecaseを生成します。
func NewSimilarCompanyUsecase(matcher KeywordMatcher, logger *slog.Logger) *SimilarCompanyUsecase {
	if logger == nil {
		logger = slog.Default()
	}
	return &SimilarCompanyUsecase{
		matcher: matcher,
		logger:  logger.With("component", "similarcompany"),
	}
}

// Find は質問に一致する公示を検索します。
// elaborate が true で elaborator が設定されている場合のみLLMによる補足説明を付けます。
// 補足説明の失敗は結果のステータスにだけ反映され、エラーにはなりません。
func (u *SimilarCompanyUsecase) Find(ctx context.Context, query string, elaborate bool, elaborator Elaborator) (*entity.Answer, error) {
	result, err := u.matcher.Match(ctx, query)
	if err != nil {
		return nil, err
	}

	answer := &entity.Answer{Result: result, ElaborationStatus: entity.ElaborationSkipped}
	if !elaborate {
		return answer, nil
	}
	if elaborator == nil {
		u.logger.Info("elaboration skipped", "error", fmt.Errorf("%w: no credential", domain.ErrElaborationUnavailable))
		answer.ElaborationStatus = entity.ElaborationNoKey
		return answer, nil
	}

	text, err := elaborator.Elaborate(ctx, BuildPrompt(result.Query, result))
	if err != nil {
		u.logger.Warn("elaboration failed",
			"error", fmt.Errorf("%w: %w", domain.ErrElaborationUnavailable, err),
			"keyword", result.Keyword, "category", result.Category)
		answer.ElaborationStatus = entity.ElaborationFailed
		return answer, nil
	}
	answer.Elaboration = text
	answer.ElaborationStatus = entity.ElaborationCompleted
	answer.FollowUpQuestions = u.followUps(ctx, elaborator, result)
	return answer, nil
}

func (u *SimilarCompanyUsecase) followUps(ctx context.Context, elaborator Elaborator, result *entity.QueryResult) []string {
	content, err := elaborator.Elaborate(ctx, BuildFollowUpPrompt(result.Query, result))
	if err != nil {
		u.logger.Warn("follow-up generation failed", "error", err)
		return []string{DefaultFollowUp}
	}
	return ParseFollowUps(content)
}
