// Package usecase はsimilarcompanyフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"strings"

	disclosure "disclosure_backend/internal/feature/disclosure/domain/entity"
	"disclosure_backend/internal/feature/similarcompany/domain"
	"disclosure_backend/internal/feature/similarcompany/domain/entity"
)

// DisclosureRepository は産業分類による公示の読み取りを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type DisclosureRepository interface {
	// FindByCategories は産業分類がcategoriesのいずれかに一致する公示を発行日の新しい順に返します。
	FindByCategories(ctx context.Context, categories []string) ([]disclosure.Disclosure, error)
}

// Matcher はキーワード辞書で質問を産業分類に解決し、類似産業を含む公示を検索します。
// 辞書は読み取り専用のため、1つのMatcherを複数のリクエストで共有できます。
type Matcher struct {
	dict *entity.Dictionary
	repo DisclosureRepository
}

// NewMatcher は辞書とリポジトリでMatcherを生成します。
func NewMatcher(dict *entity.Dictionary, repo DisclosureRepository) *Matcher {
	return &Matcher{dict: dict, repo: repo}
}

// Match は質問から最も優先度の高いキーワードを選び、その産業分類と類似産業の公示をまとめて返します。
//
//   - 空白のみの質問は domain.ErrInvalidInput
//   - キーワードが見つからない場合は domain.ErrNoMatch
//   - 公示の読み取りに失敗した場合は domain.ErrDataUnavailable（原因をラップし、再試行しない）
func (m *Matcher) Match(ctx context.Context, query string) (*entity.QueryResult, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, domain.ErrInvalidInput
	}

	best, ok := selectKeyword(m.dict, normalize(trimmed))
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrNoMatch, trimmed)
	}

	expanded := m.dict.Expand(best.category)
	records, err := m.repo.FindByCategories(ctx, expanded)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDataUnavailable, err)
	}
	if records == nil {
		records = []disclosure.Disclosure{}
	}

	result := &entity.QueryResult{
		Query:             trimmed,
		Keyword:           best.keyword,
		MatchType:         best.matchType,
		Confidence:        best.confidence,
		Category:          best.category,
		SimilarCategories: expanded[1:],
		Records:           records,
	}
	result.Summary = Headline(result)
	result.Sentences = Sentences(records)
	return result, nil
}
