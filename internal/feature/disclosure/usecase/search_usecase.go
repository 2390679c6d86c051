// Package usecase はdisclosureフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"disclosure_backend/internal/feature/disclosure/domain"
	"disclosure_backend/internal/feature/disclosure/domain/entity"
)

// DisclosureRepository は公示データの読み取りレイヤーを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type DisclosureRepository interface {
	// Search は指定されたフィールドで部分一致検索を行います。
	Search(ctx context.Context, field entity.SearchField, term string) ([]entity.Disclosure, error)
	// ListSectors は公示発行企業の産業分類の一覧を返します。
	ListSectors(ctx context.Context) ([]string, error)
	// FindRatios はセクターと期間で評価指標を持つ公示を検索します。
	FindRatios(ctx context.Context, query entity.RatioQuery) ([]entity.Disclosure, error)
}

// DateLayout は日付検索で受け付ける書式です。
const DateLayout = "2006-01-02"

// SearchUsecase は公示検索のユースケースを提供します。
type SearchUsecase struct {
	repo DisclosureRepository
}

// NewSearchUsecase は指定されたリポジトリでSearchUsecaseを生成します。
func NewSearchUsecase(repo DisclosureRepository) *SearchUsecase {
	return &SearchUsecase{repo: repo}
}

// Search は検索語を検証し、指定フィールドで公示を検索します。
// フィールドが空の場合は全カラムを対象にします。
func (u *SearchUsecase) Search(ctx context.Context, field entity.SearchField, term string) ([]entity.Disclosure, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("%w: search term is required", domain.ErrInvalidInput)
	}
	if field == "" {
		field = entity.SearchByAny
	}
	if !field.Valid() {
		return nil, fmt.Errorf("%w: unsupported search field %q", domain.ErrInvalidInput, field)
	}

	if field == entity.SearchByDate {
		if _, err := time.Parse(DateLayout, term); err != nil {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD: %q", domain.ErrInvalidInput, term)
		}
	}

	records, err := u.repo.Search(ctx, field, term)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDataUnavailable, err)
	}
	return records, nil
}

// ListSectors は利用可能なセクターの一覧を返します。
func (u *SearchUsecase) ListSectors(ctx context.Context) ([]string, error) {
	sectors, err := u.repo.ListSectors(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDataUnavailable, err)
	}
	return sectors, nil
}
