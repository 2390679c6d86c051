package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"disclosure_backend/internal/feature/disclosure/domain"
	"disclosure_backend/internal/feature/disclosure/domain/entity"
)

const (
	seedBatchSize = 500 // 1回のUpsertBatchで書き込む件数
)

// DisclosureWriter は公示を永続化するリポジトリのインターフェイスです。
type DisclosureWriter interface {
	UpsertBatch(ctx context.Context, records []entity.Disclosure) error
}

// SeedResult は投入処理の結果です。
type SeedResult struct {
	Written int
	Skipped int
}

// SeedUsecase は公示データをストアへ投入するユースケースを定義します。
type SeedUsecase struct {
	store DisclosureWriter
}

// NewSeedUsecase は新しい SeedUsecase を作成します。
func NewSeedUsecase(store DisclosureWriter) *SeedUsecase {
	return &SeedUsecase{store: store}
}

// Seed は必須項目（発行企業名と発行日）が欠けた行を読み飛ばし、残りを一定件数ずつ書き込みます。
// 書き込みに失敗した時点で中断し、それまでの件数とともにエラーを返します。
func (u *SeedUsecase) Seed(ctx context.Context, records []entity.Disclosure) (SeedResult, error) {
	var (
		res   SeedResult
		valid = make([]entity.Disclosure, 0, len(records))
	)
	for i, r := range records {
		if strings.TrimSpace(r.IssuerName) == "" || r.FiledAt.IsZero() {
			slog.Warn("skipping disclosure without issuer or filing date", "index", i, "target", r.TargetName)
			res.Skipped++
			continue
		}
		r.IndustryCategory = strings.TrimSpace(r.IndustryCategory)
		valid = append(valid, r)
	}

	for start := 0; start < len(valid); start += seedBatchSize {
		end := min(start+seedBatchSize, len(valid))
		if err := u.store.UpsertBatch(ctx, valid[start:end]); err != nil {
			return res, fmt.Errorf("%w: %w", domain.ErrDataUnavailable, err)
		}
		res.Written += end - start
	}
	return res, nil
}
