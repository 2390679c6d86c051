package usecase_test

import (
	"context"
	"testing"
	"time"

	"disclosure_backend/internal/feature/disclosure/domain"
	"disclosure_backend/internal/feature/disclosure/domain/entity"
	"disclosure_backend/internal/feature/disclosure/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestParseRatioQuestion(t *testing.T) {
	t.Parallel()

	year := func(y int) *time.Time {
		d := time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
		return &d
	}

	tests := []struct {
		name      string
		question  string
		wantQuery entity.RatioQuery
	}{
		{
			name:      "sector and 년 이후",
			question:  "2022년 이후 바이오 기업의 EV/Sales 알려줘",
			wantQuery: entity.RatioQuery{Sector: "바이오", Since: year(2022)},
		},
		{
			name:      "년부터",
			question:  "게임 업종 2021년부터 재무비율",
			wantQuery: entity.RatioQuery{Sector: "게임", Since: year(2021)},
		},
		{
			name:      "bare year with 이후",
			question:  "2020 이후 통신 WACC",
			wantQuery: entity.RatioQuery{Sector: "통신", Since: year(2020)},
		},
		{
			name:      "year only",
			question:  "2023년 보험 재무비율",
			wantQuery: entity.RatioQuery{Sector: "보험", Since: year(2023)},
		},
		{
			name:      "default sector without year",
			question:  "EV/Sales 평균이 궁금해요",
			wantQuery: entity.RatioQuery{Sector: usecase.DefaultRatioSector},
		},
		{
			name:      "earlier keyword wins",
			question:  "보안 관련 금융 재무비율",
			wantQuery: entity.RatioQuery{Sector: "금융"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantQuery, usecase.ParseRatioQuestion(tt.question))
		})
	}
}

func TestEVSalesStats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		records []entity.Disclosure
		want    *entity.RatioStats
	}{
		{
			name:    "no values",
			records: []entity.Disclosure{{ID: 1}, {ID: 2}},
			want:    nil,
		},
		{
			name: "odd count skips nil values",
			records: []entity.Disclosure{
				{Ratios: entity.Ratios{EVSales: ptr(3)}},
				{Ratios: entity.Ratios{}},
				{Ratios: entity.Ratios{EVSales: ptr(1)}},
				{Ratios: entity.Ratios{EVSales: ptr(5)}},
			},
			want: &entity.RatioStats{Count: 3, Mean: 3, Median: 3, Min: 1, Max: 5},
		},
		{
			name: "even count averages middle values",
			records: []entity.Disclosure{
				{Ratios: entity.Ratios{EVSales: ptr(4)}},
				{Ratios: entity.Ratios{EVSales: ptr(1)}},
				{Ratios: entity.Ratios{EVSales: ptr(2)}},
				{Ratios: entity.Ratios{EVSales: ptr(9)}},
			},
			want: &entity.RatioStats{Count: 4, Mean: 4, Median: 3, Min: 1, Max: 9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, usecase.EVSalesStats(tt.records))
		})
	}
}

func TestRatioUsecase_Ratios(t *testing.T) {
	t.Parallel()

	t.Run("success: records and stats", func(t *testing.T) {
		t.Parallel()
		since := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
		repo := &mockDisclosureRepository{
			FindRatiosFunc: func(ctx context.Context, q entity.RatioQuery) ([]entity.Disclosure, error) {
				assert.Equal(t, "바이오", q.Sector)
				assert.Equal(t, &since, q.Since)
				return []entity.Disclosure{
					{ID: 1, Ratios: entity.Ratios{EVSales: ptr(2.5)}},
				}, nil
			},
		}

		got, err := usecase.NewRatioUsecase(repo).Ratios(context.Background(), entity.RatioQuery{Sector: " 바이오 ", Since: &since})
		require.NoError(t, err)
		assert.Equal(t, "바이오", got.Query.Sector)
		assert.Len(t, got.Records, 1)
		require.NotNil(t, got.EVSales)
		assert.Equal(t, 1, got.EVSales.Count)
		assert.InDelta(t, 2.5, got.EVSales.Mean, 1e-9)
	})

	t.Run("failure: blank sector", func(t *testing.T) {
		t.Parallel()
		_, err := usecase.NewRatioUsecase(&mockDisclosureRepository{}).Ratios(context.Background(), entity.RatioQuery{Sector: " "})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("failure: repository error", func(t *testing.T) {
		t.Parallel()
		repo := &mockDisclosureRepository{
			FindRatiosFunc: func(ctx context.Context, q entity.RatioQuery) ([]entity.Disclosure, error) {
				return nil, ErrDB
			},
		}
		_, err := usecase.NewRatioUsecase(repo).Ratios(context.Background(), entity.RatioQuery{Sector: "금융"})
		assert.ErrorIs(t, err, domain.ErrDataUnavailable)
		assert.ErrorIs(t, err, ErrDB)
	})
}
