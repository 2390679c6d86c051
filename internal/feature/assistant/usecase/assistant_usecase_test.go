package usecase_test

import (
	"context"
	"errors"
	"testing"

	"disclosure_backend/internal/feature/assistant/domain/entity"
	"disclosure_backend/internal/feature/assistant/usecase"
	disclosure "disclosure_backend/internal/feature/disclosure/domain/entity"
	similar "disclosure_backend/internal/feature/similarcompany/domain/entity"
	similarusecase "disclosure_backend/internal/feature/similarcompany/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ErrDB = errors.New("database error")

type mockPeerFinder struct {
	FindFunc func(ctx context.Context, query string, elaborate bool, elaborator similarusecase.Elaborator) (*similar.Answer, error)
}

func (m *mockPeerFinder) Find(ctx context.Context, query string, elaborate bool, elaborator similarusecase.Elaborator) (*similar.Answer, error) {
	return m.FindFunc(ctx, query, elaborate, elaborator)
}

type mockRatioFinder struct {
	RatiosFunc func(ctx context.Context, query disclosure.RatioQuery) (*disclosure.RatioReport, error)
}

func (m *mockRatioFinder) Ratios(ctx context.Context, query disclosure.RatioQuery) (*disclosure.RatioReport, error) {
	return m.RatiosFunc(ctx, query)
}

type mockSearcher struct {
	SearchFunc func(ctx context.Context, field disclosure.SearchField, term string) ([]disclosure.Disclosure, error)
}

func (m *mockSearcher) Search(ctx context.Context, field disclosure.SearchField, term string) ([]disclosure.Disclosure, error) {
	return m.SearchFunc(ctx, field, term)
}

type stubElaborator struct{}

func (stubElaborator) Elaborate(ctx context.Context, prompt string) (string, error) { return "", nil }

type mockFactory struct {
	withKey bool
	Keys    []string
}

func (m *mockFactory) Elaborator(requestKey string) similarusecase.Elaborator {
	m.Keys = append(m.Keys, requestKey)
	if !m.withKey {
		return nil
	}
	return stubElaborator{}
}

// unexpected は呼ばれたらテストを失敗させるモックを返します。
func unexpected(t *testing.T) (*mockPeerFinder, *mockRatioFinder, *mockSearcher) {
	t.Helper()
	peers := &mockPeerFinder{FindFunc: func(ctx context.Context, query string, elaborate bool, elaborator similarusecase.Elaborator) (*similar.Answer, error) {
		t.Error("peer finder must not be called")
		return nil, nil
	}}
	ratios := &mockRatioFinder{RatiosFunc: func(ctx context.Context, query disclosure.RatioQuery) (*disclosure.RatioReport, error) {
		t.Error("ratio finder must not be called")
		return nil, nil
	}}
	search := &mockSearcher{SearchFunc: func(ctx context.Context, field disclosure.SearchField, term string) ([]disclosure.Disclosure, error) {
		t.Error("searcher must not be called")
		return nil, nil
	}}
	return peers, ratios, search
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		question string
		want     entity.Route
	}{
		{"가상자산 사업 유사기업", entity.RoutePeer},
		{"게임 회사와 유사한 곳", entity.RoutePeer},
		{"2022년 이후 금융 EV/Sales", entity.RouteRatio},
		{"ev/sales 알려줘", entity.RouteRatio},
		{"보안 업종 재무비율", entity.RouteRatio},
		{"유사기업 재무비율", entity.RoutePeer},
		{"위메이드", entity.RouteSearch},
	}
	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, usecase.Classify(tt.question))
		})
	}
}

func TestAssistantUsecase_Ask_Peer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		withKey        bool
		wantElaborator bool
	}{
		{name: "elaborates when a credential is available", withKey: true, wantElaborator: true},
		{name: "requests elaboration without a credential", withKey: false, wantElaborator: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, ratios, search := unexpected(t)
			factory := &mockFactory{withKey: tt.withKey}
			want := &similar.Answer{Result: &similar.QueryResult{Keyword: "가상자산"}}
			peers := &mockPeerFinder{FindFunc: func(ctx context.Context, query string, elaborate bool, elaborator similarusecase.Elaborator) (*similar.Answer, error) {
				assert.Equal(t, "가상자산 사업 유사기업", query)
				assert.True(t, elaborate, "elaboration is always requested so the status reports a missing credential")
				assert.Equal(t, tt.wantElaborator, elaborator != nil)
				return want, nil
			}}
			uc := usecase.NewAssistantUsecase(peers, ratios, search, factory, nil)

			got, err := uc.Ask(context.Background(), "  가상자산 사업 유사기업 ", "sk-user")
			require.NoError(t, err)
			assert.Equal(t, entity.RoutePeer, got.Route)
			assert.Same(t, want, got.Peer)
			assert.Equal(t, []string{"sk-user"}, factory.Keys)
		})
	}
}

func TestAssistantUsecase_Ask_Ratio(t *testing.T) {
	t.Parallel()

	peers, _, search := unexpected(t)
	report := &disclosure.RatioReport{Query: disclosure.RatioQuery{Sector: "게임"}}
	ratios := &mockRatioFinder{RatiosFunc: func(ctx context.Context, query disclosure.RatioQuery) (*disclosure.RatioReport, error) {
		assert.Equal(t, "게임", query.Sector)
		return report, nil
	}}
	parse := func(question string) disclosure.RatioQuery {
		assert.Equal(t, "게임 EV/Sales", question)
		return disclosure.RatioQuery{Sector: "게임"}
	}
	uc := usecase.NewAssistantUsecase(peers, ratios, search, nil, parse)

	got, err := uc.Ask(context.Background(), "게임 EV/Sales", "")
	require.NoError(t, err)
	assert.Equal(t, entity.RouteRatio, got.Route)
	assert.Same(t, report, got.Ratio)
	assert.Nil(t, got.Peer)
}

func TestAssistantUsecase_Ask_Search(t *testing.T) {
	t.Parallel()

	peers, ratios, _ := unexpected(t)
	search := &mockSearcher{SearchFunc: func(ctx context.Context, field disclosure.SearchField, term string) ([]disclosure.Disclosure, error) {
		assert.Equal(t, disclosure.SearchByAny, field)
		assert.Equal(t, "위메이드", term)
		return []disclosure.Disclosure{{ID: 1}}, nil
	}}
	uc := usecase.NewAssistantUsecase(peers, ratios, search, nil, nil)

	got, err := uc.Ask(context.Background(), "위메이드", "")
	require.NoError(t, err)
	assert.Equal(t, entity.RouteSearch, got.Route)
	assert.Len(t, got.Search, 1)
}

func TestAssistantUsecase_Ask_Errors(t *testing.T) {
	t.Parallel()

	peers := &mockPeerFinder{FindFunc: func(ctx context.Context, query string, elaborate bool, elaborator similarusecase.Elaborator) (*similar.Answer, error) {
		return nil, ErrDB
	}}
	ratios := &mockRatioFinder{RatiosFunc: func(ctx context.Context, query disclosure.RatioQuery) (*disclosure.RatioReport, error) {
		return nil, ErrDB
	}}
	search := &mockSearcher{SearchFunc: func(ctx context.Context, field disclosure.SearchField, term string) ([]disclosure.Disclosure, error) {
		return nil, ErrDB
	}}
	parse := func(string) disclosure.RatioQuery { return disclosure.RatioQuery{Sector: "금융"} }
	uc := usecase.NewAssistantUsecase(peers, ratios, search, nil, parse)

	for _, q := range []string{"유사기업", "재무비율", "위메이드"} {
		got, err := uc.Ask(context.Background(), q, "")
		assert.Nil(t, got, q)
		assert.ErrorIs(t, err, ErrDB, q)
	}
}
