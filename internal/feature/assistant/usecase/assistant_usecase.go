// Package usecase はassistantフィーチャーのビジネスロジックを実装します。
// 自由形式の質問を分類し、類似企業検索・評価指標検索・公示検索のいずれかに振り分けます。
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"disclosure_backend/internal/feature/assistant/domain/entity"
	disclosure "disclosure_backend/internal/feature/disclosure/domain/entity"
	similar "disclosure_backend/internal/feature/similarcompany/domain/entity"
	similarusecase "disclosure_backend/internal/feature/similarcompany/usecase"
)

// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。

// PeerFinder は類似企業検索の機能です。
type PeerFinder interface {
	Find(ctx context.Context, query string, elaborate bool, elaborator similarusecase.Elaborator) (*similar.Answer, error)
}

// RatioFinder は評価指標検索の機能です。
type RatioFinder interface {
	Ratios(ctx context.Context, query disclosure.RatioQuery) (*disclosure.RatioReport, error)
}

// DisclosureSearcher は公示検索の機能です。
type DisclosureSearcher interface {
	Search(ctx context.Context, field disclosure.SearchField, term string) ([]disclosure.Disclosure, error)
}

// ElaboratorFactory はAPIキーからElaboratorを用意します。キーがない場合はnilです。
type ElaboratorFactory interface {
	Elaborator(requestKey string) similarusecase.Elaborator
}

// RatioQuestionParser は評価指標の質問を検索条件に変換します。
type RatioQuestionParser func(question string) disclosure.RatioQuery

var (
	peerKeywords  = []string{"유사기업", "유사"}
	ratioKeywords = []string{"ev/sales", "재무비율"}
)

// AssistantUsecase は質問の振り分けを行います。
type AssistantUsecase struct {
	peers   PeerFinder
	ratios  RatioFinder
	search  DisclosureSearcher
	factory ElaboratorFactory
	parse   RatioQuestionParser
	logger  *slog.Logger
}

// NewAssistantUsecase はAssistantUsecaseの新しいインスタンスを生成します。
// factory がnilの場合、類似企業検索の補足説明は行いません。
func NewAssistantUsecase(peers PeerFinder, ratios RatioFinder, search DisclosureSearcher, factory ElaboratorFactory, parse RatioQuestionParser) *AssistantUsecase {
	return &AssistantUsecase{
		peers:   peers,
		ratios:  ratios,
		search:  search,
		factory: factory,
		parse:   parse,
		logger:  slog.Default().With("component", "assistant"),
	}
}

// Classify は質問の振り分け先を返します。
// 「유사」を含む質問が最優先で、次に「EV/Sales」「재무비율」、それ以外は公示検索です。
func Classify(question string) entity.Route {
	q := strings.ToLower(question)
	for _, kw := range peerKeywords {
		if strings.Contains(q, kw) {
			return entity.RoutePeer
		}
	}
	for _, kw := range ratioKeywords {
		if strings.Contains(q, kw) {
			return entity.RouteRatio
		}
	}
	return entity.RouteSearch
}

// Ask は質問を分類し、対応する機能の結果を返します。
// credential はリクエストごとのLLM APIキーで、空の場合はサーバーの既定キーが使われます。
func (u *AssistantUsecase) Ask(ctx context.Context, question, credential string) (*entity.Reply, error) {
	question = strings.TrimSpace(question)
	reply := &entity.Reply{Question: question, Route: Classify(question)}
	u.logger.Debug("question routed", "route", reply.Route)

	switch reply.Route {
	case entity.RoutePeer:
		var elaborator similarusecase.Elaborator
		if u.factory != nil {
			elaborator = u.factory.Elaborator(credential)
		}
		answer, err := u.peers.Find(ctx, question, true, elaborator)
		if err != nil {
			return nil, fmt.Errorf("peer search: %w", err)
		}
		reply.Peer = answer
	case entity.RouteRatio:
		report, err := u.ratios.Ratios(ctx, u.parse(question))
		if err != nil {
			return nil, fmt.Errorf("ratio lookup: %w", err)
		}
		reply.Ratio = report
	default:
		records, err := u.search.Search(ctx, disclosure.SearchByAny, question)
		if err != nil {
			return nil, fmt.Errorf("disclosure search: %w", err)
		}
		reply.Search = records
	}
	return reply, nil
}
