// Package entity defines the domain models for the assistant feature.
package entity

import (
	disclosure "disclosure_backend/internal/feature/disclosure/domain/entity"
	similar "disclosure_backend/internal/feature/similarcompany/domain/entity"
)

// Route は質問がどの機能に振り分けられたかを表します。
type Route string

const (
	RoutePeer   Route = "peer"   // 類似企業検索
	RouteRatio  Route = "ratio"  // 評価指標検索
	RouteSearch Route = "search" // 公示の全文検索
)

// Reply は質問への応答です。Route に対応するフィールドだけが設定されます。
type Reply struct {
	Question string
	Route    Route
	Peer     *similar.Answer
	Ratio    *disclosure.RatioReport
	Search   []disclosure.Disclosure
}
