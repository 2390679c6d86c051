package entity

import (
	disclosure "disclosure_backend/internal/feature/disclosure/domain/entity"
)

// MatchType はキーワードがどのように見つかったかを表します。
type MatchType string

const (
	MatchExact    MatchType = "exact"    // 辞書のキーワードが質問に含まれていた
	MatchCategory MatchType = "category" // 産業分類名が質問に含まれていた
	MatchFuzzy    MatchType = "fuzzy"    // 編集距離による近似一致
)

// QueryResult is the outcome of matching one query. It is created per request and
// never shared across requests.
type QueryResult struct {
	Query             string
	Keyword           string
	MatchType         MatchType
	Confidence        float64
	Category          string
	SimilarCategories []string
	Records           []disclosure.Disclosure // 発行日の新しい順
	Summary           string
	Sentences         []string
}

// ExpandedCategories は代表分類と類似産業を合わせた検索対象の分類です。
func (r *QueryResult) ExpandedCategories() []string {
	return append([]string{r.Category}, r.SimilarCategories...)
}

// ElaborationStatus はLLMによる補足説明の結果です。
type ElaborationStatus string

const (
	ElaborationSkipped   ElaborationStatus = "skipped"       // 要求されなかった
	ElaborationNoKey     ElaborationStatus = "no_credential" // APIキーがない
	ElaborationFailed    ElaborationStatus = "failed"
	ElaborationCompleted ElaborationStatus = "completed"
)

// Answer は類似企業検索の結果に、任意のLLM補足説明を加えたものです。
type Answer struct {
	Result            *QueryResult
	Elaboration       string
	FollowUpQuestions []string
	ElaborationStatus ElaborationStatus
}
