// Package dto defines data transfer objects for the similarcompany HTTP API.
package dto

import (
	disclosuredto "disclosure_backend/internal/feature/disclosure/transport/http/dto"
	"disclosure_backend/internal/feature/similarcompany/domain/entity"
)

// NoMatchMessage はキーワードが見つからなかった場合に利用者へ返す案内文です。
const NoMatchMessage = "질문에서 업종 키워드를 찾지 못했습니다. 사업 분야를 포함해 다시 질문해주세요. (예: 가상자산 사업 유사기업)"

// SimilarCompanyRequest は類似企業検索のリクエストボディです。
type SimilarCompanyRequest struct {
	Query     string `json:"query"`
	Elaborate bool   `json:"elaborate"`
}

// SimilarCompanyResponse は類似企業検索のレスポンスです。
type SimilarCompanyResponse struct {
	Matched           bool                               `json:"matched"`
	Query             string                             `json:"query"`
	Keyword           string                             `json:"keyword"`
	MatchType         string                             `json:"match_type"`
	Confidence        float64                            `json:"confidence"`
	Category          string                             `json:"category"`
	SimilarCategories []string                           `json:"similar_categories"`
	Count             int                                `json:"count"`
	Summary           string                             `json:"summary"`
	Sentences         []string                           `json:"sentences"`
	Records           []disclosuredto.DisclosureResponse `json:"records"`
	Elaboration       string                             `json:"elaboration,omitempty"`
	FollowUpQuestions []string                           `json:"follow_up_questions,omitempty"`
	ElaborationStatus string                             `json:"elaboration_status"`
}

// NoMatchResponse はキーワードが見つからなかった場合のレスポンスです。
type NoMatchResponse struct {
	Matched bool   `json:"matched"`
	Query   string `json:"query"`
	Message string `json:"message"`
}

// FromAnswer は検索結果をレスポンスに変換します。
func FromAnswer(a *entity.Answer) SimilarCompanyResponse {
	r := a.Result
	return SimilarCompanyResponse{
		Matched:           true,
		Query:             r.Query,
		Keyword:           r.Keyword,
		MatchType:         string(r.MatchType),
		Confidence:        r.Confidence,
		Category:          r.Category,
		SimilarCategories: nonNil(r.SimilarCategories),
		Count:             len(r.Records),
		Summary:           r.Summary,
		Sentences:         nonNil(r.Sentences),
		Records:           disclosuredto.FromDisclosures(r.Records),
		Elaboration:       a.Elaboration,
		FollowUpQuestions: a.FollowUpQuestions,
		ElaborationStatus: string(a.ElaborationStatus),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
