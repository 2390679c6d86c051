// Package dto defines data transfer objects for the assistant HTTP API.
package dto

import (
	"disclosure_backend/internal/feature/assistant/domain/entity"
	disclosuredto "disclosure_backend/internal/feature/disclosure/transport/http/dto"
	similardto "disclosure_backend/internal/feature/similarcompany/transport/http/dto"
)

// AskRequest は質問のリクエストボディです。
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse は質問への応答です。route に対応するフィールドだけが含まれます。
type AskResponse struct {
	Question string                             `json:"question"`
	Route    string                             `json:"route"`
	Message  string                             `json:"message,omitempty"`
	Peer     *similardto.SimilarCompanyResponse `json:"peer,omitempty"`
	Ratio    *disclosuredto.RatioResponse       `json:"ratio,omitempty"`
	Search   *disclosuredto.SearchResponse      `json:"search,omitempty"`
}

// FromReply は応答をレスポンスに変換します。
func FromReply(r *entity.Reply) AskResponse {
	out := AskResponse{Question: r.Question, Route: string(r.Route)}
	switch {
	case r.Peer != nil:
		peer := similardto.FromAnswer(r.Peer)
		out.Peer = &peer
	case r.Ratio != nil:
		ratio := disclosuredto.FromRatioReport(r.Ratio)
		out.Ratio = &ratio
	case r.Route == entity.RouteSearch:
		out.Search = &disclosuredto.SearchResponse{
			Field:   "any",
			Query:   r.Question,
			Count:   len(r.Search),
			Results: disclosuredto.FromDisclosures(r.Search),
		}
	}
	return out
}
