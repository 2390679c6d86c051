// Package handler はsimilarcompanyフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"disclosure_backend/internal/feature/similarcompany/domain"
	"disclosure_backend/internal/feature/similarcompany/domain/entity"
	"disclosure_backend/internal/feature/similarcompany/transport/http/dto"
	"disclosure_backend/internal/feature/similarcompany/usecase"
	httpdto "disclosure_backend/internal/platform/http/dto"
	"disclosure_backend/internal/platform/metrics"

	"github.com/gin-gonic/gin"
)

// HeaderLLMAPIKey はリクエストごとのLLM APIキーを渡すヘッダーです。
const HeaderLLMAPIKey = "X-LLM-API-Key"

// SimilarCompanyUsecase は類似企業検索のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type SimilarCompanyUsecase interface {
	Find(ctx context.Context, query string, elaborate bool, elaborator usecase.Elaborator) (*entity.Answer, error)
}

// ElaboratorFactory はリクエストのAPIキーからElaboratorを用意します。キーがない場合はnilです。
type ElaboratorFactory interface {
	Elaborator(requestKey string) usecase.Elaborator
}

// SimilarCompanyHandler は類似企業検索のHTTPリクエストを処理します。
type SimilarCompanyHandler struct {
	uc      SimilarCompanyUsecase
	factory ElaboratorFactory
}

// NewSimilarCompanyHandler はSimilarCompanyHandlerの新しいインスタンスを生成します。
// factoryがnilの場合、補足説明は常にAPIキーなしとして扱われます。
func NewSimilarCompanyHandler(uc SimilarCompanyUsecase, factory ElaboratorFactory) *SimilarCompanyHandler {
	return &SimilarCompanyHandler{uc: uc, factory: factory}
}

// Find は質問から類似企業を検索します。
//
// エンドポイント例:
// POST /v1/similar-companies {"query": "가상자산 사업 유사기업", "elaborate": true}
func (h *SimilarCompanyHandler) Find(c *gin.Context) {
	var req dto.SimilarCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid request"})
		return
	}

	var elaborator usecase.Elaborator
	if req.Elaborate && h.factory != nil {
		elaborator = h.factory.Elaborator(c.GetHeader(HeaderLLMAPIKey))
	}

	answer, err := h.uc.Find(c.Request.Context(), req.Query, req.Elaborate, elaborator)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrInvalidInput):
		metrics.MatchTotal.WithLabelValues("invalid_input", "").Inc()
		c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: err.Error()})
		return
	case errors.Is(err, domain.ErrNoMatch):
		metrics.MatchTotal.WithLabelValues("no_match", "").Inc()
		slog.Info("no keyword matched", "query", req.Query)
		c.JSON(http.StatusOK, dto.NoMatchResponse{Matched: false, Query: req.Query, Message: dto.NoMatchMessage})
		return
	case errors.Is(err, domain.ErrDataUnavailable):
		metrics.MatchTotal.WithLabelValues("unavailable", "").Inc()
		slog.Error("similar company lookup failed", "error", err, "query", req.Query)
		c.JSON(http.StatusServiceUnavailable, httpdto.ErrorResponse{Error: domain.ErrDataUnavailable.Error()})
		return
	default:
		slog.Error("unexpected similar company error", "error", err, "query", req.Query)
		c.JSON(http.StatusInternalServerError, httpdto.ErrorResponse{Error: "internal server error"})
		return
	}

	metrics.MatchTotal.WithLabelValues("matched", string(answer.Result.MatchType)).Inc()
	metrics.ElaborationTotal.WithLabelValues(string(answer.ElaborationStatus)).Inc()
	c.JSON(http.StatusOK, dto.FromAnswer(answer))
}
