// Package handler はassistantフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"disclosure_backend/internal/feature/assistant/domain/entity"
	"disclosure_backend/internal/feature/assistant/transport/http/dto"
	disclosuredomain "disclosure_backend/internal/feature/disclosure/domain"
	similardomain "disclosure_backend/internal/feature/similarcompany/domain"
	similarhandler "disclosure_backend/internal/feature/similarcompany/transport/handler"
	similardto "disclosure_backend/internal/feature/similarcompany/transport/http/dto"
	httpdto "disclosure_backend/internal/platform/http/dto"

	"github.com/gin-gonic/gin"
)

// AssistantUsecase は質問振り分けのユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type AssistantUsecase interface {
	Ask(ctx context.Context, question, credential string) (*entity.Reply, error)
}

// AssistantHandler は自由形式の質問を処理します。
type AssistantHandler struct {
	uc AssistantUsecase
}

// NewAssistantHandler はAssistantHandlerの新しいインスタンスを生成します。
func NewAssistantHandler(uc AssistantUsecase) *AssistantHandler {
	return &AssistantHandler{uc: uc}
}

// Ask は質問を受け付け、振り分け先の結果を返します。
//
// エンドポイント例:
// POST /v1/ask {"question": "2022년 이후 금융 EV/Sales"}
func (h *AssistantHandler) Ask(c *gin.Context) {
	var req dto.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid request"})
		return
	}

	reply, err := h.uc.Ask(c.Request.Context(), req.Question, c.GetHeader(similarhandler.HeaderLLMAPIKey))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, dto.FromReply(reply))
	case errors.Is(err, similardomain.ErrNoMatch):
		c.JSON(http.StatusOK, dto.AskResponse{
			Question: req.Question,
			Route:    string(entity.RoutePeer),
			Message:  similardto.NoMatchMessage,
		})
	case errors.Is(err, similardomain.ErrInvalidInput), errors.Is(err, disclosuredomain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, similardomain.ErrDataUnavailable), errors.Is(err, disclosuredomain.ErrDataUnavailable):
		slog.Error("assistant lookup failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, httpdto.ErrorResponse{Error: "disclosure store unavailable"})
	default:
		slog.Error("unexpected assistant error", "error", err)
		c.JSON(http.StatusInternalServerError, httpdto.ErrorResponse{Error: "internal server error"})
	}
}
