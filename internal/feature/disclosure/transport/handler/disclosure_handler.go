// Package handler はdisclosureフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"disclosure_backend/internal/feature/disclosure/domain"
	"disclosure_backend/internal/feature/disclosure/domain/entity"
	"disclosure_backend/internal/feature/disclosure/transport/http/dto"
	httpdto "disclosure_backend/internal/platform/http/dto"

	"github.com/gin-gonic/gin"
)

// SearchUsecase は公示検索のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type SearchUsecase interface {
	Search(ctx context.Context, field entity.SearchField, term string) ([]entity.Disclosure, error)
	ListSectors(ctx context.Context) ([]string, error)
}

// RatioUsecase は評価指標検索のユースケースインターフェースを定義します。
type RatioUsecase interface {
	Ratios(ctx context.Context, query entity.RatioQuery) (*entity.RatioReport, error)
}

// DisclosureHandler は公示検索と評価指標のHTTPリクエストを処理します。
type DisclosureHandler struct {
	search SearchUsecase
	ratios RatioUsecase
}

// NewDisclosureHandler は指定されたusecaseでDisclosureHandlerの新しいインスタンスを生成します。
func NewDisclosureHandler(search SearchUsecase, ratios RatioUsecase) *DisclosureHandler {
	return &DisclosureHandler{search: search, ratios: ratios}
}

// Search は公示をフィールド指定で検索します。
//
// エンドポイント例:
// GET /v1/disclosures?field=company&q=위메이드
func (h *DisclosureHandler) Search(c *gin.Context) {
	field := entity.SearchField(c.DefaultQuery("field", string(entity.SearchByAny)))
	term := c.Query("q")

	records, err := h.search.Search(c.Request.Context(), field, term)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SearchResponse{
		Field:   string(field),
		Query:   strings.TrimSpace(term),
		Count:   len(records),
		Results: dto.FromDisclosures(records),
	})
}

// ListSectors は公示発行企業のセクター一覧を返します。
func (h *DisclosureHandler) ListSectors(c *gin.Context) {
	sectors, err := h.search.ListSectors(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if sectors == nil {
		sectors = []string{}
	}
	c.JSON(http.StatusOK, dto.SectorsResponse{Sectors: sectors})
}

// Ratios はセクターの評価指標とEV/Salesの統計を返します。
//
// エンドポイント例:
// GET /v1/ratios?sector=금융&since=2022-01-01
func (h *DisclosureHandler) Ratios(c *gin.Context) {
	query := entity.RatioQuery{Sector: c.Query("sector")}
	if s := c.Query("since"); s != "" {
		since, err := time.Parse("2006-01-02", s)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "since must be YYYY-MM-DD"})
			return
		}
		query.Since = &since
	}

	report, err := h.ratios.Ratios(c.Request.Context(), query)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromRatioReport(report))
}

// writeError はドメインエラーをHTTPステータスに変換して書き込みます。
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrDataUnavailable):
		slog.Error("disclosure store unavailable", "error", err, "path", c.FullPath())
		c.JSON(http.StatusServiceUnavailable, httpdto.ErrorResponse{Error: domain.ErrDataUnavailable.Error()})
	default:
		slog.Error("unexpected disclosure error", "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, httpdto.ErrorResponse{Error: "internal server error"})
	}
}
