package router

import (
	assistanthandler "disclosure_backend/internal/feature/assistant/transport/handler"
	disclosurehandler "disclosure_backend/internal/feature/disclosure/transport/handler"
	similarhandler "disclosure_backend/internal/feature/similarcompany/transport/handler"
	"disclosure_backend/internal/platform/http/handler"
	"disclosure_backend/internal/platform/http/middleware"
	jwtmw "disclosure_backend/internal/platform/jwt"
	"disclosure_backend/internal/platform/metrics"

	"github.com/gin-gonic/gin"
)

// Handlers はルーターに登録するフィーチャーのハンドラーです。
type Handlers struct {
	Disclosure     *disclosurehandler.DisclosureHandler
	SimilarCompany *similarhandler.SimilarCompanyHandler
	Assistant      *assistanthandler.AssistantHandler
}

// Options はルーター全体の設定です。
type Options struct {
	// JWTSecret が空の場合、/v1 は認証なしで公開されます。
	JWTSecret string
	// Readiness は /readyz で確認する依存先です。
	Readiness map[string]handler.Pinger
}

func NewRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RequestID(), metrics.Middleware())

	// 認証不要
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.GET("/readyz", handler.Ready(opts.Readiness))
	r.GET("/metrics", metrics.Handler())

	v1 := r.Group("/v1")
	if opts.JWTSecret != "" {
		v1.Use(jwtmw.AuthRequired(opts.JWTSecret))
	}
	{
		v1.POST("/similar-companies", h.SimilarCompany.Find)
		v1.GET("/disclosures", h.Disclosure.Search)
		v1.GET("/sectors", h.Disclosure.ListSectors)
		v1.GET("/ratios", h.Disclosure.Ratios)
		v1.POST("/ask", h.Assistant.Ask)
	}

	return r
}
