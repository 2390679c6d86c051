// Package metrics はPrometheusのコレクターと /metrics ハンドラーを提供します。
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// MatchTotal はキーワードマッチングの結果（matched, no_match, invalid_input, unavailable）ごとの件数です。
	MatchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "similar_company_match_total",
			Help: "Total number of similar-company queries by outcome",
		},
		[]string{"outcome", "match_type"},
	)

	// ElaborationTotal はLLM補足説明のステータスごとの件数です。
	ElaborationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "similar_company_elaboration_total",
			Help: "Total number of elaboration attempts by status",
		},
		[]string{"status"},
	)

	// RequestDuration はHTTPリクエストの処理時間です。
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// Middleware はルートごとのリクエスト処理時間を記録します。
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		RequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// Handler は /metrics エンドポイントのハンドラーです。
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
