// Package middleware はプラットフォーム共通のginミドルウェアを提供します。
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderRequestID はリクエストIDを受け渡すヘッダーです。
	HeaderRequestID = "X-Request-ID"
	// ContextRequestID はリクエストIDを保存するgin.Contextのキーです。
	ContextRequestID = "requestID"

	maxRequestIDLen = 128
)

// RequestID は受け取ったX-Request-IDをそのまま返し、ない場合はUUIDを発行します。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		c.Set(ContextRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}
