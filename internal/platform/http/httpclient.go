// Package http はプラットフォーム共通のHTTPクライアント設定を提供します。
package http

import (
	"net"
	"net/http"
	"time"
)

// DefaultLLMTimeout はLLM呼び出し1回あたりの既定のタイムアウトです。生成に時間がかかるため長めにしています。
const DefaultLLMTimeout = 60 * time.Second

// NewHTTPClient はLLMなど外部API呼び出し用のHTTPクライアントを作成します。
// http.DefaultClientにはタイムアウトがないため、常にこのクライアントを使います。
// timeout が0以下の場合は DefaultLLMTimeout を使います。
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultLLMTimeout
	}
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
