// Package dto defines response bodies shared by every feature's HTTP handlers.
package dto

// ErrorResponse はエラー時のレスポンスボディです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse は処理結果のメッセージだけを返すレスポンスボディです。
type MessageResponse struct {
	Message string `json:"message"`
}
