// Package gemini はGoogle Gemini APIを使った補足説明の生成を提供します。
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"disclosure_backend/internal/feature/similarcompany/usecase"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"
)

// GeminiElaborator はGoogle Gemini APIを使用して補足説明を生成します。
type GeminiElaborator struct {
	client *genai.Client
	model  string
}

// GeminiElaboratorがElaboratorを実装していることをコンパイル時に検証します。
var _ usecase.Elaborator = (*GeminiElaborator)(nil)

// Config はGeminiElaboratorの設定です。
type Config struct {
	APIKey     string
	Model      string       // 空の場合は DefaultModel
	BaseURL    string       // 空の場合はGemini APIの既定エンドポイント
	HTTPClient *http.Client // nilの場合はgenaiの既定クライアント
}

// NewGeminiElaborator はAPIキーでGeminiElaboratorの新しいインスタンスを生成します。
func NewGeminiElaborator(ctx context.Context, cfg Config) (*GeminiElaborator, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  cfg.HTTPClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiElaborator{client: client, model: cfg.Model}, nil
}

// Elaborate はプロンプトを使用して補足説明を生成します。
func (g *GeminiElaborator) Elaborate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.3),
		TopP:            genai.Ptr[float32](0.9),
		MaxOutputTokens: 1500,
	})
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}
	// 候補がない、または安全フィルターでブロックされた場合は本文が空になる
	text := resp.Text()
	if text == "" {
		return "", errors.New("gemini API returned no text")
	}
	return text, nil
}
