// Package openai はlangchaingoのOpenAIクライアントを使った補足説明の生成を提供します。
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"disclosure_backend/internal/feature/similarcompany/usecase"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const (
	// DefaultModel はOpenAI APIのデフォルトモデルです。
	DefaultModel = "gpt-4"

	systemPrompt = "당신은 한국 기업 공시와 외부평가 보고서를 분석하는 금융 분석 전문가입니다. 데이터에 근거해 정확하게 답변해주세요."
)

// Config はOpenAIElaboratorの設定です。
type Config struct {
	APIKey     string
	Model      string
	BaseURL    string // 空の場合はOpenAIの既定エンドポイント
	HTTPClient *http.Client
}

// OpenAIElaborator はOpenAIのチャットモデルで補足説明を生成します。
type OpenAIElaborator struct {
	client llms.Model
}

// OpenAIElaboratorがElaboratorを実装していることをコンパイル時に検証します。
var _ usecase.Elaborator = (*OpenAIElaborator)(nil)

// NewOpenAIElaborator は設定からOpenAIElaboratorを生成します。
func NewOpenAIElaborator(cfg Config) (*OpenAIElaborator, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, openai.WithHTTPClient(cfg.HTTPClient))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create openai client: %w", err)
	}
	return &OpenAIElaborator{client: client}, nil
}

// Elaborate はプロンプトをチャットモデルに送り、最初の候補の本文を返します。
func (e *OpenAIElaborator) Elaborate(ctx context.Context, prompt string) (string, error) {
	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(systemPrompt)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(prompt)},
		},
	}

	resp, err := e.client.GenerateContent(ctx, content,
		llms.WithMaxTokens(1500),
		llms.WithTemperature(0.3),
		llms.WithTopP(0.9),
		llms.WithFrequencyPenalty(0.1),
		llms.WithPresencePenalty(0.1),
	)
	if err != nil {
		return "", fmt.Errorf("openai API request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai API returned no choices")
	}
	return resp.Choices[0].Content, nil
}
