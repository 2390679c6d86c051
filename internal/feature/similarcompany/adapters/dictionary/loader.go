// Package dictionary はキーワード辞書と類似産業表の読み込みを提供します。
// 既定の辞書はバイナリに埋め込まれており、ファイルパスを指定すると差し替えられます。
package dictionary

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"disclosure_backend/internal/feature/similarcompany/domain"
	"disclosure_backend/internal/feature/similarcompany/domain/entity"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed assets/*.json
var assets embed.FS

const (
	keywordsAsset       = "assets/keywords.json"
	similarAsset        = "assets/similar_industries.json"
	keywordsSchemaAsset = "assets/keywords.schema.json"
	similarSchemaAsset  = "assets/similar_industries.schema.json"
)

// keywordDocument は keywords.json の構造です。
type keywordDocument struct {
	Keywords map[string][]string `json:"keywords"`
	Priority []string            `json:"priority"`
	Generic  []string            `json:"generic"`
}

// Load は辞書を読み込みます。パスが空の場合は埋め込みの既定値を使います。
func Load(keywordsPath, similarPath string) (*entity.Dictionary, error) {
	kw, err := read(keywordsPath, keywordsAsset)
	if err != nil {
		return nil, err
	}
	sim, err := read(similarPath, similarAsset)
	if err != nil {
		return nil, err
	}
	return Parse(kw, sim)
}

// Parse はJSONスキーマで2つの文書を検証し、Dictionaryを構築します。
func Parse(keywordsJSON, similarJSON []byte) (*entity.Dictionary, error) {
	if err := validate(keywordsSchemaAsset, keywordsJSON); err != nil {
		return nil, fmt.Errorf("keywords: %w", err)
	}
	if err := validate(similarSchemaAsset, similarJSON); err != nil {
		return nil, fmt.Errorf("similar industries: %w", err)
	}

	var doc keywordDocument
	if err := json.Unmarshal(keywordsJSON, &doc); err != nil {
		return nil, fmt.Errorf("%w: keywords: %w", domain.ErrInvalidDictionary, err)
	}
	var similar map[string][]string
	if err := json.Unmarshal(similarJSON, &similar); err != nil {
		return nil, fmt.Errorf("%w: similar industries: %w", domain.ErrInvalidDictionary, err)
	}

	return entity.NewDictionary(doc.Keywords, similar, doc.Priority, doc.Generic)
}

func read(path, fallback string) ([]byte, error) {
	if path == "" {
		return assets.ReadFile(fallback)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionary %s: %w", path, err)
	}
	return b, nil
}

func validate(schemaAsset string, doc []byte) error {
	schema, err := assets.ReadFile(schemaAsset)
	if err != nil {
		return err
	}

	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schema), gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidDictionary, err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("%w: %s", domain.ErrInvalidDictionary, strings.Join(errs, "; "))
	}
	return nil
}
