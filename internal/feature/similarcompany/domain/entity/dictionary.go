// Package entity defines the domain models for the similarcompany feature.
package entity

import (
	"fmt"
	"sort"
	"strings"

	"disclosure_backend/internal/feature/similarcompany/domain"
)

// Dictionary はキーワード→産業分類と、産業分類→類似産業の2つの静的な対応表です。
// 起動時に一度だけ構築され、以後は読み取り専用で複数のリクエストから共有されます。
type Dictionary struct {
	keywords map[string][]string // 小文字化したキーワード → 産業分類（先頭が代表）
	similar  map[string][]string // 産業分類 → 類似産業（順序を保持）
	priority map[string]struct{}
	generic  map[string]struct{}

	sortedKeywords   []string
	sortedCategories []string
	sortedPriority   []string
}

// NewDictionary は対応表を検証してDictionaryを生成します。
// すべてのキーワードは1つ以上の産業分類を持ち、その分類はすべて類似産業表に存在する必要があります。
func NewDictionary(keywords map[string][]string, similar map[string][]string, priority, generic []string) (*Dictionary, error) {
	d := &Dictionary{
		keywords: make(map[string][]string, len(keywords)),
		similar:  make(map[string][]string, len(similar)),
		priority: toSet(priority),
		generic:  toSet(generic),
	}

	for cat, sims := range similar {
		cat = strings.TrimSpace(cat)
		if cat == "" {
			return nil, fmt.Errorf("%w: empty category name", domain.ErrInvalidDictionary)
		}
		d.similar[cat] = append([]string(nil), sims...)
		d.sortedCategories = append(d.sortedCategories, cat)
	}

	for kw, cats := range keywords {
		norm := strings.Join(strings.Fields(strings.ToLower(kw)), " ")
		if norm == "" {
			return nil, fmt.Errorf("%w: empty keyword", domain.ErrInvalidDictionary)
		}
		if len(cats) == 0 {
			return nil, fmt.Errorf("%w: keyword %q has no category", domain.ErrInvalidDictionary, kw)
		}
		for _, c := range cats {
			if _, ok := d.similar[c]; !ok {
				return nil, fmt.Errorf("%w: keyword %q maps to unknown category %q", domain.ErrInvalidDictionary, kw, c)
			}
		}
		if _, dup := d.keywords[norm]; dup {
			return nil, fmt.Errorf("%w: duplicate keyword %q", domain.ErrInvalidDictionary, kw)
		}
		d.keywords[norm] = append([]string(nil), cats...)
		d.sortedKeywords = append(d.sortedKeywords, norm)
	}

	for w := range d.priority {
		d.sortedPriority = append(d.sortedPriority, w)
	}

	sort.Strings(d.sortedKeywords)
	sort.Strings(d.sortedCategories)
	sort.Strings(d.sortedPriority)
	return d, nil
}

func toSet(words []string) map[string]struct{} {
	s := make(map[string]struct{}, len(words))
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			s[w] = struct{}{}
		}
	}
	return s
}

// Keywords はキーワードを昇順で返します。
func (d *Dictionary) Keywords() []string { return d.sortedKeywords }

// Categories は類似産業表に登録された産業分類を昇順で返します。
func (d *Dictionary) Categories() []string { return d.sortedCategories }

// CategoriesOf はキーワードの産業分類を返します。未登録の場合はnilです。
func (d *Dictionary) CategoriesOf(keyword string) []string {
	return d.keywords[strings.ToLower(keyword)]
}

// HasCategory は産業分類が類似産業表に存在するかを返します。
func (d *Dictionary) HasCategory(category string) bool {
	_, ok := d.similar[category]
	return ok
}

// SimilarTo は産業分類の類似産業を登録順で返します。
func (d *Dictionary) SimilarTo(category string) []string {
	return d.similar[category]
}

// Priorities は優先キーワードを小文字・昇順で返します。
func (d *Dictionary) Priorities() []string { return d.sortedPriority }

// IsPriority は優先キーワードかどうかを返します。
func (d *Dictionary) IsPriority(keyword string) bool {
	_, ok := d.priority[strings.ToLower(keyword)]
	return ok
}

// IsGeneric は一般的すぎるキーワードかどうかを返します。
func (d *Dictionary) IsGeneric(keyword string) bool {
	_, ok := d.generic[strings.ToLower(keyword)]
	return ok
}

// Expand は産業分類とその類似産業を、重複を除いて順序どおりに返します。
func (d *Dictionary) Expand(category string) []string {
	out := []string{category}
	seen := map[string]struct{}{category: {}}
	for _, s := range d.similar[category] {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
