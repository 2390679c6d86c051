package usecase

import (
	"fmt"
	"strings"

	disclosure "disclosure_backend/internal/feature/disclosure/domain/entity"
	"disclosure_backend/internal/feature/similarcompany/domain/entity"
)

// maxHeadlineIssuers は要約文に載せる公示発行企業の最大数です。
const maxHeadlineIssuers = 5

// Headline は検索結果を1文の要約にします。
func Headline(r *entity.QueryResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "'%s' 키워드는 '%s' 업종으로 분류", r.Keyword, r.Category)

	if len(r.Records) == 0 {
		b.WriteString("되지만, 해당 업종")
		if len(r.SimilarCategories) > 0 {
			fmt.Fprintf(&b, " 및 유사 업종(%s)", strings.Join(r.SimilarCategories, ", "))
		}
		b.WriteString("의 공시를 찾지 못했습니다.")
		return b.String()
	}

	b.WriteString("되며, ")
	if len(r.SimilarCategories) > 0 {
		fmt.Fprintf(&b, "유사 업종(%s)을 포함해 ", strings.Join(r.SimilarCategories, ", "))
	}
	fmt.Fprintf(&b, "공시 %d건을 찾았습니다. 주요 공시 발행 기업: %s.", len(r.Records), strings.Join(topIssuers(r.Records), ", "))
	return b.String()
}

// topIssuers は公示の順序を保ったまま、重複しない発行企業名を最大5件返します。
func topIssuers(records []disclosure.Disclosure) []string {
	seen := make(map[string]struct{}, maxHeadlineIssuers)
	out := make([]string, 0, maxHeadlineIssuers)
	for _, r := range records {
		name := strings.TrimSpace(r.IssuerName)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
		if len(out) == maxHeadlineIssuers {
			break
		}
	}
	return out
}

// Sentence は公示1件から類似企業の選定内容を説明する文を作ります。
// 類似企業が記載されていない公示は false を返します。
func Sentence(d disclosure.Disclosure) (string, bool) {
	peers := d.Peers()
	if len(peers) == 0 {
		return "", false
	}
	s := fmt.Sprintf("%s\n%s은 「%s」에서 %s 관련 평가 시 유사기업으로 %s을 선정했다.",
		d.FiledAt.UTC().Format("2006-01-02"), d.IssuerName, d.DisplayReportName(), d.TargetName, strings.Join(peers, ", "))
	if link := strings.TrimSpace(d.Link); link != "" {
		s += "\n\n원문은 여기에서 확인할 수 있다: " + link
	}
	return s, true
}

// Sentences は類似企業が記載された公示ごとに説明文を作ります。
func Sentences(records []disclosure.Disclosure) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		if s, ok := Sentence(r); ok {
			out = append(out, s)
		}
	}
	return out
}
