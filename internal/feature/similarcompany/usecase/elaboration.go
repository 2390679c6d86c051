package usecase

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	disclosure "disclosure_backend/internal/feature/disclosure/domain/entity"
	"disclosure_backend/internal/feature/similarcompany/domain/entity"
)

// 質問タイプ。プロンプトの文脈説明の切り替えに使います。
const (
	QuestionPeer    = "유사기업"
	QuestionRatio   = "재무비율"
	QuestionCompany = "기업검색"
	QuestionGeneral = "일반"
)

const (
	// DefaultFollowUp はフォローアップ質問を生成できなかった場合に返す質問です。
	DefaultFollowUp = "데이터에 대한 추가 질문이 있으시면 말씀해주세요."

	maxFollowUps        = 3
	digestLargeDataset  = 15
	digestRowsLarge     = 8
	digestRowsSmall     = 10
	digestTopIssuers    = 5
	digestTopCategories = 3
	businessClipRunes   = 80
)

var questionTypeKeywords = []struct {
	kind     string
	keywords []string
}{
	{QuestionPeer, []string{"유사기업", "유사", "비교", "선정", "peer", "피어", "음원", "가상자산", "게임", "금융", "제조", "서비스", "정보보안", "보안"}},
	{QuestionRatio, []string{"ev/sales", "psr", "ke", "kd", "wacc", "d/e", "재무비율", "비율", "평가"}},
	{QuestionCompany, []string{"기업", "회사", "업종", "산업", "섹터", "sector"}},
}

var questionContexts = map[string]string{
	QuestionPeer:    "사용자는 특정 사업과 유사한 기업이 공시에서 어떻게 선정되었는지 알고 싶어합니다. 선정 기업의 공통점과 업종 특성을 중심으로 설명해주세요.",
	QuestionRatio:   "사용자는 공시에 기재된 재무비율(EV/Sales, PSR, Ke, Kd, WACC, D/E)에 관심이 있습니다. 수치의 범위와 의미를 중심으로 설명해주세요.",
	QuestionCompany: "사용자는 특정 업종이나 기업의 공시를 찾고 있습니다. 검색된 기업과 공시의 특징을 정리해주세요.",
	QuestionGeneral: "검색된 공시 데이터를 바탕으로 질문에 답변해주세요.",
}

// QuestionType は質問を 유사기업・재무비율・기업검색・일반 のいずれかに分類します。
func QuestionType(question string) string {
	q := strings.ToLower(question)
	for _, group := range questionTypeKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(q, kw) {
				return group.kind
			}
		}
	}
	return QuestionGeneral
}

// BuildPrompt はLLMに渡す分析依頼文を作ります。
func BuildPrompt(question string, r *entity.QueryResult) string {
	var b strings.Builder
	b.WriteString("당신은 한국 기업 공시의 외부평가 자료를 분석하는 금융 분석 전문가입니다.\n\n")
	fmt.Fprintf(&b, "질문: %s\n\n", question)
	b.WriteString(questionContexts[QuestionType(question)])
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "매칭 키워드: %s (%s)\n", r.Keyword, r.MatchType)
	fmt.Fprintf(&b, "업종: %s\n", r.Category)
	if len(r.SimilarCategories) > 0 {
		fmt.Fprintf(&b, "유사 업종: %s\n", strings.Join(r.SimilarCategories, ", "))
	}
	fmt.Fprintf(&b, "요약: %s\n\n", r.Summary)
	b.WriteString("데이터:\n")
	b.WriteString(Digest(r.Records))
	b.WriteString("\n\n위 데이터를 바탕으로 질문에 답변해주세요. 답변은 자연스러운 한국어로 작성하고, ")
	b.WriteString("데이터의 맥락과 의미를 포함하여 전문적이면서도 이해하기 쉽게 설명해주세요.")
	return b.String()
}

// BuildFollowUpPrompt は後続質問を3つ提案させるための依頼文を作ります。
func BuildFollowUpPrompt(question string, r *entity.QueryResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "현재 질문: %s\n\n", question)
	fmt.Fprintf(&b, "검색된 데이터:\n%s\n\n", Digest(r.Records))
	b.WriteString("위 질문과 데이터를 바탕으로 사용자가 추가로 궁금해할 만한 후속 질문 3개를 한국어로 제안해주세요.\n")
	b.WriteString("각 질문은 구체적이고 데이터에서 답변할 수 있는 내용이어야 합니다.\n\n")
	b.WriteString("답변 형식:\n1. [첫 번째 후속 질문]\n2. [두 번째 후속 질문]\n3. [세 번째 후속 질문]")
	return b.String()
}

// ParseFollowUps は "1." "2." "3." で始まる行を後続質問として取り出します。
// 1つも取り出せない場合は DefaultFollowUp だけを返します。
func ParseFollowUps(content string) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if !(strings.HasPrefix(line, "1.") || strings.HasPrefix(line, "2.") || strings.HasPrefix(line, "3.")) {
			continue
		}
		if q := strings.TrimSpace(line[2:]); q != "" {
			out = append(out, q)
		}
		if len(out) == maxFollowUps {
			break
		}
	}
	if len(out) == 0 {
		return []string{DefaultFollowUp}
	}
	return out
}

// Digest は公示の一覧をLLMが読みやすいテキストにまとめます。
// 15件を超える場合は発行企業の上位5件と産業分類の上位3件を添え、先頭8件だけを詳しく載せます。
func Digest(records []disclosure.Disclosure) string {
	if len(records) == 0 {
		return "검색된 데이터가 없습니다."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "총 %d건의 데이터가 검색되었습니다.\n\n", len(records))
	b.WriteString("=== 유사기업 선정 정보 ===\n")

	shown := digestRowsSmall
	if len(records) > digestLargeDataset {
		shown = digestRowsLarge
		b.WriteString("주요 공시발행 기업 (상위 5개):\n")
		for _, c := range topCounts(records, func(d disclosure.Disclosure) string { return d.IssuerName }, digestTopIssuers) {
			fmt.Fprintf(&b, "  - %s: %d건\n", c.name, c.count)
		}
		b.WriteString("\n평가대상 기업 산업분류 (상위 3개):\n")
		for _, c := range topCounts(records, func(d disclosure.Disclosure) string { return d.IndustryCategory }, digestTopCategories) {
			fmt.Fprintf(&b, "  - %s: %d건\n", c.name, c.count)
		}
		fmt.Fprintf(&b, "\n=== 상세 정보 (처음 %d건) ===\n", shown)
	}
	if shown > len(records) {
		shown = len(records)
	}

	for i, d := range records[:shown] {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, d.FiledAt.UTC().Format("2006-01-02"))
		fmt.Fprintf(&b, "   공시발행기업: %s\n", d.IssuerName)
		fmt.Fprintf(&b, "   평가대상기업: %s\n", d.TargetName)
		fmt.Fprintf(&b, "   주요사업: %s\n", clip(d.TargetBusiness, businessClipRunes))
		fmt.Fprintf(&b, "   공시보고서명: %s\n", d.DisplayReportName())
		fmt.Fprintf(&b, "   유사기업: %s\n", strings.Join(d.Peers(), ", "))
		if d.Link != "" {
			fmt.Fprintf(&b, "   원문링크: %s\n", d.Link)
		}
		b.WriteString("   ---\n")
	}

	if rest := len(records) - shown; rest > 0 {
		fmt.Fprintf(&b, "\n... 외 %d건의 데이터가 더 있습니다.", rest)
	}
	return b.String()
}

func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

type nameCount struct {
	name  string
	count int
}

// topCounts は件数の多い順（同数なら名前順）に上位n件を返します。
func topCounts(records []disclosure.Disclosure, key func(disclosure.Disclosure) string, n int) []nameCount {
	counts := map[string]int{}
	for _, r := range records {
		if k := strings.TrimSpace(key(r)); k != "" {
			counts[k]++
		}
	}
	out := make([]nameCount, 0, len(counts))
	for k, c := range counts {
		out = append(out, nameCount{name: k, count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].name < out[j].name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
