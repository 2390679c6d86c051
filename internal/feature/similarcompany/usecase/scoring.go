package usecase

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"disclosure_backend/internal/feature/similarcompany/domain/entity"

	"github.com/agnivade/levenshtein"
)

// スコアの重み。質問にそのまま含まれていることがマッチングの閾値で、スコアは候補の順位付けにだけ使う。
const (
	presenceWeight  = 1000
	lengthWeight    = 10
	compoundBonus   = 500
	priorityBonus   = 800
	genericPenalty  = 600
	compoundMinRune = 4

	// 質問に優先キーワードが含まれる場合（"AI 기반" など）の追加の重み。
	focusPriorityBonus  = 2000
	focusGenericPenalty = 1000

	// FuzzyThreshold は近似一致とみなす正規化編集距離類似度の下限です。
	FuzzyThreshold = 0.75
	fuzzyMinRunes  = 2
)

// candidate は質問から見つかったキーワード候補です。
type candidate struct {
	keyword    string
	category   string
	matchType  entity.MatchType
	position   int // 正規化後の質問における最初の出現位置（バイト）
	score      int
	confidence float64
}

// normalize は質問を小文字にし、連続する空白を1つにまとめます。
func normalize(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

// Score は質問に依存しないキーワードの重みを返します。
// 1000（出現）+ 10×文字数 + 500（4文字以上の英数字のみの複合語）+ 800（優先語）− 600（一般語）
func Score(dict *entity.Dictionary, keyword string) int {
	n := utf8.RuneCountInString(keyword)
	s := presenceWeight + lengthWeight*n
	if n >= compoundMinRune && isCompound(keyword) {
		s += compoundBonus
	}
	if dict.IsPriority(keyword) {
		s += priorityBonus
	}
	if dict.IsGeneric(keyword) {
		s -= genericPenalty
	}
	return s
}

// FocusAdjustment は質問に優先キーワードが含まれる場合の補正です。
// 優先語は +2000、一般語は −1000 され、"AI 기반 솔루션" のような質問で優先語が確実に選ばれます。
func FocusAdjustment(dict *entity.Dictionary, keyword string, focused bool) int {
	if !focused {
		return 0
	}
	adj := 0
	if dict.IsPriority(keyword) {
		adj += focusPriorityBonus
	}
	if dict.IsGeneric(keyword) {
		adj -= focusGenericPenalty
	}
	return adj
}

// hasPriorityKeyword は質問に優先キーワードが1つでも含まれるかを返します。
func hasPriorityKeyword(dict *entity.Dictionary, text string) bool {
	for _, p := range dict.Priorities() {
		if firstOccurrence(text, p) >= 0 {
			return true
		}
	}
	return false
}

func isCompound(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func isASCIIWord(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isASCIIAlnum(s[i]) {
			return false
		}
	}
	return s != ""
}

func isASCIIAlnum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// firstOccurrence は text 中の kw の最初の出現位置を返します。見つからない場合は -1 です。
// 英数字だけのキーワードは単語境界にある場合のみ一致とみなします（"email" は "ai" に一致しない）。
func firstOccurrence(text, kw string) int {
	if !isASCIIWord(kw) {
		return strings.Index(text, kw)
	}
	from := 0
	for from <= len(text) {
		i := strings.Index(text[from:], kw)
		if i < 0 {
			return -1
		}
		start := from + i
		end := start + len(kw)
		before := start == 0 || !isASCIIAlnum(text[start-1])
		after := end == len(text) || !isASCIIAlnum(text[end])
		if before && after {
			return start
		}
		from = start + 1
	}
	return -1
}

// verbatimCandidates は質問にそのまま含まれるキーワードと産業分類名を列挙します。
func verbatimCandidates(dict *entity.Dictionary, text string) []candidate {
	var out []candidate
	focused := hasPriorityKeyword(dict, text)
	for _, kw := range dict.Keywords() {
		pos := firstOccurrence(text, kw)
		if pos < 0 {
			continue
		}
		out = append(out, candidate{
			keyword:    kw,
			category:   dict.CategoriesOf(kw)[0],
			matchType:  entity.MatchExact,
			position:   pos,
			score:      Score(dict, kw) + FocusAdjustment(dict, kw, focused),
			confidence: 1,
		})
	}
	for _, cat := range dict.Categories() {
		lower := strings.ToLower(cat)
		if dict.CategoriesOf(lower) != nil {
			continue // 同名のキーワードとして既に評価済み
		}
		pos := firstOccurrence(text, lower)
		if pos < 0 {
			continue
		}
		out = append(out, candidate{
			keyword:    cat,
			category:   cat,
			matchType:  entity.MatchCategory,
			position:   pos,
			score:      Score(dict, lower) + FocusAdjustment(dict, lower, focused),
			confidence: 1,
		})
	}
	return out
}

// better は a が b より優先されるかを返します。
// スコアが高いもの、同点なら質問中で先に現れるもの、それも同じなら辞書順で小さいものを選びます。
func better(a, b candidate) bool {
	if a.score != b.score {
		return a.score > b.score
	}
	if a.position != b.position {
		return a.position < b.position
	}
	return a.keyword < b.keyword
}

// fuzzyCandidate は完全一致がない場合に、質問の各トークンと辞書キーワードの編集距離類似度から
// 最も近いキーワードを探します。
func fuzzyCandidate(dict *entity.Dictionary, text string) (candidate, bool) {
	tokens := tokenize(text)
	var (
		best  candidate
		found bool
	)
	for _, tok := range tokens {
		if utf8.RuneCountInString(tok.text) < fuzzyMinRunes {
			continue
		}
		for _, kw := range dict.Keywords() {
			sim := similarity(tok.text, kw)
			if sim < FuzzyThreshold {
				continue
			}
			c := candidate{
				keyword:    kw,
				category:   dict.CategoriesOf(kw)[0],
				matchType:  entity.MatchFuzzy,
				position:   tok.offset,
				confidence: sim,
			}
			if !found || sim > best.confidence ||
				(sim == best.confidence && (tok.offset < best.position ||
					(tok.offset == best.position && kw < best.keyword))) {
				best, found = c, true
			}
		}
	}
	return best, found
}

// similarity は 1 − 編集距離 / 長い方の文字数 を返します。
func similarity(a, b string) float64 {
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(maxLen)
}

type token struct {
	text   string
	offset int
}

// tokenize は文字と数字の並びをトークンとして、その開始位置とともに返します。
func tokenize(text string) []token {
	var (
		out   []token
		start = -1
	)
	for i, r := range text {
		word := unicode.IsLetter(r) || unicode.IsDigit(r)
		switch {
		case word && start < 0:
			start = i
		case !word && start >= 0:
			out = append(out, token{text: text[start:i], offset: start})
			start = -1
		}
	}
	if start >= 0 {
		out = append(out, token{text: text[start:], offset: start})
	}
	return out
}

// selectKeyword は正規化済みの質問から最も優先度の高いキーワードを選びます。
func selectKeyword(dict *entity.Dictionary, text string) (candidate, bool) {
	cands := verbatimCandidates(dict, text)
	if len(cands) == 0 {
		return fuzzyCandidate(dict, text)
	}
	best := cands[0]
	for _, c := range cands[1:] {
		if better(c, best) {
			best = c
		}
	}
	return best, true
}
