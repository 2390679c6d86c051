package usecase

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"disclosure_backend/internal/feature/disclosure/domain"
	"disclosure_backend/internal/feature/disclosure/domain/entity"
)

// DefaultRatioSector は質問からセクターを特定できない場合に使うセクターです。
const DefaultRatioSector = "금융"

// ratioSectorKeywords は評価指標の質問から探すセクター名です。先に並んでいるものが優先されます。
var ratioSectorKeywords = []string{
	"금융", "IT", "제조", "서비스", "바이오", "게임", "소프트웨어", "화학", "철강", "자동차",
	"건설", "부동산", "유통", "식품", "음료", "의류", "화장품", "여행", "항공", "선박",
	"에너지", "전력", "가스", "통신", "미디어", "교육", "의료", "보험", "은행", "증권",
	"투자", "펀드", "부동산신탁", "리츠", "정보보안", "보안", "사이버보안", "보안솔루션", "보안시스템",
}

// sinceYearPatterns は「2022년 이후」のような開始年の表現です。先に一致したものを使います。
var sinceYearPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{4})년 이후`),
	regexp.MustCompile(`(\d{4})년부터`),
	regexp.MustCompile(`(\d{4}) 이후`),
	regexp.MustCompile(`(\d{4})부터`),
	regexp.MustCompile(`(\d{4})년`),
}

// RatioUsecase は評価指標（EV/Sales, PSR, WACC など）の検索を提供します。
type RatioUsecase struct {
	repo DisclosureRepository
}

// NewRatioUsecase は指定されたリポジトリでRatioUsecaseを生成します。
func NewRatioUsecase(repo DisclosureRepository) *RatioUsecase {
	return &RatioUsecase{repo: repo}
}

// Ratios はセクターと開始日で公示を検索し、EV/Salesの要約統計量を付けて返します。
func (u *RatioUsecase) Ratios(ctx context.Context, query entity.RatioQuery) (*entity.RatioReport, error) {
	query.Sector = strings.TrimSpace(query.Sector)
	if query.Sector == "" {
		return nil, fmt.Errorf("%w: sector is required", domain.ErrInvalidInput)
	}

	records, err := u.repo.FindRatios(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDataUnavailable, err)
	}

	return &entity.RatioReport{
		Query:   query,
		Records: records,
		EVSales: EVSalesStats(records),
	}, nil
}

// ParseRatioQuestion は自由文の質問からセクターと開始日を取り出します。
// セクターが見つからない場合は DefaultRatioSector を使います。
func ParseRatioQuestion(question string) entity.RatioQuery {
	q := entity.RatioQuery{Sector: DefaultRatioSector}
	for _, kw := range ratioSectorKeywords {
		if strings.Contains(question, kw) {
			q.Sector = kw
			break
		}
	}

	for _, re := range sinceYearPatterns {
		m := re.FindStringSubmatch(question)
		if m == nil {
			continue
		}
		year, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		since := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		q.Since = &since
		break
	}
	return q
}

// EVSalesStats はEV/Salesの値を持つ公示の件数・平均・中央値・最小値・最大値を計算します。
// 値を持つ公示がない場合はnilを返します。
func EVSalesStats(records []entity.Disclosure) *entity.RatioStats {
	values := make([]float64, 0, len(records))
	for _, r := range records {
		if r.Ratios.EVSales != nil {
			values = append(values, *r.Ratios.EVSales)
		}
	}
	if len(values) == 0 {
		return nil
	}
	sort.Float64s(values)

	var sum float64
	for _, v := range values {
		sum += v
	}

	n := len(values)
	median := values[n/2]
	if n%2 == 0 {
		median = (values[n/2-1] + values[n/2]) / 2
	}

	return &entity.RatioStats{
		Count:  n,
		Mean:   sum / float64(n),
		Median: median,
		Min:    values[0],
		Max:    values[n-1],
	}
}
