package usecase_test

import (
	"testing"

	disclosure "disclosure_backend/internal/feature/disclosure/domain/entity"
	"disclosure_backend/internal/feature/similarcompany/domain/entity"
	"disclosure_backend/internal/feature/similarcompany/usecase"

	"github.com/stretchr/testify/assert"
)

func TestSentence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		record disclosure.Disclosure
		want   string
		wantOK bool
	}{
		{
			name: "default report name and mixed separators",
			record: disclosure.Disclosure{
				FiledAt: date(2024, 6, 1), IssuerName: "위메이드", TargetName: "위메이드트리",
				PeerCompanies: "코인베이스; 갤럭시디지털, 비트코인캐피탈",
			},
			want:   "2024-06-01\n위메이드은 「주요사항보고서」에서 위메이드트리 관련 평가 시 유사기업으로 코인베이스, 갤럭시디지털, 비트코인캐피탈을 선정했다.",
			wantOK: true,
		},
		{
			name: "with link",
			record: disclosure.Disclosure{
				FiledAt: date(2023, 1, 2), IssuerName: "카카오", TargetName: "카카오페이", ReportName: "증권신고서",
				PeerCompanies: "토스", Link: "https://dart.fss.or.kr/x",
			},
			want:   "2023-01-02\n카카오은 「증권신고서」에서 카카오페이 관련 평가 시 유사기업으로 토스을 선정했다.\n\n원문은 여기에서 확인할 수 있다: https://dart.fss.or.kr/x",
			wantOK: true,
		},
		{
			name:   "no peers",
			record: disclosure.Disclosure{FiledAt: date(2023, 1, 2), IssuerName: "카카오", PeerCompanies: " ; "},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := usecase.Sentence(tt.record)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHeadline(t *testing.T) {
	t.Parallel()

	records := make([]disclosure.Disclosure, 0, 8)
	for _, name := range []string{"A", "B", "A", "", "C", "D", "E", "F"} {
		records = append(records, disclosure.Disclosure{IssuerName: name})
	}

	tests := []struct {
		name   string
		result entity.QueryResult
		want   string
	}{
		{
			name:   "at most five distinct issuers",
			result: entity.QueryResult{Keyword: "게임", Category: "게임", SimilarCategories: []string{"엔터테인먼트"}, Records: records},
			want:   "'게임' 키워드는 '게임' 업종으로 분류되며, 유사 업종(엔터테인먼트)을 포함해 공시 8건을 찾았습니다. 주요 공시 발행 기업: A, B, C, D, E.",
		},
		{
			name:   "no similar categories",
			result: entity.QueryResult{Keyword: "음원", Category: "음원", Records: records[:1]},
			want:   "'음원' 키워드는 '음원' 업종으로 분류되며, 공시 1건을 찾았습니다. 주요 공시 발행 기업: A.",
		},
		{
			name:   "no records with similar categories",
			result: entity.QueryResult{Keyword: "가상자산", Category: "디지털자산", SimilarCategories: []string{"블록체인", "핀테크"}},
			want:   "'가상자산' 키워드는 '디지털자산' 업종으로 분류되지만, 해당 업종 및 유사 업종(블록체인, 핀테크)의 공시를 찾지 못했습니다.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, usecase.Headline(&tt.result))
		})
	}
}
