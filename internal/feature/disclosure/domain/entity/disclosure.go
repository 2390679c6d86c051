// Package entity defines the domain models for the disclosure feature.
package entity

import (
	"strings"
	"time"
)

// DefaultReportName は報告書名が空の公示に使う既定の名称です。
const DefaultReportName = "주요사항보고서"

// Disclosure represents one company's regulatory filing for a corporate transaction
// (asset transfer, business combination, ...) together with the valuation details
// disclosed in the attached external valuation report.
type Disclosure struct {
	ID               uint
	ReportName       string    // 公示報告書名
	FiledAt          time.Time // 発行日
	IssuerName       string    // 公示発行企業名
	IssuerIndustry   string    // 公示発行企業の産業分類
	TargetName       string    // 評価対象企業名
	IndustryCategory string    // 評価対象企業の産業分類（マッチングに使用）
	TargetBusiness   string    // 評価対象企業の主要事業
	PeerCompanies    string    // 類似企業（カンマまたはセミコロン区切り）
	Link             string    // 原文へのリンク
	Ratios           Ratios
}

// Ratios は外部評価報告書に記載された評価指標です。値がない指標はnilです。
type Ratios struct {
	EVSales *float64
	PSR     *float64
	Ke      *float64
	Kd      *float64
	WACC    *float64
	DE      *float64
}

// Peers はPeerCompaniesを区切り文字で分割し、空要素を除いたリストを返します。
func (d Disclosure) Peers() []string {
	if strings.TrimSpace(d.PeerCompanies) == "" {
		return nil
	}
	raw := strings.Split(strings.ReplaceAll(d.PeerCompanies, ";", ","), ",")
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// DisplayReportName は報告書名を返します。空の場合は既定の名称を返します。
func (d Disclosure) DisplayReportName() string {
	if strings.TrimSpace(d.ReportName) == "" {
		return DefaultReportName
	}
	return d.ReportName
}

// SearchField は公示検索の対象カラムを表します。
type SearchField string

const (
	SearchByCompany  SearchField = "company"
	SearchByIndustry SearchField = "industry"
	SearchByBusiness SearchField = "business"
	SearchByDate     SearchField = "date"
	SearchByAny      SearchField = "any"
)

// Valid はサポートされている検索フィールドかどうかを返します。
func (f SearchField) Valid() bool {
	switch f {
	case SearchByCompany, SearchByIndustry, SearchByBusiness, SearchByDate, SearchByAny:
		return true
	}
	return false
}
