// Package dto defines data transfer objects for the disclosure HTTP API.
package dto

import (
	"time"

	"disclosure_backend/internal/feature/disclosure/domain/entity"
)

const dateLayout = "2006-01-02"

// RatiosResponse は評価指標です。値がない指標は省略されます。
type RatiosResponse struct {
	EVSales *float64 `json:"ev_sales,omitempty"`
	PSR     *float64 `json:"psr,omitempty"`
	Ke      *float64 `json:"ke,omitempty"`
	Kd      *float64 `json:"kd,omitempty"`
	WACC    *float64 `json:"wacc,omitempty"`
	DE      *float64 `json:"de,omitempty"`
}

// DisclosureResponse represents a disclosure filing in API responses.
type DisclosureResponse struct {
	ID               uint           `json:"id"`
	ReportName       string         `json:"report_name"`
	FiledAt          string         `json:"filed_at"`
	IssuerName       string         `json:"issuer_name"`
	IssuerIndustry   string         `json:"issuer_industry"`
	TargetName       string         `json:"target_name"`
	IndustryCategory string         `json:"industry_category"`
	TargetBusiness   string         `json:"target_business"`
	PeerCompanies    []string       `json:"peer_companies"`
	Ratios           RatiosResponse `json:"ratios"`
	Link             string         `json:"link,omitempty"`
}

// FromDisclosure はエンティティをレスポンス用の構造体に変換します。
func FromDisclosure(d entity.Disclosure) DisclosureResponse {
	peers := d.Peers()
	if peers == nil {
		peers = []string{}
	}
	return DisclosureResponse{
		ID:               d.ID,
		ReportName:       d.DisplayReportName(),
		FiledAt:          d.FiledAt.UTC().Format(dateLayout),
		IssuerName:       d.IssuerName,
		IssuerIndustry:   d.IssuerIndustry,
		TargetName:       d.TargetName,
		IndustryCategory: d.IndustryCategory,
		TargetBusiness:   d.TargetBusiness,
		PeerCompanies:    peers,
		Ratios: RatiosResponse{
			EVSales: d.Ratios.EVSales,
			PSR:     d.Ratios.PSR,
			Ke:      d.Ratios.Ke,
			Kd:      d.Ratios.Kd,
			WACC:    d.Ratios.WACC,
			DE:      d.Ratios.DE,
		},
		Link: d.Link,
	}
}

// FromDisclosures はエンティティのスライスを変換します。nilの場合も空配列を返します。
func FromDisclosures(ds []entity.Disclosure) []DisclosureResponse {
	out := make([]DisclosureResponse, 0, len(ds))
	for _, d := range ds {
		out = append(out, FromDisclosure(d))
	}
	return out
}

// SearchResponse は公示検索のレスポンスです。
type SearchResponse struct {
	Field   string               `json:"field"`
	Query   string               `json:"q"`
	Count   int                  `json:"count"`
	Results []DisclosureResponse `json:"results"`
}

// SectorsResponse はセクター一覧のレスポンスです。
type SectorsResponse struct {
	Sectors []string `json:"sectors"`
}

// RatioStatsResponse はEV/Salesの要約統計量です。
type RatioStatsResponse struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// RatioResponse は評価指標検索のレスポンスです。
type RatioResponse struct {
	Sector  string               `json:"sector"`
	Since   string               `json:"since,omitempty"`
	Count   int                  `json:"count"`
	EVSales *RatioStatsResponse  `json:"ev_sales_stats,omitempty"`
	Results []DisclosureResponse `json:"results"`
}

// FromRatioReport は評価指標検索の結果をレスポンスに変換します。
func FromRatioReport(r *entity.RatioReport) RatioResponse {
	out := RatioResponse{
		Sector:  r.Query.Sector,
		Since:   formatOptionalDate(r.Query.Since),
		Count:   len(r.Records),
		Results: FromDisclosures(r.Records),
	}
	if r.EVSales != nil {
		out.EVSales = &RatioStatsResponse{
			Count:  r.EVSales.Count,
			Mean:   r.EVSales.Mean,
			Median: r.EVSales.Median,
			Min:    r.EVSales.Min,
			Max:    r.EVSales.Max,
		}
	}
	return out
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(dateLayout)
}
