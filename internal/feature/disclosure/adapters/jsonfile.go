package adapters

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"disclosure_backend/internal/feature/disclosure/domain/entity"
)

// RecordJSON は投入用JSONファイルの1行です。
type RecordJSON struct {
	ReportName       string   `json:"report_name"`
	FiledAt          string   `json:"filed_at"` // YYYY-MM-DD
	IssuerName       string   `json:"issuer_name"`
	IssuerIndustry   string   `json:"issuer_industry"`
	TargetName       string   `json:"target_name"`
	IndustryCategory string   `json:"industry_category"`
	TargetBusiness   string   `json:"target_business"`
	PeerCompanies    []string `json:"peer_companies"`
	EVSales          *float64 `json:"ev_sales"`
	PSR              *float64 `json:"psr"`
	Ke               *float64 `json:"ke"`
	Kd               *float64 `json:"kd"`
	WACC             *float64 `json:"wacc"`
	DE               *float64 `json:"de"`
	Link             string   `json:"link"`
}

// DecodeRecords はJSON配列を公示エンティティに変換します。
// 発行日が空の行はそのまま（ゼロ値で）返し、投入時に読み飛ばされます。
func DecodeRecords(r io.Reader) ([]entity.Disclosure, error) {
	var rows []RecordJSON
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}

	out := make([]entity.Disclosure, 0, len(rows))
	for i, row := range rows {
		var filed time.Time
		if s := strings.TrimSpace(row.FiledAt); s != "" {
			t, err := time.Parse("2006-01-02", s)
			if err != nil {
				return nil, fmt.Errorf("record %d: filed_at must be YYYY-MM-DD: %w", i, err)
			}
			filed = t
		}
		out = append(out, entity.Disclosure{
			ReportName:       strings.TrimSpace(row.ReportName),
			FiledAt:          filed,
			IssuerName:       strings.TrimSpace(row.IssuerName),
			IssuerIndustry:   strings.TrimSpace(row.IssuerIndustry),
			TargetName:       strings.TrimSpace(row.TargetName),
			IndustryCategory: strings.TrimSpace(row.IndustryCategory),
			TargetBusiness:   row.TargetBusiness,
			PeerCompanies:    strings.Join(row.PeerCompanies, ", "),
			Link:             row.Link,
			Ratios: entity.Ratios{
				EVSales: row.EVSales,
				PSR:     row.PSR,
				Ke:      row.Ke,
				Kd:      row.Kd,
				WACC:    row.WACC,
				DE:      row.DE,
			},
		})
	}
	return out, nil
}
