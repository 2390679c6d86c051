package adapters

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRecords(t *testing.T) {
	t.Parallel()

	input := `[
		{"report_name":"증권신고서","filed_at":"2024-06-01","issuer_name":" 위메이드 ","target_name":"위메이드트리",
		 "industry_category":"디지털자산","peer_companies":["코인베이스","갤럭시디지털"],"ev_sales":3.2,"link":"https://example.com"},
		{"issuer_name":"날짜없음"}
	]`

	got, err := DecodeRecords(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "위메이드", got[0].IssuerName)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), got[0].FiledAt)
	assert.Equal(t, "코인베이스, 갤럭시디지털", got[0].PeerCompanies)
	assert.Equal(t, []string{"코인베이스", "갤럭시디지털"}, got[0].Peers())
	require.NotNil(t, got[0].Ratios.EVSales)
	assert.InDelta(t, 3.2, *got[0].Ratios.EVSales, 1e-9)
	assert.Nil(t, got[0].Ratios.PSR)

	assert.True(t, got[1].FiledAt.IsZero())
	assert.Empty(t, got[1].PeerCompanies)
}

func TestDecodeRecords_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "not an array", input: `{"issuer_name":"x"}`, wantErr: "failed to decode records"},
		{name: "bad date", input: `[{"issuer_name":"x","filed_at":"2024/06/01"}]`, wantErr: "record 0: filed_at"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := DecodeRecords(strings.NewReader(tt.input))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
