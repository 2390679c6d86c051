package entity

import "time"

// RatioQuery は評価指標検索の条件です。
type RatioQuery struct {
	Sector string
	Since  *time.Time
}

// RatioStats はEV/Salesの要約統計量です。
type RatioStats struct {
	Count  int
	Mean   float64
	Median float64
	Min    float64
	Max    float64
}

// RatioReport は評価指標検索の結果です。
type RatioReport struct {
	Query   RatioQuery
	Records []Disclosure
	EVSales *RatioStats // EV/Salesの値が1件もない場合はnil
}
