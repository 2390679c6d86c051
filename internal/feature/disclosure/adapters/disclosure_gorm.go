// Package adapters はdisclosureフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"fmt"
	"strings"
	"time"

	"disclosure_backend/internal/feature/disclosure/domain/entity"
	"disclosure_backend/internal/feature/disclosure/usecase"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// disclosureGorm は公示リポジトリのgorm実装です。SQLiteとPostgreSQLの両方で動作します。
type disclosureGorm struct {
	db *gorm.DB
}

var _ usecase.DisclosureRepository = (*disclosureGorm)(nil)

// NewDisclosureRepository は指定されたDB接続でdisclosureGormの新しいインスタンスを生成します。
func NewDisclosureRepository(db *gorm.DB) *disclosureGorm {
	return &disclosureGorm{db: db}
}

// DisclosureModel は disclosures テーブルの行です。
type DisclosureModel struct {
	ID               uint      `gorm:"primaryKey"`
	ReportName       string    `gorm:"size:255;not null;default:'';uniqueIndex:disclosure_natural_key,priority:4"`
	FiledAt          time.Time `gorm:"not null;index;uniqueIndex:disclosure_natural_key,priority:3"`
	IssuerName       string    `gorm:"size:255;not null;uniqueIndex:disclosure_natural_key,priority:1"`
	IssuerIndustry   string    `gorm:"size:255;not null;default:'';index"`
	TargetName       string    `gorm:"size:255;not null;default:'';uniqueIndex:disclosure_natural_key,priority:2"`
	IndustryCategory string    `gorm:"size:100;not null;default:'';index"`
	TargetBusiness   string    `gorm:"type:text"`
	PeerCompanies    string    `gorm:"type:text"`
	EVSales          *float64  `gorm:"column:ev_sales"`
	PSR              *float64  `gorm:"column:psr"`
	Ke               *float64  `gorm:"column:ke"`
	Kd               *float64  `gorm:"column:kd"`
	WACC             *float64  `gorm:"column:wacc"`
	DE               *float64  `gorm:"column:de"`
	Link             string    `gorm:"size:512"`
}

func (DisclosureModel) TableName() string {
	return "disclosures"
}

func toModel(e entity.Disclosure) DisclosureModel {
	return DisclosureModel{
		ID:               e.ID,
		ReportName:       e.ReportName,
		FiledAt:          e.FiledAt.UTC(),
		IssuerName:       e.IssuerName,
		IssuerIndustry:   e.IssuerIndustry,
		TargetName:       e.TargetName,
		IndustryCategory: e.IndustryCategory,
		TargetBusiness:   e.TargetBusiness,
		PeerCompanies:    e.PeerCompanies,
		EVSales:          e.Ratios.EVSales,
		PSR:              e.Ratios.PSR,
		Ke:               e.Ratios.Ke,
		Kd:               e.Ratios.Kd,
		WACC:             e.Ratios.WACC,
		DE:               e.Ratios.DE,
		Link:             e.Link,
	}
}

func toEntity(m DisclosureModel) entity.Disclosure {
	return entity.Disclosure{
		ID:               m.ID,
		ReportName:       m.ReportName,
		FiledAt:          m.FiledAt.UTC(),
		IssuerName:       m.IssuerName,
		IssuerIndustry:   m.IssuerIndustry,
		TargetName:       m.TargetName,
		IndustryCategory: m.IndustryCategory,
		TargetBusiness:   m.TargetBusiness,
		PeerCompanies:    m.PeerCompanies,
		Link:             m.Link,
		Ratios: entity.Ratios{
			EVSales: m.EVSales,
			PSR:     m.PSR,
			Ke:      m.Ke,
			Kd:      m.Kd,
			WACC:    m.WACC,
			DE:      m.DE,
		},
	}
}

func toEntities(rows []DisclosureModel) []entity.Disclosure {
	out := make([]entity.Disclosure, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out
}

// UpsertBatch は公示を一括で挿入し、自然キー（発行企業・評価対象・発行日・報告書名）が
// 衝突した場合は残りのカラムを更新します。
func (r *disclosureGorm) UpsertBatch(ctx context.Context, records []entity.Disclosure) error {
	if len(records) == 0 {
		return nil
	}
	ms := make([]DisclosureModel, 0, len(records))
	for _, e := range records {
		m := toModel(e)
		m.ID = 0
		ms = append(ms, m)
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "issuer_name"}, {Name: "target_name"}, {Name: "filed_at"}, {Name: "report_name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"issuer_industry", "industry_category", "target_business", "peer_companies",
			"ev_sales", "psr", "ke", "kd", "wacc", "de", "link",
		}),
	}).Create(&ms).Error
}

// FindByCategories は産業分類がcategoriesのいずれかに一致する公示を発行日の新しい順に返します。
// 同じ発行日の公示はID順に並べ、結果が常に同じ順序になるようにします。
func (r *disclosureGorm) FindByCategories(ctx context.Context, categories []string) ([]entity.Disclosure, error) {
	if len(categories) == 0 {
		return []entity.Disclosure{}, nil
	}
	var rows []DisclosureModel
	if err := r.db.WithContext(ctx).
		Where("industry_category IN ?", categories).
		Order("filed_at DESC").
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

// Search は指定されたフィールドで部分一致検索を行います。
// 検索語の % と _ はワイルドカードではなく文字として扱い、英字の大文字・小文字は区別しません。
// SearchByDate の場合、termはYYYY-MM-DD形式の日付で、その日に発行された公示を返します。
func (r *disclosureGorm) Search(ctx context.Context, field entity.SearchField, term string) ([]entity.Disclosure, error) {
	q := r.db.WithContext(ctx).Model(&DisclosureModel{})
	pattern := containsPattern(term)

	switch field {
	case entity.SearchByCompany:
		q = q.Where(likeAny("issuer_name", "target_name"), pattern, pattern)
	case entity.SearchByIndustry:
		q = q.Where(likeAny("issuer_industry", "industry_category"), pattern, pattern)
	case entity.SearchByBusiness:
		q = q.Where(likeAny("target_business"), pattern)
	case entity.SearchByDate:
		day, err := time.ParseInLocation(usecase.DateLayout, term, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", term, err)
		}
		q = q.Where("filed_at >= ? AND filed_at < ?", day, day.AddDate(0, 0, 1))
	case entity.SearchByAny:
		q = q.Where(
			likeAny("issuer_industry", "target_business", "issuer_name", "target_name", "industry_category"),
			pattern, pattern, pattern, pattern, pattern,
		)
	default:
		return nil, fmt.Errorf("unsupported search field %q", field)
	}

	var rows []DisclosureModel
	if err := q.Order("filed_at DESC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

// likeEscaper は LIKE のワイルドカードとエスケープ文字そのものをエスケープします。
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern は term を部分一致用の小文字の LIKE パターンにします。
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}

// likeAny は「いずれかのカラムがパターンに一致する」条件式を返します。
// SQLite と PostgreSQL で同じ結果になるよう、カラムを LOWER で小文字にして比較します。
func likeAny(columns ...string) string {
	conds := make([]string, len(columns))
	for i, col := range columns {
		conds[i] = "LOWER(" + col + `) LIKE ? ESCAPE '\'`
	}
	return "(" + strings.Join(conds, " OR ") + ")"
}

// ListSectors は空でない公示発行企業の産業分類を重複なく昇順で返します。
func (r *disclosureGorm) ListSectors(ctx context.Context) ([]string, error) {
	var sectors []string
	if err := r.db.WithContext(ctx).
		Model(&DisclosureModel{}).
		Where("issuer_industry IS NOT NULL AND issuer_industry <> ''").
		Distinct().
		Order("issuer_industry ASC").
		Pluck("issuer_industry", &sectors).Error; err != nil {
		return nil, err
	}
	return sectors, nil
}

// FindRatios は発行企業の産業分類または主要事業にセクター名を含む公示を返します。
// Sinceが指定された場合、その日以降に発行された公示に限定します。
func (r *disclosureGorm) FindRatios(ctx context.Context, query entity.RatioQuery) ([]entity.Disclosure, error) {
	pattern := containsPattern(query.Sector)
	q := r.db.WithContext(ctx).
		Where(likeAny("issuer_industry", "target_business"), pattern, pattern)
	if query.Since != nil {
		q = q.Where("filed_at >= ?", query.Since.UTC())
	}

	var rows []DisclosureModel
	if err := q.Order("filed_at DESC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}
