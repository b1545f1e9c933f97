package models

// Company maps an external organization id to the internal company id.
type Company struct {
	CompanyID      int64  `gorm:"column:company_company_id;primaryKey"`
	OrganizationID string `gorm:"column:organization_id;size:255;index"`
}

// TableName overrides the table name for Company.
func (Company) TableName() string {
	return "crunchbase_initial_company"
}

// Disruptor is one company's participation in one industry report. ReportID holds the
// industry id. It anchors every segment and competitor association.
type Disruptor struct {
	ID        int64 `gorm:"column:id;primaryKey"`
	ReportID  int64 `gorm:"column:report_id;index"`
	CompanyID int64 `gorm:"column:company_company_id;index"`
}

// TableName overrides the table name for Disruptor.
func (Disruptor) TableName() string {
	return "disruptor"
}

// CompanyCategory maps an external segment code to the internal category id.
type CompanyCategory struct {
	ID              int64  `gorm:"column:id;primaryKey"`
	ExternalEntryID string `gorm:"column:external_entry_id;size:255;index"`
}

// TableName overrides the table name for CompanyCategory.
func (CompanyCategory) TableName() string {
	return "company_category"
}

// DisruptorCategory is one segment association.
type DisruptorCategory struct {
	DisruptorID int64 `gorm:"column:disruptor_id"`
	CategoryID  int64 `gorm:"column:categories_id"`
}

// TableName overrides the table name for DisruptorCategory.
func (DisruptorCategory) TableName() string {
	return "disruptor_categories"
}

// DisruptorCompetitor is one ranked competitor association.
type DisruptorCompetitor struct {
	DisruptorID         int64 `gorm:"column:disruptor_id"`
	CompetitorCompanyID int64 `gorm:"column:competitor_companies_company_id"`
	SortOrder           int64 `gorm:"column:competitor_companies_order"`
}

// TableName overrides the table name for DisruptorCompetitor.
func (DisruptorCompetitor) TableName() string {
	return "disruptor_competitor_companies"
}

// All returns one zero value of every model, in dependency order.
func All() []any {
	return []any{
		&Company{},
		&Disruptor{},
		&CompanyCategory{},
		&DisruptorCategory{},
		&DisruptorCompetitor{},
	}
}

// RequiredColumns lists, per table, the columns the reconciliation queries read or write.
func RequiredColumns() map[string][]string {
	return map[string][]string{
		Company{}.TableName():             {"company_company_id", "organization_id"},
		Disruptor{}.TableName():           {"id", "report_id", "company_company_id"},
		CompanyCategory{}.TableName():     {"id", "external_entry_id"},
		DisruptorCategory{}.TableName():   {"disruptor_id", "categories_id"},
		DisruptorCompetitor{}.TableName(): {"disruptor_id", "competitor_companies_company_id", "competitor_companies_order"},
	}
}
