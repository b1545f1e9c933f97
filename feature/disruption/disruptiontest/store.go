// Package disruptiontest provides an in-memory SQLite store with the disruption schema
// and helpers to seed it, inspect it, and encode events.
package disruptiontest

import (
	"sort"
	"testing"

	"disruption-sync/core/database"
	"disruption-sync/feature/disruption/models"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewStore opens a fresh in-memory store and creates the five tables.
func NewStore(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

// Company seeds a company row.
func Company(t *testing.T, db *gorm.DB, companyID int64, organizationID string) {
	t.Helper()
	require.NoError(t, db.Create(&models.Company{CompanyID: companyID, OrganizationID: organizationID}).Error)
}

// Disruptor seeds a disruptor row for the company in the industry report.
func Disruptor(t *testing.T, db *gorm.DB, id, industryID, companyID int64) {
	t.Helper()
	require.NoError(t, db.Create(&models.Disruptor{ID: id, ReportID: industryID, CompanyID: companyID}).Error)
}

// Category seeds a segment category with its external code.
func Category(t *testing.T, db *gorm.DB, id int64, code string) {
	t.Helper()
	require.NoError(t, db.Create(&models.CompanyCategory{ID: id, ExternalEntryID: code}).Error)
}

// Segment seeds a segment association.
func Segment(t *testing.T, db *gorm.DB, disruptorID, categoryID int64) {
	t.Helper()
	require.NoError(t, db.Create(&models.DisruptorCategory{DisruptorID: disruptorID, CategoryID: categoryID}).Error)
}

// Competitor seeds a competitor association.
func Competitor(t *testing.T, db *gorm.DB, disruptorID, competitorCompanyID, order int64) {
	t.Helper()
	require.NoError(t, db.Create(&models.DisruptorCompetitor{
		DisruptorID:         disruptorID,
		CompetitorCompanyID: competitorCompanyID,
		SortOrder:           order,
	}).Error)
}

// SegmentCodes returns the sorted codes associated with disruptorID.
func SegmentCodes(t *testing.T, db *gorm.DB, disruptorID int64) []string {
	t.Helper()

	var codes []string
	err := db.Raw(`SELECT cc.external_entry_id FROM disruptor_categories dc
		JOIN company_category cc ON dc.categories_id = cc.id
		WHERE dc.disruptor_id = ?`, disruptorID).Scan(&codes).Error
	require.NoError(t, err)

	sort.Strings(codes)
	return codes
}

// CompetitorRows returns the competitor associations of disruptorID ordered by sort order.
func CompetitorRows(t *testing.T, db *gorm.DB, disruptorID int64) []models.DisruptorCompetitor {
	t.Helper()

	var rows []models.DisruptorCompetitor
	err := db.Where("disruptor_id = ?", disruptorID).Order("competitor_companies_order").Find(&rows).Error
	require.NoError(t, err)
	return rows
}

// Event builds the CBOR map of one event carried under tag ("update" or "newDisruption").
func Event(tag, organizationID string, industryID int64, segmentIDs, competitorIDs []int64) map[string]any {
	segments := make([]any, 0, len(segmentIDs))
	for _, id := range segmentIDs {
		segments = append(segments, map[string]any{"companyCategoryId": id})
	}
	competitors := make([]any, 0, len(competitorIDs))
	for _, id := range competitorIDs {
		competitors = append(competitors, map[string]any{"companyId": id})
	}

	return map[string]any{
		tag: map[string]any{
			"industrySegmentIds":   map[string]any{"industrySegmentIds": segments},
			"competitorCompanyIds": map[string]any{"companyIds": competitors},
		},
		"organizationId": map[string]any{"organizationId": organizationID},
		"industryId":     map[string]any{"industryId": industryID},
	}
}

// Encode marshals v to CBOR.
func Encode(t *testing.T, v any) []byte {
	t.Helper()
	data, err := cbor.Marshal(v)
	require.NoError(t, err)
	return data
}
