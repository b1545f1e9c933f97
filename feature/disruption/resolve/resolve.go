package resolve

import (
	"context"

	"disruption-sync/core/reconcile"

	"gorm.io/gorm"
)

const segmentsQuery = `SELECT cc.external_entry_id
FROM crunchbase_initial_company ci
JOIN disruptor d ON ci.company_company_id = d.company_company_id
JOIN disruptor_categories dc ON d.id = dc.disruptor_id
JOIN company_category cc ON dc.categories_id = cc.id
WHERE ci.organization_id = ? AND d.report_id = ?`

// Competitors are ordered by organization id, then sort order. Extraction output
// depends on this order being reproduced exactly.
const competitorsQuery = `SELECT ci2.organization_id AS competitor_organization_id,
	dcc.competitor_companies_order AS competitor_order
FROM disruptor d
JOIN crunchbase_initial_company ci ON d.company_company_id = ci.company_company_id
JOIN disruptor_competitor_companies dcc ON d.id = dcc.disruptor_id
JOIN crunchbase_initial_company ci2 ON dcc.competitor_companies_company_id = ci2.company_company_id
WHERE d.report_id = ? AND ci.organization_id = ?
ORDER BY ci2.organization_id, dcc.competitor_companies_order`

type competitorRow struct {
	CompetitorOrganizationID string `gorm:"column:competitor_organization_id"`
	CompetitorOrder          int64  `gorm:"column:competitor_order"`
}

// Segments returns the external codes of the segments currently associated with the
// organization in the industry, in store order.
func Segments(ctx context.Context, db *gorm.DB, organizationID string, industryID int64) ([]string, error) {
	codes := []string{}
	if err := db.WithContext(ctx).Raw(segmentsQuery, organizationID, industryID).Scan(&codes).Error; err != nil {
		return nil, &reconcile.StoreError{Op: "resolve segments", Err: err}
	}
	return codes, nil
}

// Competitors returns the competitor associations currently stored for the
// organization in the industry.
func Competitors(ctx context.Context, db *gorm.DB, industryID int64, organizationID string) ([]reconcile.Competitor, error) {
	var rows []competitorRow
	if err := db.WithContext(ctx).Raw(competitorsQuery, industryID, organizationID).Scan(&rows).Error; err != nil {
		return nil, &reconcile.StoreError{Op: "resolve competitors", Err: err}
	}

	competitors := make([]reconcile.Competitor, 0, len(rows))
	for _, row := range rows {
		competitors = append(competitors, reconcile.Competitor{
			OrganizationID: row.CompetitorOrganizationID,
			SortOrder:      row.CompetitorOrder,
		})
	}
	return competitors, nil
}
