package syncer

import (
	"context"

	"disruption-sync/core/reconcile"
	"disruption-sync/feature/disruption/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const deleteCompetitorsSQL = `DELETE FROM disruptor_competitor_companies
WHERE disruptor_id IN (
	SELECT d.id FROM disruptor d
	JOIN crunchbase_initial_company ci ON d.company_company_id = ci.company_company_id
	AND d.report_id = ? AND ci.organization_id = ?)`

const companyIDQuery = `SELECT company_company_id FROM crunchbase_initial_company WHERE organization_id = ?`

// Competitors replaces the competitor associations of the pair with competitors. Order
// values are written as given, never renumbered. An empty list clears them.
//
// The disruptor is resolved once and each competitor organization through a single-row
// lookup; an unknown one fails with *reconcile.UnresolvedReferenceError before anything
// is inserted. All rows are then written by one bulk insert.
func (s *Synchronizer) Competitors(ctx context.Context, tx *gorm.DB, industryID int64, organizationID string, competitors []reconcile.FlatCompetitor) (reconcile.SyncResult, error) {
	var result reconcile.SyncResult
	db := tx.WithContext(ctx)

	res := db.Exec(deleteCompetitorsSQL, industryID, organizationID)
	if res.Error != nil {
		return result, &reconcile.StoreError{Op: "delete competitors", Err: res.Error}
	}
	result.Deleted = res.RowsAffected
	s.logger.Info("Deleted competitors",
		zap.Int64("deleted", result.Deleted),
		zap.String("organization_id", organizationID),
		zap.Int64("industry_id", industryID),
	)

	if len(competitors) == 0 {
		return result, nil
	}

	expected := int64(len(competitors))
	owner, ok, err := disruptorID(ctx, tx, industryID, organizationID)
	if err != nil {
		return result, err
	}
	if !ok {
		return result, unknownDisruptor(industryID, organizationID, expected)
	}

	rows := make([]models.DisruptorCompetitor, 0, len(competitors))
	for _, c := range competitors {
		var companyIDs []int64
		if err := db.Raw(companyIDQuery, c.OrganizationID).Scan(&companyIDs).Error; err != nil {
			return result, &reconcile.StoreError{Op: "resolve competitor company", Err: err}
		}
		if len(companyIDs) == 0 {
			return result, &reconcile.UnresolvedReferenceError{
				Kind:           reconcile.RefCompetitor,
				IndustryID:     industryID,
				OrganizationID: organizationID,
				References:     []string{c.OrganizationID},
				Expected:       expected,
			}
		}
		rows = append(rows, models.DisruptorCompetitor{
			DisruptorID:         owner,
			CompetitorCompanyID: companyIDs[0],
			SortOrder:           c.Order,
		})
	}

	res = db.Create(&rows)
	if res.Error != nil {
		return result, &reconcile.StoreError{Op: "insert competitors", Err: res.Error}
	}
	result.Inserted = res.RowsAffected

	if result.Inserted != expected {
		return result, &reconcile.UnresolvedReferenceError{
			Kind:           reconcile.RefCompetitor,
			IndustryID:     industryID,
			OrganizationID: organizationID,
			Expected:       expected,
			Inserted:       result.Inserted,
		}
	}
	return result, nil
}
