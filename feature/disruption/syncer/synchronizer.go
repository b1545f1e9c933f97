package syncer

import (
	"context"

	"disruption-sync/core/reconcile"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const disruptorIDQuery = `SELECT d.id FROM disruptor d
JOIN crunchbase_initial_company ci ON d.company_company_id = ci.company_company_id
AND d.report_id = ? AND ci.organization_id = ?`

// Synchronizer replaces the associations of one (industry, organization) pair with a
// requested state: all existing rows are deleted, then the requested rows inserted.
// It never diffs against the prior state.
//
// Every statement goes through the *gorm.DB it is given, so callers control the
// transaction boundary.
type Synchronizer struct {
	logger *zap.Logger
}

// NewSynchronizer creates a Synchronizer that reports deletion counts to logger.
func NewSynchronizer(logger *zap.Logger) *Synchronizer {
	return &Synchronizer{logger: logger}
}

// disruptorID resolves the internal id of the disruptor of the pair. ok is false when
// the store has none.
func disruptorID(ctx context.Context, tx *gorm.DB, industryID int64, organizationID string) (id int64, ok bool, err error) {
	var ids []int64
	if err := tx.WithContext(ctx).Raw(disruptorIDQuery, industryID, organizationID).Scan(&ids).Error; err != nil {
		return 0, false, &reconcile.StoreError{Op: "resolve disruptor", Err: err}
	}
	if len(ids) == 0 {
		return 0, false, nil
	}
	return ids[0], true, nil
}

func unknownDisruptor(industryID int64, organizationID string, expected int64) *reconcile.UnresolvedReferenceError {
	return &reconcile.UnresolvedReferenceError{
		Kind:           reconcile.RefDisruptor,
		IndustryID:     industryID,
		OrganizationID: organizationID,
		References:     []string{organizationID},
		Expected:       expected,
	}
}
