package syncer

import (
	"context"
	"sort"

	"disruption-sync/core/reconcile"

	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const deleteSegmentsSQL = `DELETE FROM disruptor_categories
WHERE disruptor_id IN (
	SELECT d.id FROM disruptor d
	JOIN crunchbase_initial_company ci ON d.company_company_id = ci.company_company_id
	WHERE d.report_id = ? AND ci.organization_id = ?)`

// Codes that match no category drop out of the join, which the row count check catches.
const insertSegmentsSQL = `INSERT INTO disruptor_categories (disruptor_id, categories_id)
SELECT DISTINCT d.id, cc.id
FROM disruptor d
JOIN crunchbase_initial_company ci ON d.company_company_id = ci.company_company_id AND d.report_id = ?
CROSS JOIN company_category cc
WHERE ci.organization_id = ? AND cc.external_entry_id IN ?`

const knownCodesQuery = `SELECT external_entry_id FROM company_category WHERE external_entry_id IN ?`

// Segments replaces the segment associations of the pair with codes. An empty codes
// clears them. Every code must resolve to exactly one inserted row; otherwise an
// *reconcile.UnresolvedReferenceError is returned and the caller must roll back.
func (s *Synchronizer) Segments(ctx context.Context, tx *gorm.DB, industryID int64, organizationID string, codes []string) (reconcile.SyncResult, error) {
	var result reconcile.SyncResult
	db := tx.WithContext(ctx)

	res := db.Exec(deleteSegmentsSQL, industryID, organizationID)
	if res.Error != nil {
		return result, &reconcile.StoreError{Op: "delete segments", Err: res.Error}
	}
	result.Deleted = res.RowsAffected
	s.logger.Info("Deleted segments",
		zap.Int64("deleted", result.Deleted),
		zap.String("organization_id", organizationID),
		zap.Int64("industry_id", industryID),
	)

	if len(codes) == 0 {
		return result, nil
	}

	res = db.Exec(insertSegmentsSQL, industryID, organizationID, codes)
	if res.Error != nil {
		return result, &reconcile.StoreError{Op: "insert segments", Err: res.Error}
	}
	result.Inserted = res.RowsAffected

	if result.Inserted != int64(len(codes)) {
		return result, s.segmentMismatch(ctx, tx, industryID, organizationID, codes, result.Inserted)
	}
	return result, nil
}

// segmentMismatch builds the fault for a failed count check, naming the unknown codes
// or, when every code is known, the missing disruptor.
func (s *Synchronizer) segmentMismatch(ctx context.Context, tx *gorm.DB, industryID int64, organizationID string, codes []string, inserted int64) error {
	fault := &reconcile.UnresolvedReferenceError{
		Kind:           reconcile.RefSegment,
		IndustryID:     industryID,
		OrganizationID: organizationID,
		Expected:       int64(len(codes)),
		Inserted:       inserted,
	}

	var known []string
	if err := tx.WithContext(ctx).Raw(knownCodesQuery, codes).Scan(&known).Error; err != nil {
		return &reconcile.StoreError{Op: "lookup segment codes", Err: err}
	}

	unknown := mapset.NewThreadUnsafeSet(codes...).Difference(mapset.NewThreadUnsafeSet(known...)).ToSlice()
	if len(unknown) > 0 {
		sort.Strings(unknown)
		fault.References = unknown
		return fault
	}

	if _, ok, err := disruptorID(ctx, tx, industryID, organizationID); err != nil {
		return err
	} else if !ok {
		missing := unknownDisruptor(industryID, organizationID, fault.Expected)
		missing.Inserted = inserted
		return missing
	}

	return fault
}
