package reconcile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReadFlatRecords parses a whole JSONL input. Blank lines are skipped.
func ReadFlatRecords(in io.Reader) ([]FlatRecord, error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	var records []FlatRecord
	for i, line := range bytes.Split(data, []byte("\n")) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		var record FlatRecord
		if err := json.Unmarshal(line, &record); err != nil {
			return nil, &FlatRecordError{Line: i + 1, Err: err}
		}
		records = append(records, record)
	}
	return records, nil
}

// Update replaces the segment and competitor associations of every record in the JSONL
// input. The input is read completely before the store is touched.
//
// By default all records share one transaction: any fault rolls back the whole file.
// With opts.PerRecord each record commits on its own and a fault only rolls back the
// record being processed. With opts.DryRun every transaction is rolled back.
func Update(ctx context.Context, spec *Spec, db *gorm.DB, in io.Reader, opts UpdateOptions) (*UpdateSummary, error) {
	records, err := ReadFlatRecords(in)
	if err != nil {
		return nil, err
	}

	summary := &UpdateSummary{}
	spec.Logger.Info("Updating associations",
		zap.String("adapter", spec.Adapter.Name()),
		zap.Int("records", len(records)),
		zap.Bool("per_record", opts.PerRecord),
		zap.Bool("dry_run", opts.DryRun),
	)

	if opts.PerRecord {
		for i := range records {
			err := transact(ctx, db, opts.DryRun, func(tx *gorm.DB) error {
				return syncRecord(ctx, spec, tx, &records[i], summary)
			})
			if err != nil {
				return summary, err
			}
			if !opts.DryRun {
				summary.Committed++
			}
		}
		return summary, nil
	}

	err = transact(ctx, db, opts.DryRun, func(tx *gorm.DB) error {
		for i := range records {
			if err := syncRecord(ctx, spec, tx, &records[i], summary); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return summary, err
	}
	if !opts.DryRun {
		summary.Committed = summary.Records
	}
	return summary, nil
}

// transact runs fn in a transaction that commits only when fn succeeds and dryRun is
// off. A failed rollback is reported together with the error that caused it.
func transact(ctx context.Context, db *gorm.DB, dryRun bool, fn func(tx *gorm.DB) error) error {
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return &StoreError{Op: "begin transaction", Err: tx.Error}
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			return multierror.Append(err, &StoreError{Op: "rollback", Err: rbErr})
		}
		return err
	}

	if dryRun {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			return &StoreError{Op: "rollback", Err: rbErr}
		}
		return nil
	}

	if err := tx.Commit().Error; err != nil {
		return &StoreError{Op: "commit", Err: err}
	}
	return nil
}

func syncRecord(ctx context.Context, spec *Spec, tx *gorm.DB, record *FlatRecord, summary *UpdateSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	segments, err := spec.Adapter.SyncSegments(ctx, tx, record.IndustryID, record.OrganizationID, record.Segments)
	if err != nil {
		return fmt.Errorf("record %d (%s, industry %d): %w", summary.Records+1, record.OrganizationID, record.IndustryID, err)
	}
	competitors, err := spec.Adapter.SyncCompetitors(ctx, tx, record.IndustryID, record.OrganizationID, record.Competitors)
	if err != nil {
		return fmt.Errorf("record %d (%s, industry %d): %w", summary.Records+1, record.OrganizationID, record.IndustryID, err)
	}

	summary.Records++
	summary.SegmentsDeleted += segments.Deleted
	summary.SegmentsInserted += segments.Inserted
	summary.CompetitorsDeleted += competitors.Deleted
	summary.CompetitorsInserted += competitors.Inserted
	return nil
}
