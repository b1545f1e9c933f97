package disruption

import (
	"context"
	"fmt"
	"io"

	"disruption-sync/core/reconcile"
	"disruption-sync/feature/disruption/decode"
	"disruption-sync/feature/disruption/resolve"
	"disruption-sync/feature/disruption/syncer"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Adapter implements the reconcile.Adapter interface for disruption reports.
type Adapter struct {
	decoder      *decode.Decoder
	synchronizer *syncer.Synchronizer
}

var _ reconcile.Adapter = (*Adapter)(nil)

// NewAdapter creates a new disruption adapter. logger receives synchronization counts.
func NewAdapter(logger *zap.Logger) (*Adapter, error) {
	decoder, err := decode.NewDecoder()
	if err != nil {
		return nil, fmt.Errorf("failed to create event decoder: %w", err)
	}
	return &Adapter{
		decoder:      decoder,
		synchronizer: syncer.NewSynchronizer(logger.Named("syncer")),
	}, nil
}

// Name returns the unique name of this adapter.
func (a *Adapter) Name() string {
	return "disruption"
}

// DecodeEvent reads one CBOR event from r.
func (a *Adapter) DecodeEvent(r io.Reader) (*reconcile.LogRecord, error) {
	return a.decoder.Decode(r)
}

// ResolveSegments returns the segment codes stored for the pair.
func (a *Adapter) ResolveSegments(ctx context.Context, db *gorm.DB, organizationID string, industryID int64) ([]string, error) {
	return resolve.Segments(ctx, db, organizationID, industryID)
}

// ResolveCompetitors returns the ranked competitors stored for the pair.
func (a *Adapter) ResolveCompetitors(ctx context.Context, db *gorm.DB, industryID int64, organizationID string) ([]reconcile.Competitor, error) {
	return resolve.Competitors(ctx, db, industryID, organizationID)
}

// SyncSegments replaces the segment associations of the pair.
func (a *Adapter) SyncSegments(ctx context.Context, tx *gorm.DB, industryID int64, organizationID string, codes []string) (reconcile.SyncResult, error) {
	return a.synchronizer.Segments(ctx, tx, industryID, organizationID, codes)
}

// SyncCompetitors replaces the competitor associations of the pair.
func (a *Adapter) SyncCompetitors(ctx context.Context, tx *gorm.DB, industryID int64, organizationID string, competitors []reconcile.FlatCompetitor) (reconcile.SyncResult, error) {
	return a.synchronizer.Competitors(ctx, tx, industryID, organizationID, competitors)
}
