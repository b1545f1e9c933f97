package reconcile

import (
	"context"
	"io"

	"gorm.io/gorm"
)

// Adapter defines the schema-specific parts of reconciliation: how an event is decoded,
// how current associations are read, and how they are replaced.
//
// Every method that receives a *gorm.DB must issue all of its queries through that
// handle; during an update it is the open transaction.
type Adapter interface {
	// Name returns the unique name of this adapter.
	Name() string

	// DecodeEvent reads exactly one event from r. It returns *UnrecognizedEventError when
	// the event carries neither recognized tag and *MissingFieldError when a required
	// field is absent.
	DecodeEvent(r io.Reader) (*LogRecord, error)

	// ResolveSegments returns the external segment codes currently associated with the
	// organization in the industry. No associations is an empty slice, not an error.
	ResolveSegments(ctx context.Context, db *gorm.DB, organizationID string, industryID int64) ([]string, error)

	// ResolveCompetitors returns the competitor associations currently stored for the
	// organization in the industry, ordered by competitor organization then sort order.
	ResolveCompetitors(ctx context.Context, db *gorm.DB, industryID int64, organizationID string) ([]Competitor, error)

	// SyncSegments replaces all segment associations of the pair with codes.
	SyncSegments(ctx context.Context, tx *gorm.DB, industryID int64, organizationID string, codes []string) (SyncResult, error)

	// SyncCompetitors replaces all competitor associations of the pair with competitors,
	// keeping the given order values.
	SyncCompetitors(ctx context.Context, tx *gorm.DB, industryID int64, organizationID string, competitors []FlatCompetitor) (SyncResult, error)
}
