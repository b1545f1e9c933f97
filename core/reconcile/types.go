package reconcile

import "go.uber.org/zap"

// EventKind tags which of the two recognized event shapes a record was decoded from.
// Both kinds carry the same payload and are handled identically downstream.
type EventKind int

const (
	// KindUpdate is an event carried under the "update" key.
	KindUpdate EventKind = iota + 1
	// KindNewDisruption is an event carried under the "newDisruption" key.
	KindNewDisruption
)

// String returns the wire tag of the kind.
func (k EventKind) String() string {
	switch k {
	case KindUpdate:
		return "update"
	case KindNewDisruption:
		return "newDisruption"
	default:
		return "unknown"
	}
}

// LogRecord is the canonical shape of one decoded event. It only lives for the
// duration of processing that event.
type LogRecord struct {
	Kind           EventKind
	OrganizationID string
	IndustryID     int64
	CompetitorIDs  []int64
	SegmentIDs     []int64
}

// Competitor is one ranked competitor association as stored.
type Competitor struct {
	OrganizationID string
	SortOrder      int64
}

// FlatCompetitor is the JSONL form of a Competitor.
type FlatCompetitor struct {
	OrganizationID string `json:"organization_id"`
	Order          int64  `json:"order"`
}

// FlatRecord is one line of the JSONL bridge file between extract and update.
// Field order is part of the output format.
type FlatRecord struct {
	OrganizationID string           `json:"organization_id"`
	IndustryID     int64            `json:"industry_id"`
	Segments       []string         `json:"segments"`
	Competitors    []FlatCompetitor `json:"competitors"`
}

// NewFlatRecord builds the flat line for a decoded record and its resolved associations.
// Empty associations serialize as [] rather than null.
func NewFlatRecord(record *LogRecord, segments []string, competitors []Competitor) FlatRecord {
	flat := FlatRecord{
		OrganizationID: record.OrganizationID,
		IndustryID:     record.IndustryID,
		Segments:       make([]string, 0, len(segments)),
		Competitors:    make([]FlatCompetitor, 0, len(competitors)),
	}
	flat.Segments = append(flat.Segments, segments...)
	for _, c := range competitors {
		flat.Competitors = append(flat.Competitors, FlatCompetitor{OrganizationID: c.OrganizationID, Order: c.SortOrder})
	}
	return flat
}

// SyncResult reports the row counts of one synchronization.
type SyncResult struct {
	// Deleted is the number of associations removed. Informational only.
	Deleted int64
	// Inserted is the number of associations written.
	Inserted int64
}

// Spec bundles the adapter and the logger a run reports through.
type Spec struct {
	// Adapter provides decoding, resolution and synchronization.
	Adapter Adapter

	// Logger receives progress and per-record counts. Must not be nil.
	Logger *zap.Logger
}

// ExtractSummary provides aggregate counts for an extraction run.
type ExtractSummary struct {
	// Files is the number of event files discovered.
	Files int `json:"files"`

	// Records is the number of lines written.
	Records int `json:"records"`

	// ByKind counts decoded events per event kind.
	ByKind map[string]int `json:"by_kind"`
}

// UpdateOptions controls transaction scope of an update run.
type UpdateOptions struct {
	// DryRun performs every synchronization and then rolls back.
	DryRun bool

	// PerRecord commits each record in its own transaction instead of one
	// transaction for the whole input file.
	PerRecord bool
}

// UpdateSummary provides aggregate counts for an update run.
type UpdateSummary struct {
	// Records is the number of flat records synchronized.
	Records int `json:"records"`

	// Committed is the number of records whose changes were committed.
	Committed int `json:"committed"`

	// SegmentsDeleted counts removed segment associations.
	SegmentsDeleted int64 `json:"segments_deleted"`

	// SegmentsInserted counts written segment associations.
	SegmentsInserted int64 `json:"segments_inserted"`

	// CompetitorsDeleted counts removed competitor associations.
	CompetitorsDeleted int64 `json:"competitors_deleted"`

	// CompetitorsInserted counts written competitor associations.
	CompetitorsInserted int64 `json:"competitors_inserted"`
}
