package reconcile

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// memSource serves event files from memory.
type memSource struct {
	files   map[string]string
	listErr error
}

func (s *memSource) List(ctx context.Context) ([]string, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	names := make([]string, 0, len(s.files))
	for name := range s.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *memSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	content, ok := s.files[name]
	if !ok {
		return nil, fmt.Errorf("no such file %s", name)
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

// stubAdapter decodes an event from the file content, which names an entry of events.
type stubAdapter struct {
	events      map[string]*LogRecord
	segments    map[string][]string
	competitors map[string][]Competitor
	resolveErr  error

	syncErr   map[string]error
	synced    []string
	competing [][]FlatCompetitor
}

func (a *stubAdapter) Name() string { return "stub" }

func (a *stubAdapter) DecodeEvent(r io.Reader) (*LogRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	record, ok := a.events[string(data)]
	if !ok {
		return nil, &UnrecognizedEventError{Keys: []string{string(data)}}
	}
	return record, nil
}

func (a *stubAdapter) ResolveSegments(ctx context.Context, db *gorm.DB, organizationID string, industryID int64) ([]string, error) {
	if a.resolveErr != nil {
		return nil, a.resolveErr
	}
	return a.segments[organizationID], nil
}

func (a *stubAdapter) ResolveCompetitors(ctx context.Context, db *gorm.DB, industryID int64, organizationID string) ([]Competitor, error) {
	return a.competitors[organizationID], nil
}

func (a *stubAdapter) SyncSegments(ctx context.Context, tx *gorm.DB, industryID int64, organizationID string, codes []string) (SyncResult, error) {
	if err := a.syncErr[organizationID]; err != nil {
		return SyncResult{}, err
	}
	a.synced = append(a.synced, organizationID)
	return SyncResult{Deleted: 1, Inserted: int64(len(codes))}, nil
}

func (a *stubAdapter) SyncCompetitors(ctx context.Context, tx *gorm.DB, industryID int64, organizationID string, competitors []FlatCompetitor) (SyncResult, error) {
	a.competing = append(a.competing, competitors)
	return SyncResult{Deleted: 2, Inserted: int64(len(competitors))}, nil
}

// setupMockDB creates a mock GORM DB for testing transaction boundaries.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func newSpec(adapter Adapter) *Spec {
	return &Spec{Adapter: adapter, Logger: zap.NewNop()}
}
