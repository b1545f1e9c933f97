package reconcile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"disruption-sync/core/source"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Extract decodes every event file of src in order, resolves the current segment and
// competitor associations of each event against db and writes one JSON line per event
// to out. Lines are separated by a newline; none follows the last one.
//
// The first decode failure aborts the run. Lines already written stay written.
func Extract(ctx context.Context, spec *Spec, db *gorm.DB, src source.Source, out io.Writer) (*ExtractSummary, error) {
	names, err := src.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list event files: %w", err)
	}

	summary := &ExtractSummary{Files: len(names), ByKind: map[string]int{}}
	spec.Logger.Info("Extracting events", zap.String("adapter", spec.Adapter.Name()), zap.Int("files", len(names)))

	sep := ""
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		record, err := decodeFile(ctx, spec.Adapter, src, name)
		if err != nil {
			return summary, fmt.Errorf("%s: %w", name, err)
		}
		summary.ByKind[record.Kind.String()]++

		segments, err := spec.Adapter.ResolveSegments(ctx, db, record.OrganizationID, record.IndustryID)
		if err != nil {
			return summary, fmt.Errorf("%s: %w", name, err)
		}
		competitors, err := spec.Adapter.ResolveCompetitors(ctx, db, record.IndustryID, record.OrganizationID)
		if err != nil {
			return summary, fmt.Errorf("%s: %w", name, err)
		}

		line, err := marshalLine(NewFlatRecord(record, segments, competitors))
		if err != nil {
			return summary, fmt.Errorf("%s: failed to encode record: %w", name, err)
		}
		if _, err := io.WriteString(out, sep); err != nil {
			return summary, err
		}
		if _, err := out.Write(line); err != nil {
			return summary, err
		}
		sep = "\n"
		summary.Records++

		spec.Logger.Debug("Extracted event",
			zap.String("file", name),
			zap.Stringer("kind", record.Kind),
			zap.String("organization_id", record.OrganizationID),
			zap.Int64("industry_id", record.IndustryID),
			zap.Int("segments", len(segments)),
			zap.Int("competitors", len(competitors)),
		)
	}

	return summary, nil
}

func decodeFile(ctx context.Context, adapter Adapter, src source.Source, name string) (*LogRecord, error) {
	rc, err := src.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to open event file: %w", err)
	}
	defer rc.Close()

	return adapter.DecodeEvent(rc)
}

// marshalLine encodes v as one compact JSON object. Codes are written verbatim, without
// HTML escaping of <, > and &.
func marshalLine(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
