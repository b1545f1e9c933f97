// Package reconcile provides the engine that keeps disruption associations in the
// relational store and the CBOR event log in agreement.
//
// # Architecture
//
// The engine consists of two runs and one adapter contract:
//
// 1. Extract: walks the event files of a source.Source in lexicographic order, decodes one
// event per file, reads the segment and competitor associations currently stored for
// the event's (industry, organization) pair and writes one FlatRecord per event as a
// JSON line.
//
// 2. Update: reads a whole JSONL file of FlatRecords and, per record, replaces the
// segment associations and then the competitor associations of the pair. By default
// the whole file is one transaction.
//
// 3. Adapter: the schema-specific decoding, resolution and synchronization. See
// feature/disruption for the implementation used by the commands.
//
// # Faults
//
// Every failure is fatal to the run. The typed errors in errors.go distinguish decode
// faults (UnrecognizedEventError, MissingFieldError), referential-integrity faults
// (UnresolvedReferenceError), store faults (StoreError) and malformed input
// (FlatRecordError); use errors.As to inspect them.
//
// # Usage Example
//
//	spec := &reconcile.Spec{
//	    Adapter: disruption.NewAdapter(logger),
//	    Logger:  logger,
//	}
//
//	summary, err := reconcile.Extract(ctx, spec, db, source.NewFileSource("logs/**/*.cbor"), out)
//
//	summary, err := reconcile.Update(ctx, spec, db, in, reconcile.UpdateOptions{})
package reconcile
