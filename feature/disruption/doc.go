// Package disruption wires the disruption report schema into the reconciliation engine.
//
// The Adapter combines three subpackages:
//
//   - decode: CBOR event decoding into reconcile.LogRecord
//   - resolve: read queries producing the current segments and competitors of a pair
//   - syncer: replace-all synchronization of both association kinds
//
// Table mappings live in models; disruptiontest provides an in-memory store for tests.
//
// # Usage
//
//	adapter, err := disruption.NewAdapter(logger)
//	if err != nil {
//	    return err
//	}
//	spec := &reconcile.Spec{Adapter: adapter, Logger: logger}
//	summary, err := reconcile.Extract(ctx, spec, db, source.NewFileSource("logs/**/*.cbor"), out)
package disruption
