// Package syncer implements replace-all synchronization of segment and competitor
// associations.
//
// # Segments
//
// All segment rows of the pair are deleted, then one INSERT ... SELECT joins the pair's
// disruptor with every category whose external code is requested. The inserted row
// count must equal the number of requested codes. A mismatch means a code (or the
// disruptor itself) is unknown to the store and fails the operation; the error names
// the unknown codes.
//
// # Competitors
//
// All competitor rows of the pair are deleted, the disruptor and every competitor
// organization are resolved to internal ids, then all rows are written in one bulk
// insert carrying the requested order values.
//
// # Usage
//
//	s := syncer.NewSynchronizer(logger)
//	err := db.Transaction(func(tx *gorm.DB) error {
//	    if _, err := s.Segments(ctx, tx, 7, "org", []string{"S1"}); err != nil {
//	        return err
//	    }
//	    _, err := s.Competitors(ctx, tx, 7, "org", competitors)
//	    return err
//	})
package syncer
