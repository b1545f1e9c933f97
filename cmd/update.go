package cmd

import (
	"fmt"
	"os"

	"disruption-sync/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for update command
	dryRunUpdate    bool
	perRecordUpdate bool
)

// updateCmd writes the associations of a JSONL file back to the store.
var updateCmd = &cobra.Command{
	Use:   "update <input> <host> <port> <credential> <database>",
	Short: "Replace stored associations with those of a JSONL file",
	Long: `Read a JSONL file produced by extract (possibly edited) and, for every line,
replace all segment and competitor associations of its organization and industry with
the ones listed. Competitor order values are written as given.

Every segment code and competitor organization must exist in the store; otherwise the
update fails and is rolled back.

Examples:
  # Apply the whole file atomically
  update out.jsonl localhost 3306 reports disruptions

  # Check the file against the store without committing
  update out.jsonl localhost 3306 reports disruptions --dry-run

  # Commit record by record
  update out.jsonl localhost 3306 reports disruptions --per-record`,
	Args: cobra.ExactArgs(5),
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().BoolVar(&dryRunUpdate, "dry-run", false, "Apply every record and roll back instead of committing")
	updateCmd.Flags().BoolVar(&perRecordUpdate, "per-record", false, "Commit each record in its own transaction")

	RootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rt, err := setup(storeArgs{host: args[1], port: args[2], credential: args[3], name: args[4]})
	if err != nil {
		return err
	}
	defer rt.close()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	opts := reconcile.UpdateOptions{DryRun: dryRunUpdate, PerRecord: perRecordUpdate}
	rt.log.Info("Starting update", zap.String("input", args[0]))

	summary, err := reconcile.Update(ctx, rt.spec, rt.db, f, opts)
	if summary != nil {
		fields := []zap.Field{
			zap.Int("records", summary.Records),
			zap.Int("committed", summary.Committed),
			zap.Int64("segments_deleted", summary.SegmentsDeleted),
			zap.Int64("segments_inserted", summary.SegmentsInserted),
			zap.Int64("competitors_deleted", summary.CompetitorsDeleted),
			zap.Int64("competitors_inserted", summary.CompetitorsInserted),
		}
		if err != nil {
			rt.log.Warn("Update aborted", fields...)
		} else {
			rt.log.Info("Update complete", append(fields, zap.Bool("dry_run", opts.DryRun))...)
		}
	}
	return err
}
