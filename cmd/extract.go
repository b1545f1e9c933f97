package cmd

import (
	"bufio"
	"fmt"
	"os"

	"disruption-sync/core/reconcile"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// extractCmd writes the stored associations of every logged event to a JSONL file.
var extractCmd = &cobra.Command{
	Use:   "extract <log-pattern> <host> <port> <credential> <database> <output>",
	Short: "Export the current associations of logged events as JSONL",
	Long: `Decode every CBOR event file matching the pattern (sorted by name), look up the
segments and competitors currently stored for its organization and industry, and write
one JSON line per event to the output file.

The pattern is a local glob ("**" matches any depth) or s3://<bucket>/<glob> for event
files kept in object storage. The credential is used as both database user and password.

Examples:
  extract 'logs/**/*.cbor' localhost 3306 reports disruptions out.jsonl
  extract 's3://events/2024/**/*.cbor' db.internal 3306 reports disruptions out.jsonl`,
	Args: cobra.ExactArgs(6),
	RunE: runExtract,
}

func init() {
	RootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) (err error) {
	ctx := cmd.Context()

	rt, err := setup(storeArgs{host: args[1], port: args[2], credential: args[3], name: args[4]})
	if err != nil {
		return err
	}
	defer rt.close()

	src, err := rt.eventSource(args[0])
	if err != nil {
		return err
	}

	f, err := os.Create(args[5])
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	w := bufio.NewWriter(f)

	// Whatever was extracted before a failure stays on disk.
	defer func() {
		var closeErr error
		if flushErr := w.Flush(); flushErr != nil {
			closeErr = multierror.Append(closeErr, fmt.Errorf("failed to flush output: %w", flushErr))
		}
		if cErr := f.Close(); cErr != nil {
			closeErr = multierror.Append(closeErr, fmt.Errorf("failed to close output: %w", cErr))
		}
		if closeErr != nil {
			err = multierror.Append(err, closeErr)
		}
	}()

	rt.log.Info("Starting extraction", zap.String("pattern", args[0]), zap.String("output", args[5]))

	summary, err := reconcile.Extract(ctx, rt.spec, rt.db, src, w)
	if err != nil {
		if summary != nil {
			rt.log.Warn("Extraction aborted", zap.Int("records_written", summary.Records))
		}
		return err
	}

	rt.log.Info("Extraction complete",
		zap.Int("files", summary.Files),
		zap.Int("records", summary.Records),
		zap.Any("by_kind", summary.ByKind),
	)
	return nil
}
