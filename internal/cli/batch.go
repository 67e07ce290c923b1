package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ticktools/goduration/internal/logging"
	"github.com/ticktools/goduration/internal/progress"
	"github.com/ticktools/goduration/internal/textio"
)

// maxLineBytes bounds a single input line; duration literals are tiny,
// so anything near this limit is garbage input, not a real literal.
const maxLineBytes = 1024 * 1024

// runBatch parses literals one per line from path. Blank lines and
// #-comments are skipped. Invalid lines are reported with their line
// number and counted; the batch fails if any line failed.
func runBatch(ctx context.Context, cmd *cobra.Command, path string, scale int64) error {
	logger := logging.FromContext(ctx)

	rc, format, err := textio.Open(path)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer rc.Close()
	if format != textio.Plain {
		logger.Debug("compressed_input", "path", path, "format", format.String())
	}

	meter := progress.New(0, 0, logger, quiet)
	meter.Start()
	defer meter.Stop()

	sc := bufio.NewScanner(rc)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	lineNo := 0
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		ns, err := parseOne(line)
		if err != nil {
			meter.Observe(false)
			if !quiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "line %d: %v\n", lineNo, err)
			}
			continue
		}
		meter.Observe(true)
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), formatValue(ns, scale))
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	meter.Stop()
	if n := meter.Invalid(); n > 0 {
		return fmt.Errorf("%d of %d lines failed to parse", n, meter.Processed())
	}
	return nil
}
