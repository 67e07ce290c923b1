package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ticktools/goduration"
	"github.com/ticktools/goduration/internal/config"
	"github.com/ticktools/goduration/internal/logging"
	"github.com/ticktools/goduration/internal/version"
	str2duration "github.com/xhit/go-str2duration/v2"
)

var (
	unit       string
	human      bool
	extended   bool
	inputFile  string
	quiet      bool
	configPath string
	logLevel   string
	logFormat  string
)

var rootCmd = &cobra.Command{
	Use:   "goduration [flags] DURATION...",
	Short: "Parse Go-style duration literals into nanoseconds",
	Long: `goduration

Parses duration literals like "300ms", "-1.5h" or "2h45m" using the exact
grammar and overflow behavior of Go's standard duration parser, and prints
the result as a count of nanoseconds (or another unit via --unit).

Literals are read from the arguments, or one per line from --file, which
transparently decompresses gzip, bzip2, xz and zstd inputs.
`,
	RunE:    run,
	Version: version.Print(),
	Args:    cobra.ArbitraryArgs,
}

func init() {
	rootCmd.Flags().StringVarP(&unit, "unit", "u", "ns", "Output unit: ns, us, ms, s, m or h")
	rootCmd.Flags().BoolVarP(&human, "human", "H", false, "Group output digits for readability")
	rootCmd.Flags().BoolVarP(&extended, "extended", "x", false, "Also accept day (d) and week (w) units")
	rootCmd.Flags().StringVarP(&inputFile, "file", "f", "", "Read literals one per line from FILE (\"-\" for stdin; gzip/bzip2/xz/zstd detected)")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress per-line output; only the batch summary remains")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML file with flag defaults")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	rootCmd.Flags().StringVar(&logFormat, "log-format", "text", "Log format: text or json")

	// Silence usage output for runtime errors, but show it for flag errors
	// SilenceErrors is true so we can control error output format in main()
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		_ = cmd.Usage()
		return err
	})
}

// ExecuteContext runs the root command.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func run(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
	}

	// Flags win over config file values
	flags := cmd.Flags()
	if !flags.Changed("unit") && cfg.Unit != "" {
		unit = cfg.Unit
	}
	if !flags.Changed("extended") {
		extended = cfg.Extended
	}
	if !flags.Changed("log-level") && cfg.Log.Level != "" {
		logLevel = cfg.Log.Level
	}
	if !flags.Changed("log-format") && cfg.Log.Format != "" {
		logFormat = cfg.Log.Format
	}

	scale, ok := outputUnits[unit]
	if !ok {
		return fmt.Errorf("unknown output unit %q (want ns, us, ms, s, m or h)", unit)
	}

	logger, err := logging.New(logLevel, logFormat, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	ctx := logging.WithContext(cmd.Context(), logger)

	if inputFile != "" {
		if len(args) > 0 {
			return fmt.Errorf("cannot combine --file with duration arguments")
		}
		return runBatch(ctx, cmd, inputFile, scale)
	}

	if len(args) == 0 {
		return fmt.Errorf("no duration literals given (pass arguments or --file)")
	}
	for _, arg := range args {
		ns, err := parseOne(arg)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), formatValue(ns, scale))
	}
	return nil
}

// parseOne parses a single literal with the configured grammar. The
// strict grammar surfaces the library's error verbatim; the extended
// grammar additionally understands day and week units.
func parseOne(s string) (int64, error) {
	if extended {
		d, err := str2duration.ParseDuration(s)
		if err != nil {
			return 0, err
		}
		return int64(d), nil
	}
	return goduration.Parse(s)
}
