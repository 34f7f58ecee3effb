package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/annolint/annolint/internal/cache"
	"github.com/annolint/annolint/internal/config"
	"github.com/annolint/annolint/internal/corpus"
	"github.com/annolint/annolint/internal/output"
)

// Shared validation flags
var (
	flagFormat      string
	flagOut         string
	flagJobs        int
	flagNoCache     bool
	flagNoStaleness bool
)

func addValidateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagFormat, "format", "", "Report format (text, json)")
	cmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	cmd.Flags().IntVar(&flagJobs, "jobs", 0, "Number of files validated in parallel")
	cmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Bypass the validation cache")
	cmd.Flags().BoolVar(&flagNoStaleness, "no-staleness", false, "Skip staleness checks against snapshot code")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagJobs > 0 {
		m["jobs"] = fmt.Sprintf("%d", flagJobs)
	}
	if flagNoStaleness {
		m["staleness"] = "false"
	}
	return m
}

// resolveTarget picks the validation target from args or config.
func resolveTarget(args []string, cfg config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.CorpusRoot != "" {
		return cfg.CorpusRoot, nil
	}
	return "", fmt.Errorf("no target given and corpusRoot is not configured")
}

func runValidation(target string, cfg config.Config) (*corpus.Report, []corpus.Snapshot, error) {
	snapshots, err := corpus.Resolve(target)
	if err != nil {
		return nil, nil, err
	}

	cacheEnabled := cfg.Cache.Enabled && !flagNoCache
	c, err := cache.New(cacheEnabled, cfg.Cache.Dir, cfg.Cache.TTLSeconds)
	if err != nil {
		return nil, nil, fmt.Errorf("opening cache: %w", err)
	}

	report := corpus.Validate(snapshots, corpus.Options{
		Jobs:      cfg.Jobs,
		Cache:     c,
		Staleness: cfg.Staleness,
		Logger:    newLogger(),
	})
	return report, snapshots, nil
}

var validateCmd = &cobra.Command{
	Use:   "validate [target]",
	Short: "Validate issue annotations",
	Long:  "Validate issue files under a corpus root, a single snapshot, or one issue file. The target defaults to the configured corpusRoot.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}

		target, err := resolveTarget(args, cfg)
		if err != nil {
			return err
		}

		report, _, err := runValidation(target, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		if err := output.WriteReport(report, cfg.Format, flagOut); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		if !report.Clean() {
			exitCode = ExitFindings
		}
		return nil
	},
}

func init() {
	addValidateFlags(validateCmd)
}
