package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/annolint/annolint/internal/config"
	"github.com/annolint/annolint/internal/corpus"
	"github.com/annolint/annolint/internal/ingest"
	"github.com/annolint/annolint/internal/record"
)

var (
	flagEndpoint string
	flagToken    string
	flagDryRun   bool
	flagNoRedact bool
)

var syncCmd = &cobra.Command{
	Use:   "sync [target]",
	Short: "Push validated annotations to a corpus service",
	Long:  "Validate issue files and submit their canonical form to the configured corpus service as one batch. Nothing is pushed unless every file validates.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		overrides := make(map[string]string)
		if flagEndpoint != "" {
			overrides["endpoint"] = flagEndpoint
		}
		if flagToken != "" {
			overrides["token"] = flagToken
		}
		cfg, err := config.Load(overrides)
		if err != nil {
			return err
		}
		if cfg.Endpoint == "" {
			return fmt.Errorf("no endpoint configured; set one with --endpoint or 'annolint config set endpoint <url>'")
		}

		target, err := resolveTarget(args, cfg)
		if err != nil {
			return err
		}

		snapshots, err := corpus.Resolve(target)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		if flagNoRedact {
			fmt.Fprintln(os.Stderr, "WARNING: secret redaction is disabled")
		}

		var records []ingest.BatchRecord
		for _, snap := range snapshots {
			for _, path := range snap.IssueFiles {
				f, err := record.Load(path)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error: %v\n", err)
					exitCode = ExitFindings
					return nil
				}
				rec, err := ingest.NewRecord(snap.Slug, f, !flagNoRedact)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error: %v\n", err)
					exitCode = ExitRuntimeError
					return nil
				}
				records = append(records, rec)
			}
		}

		if flagDryRun {
			fmt.Fprintf(os.Stdout, "Dry run: %d record(s) ready for %s\n", len(records), cfg.Endpoint)
			return nil
		}

		client := ingest.New(cfg.Endpoint, cfg.Token, newLogger())
		result, err := client.PushBatch(context.Background(), records)
		if err != nil {
			if ingest.IsAuthError(err) {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				exitCode = ExitAuthError
				return nil
			}
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		fmt.Fprintf(os.Stdout, "Pushed batch %s: %d record(s) accepted\n", result.BatchID, result.Accepted)
		return nil
	},
}

func init() {
	syncCmd.Flags().StringVar(&flagEndpoint, "endpoint", "", "Corpus service endpoint URL")
	syncCmd.Flags().StringVar(&flagToken, "token", "", "API token")
	syncCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Validate and assemble the batch without pushing")
	syncCmd.Flags().BoolVar(&flagNoRedact, "no-redact", false, "Disable secret redaction (use with caution)")
}
