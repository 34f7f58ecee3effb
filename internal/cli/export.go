package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/annolint/annolint/internal/config"
	"github.com/annolint/annolint/internal/corpus"
	"github.com/annolint/annolint/internal/output"
	"github.com/annolint/annolint/internal/record"
)

var flagExportFormat string

// loadFiles parses every issue file of the given snapshots, failing on the
// first file that does not validate.
func loadFiles(snapshots []corpus.Snapshot) ([]*record.File, error) {
	var files []*record.File
	for _, snap := range snapshots {
		for _, path := range snap.IssueFiles {
			f, err := record.Load(path)
			if err != nil {
				return nil, err
			}
			files = append(files, f)
		}
	}
	return files, nil
}

var exportCmd = &cobra.Command{
	Use:   "export [target]",
	Short: "Export validated annotations in canonical form",
	Long:  "Parse and validate issue files, then emit their canonical representation as YAML, JSON, or SARIF.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(nil)
		if err != nil {
			return err
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

		files, err := loadFiles(snapshots)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitFindings
			return nil
		}

		if err := output.WriteExport(files, flagExportFormat, flagOut); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&flagExportFormat, "format", "yaml", "Export format (yaml, json, sarif)")
	exportCmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
}
