package output

import (
	"fmt"
	"io"
	"os"

	"github.com/annolint/annolint/internal/corpus"
	"github.com/annolint/annolint/internal/record"
)

// ReportWriter writes a validation report in a specific format.
type ReportWriter interface {
	Write(w io.Writer, report *corpus.Report) error
}

// GetReportWriter returns a report writer for the specified format.
func GetReportWriter(format string) (ReportWriter, error) {
	switch format {
	case "text":
		return &TextWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// Exporter writes canonical issue records in a specific format.
type Exporter interface {
	Export(w io.Writer, files []*record.File) error
}

// GetExporter returns an exporter for the specified format.
func GetExporter(format string) (Exporter, error) {
	switch format {
	case "yaml":
		return &YAMLExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	case "sarif":
		return &SARIFExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// WriteReport writes the report to the specified output (file path or stdout).
func WriteReport(report *corpus.Report, format, outPath string) error {
	writer, err := GetReportWriter(format)
	if err != nil {
		return err
	}
	w, closeFn, err := destination(outPath)
	if err != nil {
		return err
	}
	defer closeFn()
	return writer.Write(w, report)
}

// WriteExport writes canonical records to the specified output (file path or
// stdout).
func WriteExport(files []*record.File, format, outPath string) error {
	exporter, err := GetExporter(format)
	if err != nil {
		return err
	}
	w, closeFn, err := destination(outPath)
	if err != nil {
		return err
	}
	defer closeFn()
	return exporter.Export(w, files)
}

func destination(outPath string) (io.Writer, func(), error) {
	if outPath == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(outPath)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}
