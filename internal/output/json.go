package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/annolint/annolint/internal/corpus"
	"github.com/annolint/annolint/internal/issue"
	"github.com/annolint/annolint/internal/record"
)

// JSONWriter outputs the full validation report as JSON.
type JSONWriter struct{}

// jsonResult is the serializable view of a corpus.FileResult.
type jsonResult struct {
	Snapshot string                    `json:"snapshot"`
	Path     string                    `json:"path"`
	OK       bool                      `json:"ok"`
	Cached   bool                      `json:"cached,omitempty"`
	IssueIDs []string                  `json:"issue_ids,omitempty"`
	Error    string                    `json:"error,omitempty"`
	Stale    []corpus.StalenessFinding `json:"stale,omitempty"`
}

type jsonReport struct {
	Files    int          `json:"files"`
	Issues   int          `json:"issues"`
	Failures int          `json:"failures"`
	Stale    int          `json:"stale"`
	Results  []jsonResult `json:"results"`
}

func (j *JSONWriter) Write(w io.Writer, report *corpus.Report) error {
	files, issues, failures, stale := report.Counts()
	out := jsonReport{
		Files:    files,
		Issues:   issues,
		Failures: failures,
		Stale:    stale,
		Results:  make([]jsonResult, len(report.Results)),
	}
	for i, res := range report.Results {
		jr := jsonResult{
			Snapshot: res.Snapshot,
			Path:     res.Path,
			OK:       res.OK(),
			Cached:   res.Cached,
			IssueIDs: res.IssueIDs,
			Stale:    res.Stale,
		}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		out.Results[i] = jr
	}
	return writeJSON(w, out)
}

// JSONExporter outputs canonical issue records as JSON, grouped by file path.
type JSONExporter struct{}

func (j *JSONExporter) Export(w io.Writer, files []*record.File) error {
	out := make(map[string]map[string]*issue.Issue, len(files))
	for _, f := range files {
		out[f.Path] = f.Issues
	}
	return writeJSON(w, out)
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}
