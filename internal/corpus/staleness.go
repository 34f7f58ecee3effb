package corpus

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/annolint/annolint/internal/record"
)

// StalenessFinding reports an annotation that no longer matches the
// snapshot's code tree.
type StalenessFinding struct {
	IssueID      string `json:"issue_id"`
	OccurrenceID string `json:"occurrence_id"`
	File         string `json:"file"`
	Reason       string `json:"reason"`
}

func (f StalenessFinding) String() string {
	return fmt.Sprintf("%s/%s: %s: %s", f.IssueID, f.OccurrenceID, f.File, f.Reason)
}

// CheckStaleness cross-checks every annotated path and range in a validated
// issue file against the snapshot's code tree. Findings are ordered by issue
// ID, then occurrence, then file.
func CheckStaleness(codeDir string, f *record.File) []StalenessFinding {
	var findings []StalenessFinding
	for _, id := range f.IDs {
		iss := f.Issues[id]
		for _, occ := range iss.Occurrences {
			for _, path := range occ.Files.Paths() {
				lines, err := countLines(filepath.Join(codeDir, filepath.FromSlash(path)))
				if err != nil {
					findings = append(findings, StalenessFinding{
						IssueID:      id,
						OccurrenceID: occ.ID,
						File:         path,
						Reason:       "file not present in snapshot",
					})
					continue
				}
				for _, r := range occ.Files[path] {
					if r.EndLine > lines {
						findings = append(findings, StalenessFinding{
							IssueID:      id,
							OccurrenceID: occ.ID,
							File:         path,
							Reason:       fmt.Sprintf("range %s exceeds file length %d", r, lines),
						})
					}
				}
			}
		}
	}
	return findings
}

// countLines counts lines the way editors number them: a trailing fragment
// without a final newline still counts as a line.
func countLines(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	if len(data) == 0 {
		return 0, nil
	}
	n := bytes.Count(data, []byte("\n"))
	if data[len(data)-1] != '\n' {
		n++
	}
	return n, nil
}
