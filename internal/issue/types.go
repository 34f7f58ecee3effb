package issue

import (
	"fmt"
	"sort"
)

// LineRange is a canonical 1-based, inclusive line range. Single-line
// anchors are materialized with EndLine == StartLine.
type LineRange struct {
	StartLine int    `yaml:"start_line" json:"start_line"`
	EndLine   int    `yaml:"end_line" json:"end_line"`
	Note      string `yaml:"note,omitempty" json:"note,omitempty"`
}

// String formats the range as "123" or "123-145".
func (r LineRange) String() string {
	if r.EndLine == r.StartLine {
		return fmt.Sprintf("%d", r.StartLine)
	}
	return fmt.Sprintf("%d-%d", r.StartLine, r.EndLine)
}

// FileRanges maps a file path to its line ranges. A nil range list means the
// whole file is relevant with no specific lines.
type FileRanges map[string][]LineRange

// Paths returns the file paths in sorted order.
func (f FileRanges) Paths() []string {
	paths := make([]string, 0, len(f))
	for p := range f {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Occurrence is one located instance of an issue. For true positives
// DetectionSets is populated and RelevantFiles is nil; for false positives
// the reverse. MatchOnly, when non-nil, restricts which reported files a
// critique may use to match this occurrence.
type Occurrence struct {
	ID            string     `yaml:"occurrence_id" json:"occurrence_id"`
	Files         FileRanges `yaml:"files" json:"files"`
	Note          string     `yaml:"note,omitempty" json:"note,omitempty"`
	DetectionSets [][]string `yaml:"critic_scopes_expected_to_recall,omitempty" json:"critic_scopes_expected_to_recall,omitempty"`
	RelevantFiles []string   `yaml:"relevant_files,omitempty" json:"relevant_files,omitempty"`
	MatchOnly     []string   `yaml:"graders_match_only_if_reported_on,omitempty" json:"graders_match_only_if_reported_on,omitempty"`
}

// Issue is a canonical, fully validated issue record ready for export or
// ingestion. ShouldFlag marks a true positive; false marks a false-positive
// exemplar.
type Issue struct {
	Rationale   string       `yaml:"rationale" json:"rationale"`
	ShouldFlag  bool         `yaml:"should_flag" json:"should_flag"`
	Occurrences []Occurrence `yaml:"occurrences" json:"occurrences"`
}

// FileUnion returns the sorted union of file paths across all occurrences.
func (iss *Issue) FileUnion() []string {
	seen := make(map[string]bool)
	for _, occ := range iss.Occurrences {
		for p := range occ.Files {
			seen[p] = true
		}
	}
	union := make([]string, 0, len(seen))
	for p := range seen {
		union = append(union, p)
	}
	sort.Strings(union)
	return union
}
