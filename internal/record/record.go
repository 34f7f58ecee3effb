package record

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/annolint/annolint/internal/issue"
)

// Raw is the permissive authored form of one issue record, before
// validation and inference.
type Raw struct {
	Rationale   string          `yaml:"rationale"`
	ShouldFlag  *bool           `yaml:"should_flag"`
	Occurrences []RawOccurrence `yaml:"occurrences"`
}

// RawOccurrence mirrors the authored occurrence shape. Files values are raw
// range specs: a list of entries (line number, [start, end] pair, or
// {start_line, end_line} object) or null for a whole-file reference.
type RawOccurrence struct {
	// ID is accepted on input for round-tripping canonical output, but
	// occurrence IDs are always reassigned by position during the build.
	ID            string         `yaml:"occurrence_id"`
	Files         map[string]any `yaml:"files"`
	Note          *string        `yaml:"note"`
	DetectionSets [][]string     `yaml:"critic_scopes_expected_to_recall"`
	RelevantFiles []string       `yaml:"relevant_files"`
	MatchOnly     []string       `yaml:"graders_match_only_if_reported_on"`
}

// Build validates and normalizes the raw record into a canonical Issue.
func (r Raw) Build() (*issue.Issue, error) {
	if r.ShouldFlag == nil {
		return nil, fmt.Errorf("should_flag is required")
	}
	specs := make([]issue.OccurrenceSpec, len(r.Occurrences))
	for i, occ := range r.Occurrences {
		specs[i] = issue.OccurrenceSpec{
			Files:         occ.Files,
			Note:          occ.Note,
			DetectionSets: occ.DetectionSets,
			RelevantFiles: occ.RelevantFiles,
			MatchOnly:     occ.MatchOnly,
		}
	}
	return issue.Build(r.Rationale, *r.ShouldFlag, specs)
}

// Decode reads a YAML issue file: a mapping of issue ID to raw record.
// Unknown fields are rejected.
func Decode(r io.Reader) (map[string]Raw, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var raw map[string]Raw
	if err := dec.Decode(&raw); err != nil {
		if err == io.EOF {
			return map[string]Raw{}, nil
		}
		return nil, fmt.Errorf("decoding issue file: %w", err)
	}
	return raw, nil
}

// File holds the validated contents of one issue file.
type File struct {
	Path   string
	IDs    []string // sorted
	Issues map[string]*issue.Issue
}

// LoadError aggregates every record failure in a single file, one line per
// failing issue ID.
type LoadError struct {
	Path   string
	Errors []string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("issue record errors in %s:\n  %s", e.Path, strings.Join(e.Errors, "\n  "))
}

// Load reads, decodes, and validates an issue file. All record-level
// failures are collected into one LoadError; decode failures abort
// immediately.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading issue file: %w", err)
	}
	return Parse(path, data)
}

// Parse validates an already-read issue file. The path is used only for
// error reporting.
func Parse(path string, data []byte) (*File, error) {
	raw, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	ids := make([]string, 0, len(raw))
	for id := range raw {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	issues := make(map[string]*issue.Issue, len(raw))
	var failures []string
	for _, id := range ids {
		iss, err := raw[id].Build()
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", id, err))
			continue
		}
		issues[id] = iss
	}
	if len(failures) > 0 {
		return nil, &LoadError{Path: path, Errors: failures}
	}

	return &File{Path: path, IDs: ids, Issues: issues}, nil
}

// MarshalCanonical renders the file's records in fully normalized form:
// ranges canonicalized, inferred sets materialized, IDs in sorted order.
func (f *File) MarshalCanonical() ([]byte, error) {
	out := make(map[string]*issue.Issue, len(f.Issues))
	for id, iss := range f.Issues {
		out[id] = iss
	}
	data, err := yaml.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("marshaling canonical records: %w", err)
	}
	return data, nil
}
