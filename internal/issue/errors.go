package issue

import (
	"fmt"
	"strings"
)

// Field names used in error messages, matching the authored YAML keys.
const (
	FieldDetectionSets = "critic_scopes_expected_to_recall"
	FieldRelevantFiles = "relevant_files"
)

// MalformedRangeError reports a range entry that is not a line number, a
// [start, end] pair, or an object with start_line.
type MalformedRangeError struct {
	File  string
	Value any
}

func (e *MalformedRangeError) Error() string {
	return fmt.Sprintf("malformed line range for %s: %v (expected a line number, a [start, end] pair, or {start_line, end_line})",
		e.File, e.Value)
}

// MissingNoteError reports every occurrence of a multi-occurrence issue that
// lacks a note. Indices are 0-based positions in the authored occurrence
// list.
type MissingNoteError struct {
	Indices []int
}

func (e *MissingNoteError) Error() string {
	parts := make([]string, len(e.Indices))
	for i, idx := range e.Indices {
		parts[i] = fmt.Sprintf("%d", idx)
	}
	return fmt.Sprintf("occurrences [%s] are missing notes (every occurrence of a multi-occurrence issue requires a note)",
		strings.Join(parts, ", "))
}

// MissingDetectionSetError reports an occurrence left without an explicit
// detection or relevance set when the issue-level file union spans more than
// one file. Files holds the occurrence's own paths; Union holds the file
// union across all occurrences, which is what disabled inference.
type MissingDetectionSetError struct {
	OccurrenceID string
	Field        string
	Files        []string
	Union        []string
}

func (e *MissingDetectionSetError) Error() string {
	return fmt.Sprintf("occurrence %s (files %v) requires explicit %s: the issue spans multiple files %v, so the set cannot be inferred",
		e.OccurrenceID, e.Files, e.Field, e.Union)
}

// DetectionSetNotSubsetError reports a detection-set group naming files that
// are not part of the occurrence.
type DetectionSetNotSubsetError struct {
	OccurrenceID string
	Group        []string
	Missing      []string
}

func (e *DetectionSetNotSubsetError) Error() string {
	return fmt.Sprintf("occurrence %s: detection-set group %v references files %v not present in the occurrence",
		e.OccurrenceID, e.Group, e.Missing)
}

// EmptyDetectionSetError reports an explicitly empty detection or relevance
// set, or a detection set containing an empty file group.
type EmptyDetectionSetError struct {
	OccurrenceID string
	Field        string
	Group        bool
}

func (e *EmptyDetectionSetError) Error() string {
	if e.Group {
		return fmt.Sprintf("occurrence %s: %s must not contain an empty file group", e.OccurrenceID, e.Field)
	}
	return fmt.Sprintf("occurrence %s: %s must be non-empty", e.OccurrenceID, e.Field)
}

// RationaleLengthError reports a rationale outside the accepted length
// window after trimming.
type RationaleLengthError struct {
	Length int
}

func (e *RationaleLengthError) Error() string {
	return fmt.Sprintf("rationale must be %d-%d characters after trimming, got %d",
		minRationaleLen, maxRationaleLen, e.Length)
}
