package issue

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	minRationaleLen = 10
	maxRationaleLen = 5000
)

// OccurrenceSpec is the raw, authored form of one occurrence before
// normalization. Files maps paths to raw range specs (see NormalizeRanges);
// a nil Note means no note was authored. DetectionSets and RelevantFiles
// are nil when not supplied, which is distinct from explicitly empty.
type OccurrenceSpec struct {
	Files         map[string]any
	Note          *string
	DetectionSets [][]string
	RelevantFiles []string
	MatchOnly     []string
}

// TruePositive builds a single-occurrence true positive from a raw
// file-to-ranges mapping. No note is required and, for a single file, the
// detection set is inferred.
func TruePositive(rationale string, files map[string]any) (*Issue, error) {
	return Build(rationale, true, []OccurrenceSpec{{Files: files}})
}

// TruePositiveMulti builds a multi-occurrence true positive. Every spec
// must carry a note.
func TruePositiveMulti(rationale string, specs []OccurrenceSpec) (*Issue, error) {
	return Build(rationale, true, specs)
}

// FalsePositive builds a single-occurrence false-positive exemplar. The
// relevant-files set defaults to the occurrence's file keys.
func FalsePositive(rationale string, files map[string]any) (*Issue, error) {
	return Build(rationale, false, []OccurrenceSpec{{Files: files}})
}

// FalsePositiveMulti builds a multi-occurrence false-positive exemplar.
func FalsePositiveMulti(rationale string, specs []OccurrenceSpec) (*Issue, error) {
	return Build(rationale, false, specs)
}

// Build validates and normalizes an issue record. It is a pure one-shot
// transform: on any validation failure the error propagates immediately and
// no partial record is returned.
//
// Inference rules: a single-file true-positive occurrence with no explicit
// detection set gets {{that_file}}; a false-positive occurrence with no
// explicit relevant_files gets its file keys. Once the union of files across
// ALL occurrences spans more than one file, inference is disabled for every
// occurrence of the issue, including individually single-file ones, and an
// explicit set is required. The issue-level union is what matters here, not
// per-occurrence cardinality.
func Build(rationale string, shouldFlag bool, specs []OccurrenceSpec) (*Issue, error) {
	trimmed := strings.TrimSpace(rationale)
	if n := utf8.RuneCountInString(trimmed); n < minRationaleLen || n > maxRationaleLen {
		return nil, &RationaleLengthError{Length: n}
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("issue must have at least one occurrence")
	}

	normalized := make([]FileRanges, len(specs))
	for i, spec := range specs {
		if len(spec.Files) == 0 {
			return nil, fmt.Errorf("occurrence occ-%d has no files", i)
		}
		files, err := NormalizeFiles(spec.Files)
		if err != nil {
			return nil, err
		}
		normalized[i] = files
	}

	if len(specs) > 1 {
		var missing []int
		for i, spec := range specs {
			if spec.Note == nil {
				missing = append(missing, i)
			}
		}
		if len(missing) > 0 {
			return nil, &MissingNoteError{Indices: missing}
		}
	}

	occurrences := make([]Occurrence, len(specs))
	for i, spec := range specs {
		occ := Occurrence{
			ID:    fmt.Sprintf("occ-%d", i),
			Files: normalized[i],
		}
		if spec.Note != nil {
			occ.Note = *spec.Note
		}
		if spec.MatchOnly != nil {
			if len(spec.MatchOnly) == 0 {
				return nil, fmt.Errorf("occurrence %s: graders_match_only_if_reported_on must be omitted or non-empty", occ.ID)
			}
			occ.MatchOnly = canonicalizeFileSet(spec.MatchOnly)
		}
		occurrences[i] = occ
	}

	iss := &Issue{
		Rationale:   trimmed,
		ShouldFlag:  shouldFlag,
		Occurrences: occurrences,
	}
	union := iss.FileUnion()

	for i := range iss.Occurrences {
		occ := &iss.Occurrences[i]
		if shouldFlag {
			sets, err := resolveDetectionSets(occ.ID, specs[i], occ.Files, union)
			if err != nil {
				return nil, err
			}
			occ.DetectionSets = sets
		} else {
			relevant, err := resolveRelevantFiles(occ.ID, specs[i], occ.Files, union)
			if err != nil {
				return nil, err
			}
			occ.RelevantFiles = relevant
		}
	}

	return iss, nil
}

func resolveDetectionSets(occID string, spec OccurrenceSpec, files FileRanges, union []string) ([][]string, error) {
	if spec.DetectionSets == nil {
		if len(union) > 1 {
			return nil, &MissingDetectionSetError{
				OccurrenceID: occID,
				Field:        FieldDetectionSets,
				Files:        files.Paths(),
				Union:        union,
			}
		}
		return inferDetectionSets(files), nil
	}
	sets := canonicalizeSets(spec.DetectionSets)
	if err := validateDetectionSets(occID, sets, files); err != nil {
		return nil, err
	}
	return sets, nil
}

func resolveRelevantFiles(occID string, spec OccurrenceSpec, files FileRanges, union []string) ([]string, error) {
	if spec.RelevantFiles == nil {
		if len(union) > 1 {
			return nil, &MissingDetectionSetError{
				OccurrenceID: occID,
				Field:        FieldRelevantFiles,
				Files:        files.Paths(),
				Union:        union,
			}
		}
		return files.Paths(), nil
	}
	if len(spec.RelevantFiles) == 0 {
		return nil, &EmptyDetectionSetError{OccurrenceID: occID, Field: FieldRelevantFiles}
	}
	// Relevance is advisory: no subset constraint beyond non-emptiness.
	return canonicalizeFileSet(spec.RelevantFiles), nil
}
