package issue

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

const rationale = "Uses a stale cached value after invalidation, so readers observe deleted rows."

func note(s string) *string { return &s }

func TestTruePositive_SingleFileInference(t *testing.T) {
	iss, err := TruePositive(rationale, map[string]any{"a.py": []any{[]any{10, 20}}})
	if err != nil {
		t.Fatalf("TruePositive error: %v", err)
	}
	if len(iss.Occurrences) != 1 {
		t.Fatalf("got %d occurrences, want 1", len(iss.Occurrences))
	}
	occ := iss.Occurrences[0]
	if occ.ID != "occ-0" {
		t.Errorf("occurrence ID = %q, want occ-0", occ.ID)
	}
	want := [][]string{{"a.py"}}
	if !reflect.DeepEqual(occ.DetectionSets, want) {
		t.Errorf("DetectionSets = %v, want %v", occ.DetectionSets, want)
	}
	if occ.RelevantFiles != nil {
		t.Errorf("true positive should not carry relevant files: %v", occ.RelevantFiles)
	}
}

func TestTruePositive_MultiFileRequiresExplicitSets(t *testing.T) {
	_, err := TruePositive(rationale, map[string]any{
		"a.py": []any{[]any{1, 1}},
		"b.py": []any{[]any{2, 2}},
	})
	var missing *MissingDetectionSetError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want MissingDetectionSetError", err)
	}
	if !reflect.DeepEqual(missing.Files, []string{"a.py", "b.py"}) {
		t.Errorf("Files = %v, want [a.py b.py]", missing.Files)
	}
	if !reflect.DeepEqual(missing.Union, []string{"a.py", "b.py"}) {
		t.Errorf("Union = %v, want [a.py b.py]", missing.Union)
	}
}

func TestTruePositive_IssueLevelUnionDisablesInference(t *testing.T) {
	// Each occurrence alone is single-file, but the issue spans two files,
	// so the first occurrence no longer gets free inference.
	_, err := TruePositiveMulti(rationale, []OccurrenceSpec{
		{Files: map[string]any{"a.py": []any{1}}, Note: note("definition")},
		{Files: map[string]any{"b.py": []any{2}}, Note: note("call site"), DetectionSets: [][]string{{"b.py"}}},
	})
	var missing *MissingDetectionSetError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want MissingDetectionSetError", err)
	}
	if missing.OccurrenceID != "occ-0" {
		t.Errorf("OccurrenceID = %q, want occ-0", missing.OccurrenceID)
	}
	// The occurrence itself holds one file; what blocked inference is the
	// issue-level union, and the message must name that union rather than
	// claiming the single file "spans multiple files".
	if !reflect.DeepEqual(missing.Files, []string{"a.py"}) {
		t.Errorf("Files = %v, want [a.py]", missing.Files)
	}
	if !reflect.DeepEqual(missing.Union, []string{"a.py", "b.py"}) {
		t.Errorf("Union = %v, want [a.py b.py]", missing.Union)
	}
	if !strings.Contains(missing.Error(), "spans multiple files [a.py b.py]") {
		t.Errorf("message does not name the issue-level union: %s", missing.Error())
	}
}

func TestTruePositiveMulti_SameFileStillInfers(t *testing.T) {
	iss, err := TruePositiveMulti(rationale, []OccurrenceSpec{
		{Files: map[string]any{"a.py": []any{1}}, Note: note("first copy")},
		{Files: map[string]any{"a.py": []any{50}}, Note: note("second copy")},
	})
	if err != nil {
		t.Fatalf("TruePositiveMulti error: %v", err)
	}
	for _, occ := range iss.Occurrences {
		if !reflect.DeepEqual(occ.DetectionSets, [][]string{{"a.py"}}) {
			t.Errorf("occurrence %s DetectionSets = %v, want [[a.py]]", occ.ID, occ.DetectionSets)
		}
	}
}

func TestTruePositiveMulti_MissingNotesReportsAllIndices(t *testing.T) {
	_, err := TruePositiveMulti(rationale, []OccurrenceSpec{
		{Files: map[string]any{"a.py": []any{1}}},
		{Files: map[string]any{"a.py": []any{2}}, Note: note("ok")},
		{Files: map[string]any{"a.py": []any{3}}},
	})
	var missing *MissingNoteError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want MissingNoteError", err)
	}
	if !reflect.DeepEqual(missing.Indices, []int{0, 2}) {
		t.Errorf("Indices = %v, want [0 2]", missing.Indices)
	}
}

func TestBuild_ExplicitDetectionSets(t *testing.T) {
	iss, err := TruePositiveMulti(rationale, []OccurrenceSpec{
		{
			Files:         map[string]any{"b.py": []any{2}, "a.py": []any{1}},
			Note:          note("pair"),
			DetectionSets: [][]string{{"b.py", "a.py"}, {"a.py"}, {"a.py"}},
		},
	})
	if err != nil {
		t.Fatalf("build error: %v", err)
	}
	// Canonical: paths sorted within groups, groups deduped and sorted.
	want := [][]string{{"a.py"}, {"a.py", "b.py"}}
	if !reflect.DeepEqual(iss.Occurrences[0].DetectionSets, want) {
		t.Errorf("DetectionSets = %v, want %v", iss.Occurrences[0].DetectionSets, want)
	}
}

func TestBuild_DetectionSetNotSubset(t *testing.T) {
	_, err := TruePositiveMulti(rationale, []OccurrenceSpec{
		{
			Files:         map[string]any{"a.py": []any{1}},
			DetectionSets: [][]string{{"a.py", "c.py"}},
		},
	})
	var notSubset *DetectionSetNotSubsetError
	if !errors.As(err, &notSubset) {
		t.Fatalf("error = %v, want DetectionSetNotSubsetError", err)
	}
	if !reflect.DeepEqual(notSubset.Missing, []string{"c.py"}) {
		t.Errorf("Missing = %v, want [c.py]", notSubset.Missing)
	}
}

func TestBuild_EmptyDetectionSet(t *testing.T) {
	_, err := TruePositiveMulti(rationale, []OccurrenceSpec{
		{Files: map[string]any{"a.py": []any{1}}, DetectionSets: [][]string{}},
	})
	var empty *EmptyDetectionSetError
	if !errors.As(err, &empty) {
		t.Fatalf("error = %v, want EmptyDetectionSetError", err)
	}
	if empty.Group {
		t.Errorf("Group = true, want false for empty outer set")
	}
}

func TestBuild_EmptyDetectionGroup(t *testing.T) {
	_, err := TruePositiveMulti(rationale, []OccurrenceSpec{
		{Files: map[string]any{"a.py": []any{1}}, DetectionSets: [][]string{{}}},
	})
	var empty *EmptyDetectionSetError
	if !errors.As(err, &empty) {
		t.Fatalf("error = %v, want EmptyDetectionSetError", err)
	}
	if !empty.Group {
		t.Errorf("Group = false, want true for empty inner group")
	}
}

func TestFalsePositive_InfersRelevantFiles(t *testing.T) {
	iss, err := FalsePositive(rationale, map[string]any{"x.py": nil})
	if err != nil {
		t.Fatalf("FalsePositive error: %v", err)
	}
	occ := iss.Occurrences[0]
	if !reflect.DeepEqual(occ.RelevantFiles, []string{"x.py"}) {
		t.Errorf("RelevantFiles = %v, want [x.py]", occ.RelevantFiles)
	}
	if occ.DetectionSets != nil {
		t.Errorf("false positive should not carry detection sets: %v", occ.DetectionSets)
	}
	if occ.Files["x.py"] != nil {
		t.Errorf("whole-file reference not preserved: %v", occ.Files["x.py"])
	}
}

func TestFalsePositive_NoSubsetConstraint(t *testing.T) {
	iss, err := FalsePositiveMulti(rationale, []OccurrenceSpec{
		{Files: map[string]any{"x.py": nil}, RelevantFiles: []string{"y.py", "x.py"}},
	})
	if err != nil {
		t.Fatalf("build error: %v", err)
	}
	if !reflect.DeepEqual(iss.Occurrences[0].RelevantFiles, []string{"x.py", "y.py"}) {
		t.Errorf("RelevantFiles = %v, want [x.py y.py]", iss.Occurrences[0].RelevantFiles)
	}
}

func TestFalsePositive_EmptyRelevantFiles(t *testing.T) {
	_, err := FalsePositiveMulti(rationale, []OccurrenceSpec{
		{Files: map[string]any{"x.py": nil}, RelevantFiles: []string{}},
	})
	var empty *EmptyDetectionSetError
	if !errors.As(err, &empty) {
		t.Fatalf("error = %v, want EmptyDetectionSetError", err)
	}
	if empty.Field != FieldRelevantFiles {
		t.Errorf("Field = %q, want %q", empty.Field, FieldRelevantFiles)
	}
}

func TestFalsePositive_MultiFileUnionRequiresExplicit(t *testing.T) {
	_, err := FalsePositiveMulti(rationale, []OccurrenceSpec{
		{Files: map[string]any{"x.py": nil}, Note: note("exemplar")},
		{Files: map[string]any{"y.py": nil}, Note: note("exemplar"), RelevantFiles: []string{"y.py"}},
	})
	var missing *MissingDetectionSetError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want MissingDetectionSetError", err)
	}
	if missing.Field != FieldRelevantFiles {
		t.Errorf("Field = %q, want %q", missing.Field, FieldRelevantFiles)
	}
}

func TestBuild_RationaleBounds(t *testing.T) {
	files := map[string]any{"a.py": []any{1}}
	tests := []struct {
		name      string
		rationale string
		wantErr   bool
		wantLen   int
	}{
		{"exactly 10", strings.Repeat("r", 10), false, 0},
		{"9 after trim", "  " + strings.Repeat("r", 9) + "  ", true, 9},
		{"exactly 5000", strings.Repeat("r", 5000), false, 0},
		{"5001", strings.Repeat("r", 5001), true, 5001},
		{"whitespace only", "          ", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := TruePositive(tt.rationale, files)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var lenErr *RationaleLengthError
			if !errors.As(err, &lenErr) {
				t.Fatalf("error = %v, want RationaleLengthError", err)
			}
			if lenErr.Length != tt.wantLen {
				t.Errorf("Length = %d, want %d", lenErr.Length, tt.wantLen)
			}
		})
	}
}

func TestBuild_TrimsRationale(t *testing.T) {
	iss, err := TruePositive("  "+rationale+"  ", map[string]any{"a.py": []any{1}})
	if err != nil {
		t.Fatalf("build error: %v", err)
	}
	if iss.Rationale != rationale {
		t.Errorf("Rationale = %q, want trimmed form", iss.Rationale)
	}
}

func TestBuild_MatchOnly(t *testing.T) {
	iss, err := TruePositiveMulti(rationale, []OccurrenceSpec{
		{Files: map[string]any{"a.py": []any{1}}, MatchOnly: []string{"b.py", "a.py"}},
	})
	if err != nil {
		t.Fatalf("build error: %v", err)
	}
	if !reflect.DeepEqual(iss.Occurrences[0].MatchOnly, []string{"a.py", "b.py"}) {
		t.Errorf("MatchOnly = %v", iss.Occurrences[0].MatchOnly)
	}

	_, err = TruePositiveMulti(rationale, []OccurrenceSpec{
		{Files: map[string]any{"a.py": []any{1}}, MatchOnly: []string{}},
	})
	if err == nil {
		t.Fatalf("expected error for explicitly empty match-only set")
	}
}

func TestBuild_MalformedRangeAborts(t *testing.T) {
	_, err := TruePositive(rationale, map[string]any{"a.py": []any{[]any{38}}})
	var malformed *MalformedRangeError
	if !errors.As(err, &malformed) {
		t.Fatalf("error = %v, want MalformedRangeError", err)
	}
}

func TestFileUnion(t *testing.T) {
	iss := &Issue{Occurrences: []Occurrence{
		{Files: FileRanges{"b.py": nil, "a.py": nil}},
		{Files: FileRanges{"a.py": nil, "c.py": nil}},
	}}
	want := []string{"a.py", "b.py", "c.py"}
	if got := iss.FileUnion(); !reflect.DeepEqual(got, want) {
		t.Errorf("FileUnion() = %v, want %v", got, want)
	}
}
