package issue

import "sort"

// canonicalizeFileSet sorts and dedupes a list of paths.
func canonicalizeFileSet(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

// canonicalizeSets canonicalizes a detection set: paths sorted and deduped
// within each group, groups deduped and sorted. Inference and validation
// operate on this form so results are deterministic.
func canonicalizeSets(sets [][]string) [][]string {
	groups := make([][]string, 0, len(sets))
	seen := make(map[string]bool, len(sets))
	for _, group := range sets {
		canon := canonicalizeFileSet(group)
		key := joinGroup(canon)
		if !seen[key] {
			seen[key] = true
			groups = append(groups, canon)
		}
	}
	sort.Slice(groups, func(i, j int) bool {
		return joinGroup(groups[i]) < joinGroup(groups[j])
	})
	return groups
}

func joinGroup(group []string) string {
	key := ""
	for _, p := range group {
		key += p + "\x00"
	}
	return key
}

// validateDetectionSets checks an explicit detection set against an
// occurrence's files: the outer set and every inner group must be non-empty,
// and every referenced path must be a key of the occurrence's file mapping.
func validateDetectionSets(occID string, sets [][]string, files FileRanges) error {
	if len(sets) == 0 {
		return &EmptyDetectionSetError{OccurrenceID: occID, Field: FieldDetectionSets}
	}
	for _, group := range sets {
		if len(group) == 0 {
			return &EmptyDetectionSetError{OccurrenceID: occID, Field: FieldDetectionSets, Group: true}
		}
		var missing []string
		for _, p := range group {
			if _, ok := files[p]; !ok {
				missing = append(missing, p)
			}
		}
		if len(missing) > 0 {
			return &DetectionSetNotSubsetError{OccurrenceID: occID, Group: group, Missing: missing}
		}
	}
	return nil
}

// inferDetectionSets returns the detection set for a single-file true
// positive: one group containing just that file. Callers must ensure the
// occurrence has exactly one file.
func inferDetectionSets(files FileRanges) [][]string {
	return [][]string{files.Paths()}
}
