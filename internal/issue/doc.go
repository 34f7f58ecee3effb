// Package issue implements the validation and inference engine for labeled
// code-review issue records.
//
// It normalizes heterogeneous line-range encodings into canonical
// {start_line, end_line} pairs, assembles occurrences (located instances of
// an issue) from file-to-ranges mappings, infers or validates detection sets
// (the file combinations from which a reviewer is expected to find a true
// positive) and relevant-files sets (the files for which a false-positive
// exemplar applies), and aggregates occurrences into a canonical Issue
// record.
//
// Every build is a pure, one-shot transform: construct, validate, emit.
// Validation failures are reported through a small closed set of error types
// (MalformedRangeError, MissingNoteError, MissingDetectionSetError,
// DetectionSetNotSubsetError, EmptyDetectionSetError, RationaleLengthError)
// carrying enough context for an author to fix the source record. No partial
// record is ever produced.
package issue
