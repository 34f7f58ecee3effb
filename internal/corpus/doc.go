// Package corpus discovers and batch-validates issue files across a corpus
// of frozen code snapshots.
//
// A corpus root contains one directory per snapshot, each holding its issue
// files (issues.yaml or *.issues.yaml) next to a code/ tree with the frozen
// sources the annotations point into. Validation of each issue file is an
// independent invocation of the record/issue pipeline; files are processed
// in parallel with bounded concurrency since no state is shared between
// records.
//
// Beyond record validation, the package cross-checks annotations against the
// snapshot tree: every annotated path must exist under code/, and no line
// range may extend past the end of its file. Because snapshots are frozen by
// convention, a cached clean validation of an unchanged issue file also
// stands in for these staleness checks.
package corpus
