// Package record reads and writes authored issue files.
//
// An issue file is a YAML document mapping issue IDs to raw issue records
// (rationale, should_flag, occurrences). Decoding is strict: unknown fields
// are rejected. The package only handles the file format; all semantic
// validation and inference is delegated to the issue package. Loading a
// file validates every record in it and aggregates all failures into one
// LoadError so an author can fix the whole file in a single pass.
package record
