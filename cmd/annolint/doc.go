// Annolint validates labeled issue annotations over frozen code snapshots.
//
// It checks issue files for structural and semantic correctness, infers
// detection sets for single-file occurrences, flags annotations that no
// longer match the snapshot they describe, and exports or syncs the
// canonical form, with deterministic exit codes suitable for CI gating.
//
// Usage:
//
//	annolint validate <corpus>        # validate every snapshot under a root
//	annolint validate issues.yaml     # validate a single issue file
//	annolint export --format sarif    # emit validated annotations as SARIF
//	annolint sync                     # push canonical records to a service
//	annolint config init              # write a default config file
//
// See https://github.com/annolint/annolint for full documentation.
package main
