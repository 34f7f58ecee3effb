// Package cli wires together the Cobra command tree for the annolint binary.
//
// It defines the root command and all subcommands (validate, export, sync,
// config, cache, version), binds flags, reads configuration, invokes the
// corpus validator, and returns deterministic exit codes for CI gating.
package cli
