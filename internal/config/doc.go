// Package config loads and merges annolint configuration from multiple
// sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (ANNOLINT_ENDPOINT, ANNOLINT_TOKEN, etc.)
//  3. Config file ($XDG_CONFIG_HOME/annolint/config.json)
//  4. Built-in defaults
//
// Use [Load] to obtain a merged [Config], and [SetField] to update a single
// key when writing the config file back.
package config
