package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
)

// Config represents the annolint configuration.
type Config struct {
	CorpusRoot string      `json:"corpusRoot,omitempty"`
	Format     string      `json:"format"`
	Jobs       int         `json:"jobs"`
	Staleness  bool        `json:"staleness"`
	Endpoint   string      `json:"endpoint,omitempty"`
	Token      string      `json:"token,omitempty"`
	Cache      CacheConfig `json:"cache"`
}

// CacheConfig controls caching behavior.
type CacheConfig struct {
	Enabled    bool   `json:"enabled"`
	Dir        string `json:"dir,omitempty"`
	TTLSeconds int    `json:"ttlSeconds"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Format:    "text",
		Jobs:      4,
		Staleness: true,
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: 86400,
		},
	}
}

// ConfigDir returns the platform-appropriate config directory for annolint.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "annolint"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "annolint"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "annolint"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "annolint"), nil
	default:
		return filepath.Join(home, ".config", "annolint"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// fileConfig is the on-disk view of Config. Bool fields decode through
// pointers so an explicit false in the file is distinguishable from an
// absent key.
type fileConfig struct {
	CorpusRoot string `json:"corpusRoot"`
	Format     string `json:"format"`
	Jobs       int    `json:"jobs"`
	Staleness  *bool  `json:"staleness"`
	Endpoint   string `json:"endpoint"`
	Token      string `json:"token"`
	Cache      struct {
		Enabled    *bool  `json:"enabled"`
		Dir        string `json:"dir"`
		TTLSeconds int    `json:"ttlSeconds"`
	} `json:"cache"`
}

func readConfigFile() (fileConfig, bool, error) {
	var raw fileConfig
	path, err := ConfigPath()
	if err != nil {
		return raw, false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return raw, false, nil
		}
		return raw, false, fmt.Errorf("reading config file: %w", err)
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return raw, false, fmt.Errorf("parsing config file: %w", err)
	}
	return raw, true, nil
}

// LoadFile loads the config file merged over defaults. Returns Default()
// when no config file exists.
func LoadFile() (Config, error) {
	cfg := Default()
	raw, found, err := readConfigFile()
	if err != nil {
		return Config{}, err
	}
	if found {
		mergeFile(&cfg, raw)
	}
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags (only non-zero values should be set).
func Load(overrides map[string]string) (Config, error) {
	cfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	mergeEnv(&cfg)
	mergeOverrides(&cfg, overrides)

	return cfg, nil
}

func mergeFile(dst *Config, src fileConfig) {
	if src.CorpusRoot != "" {
		dst.CorpusRoot = src.CorpusRoot
	}
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.Jobs > 0 {
		dst.Jobs = src.Jobs
	}
	if src.Endpoint != "" {
		dst.Endpoint = src.Endpoint
	}
	if src.Token != "" {
		dst.Token = src.Token
	}
	if src.Cache.Dir != "" {
		dst.Cache.Dir = src.Cache.Dir
	}
	if src.Cache.TTLSeconds > 0 {
		dst.Cache.TTLSeconds = src.Cache.TTLSeconds
	}
	if src.Staleness != nil {
		dst.Staleness = *src.Staleness
	}
	if src.Cache.Enabled != nil {
		dst.Cache.Enabled = *src.Cache.Enabled
	}
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("ANNOLINT_CORPUS_ROOT"); v != "" {
		cfg.CorpusRoot = v
	}
	if v := os.Getenv("ANNOLINT_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("ANNOLINT_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("ANNOLINT_TOKEN"); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv("ANNOLINT_JOBS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Jobs = n
		}
	}
}

func mergeOverrides(cfg *Config, overrides map[string]string) {
	if overrides == nil {
		return
	}
	if v, ok := overrides["corpusRoot"]; ok && v != "" {
		cfg.CorpusRoot = v
	}
	if v, ok := overrides["format"]; ok && v != "" {
		cfg.Format = v
	}
	if v, ok := overrides["endpoint"]; ok && v != "" {
		cfg.Endpoint = v
	}
	if v, ok := overrides["token"]; ok && v != "" {
		cfg.Token = v
	}
	if v, ok := overrides["jobs"]; ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Jobs = n
		}
	}
	if v, ok := overrides["staleness"]; ok && v != "" {
		cfg.Staleness = v == "true"
	}
}

// SetField sets a single config field by key name. Returns error if key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "corpusRoot":
		cfg.CorpusRoot = value
	case "format":
		cfg.Format = value
	case "endpoint":
		cfg.Endpoint = value
	case "token":
		cfg.Token = value
	case "jobs":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("jobs must be an integer: %w", err)
		}
		cfg.Jobs = n
	case "staleness":
		cfg.Staleness = value == "true"
	case "cache.enabled":
		cfg.Cache.Enabled = value == "true"
	case "cache.dir":
		cfg.Cache.Dir = value
	case "cache.ttlSeconds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("cache.ttlSeconds must be an integer: %w", err)
		}
		cfg.Cache.TTLSeconds = n
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
