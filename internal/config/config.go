package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"
)

// Config represents the crosscheck configuration. Token is sourced from the
// environment or flags only; it is never written to the config file.
type Config struct {
	Remote         string `json:"remote"`
	Format         string `json:"format"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
	APIURL         string `json:"apiUrl,omitempty"`
	Token          string `json:"-"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Remote:         "origin",
		Format:         "text",
		TimeoutSeconds: 30,
	}
}

// Timeout returns the per-request timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ConfigDir returns the platform-appropriate config directory for crosscheck.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "crosscheck"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "crosscheck"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "crosscheck"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "crosscheck"), nil
	default:
		return filepath.Join(home, ".config", "crosscheck"), nil
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

// LoadFile loads config from the config file. Returns zero Config and nil
// error if the file doesn't exist.
func LoadFile() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
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
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <-
// overrides. The overrides map comes from CLI flags (only non-zero values
// should be set).
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	fileCfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg)
	mergeEnv(&cfg)
	mergeOverrides(&cfg, overrides)

	return cfg, nil
}

func mergeFile(dst *Config, src Config) {
	if src.Remote != "" {
		dst.Remote = src.Remote
	}
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.TimeoutSeconds > 0 {
		dst.TimeoutSeconds = src.TimeoutSeconds
	}
	if src.APIURL != "" {
		dst.APIURL = src.APIURL
	}
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("CROSSCHECK_REMOTE"); v != "" {
		cfg.Remote = v
	}
	if v := os.Getenv("CROSSCHECK_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("CROSSCHECK_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("GITHUB_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		cfg.Token = v
	}
}

func mergeOverrides(cfg *Config, overrides map[string]string) {
	if overrides == nil {
		return
	}
	if v, ok := overrides["remote"]; ok && v != "" {
		cfg.Remote = v
	}
	if v, ok := overrides["format"]; ok && v != "" {
		cfg.Format = v
	}
	if v, ok := overrides["timeout"]; ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.TimeoutSeconds = n
		}
	}
	if v, ok := overrides["apiUrl"]; ok && v != "" {
		cfg.APIURL = v
	}
	if v, ok := overrides["token"]; ok && v != "" {
		cfg.Token = v
	}
}

// SetField sets a single config field by key name. Returns error if the key
// is unknown or not persistable.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "remote":
		cfg.Remote = value
	case "format":
		cfg.Format = value
	case "timeoutSeconds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("timeoutSeconds must be an integer: %w", err)
		}
		cfg.TimeoutSeconds = n
	case "apiUrl":
		cfg.APIURL = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
