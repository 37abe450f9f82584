// Package config loads and stores CLI configuration in the XDG config dir.
// Settings owned by the backend (such as the inference API URL) are not kept
// here; they travel through the get_settings/save_settings operations.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"vulnscope/shell/internal/xdg"
)

// DefaultTimeout bounds a single backend call when no timeout is configured.
const DefaultTimeout = 10 * time.Minute

// Config holds the shell's local settings.
type Config struct {
	LogLevel   string        `yaml:"log_level"`
	LogFormat  string        `yaml:"log_format"` // "text" or "json"
	LogOutput  string        `yaml:"log_output"` // "stderr", "stdout", "file" (XDG state dir) or a path
	Python     string        `yaml:"python"`
	BackendDir string        `yaml:"backend_dir,omitempty"` // empty = locate automatically
	Timeout    string        `yaml:"timeout"`               // duration string, "0" disables
	Tracing    TracingConfig `yaml:"tracing"`

	// BackendEnv is added to the environment of every backend process,
	// e.g. a virtualenv's PYTHONPATH or a proxy for the inference API.
	BackendEnv map[string]string `yaml:"backend_env,omitempty"`
}

// TracingConfig holds OpenTelemetry settings.
type TracingConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Exporter string `yaml:"exporter"` // "stdout" or "noop"
}

// DefaultPython returns the interpreter name used when none is configured.
func DefaultPython() string {
	if runtime.GOOS == "windows" {
		return "python"
	}
	return "python3"
}

// Defaults returns a Config populated with default values.
func Defaults() Config {
	return Config{
		LogLevel:  "warn",
		LogFormat: "text",
		LogOutput: "stderr",
		Python:    DefaultPython(),
		Timeout:   DefaultTimeout.String(),
		Tracing:   TracingConfig{Exporter: "noop"},
	}
}

// Path returns the path to the config file.
func Path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads configuration from the XDG config dir; missing file returns defaults.
func Load() (Config, error) {
	p, err := Path()
	if err != nil {
		return Config{}, err
	}
	return LoadFile(p)
}

// LoadFile reads configuration from path, then applies env overrides.
func LoadFile(path string) (Config, error) {
	c, err := ReadFile(path)
	if err != nil {
		return c, err
	}
	ApplyEnvOverrides(&c)
	if err := Validate(c); err != nil {
		return c, err
	}
	return c, nil
}

// ReadFile reads path over the defaults without env overrides or validation.
// A missing file yields the defaults.
func ReadFile(path string) (Config, error) {
	c := Defaults()
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return c, fmt.Errorf("read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &c); err != nil {
			return c, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	return c, nil
}

// ApplyEnvOverrides maps VULNSCOPE_* env vars to config fields.
func ApplyEnvOverrides(c *Config) {
	if v := strings.TrimSpace(os.Getenv("VULNSCOPE_PYTHON")); v != "" {
		c.Python = v
	}
	if v := strings.TrimSpace(os.Getenv("VULNSCOPE_BACKEND_DIR")); v != "" {
		c.BackendDir = v
	}
	if v := strings.TrimSpace(os.Getenv("VULNSCOPE_TIMEOUT")); v != "" {
		c.Timeout = v
	}
	if v := strings.TrimSpace(os.Getenv("VULNSCOPE_LOG_LEVEL")); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("VULNSCOPE_TRACING_ENABLED"); v == "true" {
		c.Tracing.Enabled = true
	}
}

// Validate checks values that would otherwise fail late, at call time.
func Validate(c Config) error {
	if strings.TrimSpace(c.Python) == "" {
		return fmt.Errorf("config: python must not be empty")
	}
	if _, err := c.CallTimeout(); err != nil {
		return err
	}
	for k := range c.BackendEnv {
		if k == "" || strings.ContainsAny(k, "= \t") {
			return fmt.Errorf("config: invalid backend_env name %q", k)
		}
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("config: unsupported log_format %q", c.LogFormat)
	}
	return nil
}

// CallTimeout parses Timeout. Zero means backend calls are not bounded.
func (c Config) CallTimeout() (time.Duration, error) {
	raw := strings.TrimSpace(c.Timeout)
	if raw == "" {
		return DefaultTimeout, nil
	}
	if raw == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: invalid timeout %q: %w", c.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("config: timeout must not be negative, got %s", d)
	}
	return d, nil
}

// Environ returns BackendEnv as sorted KEY=VALUE pairs.
func (c Config) Environ() []string {
	keys := make([]string, 0, len(c.BackendEnv))
	for k := range c.BackendEnv {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	env := make([]string, 0, len(keys))
	for _, k := range keys {
		env = append(env, k+"="+c.BackendEnv[k])
	}
	return env
}

// Set assigns one setting by its YAML key. Backend environment entries
// are addressed as "backend_env.NAME"; an empty value removes the entry.
func Set(c *Config, key, value string) error {
	if name, ok := strings.CutPrefix(key, "backend_env."); ok {
		if value == "" {
			delete(c.BackendEnv, name)
			return nil
		}
		if c.BackendEnv == nil {
			c.BackendEnv = map[string]string{}
		}
		c.BackendEnv[name] = value
		return nil
	}

	switch key {
	case "log_level":
		c.LogLevel = value
	case "log_format":
		c.LogFormat = value
	case "log_output":
		c.LogOutput = value
	case "python":
		c.Python = value
	case "backend_dir":
		c.BackendDir = value
	case "timeout":
		c.Timeout = value
	case "tracing.enabled":
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("config: tracing.enabled must be true or false, got %q", value)
		}
		c.Tracing.Enabled = enabled
	case "tracing.exporter":
		c.Tracing.Exporter = value
	default:
		return fmt.Errorf("config: unknown key %q", key)
	}
	return nil
}

// Save writes configuration to the XDG config dir with 0600 permissions.
func Save(c Config) error {
	p, err := Path()
	if err != nil {
		return err
	}
	return SaveFile(p, c)
}

// SaveFile writes configuration to path with 0600 permissions.
func SaveFile(path string, c Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}
