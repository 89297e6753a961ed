package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/docsync/internal/doctmpl"
	"github.com/dshills/docsync/internal/scan"
)

// FileName is the config file docsync looks for.
const FileName = "docsync.toml"

// Config represents the docsync configuration.
type Config struct {
	Provider     string         `toml:"provider"`
	Model        string         `toml:"model"`
	DocFile      string         `toml:"doc_file"`
	SectionLevel int            `toml:"section_level"`
	Cache        CacheConfig    `toml:"cache"`
	Scan         ScanConfig     `toml:"scan"`
	Template     TemplateConfig `toml:"template"`
}

// CacheConfig controls the drift cache.
type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
	MaxSize int    `toml:"max_size"`
}

// ScanConfig controls source collection.
type ScanConfig struct {
	Include       []string `toml:"include"`
	Exclude       []string `toml:"exclude"`
	MaxFileBytes  int      `toml:"max_file_bytes"`
	MaxTotalBytes int      `toml:"max_total_bytes"`
	RedactSecrets bool     `toml:"redact_secrets"`
}

// TemplateConfig optionally replaces the built-in documentation template.
type TemplateConfig struct {
	Fields []TemplateField `toml:"fields"`
}

// TemplateField is one managed field declaration in the config file.
type TemplateField struct {
	Name    string `toml:"name"`
	Heading string `toml:"heading"`
	Level   int    `toml:"level"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Provider:     "anthropic",
		Model:        "claude-sonnet-4-20250514",
		DocFile:      "MODULE.md",
		SectionLevel: doctmpl.DefaultSectionLevel,
		Cache: CacheConfig{
			Enabled: true,
			Path:    "docsync-cache.json",
			MaxSize: 200,
		},
		Scan: ScanConfig{
			Exclude:       []string{"*_test.go", "*.gen.go"},
			MaxFileBytes:  scan.DefaultMaxFileBytes,
			MaxTotalBytes: scan.DefaultMaxTotalBytes,
			RedactSecrets: true,
		},
	}
}

// ConfigDir returns the platform-appropriate config directory for docsync.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "docsync"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "docsync"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "docsync"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "docsync"), nil
	default:
		return filepath.Join(home, ".config", "docsync"), nil
	}
}

// findFile returns the path of the config file to load, or "" when none
// exists. The working directory wins over the user config directory.
func findFile() string {
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}
	dir, err := ConfigDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

// Load builds the effective config: defaults <- file <- env <- overrides.
// An explicit path loads only that file; an empty path searches the usual
// locations and tolerates absence.
func Load(path string, overrides map[string]string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = findFile()
	} else if _, err := os.Stat(path); err != nil {
		return Config{}, fmt.Errorf("config file: %w", err)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal over the defaults so absent keys keep their values.
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	mergeEnv(&cfg)
	mergeOverrides(&cfg, overrides)

	return cfg, nil
}

// Save writes the config as TOML to path.
func Save(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("DOCSYNC_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("DOCSYNC_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("DOCSYNC_DOC_FILE"); v != "" {
		cfg.DocFile = v
	}
	if v := os.Getenv("DOCSYNC_CACHE_PATH"); v != "" {
		cfg.Cache.Path = v
	}
	if v := os.Getenv("DOCSYNC_CACHE_MAX_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Cache.MaxSize = n
		}
	}
}

func mergeOverrides(cfg *Config, overrides map[string]string) {
	if overrides == nil {
		return
	}
	if v, ok := overrides["provider"]; ok && v != "" {
		cfg.Provider = v
	}
	if v, ok := overrides["model"]; ok && v != "" {
		cfg.Model = v
	}
	if v, ok := overrides["docFile"]; ok && v != "" {
		cfg.DocFile = v
	}
	if v, ok := overrides["cachePath"]; ok && v != "" {
		cfg.Cache.Path = v
	}
	if v, ok := overrides["noCache"]; ok && v == "true" {
		cfg.Cache.Enabled = false
	}
	if v, ok := overrides["sectionLevel"]; ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.SectionLevel = n
		}
	}
}

// DocTemplate returns the documentation template: the built-in one unless
// the config file declares its own fields.
func (c Config) DocTemplate() doctmpl.Template {
	if len(c.Template.Fields) == 0 {
		return doctmpl.Default()
	}
	t := doctmpl.Template{}
	for _, f := range c.Template.Fields {
		level := f.Level
		if level <= 0 {
			level = c.SectionLevel
		}
		if level <= 0 {
			level = doctmpl.DefaultSectionLevel
		}
		heading := f.Heading
		if heading == "" {
			heading = f.Name
		}
		t.Fields = append(t.Fields, doctmpl.Field{Name: f.Name, Heading: heading, Level: level})
	}
	return t
}

// ScanOptions maps the scan section onto scan.Options.
func (c Config) ScanOptions() scan.Options {
	return scan.Options{
		Include:       c.Scan.Include,
		Exclude:       c.Scan.Exclude,
		MaxFileBytes:  c.Scan.MaxFileBytes,
		MaxTotalBytes: c.Scan.MaxTotalBytes,
		Redact:        c.Scan.RedactSecrets,
	}
}

// ModelID is the identifier that participates in drift fingerprints. It
// includes the provider so switching backends invalidates cached verdicts.
func (c Config) ModelID() string {
	return c.Provider + ":" + c.Model
}
