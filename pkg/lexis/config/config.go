package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/lexis/pkg/lexis/internalerr"
)

// Config holds every tunable of corpus construction and reporting.
type Config struct {
	Extensions     []string       `yaml:"extensions" toml:"extensions"`
	MinTokenLength int            `yaml:"min_token_length" toml:"min_token_length"`
	Workers        int            `yaml:"workers" toml:"workers"`
	Stoplist       StoplistConfig `yaml:"stoplist" toml:"stoplist"`
	Log            LogConfig      `yaml:"log" toml:"log"`
	Export         ExportConfig   `yaml:"export" toml:"export"`
}

// StoplistConfig selects the stopwords used by the tokenizer.
type StoplistConfig struct {
	Path           string   `yaml:"path" toml:"path"`                       // YAML file with a terms list
	Extra          []string `yaml:"extra" toml:"extra"`                     // added after the list is loaded
	Remove         []string `yaml:"remove" toml:"remove"`                   // removed last
	DisableDefault bool     `yaml:"disable_default" toml:"disable_default"` // skip the built-in English list
}

// LogConfig configures the slog logger.
type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// ExportConfig configures the report store.
type ExportConfig struct {
	Path     string `yaml:"path" toml:"path"`
	TopTerms int    `yaml:"top_terms" toml:"top_terms"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Extensions:     []string{".txt"},
		MinTokenLength: 3,
		Workers:        1,
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
		Export: ExportConfig{
			TopTerms: 100,
		},
	}
}

// Load reads a YAML or TOML configuration file, chosen by extension, on top
// of Default(). The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w: %v", path, internalerr.ErrInvalidConfig, err)
		}
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w: %v", path, internalerr.ErrInvalidConfig, err)
		}
	default:
		return cfg, fmt.Errorf("config %s: unsupported format %q: %w", path, filepath.Ext(path), internalerr.ErrInvalidConfig)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	for i, ext := range c.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Extensions[i] = ext
	}
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if len(c.Extensions) == 0 {
		return fmt.Errorf("extensions must not be empty: %w", internalerr.ErrInvalidConfig)
	}
	for _, ext := range c.Extensions {
		if ext == "" || ext == "." {
			return fmt.Errorf("extensions: empty entry: %w", internalerr.ErrInvalidConfig)
		}
	}
	if c.MinTokenLength < 1 {
		return fmt.Errorf("min_token_length must be at least 1, got %d: %w", c.MinTokenLength, internalerr.ErrInvalidConfig)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d: %w", c.Workers, internalerr.ErrInvalidConfig)
	}
	switch c.Log.Format {
	case "", "auto", "text", "json":
	default:
		return fmt.Errorf("log.format: unsupported value %q: %w", c.Log.Format, internalerr.ErrInvalidConfig)
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: unsupported value %q: %w", c.Log.Level, internalerr.ErrInvalidConfig)
	}
	if c.Export.TopTerms < 0 {
		return fmt.Errorf("export.top_terms must not be negative: %w", internalerr.ErrInvalidConfig)
	}
	return nil
}

// Stoplist represents the stopword list configuration
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, err
	}

	return &sl, nil
}
