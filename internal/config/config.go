// Package config loads the cards application configuration: defaults, then
// an optional YAML file, then CARDS_ prefixed environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-cards/pkg/model"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "CARDS_"

type Config struct {
	Addr      string `yaml:"addr" env:"ADDR"`
	BasePath  string `yaml:"basePath" env:"BASE_PATH"`
	RoutePath string `yaml:"routePath" env:"ROUTE_PATH"`
	Title     string `yaml:"title" env:"TITLE"`

	Seed         int64 `yaml:"seed" env:"SEED"`
	SeedTeachers int   `yaml:"seedTeachers" env:"SEED_TEACHERS"`
	SeedStudents int   `yaml:"seedStudents" env:"SEED_STUDENTS"`

	Log   LogConfig   `yaml:"log" envPrefix:"LOG_"`
	Theme ThemeConfig `yaml:"theme" envPrefix:"THEME_"`
	Rows  RowsConfig  `yaml:"rows" envPrefix:"ROWS_"`

	Teachers []model.Teacher `yaml:"teachers"`
	Students []model.Student `yaml:"students"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
}

// ThemeConfig selects a go-theme manifest. A custom manifest comes either
// inline under manifest or from File (JSON or YAML, resolved against the
// working directory). Without either the built-in theme is used.
type ThemeConfig struct {
	Name     string          `yaml:"name" env:"NAME"`
	Variant  string          `yaml:"variant" env:"VARIANT"`
	File     string          `yaml:"file" env:"FILE"`
	Manifest *theme.Manifest `yaml:"manifest"`
}

// RowsConfig selects named row templates. Empty names keep the stock row.
type RowsConfig struct {
	Dir       string            `yaml:"dir" env:"DIR"`
	Extension string            `yaml:"extension" env:"EXTENSION"`
	Teacher   string            `yaml:"teacher" env:"TEACHER"`
	Student   string            `yaml:"student" env:"STUDENT"`
	Inline    map[string]string `yaml:"inline"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		Addr:         ":8080",
		RoutePath:    "/cards",
		Title:        "Content projection",
		SeedTeachers: 3,
		SeedStudents: 3,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Rows: RowsConfig{
			Extension: ".tpl",
		},
	}
}

// Load reads path (optional) and the process environment.
func Load(path string) (Config, error) {
	return LoadWithEnv(path, nil)
}

// LoadWithEnv behaves like Load but reads environment values from environ
// when it is non-nil.
func LoadWithEnv(path string, environ map[string]string) (Config, error) {
	cfg := Defaults()

	if path = strings.TrimSpace(path); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: open %q: %w", path, err)
		}
		defer func() { _ = f.Close() }()
		if err := decodeYAML(f, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: %q: %w", path, err)
		}
	}

	if err := applyEnv(&cfg, environ); err != nil {
		return Config{}, err
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes YAML from data over the defaults without reading the
// environment.
func Parse(data []byte) (Config, error) {
	cfg := Defaults()
	if err := decodeYAML(bytes.NewReader(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeYAML(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode yaml: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config, environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}
	return nil
}

func (c *Config) normalize() {
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	c.Theme.Variant = strings.TrimSpace(c.Theme.Variant)
	c.Theme.Name = strings.TrimSpace(c.Theme.Name)
	c.Theme.File = strings.TrimSpace(c.Theme.File)
	c.RoutePath = strings.TrimSpace(c.RoutePath)
	c.BasePath = strings.TrimSpace(c.BasePath)
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.RoutePath == "" {
		c.RoutePath = "/cards"
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}
	if c.SeedTeachers < 0 || c.SeedStudents < 0 {
		return fmt.Errorf("config: seed counts must not be negative")
	}
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("config: addr is required")
	}
	if c.Theme.File != "" && c.Theme.Manifest != nil {
		return fmt.Errorf("config: theme file and inline manifest are exclusive")
	}
	if c.Theme.Manifest != nil {
		if err := c.Theme.Manifest.Validate(); err != nil {
			return fmt.Errorf("config: theme: %w", err)
		}
	}
	return nil
}

// LoadManifest returns the custom manifest, reading File through the
// go-theme loader when set. It returns nil when no custom theme is configured.
func (t ThemeConfig) LoadManifest() (*theme.Manifest, error) {
	if file := strings.TrimSpace(t.File); file != "" {
		manifest, err := theme.LoadFile(os.DirFS(filepath.Dir(file)), filepath.Base(file))
		if err != nil {
			return nil, fmt.Errorf("config: theme: %w", err)
		}
		return manifest, nil
	}
	if t.Manifest == nil {
		return nil, nil
	}
	if err := t.Manifest.Validate(); err != nil {
		return nil, fmt.Errorf("config: theme: %w", err)
	}
	return t.Manifest, nil
}
