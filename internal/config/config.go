// Package config loads the optional rec2pdf.yaml configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ovoronin/go-rec2pdf/internal/fileutil"
	"github.com/ovoronin/go-rec2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrFieldTooLong   = errors.New("field exceeds maximum length")
)

// ConfigName is the base name of the discovered config file.
const ConfigName = "rec2pdf"

// DefaultTimeoutSeconds is used when no render timeout is configured.
const DefaultTimeoutSeconds = 30

// Field limits.
const (
	MaxDirLength         = 4096 // a path
	MaxPageSizeLength    = 10   // "letter", "a4", "legal"
	MaxOrientationLength = 10   // "portrait", "landscape"
	MaxTimeoutSeconds    = 3600
)

// Config holds all configuration for a generation run.
type Config struct {
	Dirs DirsConfig `yaml:"dirs"`
	Page PageConfig `yaml:"page"`
	// TimeoutSeconds bounds one browser render. Zero means the default.
	TimeoutSeconds int `yaml:"timeoutSeconds"`
	// OpenAfterGenerate controls opening the PDF in the default viewer.
	// Nil means enabled.
	OpenAfterGenerate *bool `yaml:"openAfterGenerate"`
}

// DirsConfig defines the working directory layout.
type DirsConfig struct {
	Data      string `yaml:"data"`      // input data files (.csv/.json)
	Templates string `yaml:"templates"` // HTML templates
	Output    string `yaml:"output"`    // generated PDFs
	Fonts     string `yaml:"fonts"`     // optional font files for embedding
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "letter", "a4", "legal" (default: "letter")
	Orientation string  `yaml:"orientation"` // "portrait", "landscape" (default: "portrait")
	Margin      float64 `yaml:"margin"`      // inches (default: 0.5)
}

// DefaultConfig returns the conventional project layout and page defaults.
func DefaultConfig() *Config {
	return &Config{
		Dirs: DirsConfig{
			Data:      "data",
			Templates: "templates",
			Output:    "output",
			Fonts:     filepath.Join("assets", "fonts"),
		},
		Page: PageConfig{
			Size:        "letter",
			Orientation: "portrait",
			Margin:      0.5,
		},
		TimeoutSeconds: DefaultTimeoutSeconds,
	}
}

// Timeout returns the render timeout as a duration.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeoutSeconds * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// OpenAfter reports whether the generated document should be opened.
func (c *Config) OpenAfter() bool {
	if c.OpenAfterGenerate == nil {
		return true
	}
	return *c.OpenAfterGenerate
}

// Validate checks field lengths and ranges.
// Called automatically by Load, but available for consumers who construct
// Config manually.
func (c *Config) Validate() error {
	dirs := []struct {
		name  string
		value string
	}{
		{"dirs.data", c.Dirs.Data},
		{"dirs.templates", c.Dirs.Templates},
		{"dirs.output", c.Dirs.Output},
		{"dirs.fonts", c.Dirs.Fonts},
	}
	for _, d := range dirs {
		if err := validateFieldLength(d.name, d.value, MaxDirLength); err != nil {
			return err
		}
	}

	if err := validateFieldLength("page.size", c.Page.Size, MaxPageSizeLength); err != nil {
		return err
	}
	if err := validateFieldLength("page.orientation", c.Page.Orientation, MaxOrientationLength); err != nil {
		return err
	}

	if c.TimeoutSeconds < 0 || c.TimeoutSeconds > MaxTimeoutSeconds {
		return fmt.Errorf("timeoutSeconds: must be between 0 and %d, got %d", MaxTimeoutSeconds, c.TimeoutSeconds)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// Load returns the effective configuration. An explicit path must exist;
// with an empty path the standard locations are searched and a missing
// file just yields the defaults.
func Load(explicitPath string) (*Config, error) {
	if explicitPath != "" {
		return loadFile(explicitPath)
	}
	path, ok := discoverConfigPath()
	if !ok {
		return DefaultConfig(), nil
	}
	return loadFile(path)
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Unmarshal over the defaults so absent keys keep their default values.
	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults refills fields an operator explicitly blanked.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Dirs.Data == "" {
		c.Dirs.Data = def.Dirs.Data
	}
	if c.Dirs.Templates == "" {
		c.Dirs.Templates = def.Dirs.Templates
	}
	if c.Dirs.Output == "" {
		c.Dirs.Output = def.Dirs.Output
	}
	if c.Dirs.Fonts == "" {
		c.Dirs.Fonts = def.Dirs.Fonts
	}
	if c.Page.Size == "" {
		c.Page.Size = def.Page.Size
	}
	if c.Page.Orientation == "" {
		c.Page.Orientation = def.Page.Orientation
	}
	if c.Page.Margin == 0 {
		c.Page.Margin = def.Page.Margin
	}
}

// SearchedPaths lists the locations Load consults when no explicit path is
// given, in order.
func SearchedPaths() []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, ConfigName+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-rec2pdf", ConfigName+ext))
		}
	}

	return paths
}

func discoverConfigPath() (string, bool) {
	for _, p := range SearchedPaths() {
		if fileutil.FileExists(p) {
			return p, true
		}
	}
	return "", false
}
