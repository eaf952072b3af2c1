package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ovoronin/go-rec2pdf/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath   string        // REC2PDF_CONFIG: config file path
	DataDir      string        // REC2PDF_DATA_DIR: data files directory
	TemplatesDir string        // REC2PDF_TEMPLATES_DIR: HTML templates directory
	OutputDir    string        // REC2PDF_OUTPUT_DIR: generated PDFs directory
	FontsDir     string        // REC2PDF_FONTS_DIR: embeddable fonts directory
	Timeout      time.Duration // REC2PDF_TIMEOUT: render timeout (e.g. 45s, 2m)
	NoOpen       bool          // REC2PDF_NO_OPEN: skip opening the generated PDF
}

// knownEnvVars lists valid REC2PDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"REC2PDF_CONFIG":        true,
	"REC2PDF_DATA_DIR":      true,
	"REC2PDF_TEMPLATES_DIR": true,
	"REC2PDF_OUTPUT_DIR":    true,
	"REC2PDF_FONTS_DIR":     true,
	"REC2PDF_TIMEOUT":       true,
	"REC2PDF_NO_OPEN":       true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized REC2PDF_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:   os.Getenv("REC2PDF_CONFIG"),
		DataDir:      os.Getenv("REC2PDF_DATA_DIR"),
		TemplatesDir: os.Getenv("REC2PDF_TEMPLATES_DIR"),
		OutputDir:    os.Getenv("REC2PDF_OUTPUT_DIR"),
		FontsDir:     os.Getenv("REC2PDF_FONTS_DIR"),
	}

	// Parse duration for timeout
	if timeout := os.Getenv("REC2PDF_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	// Accepts the strconv.ParseBool forms: 1, t, true, 0, f, false, ...
	if noOpen := os.Getenv("REC2PDF_NO_OPEN"); noOpen != "" {
		if b, err := strconv.ParseBool(noOpen); err == nil {
			cfg.NoOpen = b
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized REC2PDF_* variables.
// Helps catch typos like REC2PDF_DATADIR instead of REC2PDF_DATA_DIR.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "REC2PDF_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// A set variable overrides the corresponding config file value, so the
// effective precedence is: env vars > config file > defaults.
// (CLI flags carry prompt hints, not configuration, and stay out of this.)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.DataDir != "" {
		cfg.Dirs.Data = env.DataDir
	}
	if env.TemplatesDir != "" {
		cfg.Dirs.Templates = env.TemplatesDir
	}
	if env.OutputDir != "" {
		cfg.Dirs.Output = env.OutputDir
	}
	if env.FontsDir != "" {
		cfg.Dirs.Fonts = env.FontsDir
	}
	if env.Timeout > 0 {
		cfg.TimeoutSeconds = int(env.Timeout / time.Second)
	}
	if env.NoOpen {
		open := false
		cfg.OpenAfterGenerate = &open
	}
}
