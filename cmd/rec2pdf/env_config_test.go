package main

// Notes:
// - loadEnvConfig: we test all 7 REC2PDF_* variables. Invalid and negative
//   timeouts are tested to verify graceful handling (ignored, not errors).
// - warnUnknownEnvVars: we test typo detection and that known vars don't warn.
// - applyEnvConfig: a set env var overrides the config file value, so the
//   effective precedence is env vars > config file > defaults.
// - Tests use t.Setenv() which prevents t.Parallel() at parent level.

import (
	"bytes"
	"testing"
	"time"

	"github.com/ovoronin/go-rec2pdf/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Run("all variables set", func(t *testing.T) {
		t.Setenv("REC2PDF_CONFIG", "/path/to/rec2pdf.yaml")
		t.Setenv("REC2PDF_DATA_DIR", "/srv/data")
		t.Setenv("REC2PDF_TEMPLATES_DIR", "/srv/templates")
		t.Setenv("REC2PDF_OUTPUT_DIR", "/srv/output")
		t.Setenv("REC2PDF_FONTS_DIR", "/srv/fonts")
		t.Setenv("REC2PDF_TIMEOUT", "2m")
		t.Setenv("REC2PDF_NO_OPEN", "1")

		cfg := loadEnvConfig()

		if cfg.ConfigPath != "/path/to/rec2pdf.yaml" {
			t.Errorf("ConfigPath = %q, want /path/to/rec2pdf.yaml", cfg.ConfigPath)
		}
		if cfg.DataDir != "/srv/data" {
			t.Errorf("DataDir = %q, want /srv/data", cfg.DataDir)
		}
		if cfg.TemplatesDir != "/srv/templates" {
			t.Errorf("TemplatesDir = %q, want /srv/templates", cfg.TemplatesDir)
		}
		if cfg.OutputDir != "/srv/output" {
			t.Errorf("OutputDir = %q, want /srv/output", cfg.OutputDir)
		}
		if cfg.FontsDir != "/srv/fonts" {
			t.Errorf("FontsDir = %q, want /srv/fonts", cfg.FontsDir)
		}
		if cfg.Timeout != 2*time.Minute {
			t.Errorf("Timeout = %v, want 2m", cfg.Timeout)
		}
		if !cfg.NoOpen {
			t.Error("NoOpen = false, want true")
		}
	})

	t.Run("invalid timeout ignored", func(t *testing.T) {
		t.Setenv("REC2PDF_TIMEOUT", "invalid")

		cfg := loadEnvConfig()

		if cfg.Timeout != 0 {
			t.Errorf("Timeout = %v, want 0 (invalid value ignored)", cfg.Timeout)
		}
	})

	t.Run("negative timeout ignored", func(t *testing.T) {
		t.Setenv("REC2PDF_TIMEOUT", "-5s")

		cfg := loadEnvConfig()

		if cfg.Timeout != 0 {
			t.Errorf("Timeout = %v, want 0 (negative value ignored)", cfg.Timeout)
		}
	})

	t.Run("invalid no-open ignored", func(t *testing.T) {
		t.Setenv("REC2PDF_NO_OPEN", "maybe")

		cfg := loadEnvConfig()

		if cfg.NoOpen {
			t.Error("NoOpen = true, want false (invalid value ignored)")
		}
	})

	t.Run("no-open accepts ParseBool forms", func(t *testing.T) {
		for value, want := range map[string]bool{
			"true":  true,
			"TRUE":  true,
			"t":     true,
			"false": false,
			"0":     false,
		} {
			t.Setenv("REC2PDF_NO_OPEN", value)

			if cfg := loadEnvConfig(); cfg.NoOpen != want {
				t.Errorf("NoOpen with %q = %v, want %v", value, cfg.NoOpen, want)
			}
		}
	})

	t.Run("empty env returns zero values", func(t *testing.T) {
		for name := range knownEnvVars {
			t.Setenv(name, "")
		}

		cfg := loadEnvConfig()

		if cfg.ConfigPath != "" {
			t.Errorf("ConfigPath = %q, want empty", cfg.ConfigPath)
		}
		if cfg.DataDir != "" {
			t.Errorf("DataDir = %q, want empty", cfg.DataDir)
		}
		if cfg.Timeout != 0 {
			t.Errorf("Timeout = %v, want 0", cfg.Timeout)
		}
		if cfg.NoOpen {
			t.Error("NoOpen = true, want false")
		}
	})
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Unknown variable detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Run("warns on unknown REC2PDF_ vars", func(t *testing.T) {
		t.Setenv("REC2PDF_DATADIR", "typo")
		t.Setenv("REC2PDF_TEMPLATE_DIR", "typo")

		var buf bytes.Buffer
		warnUnknownEnvVars(&buf)

		output := buf.String()
		if !bytes.Contains(buf.Bytes(), []byte("REC2PDF_DATADIR")) {
			t.Errorf("should warn about REC2PDF_DATADIR, got: %s", output)
		}
		if !bytes.Contains(buf.Bytes(), []byte("REC2PDF_TEMPLATE_DIR")) {
			t.Errorf("should warn about REC2PDF_TEMPLATE_DIR, got: %s", output)
		}
		if !bytes.Contains(buf.Bytes(), []byte("typo?")) {
			t.Errorf("should suggest typo, got: %s", output)
		}
	})

	t.Run("no warning for known vars", func(t *testing.T) {
		t.Setenv("REC2PDF_CONFIG", "/path")
		t.Setenv("REC2PDF_DATA_DIR", "/data")
		t.Setenv("REC2PDF_TEMPLATES_DIR", "/templates")
		t.Setenv("REC2PDF_OUTPUT_DIR", "/output")
		t.Setenv("REC2PDF_FONTS_DIR", "/fonts")
		t.Setenv("REC2PDF_TIMEOUT", "45s")
		t.Setenv("REC2PDF_NO_OPEN", "1")

		var buf bytes.Buffer
		warnUnknownEnvVars(&buf)

		if buf.Len() > 0 {
			t.Errorf("should not warn for known vars, got: %s", buf.String())
		}
	})

	t.Run("ignores non-REC2PDF vars", func(t *testing.T) {
		t.Setenv("PATH", "/usr/bin")
		t.Setenv("SOME_OTHER_VAR", "value")

		var buf bytes.Buffer
		warnUnknownEnvVars(&buf)

		if bytes.Contains(buf.Bytes(), []byte("PATH")) {
			t.Errorf("should not warn about PATH")
		}
	})
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Env values override config file values
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Run("applies env to default config", func(t *testing.T) {
		env := &envConfig{
			DataDir:      "/srv/data",
			TemplatesDir: "/srv/templates",
			OutputDir:    "/srv/output",
			FontsDir:     "/srv/fonts",
			Timeout:      90 * time.Second,
			NoOpen:       true,
		}
		cfg := config.DefaultConfig()

		applyEnvConfig(env, cfg)

		if cfg.Dirs.Data != "/srv/data" {
			t.Errorf("Dirs.Data = %q, want /srv/data", cfg.Dirs.Data)
		}
		if cfg.Dirs.Templates != "/srv/templates" {
			t.Errorf("Dirs.Templates = %q, want /srv/templates", cfg.Dirs.Templates)
		}
		if cfg.Dirs.Output != "/srv/output" {
			t.Errorf("Dirs.Output = %q, want /srv/output", cfg.Dirs.Output)
		}
		if cfg.Dirs.Fonts != "/srv/fonts" {
			t.Errorf("Dirs.Fonts = %q, want /srv/fonts", cfg.Dirs.Fonts)
		}
		if cfg.TimeoutSeconds != 90 {
			t.Errorf("TimeoutSeconds = %d, want 90", cfg.TimeoutSeconds)
		}
		if cfg.OpenAfter() {
			t.Error("OpenAfter() = true, want false after NoOpen")
		}
	})

	t.Run("overrides existing config values", func(t *testing.T) {
		env := &envConfig{
			DataDir: "/env/data",
			Timeout: 10 * time.Second,
		}
		cfg := config.DefaultConfig()
		cfg.Dirs.Data = "/file/data"
		cfg.TimeoutSeconds = 120

		applyEnvConfig(env, cfg)

		if cfg.Dirs.Data != "/env/data" {
			t.Errorf("Dirs.Data = %q, want /env/data (env wins)", cfg.Dirs.Data)
		}
		if cfg.TimeoutSeconds != 10 {
			t.Errorf("TimeoutSeconds = %d, want 10 (env wins)", cfg.TimeoutSeconds)
		}
	})

	t.Run("empty env values do not affect config", func(t *testing.T) {
		env := &envConfig{}
		cfg := config.DefaultConfig()
		cfg.Dirs.Data = "/file/data"
		cfg.TimeoutSeconds = 120
		open := true
		cfg.OpenAfterGenerate = &open

		applyEnvConfig(env, cfg)

		if cfg.Dirs.Data != "/file/data" {
			t.Errorf("Dirs.Data = %q, want /file/data", cfg.Dirs.Data)
		}
		if cfg.TimeoutSeconds != 120 {
			t.Errorf("TimeoutSeconds = %d, want 120", cfg.TimeoutSeconds)
		}
		if !cfg.OpenAfter() {
			t.Error("OpenAfter() = false, want true (unchanged)")
		}
	})

	t.Run("no-open false leaves open setting alone", func(t *testing.T) {
		env := &envConfig{NoOpen: false}
		cfg := config.DefaultConfig()

		applyEnvConfig(env, cfg)

		if !cfg.OpenAfter() {
			t.Error("OpenAfter() = false, want true (default preserved)")
		}
	})
}

// ---------------------------------------------------------------------------
// TestKnownEnvVars - Known variable list completeness
// ---------------------------------------------------------------------------

func TestKnownEnvVars(t *testing.T) {
	expected := []string{
		"REC2PDF_CONFIG",
		"REC2PDF_DATA_DIR",
		"REC2PDF_TEMPLATES_DIR",
		"REC2PDF_OUTPUT_DIR",
		"REC2PDF_FONTS_DIR",
		"REC2PDF_TIMEOUT",
		"REC2PDF_NO_OPEN",
	}

	for _, name := range expected {
		if !knownEnvVars[name] {
			t.Errorf("knownEnvVars missing %s", name)
		}
	}

	if len(knownEnvVars) != len(expected) {
		t.Errorf("knownEnvVars has %d entries, want %d", len(knownEnvVars), len(expected))
	}
}
