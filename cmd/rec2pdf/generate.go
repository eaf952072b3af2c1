package main

import (
	"context"
	"errors"
	"fmt"

	rec2pdf "github.com/ovoronin/go-rec2pdf"
	"github.com/ovoronin/go-rec2pdf/internal/config"
	"github.com/ovoronin/go-rec2pdf/internal/hints"
)

// runGenerate loads configuration, assembles the pipeline and executes one
// interactive generation run.
func runGenerate(ctx context.Context, flags *generateFlags, env *Environment) error {
	fmt.Fprintln(env.Stdout, "rec2pdf: CSV/JSON -> HTML template -> PDF")

	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig()

	cfg, err := config.Load(envCfg.ConfigPath)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchedPaths()))
		}
		return fmt.Errorf("loading config: %w", err)
	}
	applyEnvConfig(envCfg, cfg)

	page := rec2pdf.PageSettings{
		Size:        cfg.Page.Size,
		Orientation: cfg.Page.Orientation,
		Margin:      cfg.Page.Margin,
	}
	if err := page.Validate(); err != nil {
		return err
	}

	opts := []rec2pdf.Option{
		rec2pdf.WithEngine(rec2pdf.NewRodEngine(page, cfg.Timeout())),
		rec2pdf.WithChooser(&rec2pdf.TerminalChooser{In: env.Stdin, Out: env.Stdout}),
		rec2pdf.WithClock(env.Now),
		rec2pdf.WithOutput(env.Stdout, env.Stderr),
	}
	if !cfg.OpenAfter() {
		opts = append(opts, rec2pdf.WithoutOpener())
	}

	dirs := rec2pdf.Dirs{
		Data:      cfg.Dirs.Data,
		Templates: cfg.Dirs.Templates,
		Output:    cfg.Dirs.Output,
		Fonts:     cfg.Dirs.Fonts,
	}

	p := rec2pdf.NewPipeline(dirs, opts...)
	defer func() { _ = p.Close() }()

	_, err = p.Run(ctx, rec2pdf.Hints{
		Data:     flags.data,
		Template: flags.template,
		Invoice:  flags.invoice,
	})
	return attachHint(err)
}

// attachHint appends operator guidance for known failure modes.
func attachHint(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, rec2pdf.ErrBrowserConnect):
		return fmt.Errorf("%w%s", err, hints.ForBrowserConnect())
	case errors.Is(err, rec2pdf.ErrPageLoad), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w%s", err, hints.ForTimeout())
	case errors.Is(err, rec2pdf.ErrWriteOutput):
		return fmt.Errorf("%w%s", err, hints.ForOutputDirectory())
	}
	return err
}
