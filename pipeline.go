package rec2pdf

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// DefaultDirs is the conventional project layout relative to the working
// directory.
func DefaultDirs() Dirs {
	return Dirs{
		Data:      "data",
		Templates: "templates",
		Output:    "output",
		Fonts:     filepath.Join("assets", "fonts"),
	}
}

// EnsureDirectories creates the working directory layout if absent. Empty
// entries are skipped.
func EnsureDirectories(d Dirs) error {
	for _, dir := range []string{d.Data, d.Templates, d.Output, d.Fonts} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	return nil
}

// Pipeline runs one generation pass: load records, narrow templates, detect
// the grouping field, partition, render and open. Each decision point is
// resolved from a hint when one is given, falling back to the chooser.
type Pipeline struct {
	dirs    Dirs
	chooser Chooser
	engine  Engine
	opener  Opener
	now     func() time.Time
	stdout  io.Writer
	stderr  io.Writer
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithChooser sets the interactive chooser.
// Panics if c is nil (programmer error).
func WithChooser(c Chooser) Option {
	if c == nil {
		panic("rec2pdf: WithChooser requires a non-nil Chooser")
	}
	return func(p *Pipeline) { p.chooser = c }
}

// WithEngine sets the rendering engine.
// Panics if e is nil (programmer error).
func WithEngine(e Engine) Option {
	if e == nil {
		panic("rec2pdf: WithEngine requires a non-nil Engine")
	}
	return func(p *Pipeline) { p.engine = e }
}

// WithOpener sets the document opener.
// Panics if o is nil; use WithoutOpener to disable opening.
func WithOpener(o Opener) Option {
	if o == nil {
		panic("rec2pdf: WithOpener requires a non-nil Opener")
	}
	return func(p *Pipeline) { p.opener = o }
}

// WithoutOpener disables opening the generated document.
func WithoutOpener() Option {
	return func(p *Pipeline) { p.opener = nil }
}

// WithClock sets the time source used for timestamps.
// Panics if now is nil (programmer error).
func WithClock(now func() time.Time) Option {
	if now == nil {
		panic("rec2pdf: WithClock requires a non-nil func")
	}
	return func(p *Pipeline) { p.now = now }
}

// WithOutput redirects operator-facing output.
// Panics if either writer is nil (programmer error).
func WithOutput(stdout, stderr io.Writer) Option {
	if stdout == nil || stderr == nil {
		panic("rec2pdf: WithOutput requires non-nil writers")
	}
	return func(p *Pipeline) {
		p.stdout = stdout
		p.stderr = stderr
	}
}

// NewPipeline creates a Pipeline over the given directory layout.
// Use options to customize behavior (e.g., WithEngine).
func NewPipeline(dirs Dirs, opts ...Option) *Pipeline {
	p := &Pipeline{
		dirs:   dirs,
		opener: BrowserOpener{},
		now:    time.Now,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Create the Chrome engine and terminal chooser if not injected
	// (e.g., by tests)
	if p.engine == nil {
		p.engine = NewRodEngine(*DefaultPageSettings(), DefaultRenderTimeout)
	}
	if p.chooser == nil {
		p.chooser = &TerminalChooser{In: os.Stdin, Out: p.stdout}
	}

	return p
}

// Close releases resources (headless Chrome browser).
func (p *Pipeline) Close() error {
	if p.engine != nil {
		return p.engine.Close()
	}
	return nil
}

// Run executes one generation pass. A run that stops for lack of inputs
// (no data files, no templates, no records, no grouping values) reports the
// reason and returns a zero Result with no error.
func (p *Pipeline) Run(ctx context.Context, hints Hints) (Result, error) {
	if err := EnsureDirectories(p.dirs); err != nil {
		return Result{}, err
	}

	sources, err := ListDataSources(p.dirs.Data)
	if err != nil {
		return Result{}, err
	}
	if len(sources) == 0 {
		fmt.Fprintf(p.stdout, "\nNo data files found in: %s\n", p.dirs.Data)
		fmt.Fprintln(p.stdout, "Put .csv or .json files there and run again.")
		return Result{}, nil
	}

	templates, err := DiscoverTemplates(p.dirs.Templates)
	if err != nil {
		return Result{}, err
	}
	if len(templates) == 0 {
		fmt.Fprintf(p.stdout, "\nNo HTML templates found in: %s\n", p.dirs.Templates)
		fmt.Fprintln(p.stdout, "Put .html files there and run again.")
		return Result{}, nil
	}

	source, err := p.chooseDataSource(ctx, sources, hints.Data)
	if err != nil {
		return Result{}, err
	}

	fmt.Fprintf(p.stdout, "\nLoading data from: %s\n", source.Name)
	ds, err := LoadDataFile(source.Path)
	if err != nil {
		return Result{}, err
	}
	if len(ds.Records) == 0 {
		fmt.Fprintln(p.stdout, "The data file contains no records.")
		return Result{}, nil
	}

	tpl, err := p.chooseTemplate(ctx, source, ds, templates, hints.Template)
	if err != nil {
		return Result{}, err
	}

	var invoiceKey string
	records := ds.Records
	if tpl.RequiresGroupingKey {
		field, ok := DetectInvoiceField(ds)
		if !ok {
			field, ok, err = p.chooseField(ctx, ds)
			if err != nil {
				return Result{}, err
			}
			if !ok {
				fmt.Fprintln(p.stdout, "Could not determine the invoice id field.")
				return Result{}, nil
			}
		}

		values := UniqueValues(ds.Records, field)
		if len(values) == 0 {
			fmt.Fprintf(p.stdout, "No values found for field %q.\n", field)
			return Result{}, nil
		}

		invoiceKey, err = p.chooseInvoice(ctx, field, values, hints.Invoice)
		if err != nil {
			return Result{}, err
		}
		records = FilterByField(ds.Records, field, invoiceKey)
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	now := p.now()
	htmlContent, err := RenderHTML(tpl.Path, RenderInput{
		Records:      records,
		AllRecords:   ds.Records,
		InvoiceKey:   invoiceKey,
		GeneratedAt:  now,
		DataFile:     source.Name,
		TemplateFile: tpl.Name,
	})
	if err != nil {
		return Result{}, err
	}

	// The document renders from a temp file, so template-relative assets
	// need absolute URLs to survive the move.
	htmlContent, err = RewriteAssetPaths(htmlContent, filepath.Dir(tpl.Path))
	if err != nil {
		return Result{}, err
	}

	fontPath, _ := FindFontFile(p.dirs.Fonts)
	css := BuildFontCSS(fontPath)

	outName := OutputFileName(tpl, invoiceKey, source.Name, now)
	outPath := filepath.Join(p.dirs.Output, outName)

	fmt.Fprintf(p.stdout, "\nGenerating PDF: %s\n", outName)
	pdf, err := p.engine.Render(ctx, htmlContent, css)
	if err != nil {
		return Result{}, err
	}
	// #nosec G306 -- PDF output files are intended to be readable
	if err := os.WriteFile(outPath, pdf, filePermissions); err != nil {
		return Result{}, fmt.Errorf("%w: %s: %v", ErrWriteOutput, outPath, err)
	}
	fmt.Fprintf(p.stdout, "Done: %s\n", outPath)

	result := Result{OutputPath: outPath}
	if p.opener != nil {
		fmt.Fprintln(p.stdout, "Opening PDF...")
		if err := p.opener.Open(outPath); err != nil {
			fmt.Fprintf(p.stderr, "Could not open the PDF automatically: %v\n", err)
		} else {
			result.Opened = true
		}
	}
	return result, nil
}

// ResolveHint resolves a selection hint against candidates: a 1-based
// index, then an exact case-insensitive match, then a partial
// case-insensitive match.
func ResolveHint(hint string, candidates []string) (int, bool) {
	if hint == "" {
		return 0, false
	}
	if idx, ok := indexAnswer(hint, len(candidates)); ok {
		return idx, true
	}
	for i, c := range candidates {
		if strings.EqualFold(c, hint) {
			return i, true
		}
	}
	lower := strings.ToLower(hint)
	for i, c := range candidates {
		if strings.Contains(strings.ToLower(c), lower) {
			return i, true
		}
	}
	return 0, false
}

// decide resolves one decision point: the candidate listing is always
// shown, a resolved hint selects silently, and anything else goes through
// the chooser with the first candidate as default.
func (p *Pipeline) decide(ctx context.Context, title, prompt string, candidates []string, hint string) (int, error) {
	p.printNumbered(title, candidates)
	if idx, ok := ResolveHint(hint, candidates); ok {
		return idx, nil
	}
	return p.chooser.Choose(ctx, prompt, candidates, 0)
}

func (p *Pipeline) chooseDataSource(ctx context.Context, sources []DataSource, hint string) (DataSource, error) {
	names := make([]string, len(sources))
	for i, s := range sources {
		names[i] = s.Name
	}
	idx, err := p.decide(ctx, "Available data files:", "Select data file", names, hint)
	if err != nil {
		return DataSource{}, err
	}
	return sources[idx], nil
}

func (p *Pipeline) chooseTemplate(ctx context.Context, source DataSource, ds *DataSet, templates []TemplateDescriptor, hint string) (TemplateDescriptor, error) {
	cands := SelectTemplates(source, ds, templates)
	names := make([]string, len(cands))
	for i, t := range cands {
		names[i] = t.Name
	}
	idx, err := p.decide(ctx, "Available templates for the selected file:", "Select template", names, hint)
	if err != nil {
		return TemplateDescriptor{}, err
	}
	return cands[idx], nil
}

func (p *Pipeline) chooseField(ctx context.Context, ds *DataSet) (string, bool, error) {
	if len(ds.Fields) == 0 {
		return "", false, nil
	}
	idx, err := p.decide(ctx, "Select the field that holds the invoice id:", "Field", ds.Fields, "")
	if err != nil {
		return "", false, err
	}
	return ds.Fields[idx], true, nil
}

func (p *Pipeline) chooseInvoice(ctx context.Context, field string, values []string, hint string) (string, error) {
	title := fmt.Sprintf("Available invoices (by field %q):", field)
	idx, err := p.decide(ctx, title, "Select invoice id", values, hint)
	if err != nil {
		return "", err
	}
	return values[idx], nil
}

func (p *Pipeline) printNumbered(title string, items []string) {
	fmt.Fprintf(p.stdout, "\n%s\n", title)
	for i, item := range items {
		fmt.Fprintf(p.stdout, "  %d. %s\n", i+1, item)
	}
}
