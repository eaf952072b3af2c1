// Package rec2pdf turns tabular record data (CSV or JSON) into rendered PDF
// documents through HTML templates.
//
// # Quick Start
//
// Create a pipeline over a directory layout, run it, and close when done:
//
//	p := rec2pdf.NewPipeline(rec2pdf.DefaultDirs())
//	defer p.Close()
//
//	result, err := p.Run(ctx, rec2pdf.Hints{
//	    Data:    "orders.json",
//	    Invoice: "O1",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.OutputPath)
//
// A run that stops for lack of inputs (no data files, no templates, no
// records) reports the reason on the pipeline's output and returns a zero
// Result without an error.
//
// # Generation Pipeline
//
// Each run follows these stages:
//
//  1. Record loading (CSV with header row, or JSON normalized to records)
//  2. Template narrowing by data file name, then by record shape
//  3. Invoice field detection (canonical names, then lookalike fields)
//  4. Partitioning records by the chosen invoice id
//  5. PDF rendering via headless Chrome (go-rod), then opening the result
//
// Stages 2-4 each resolve from a Hints entry when one is supplied; anything
// unresolved falls back to an interactive prompt with a sensible default.
//
// # Configuration
//
// Use functional options to customize the pipeline:
//
//	p := rec2pdf.NewPipeline(dirs,
//	    rec2pdf.WithEngine(rec2pdf.NewRodEngine(rec2pdf.PageSettings{
//	        Size:        "a4",
//	        Orientation: "portrait",
//	        Margin:      0.5,
//	    }, time.Minute)),
//	    rec2pdf.WithoutOpener(),
//	)
//
// Tests can swap the interactive prompt and the browser for scripted
// implementations with WithChooser and WithEngine.
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
//
// For containers and CI environments, use ROD_BROWSER_BIN to point at a
// pre-installed Chrome binary; the sandbox is disabled automatically when
// that variable or CI=true is set.
package rec2pdf
