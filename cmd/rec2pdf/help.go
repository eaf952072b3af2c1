package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: rec2pdf [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate invoice PDFs from CSV/JSON data and HTML templates.")
	fmt.Fprintln(w, "Runs interactively; flags pre-answer individual prompts.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -d, --data <s>        data file: index, name, or name fragment")
	fmt.Fprintln(w, "  -t, --template <s>    template: index, name, or name fragment")
	fmt.Fprintln(w, "  -i, --invoice <s>     invoice id: index, value, or value fragment")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Configuration is read from rec2pdf.yaml (working directory, then the")
	fmt.Fprintln(w, "user config dir) and from REC2PDF_* environment variables.")
}
