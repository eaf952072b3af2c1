package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
)

// generateFlags holds the selection hints accepted on the command line.
// Each one pre-answers the matching interactive prompt.
type generateFlags struct {
	data     string
	template string
	invoice  string
}

// addGenerateFlags adds the hint flags to a FlagSet.
func addGenerateFlags(fs *flag.FlagSet, f *generateFlags) {
	fs.StringVarP(&f.data, "data", "d", "", "data file: index, name, or name fragment")
	fs.StringVarP(&f.template, "template", "t", "", "template: index, name, or name fragment")
	fs.StringVarP(&f.invoice, "invoice", "i", "", "invoice id: index, value, or value fragment")
}

// parseFlags parses the command line (without the program name).
func parseFlags(args []string) (*generateFlags, error) {
	fs := flag.NewFlagSet("rec2pdf", flag.ContinueOnError)
	f := &generateFlags{}
	addGenerateFlags(fs, f)

	fs.Usage = func() { printUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument: %q", fs.Arg(0))
	}
	return f, nil
}
