package rec2pdf

import (
	"github.com/pkg/browser"
)

// Opener launches a generated document in the operator's default viewer.
// Open failures are reported as warnings by the caller; they never fail a
// run.
type Opener interface {
	Open(path string) error
}

// Compile-time interface checks
var (
	_ Opener = BrowserOpener{}
	_ Opener = NopOpener{}
)

// BrowserOpener opens documents with the system default handler.
type BrowserOpener struct{}

func (BrowserOpener) Open(path string) error {
	return browser.OpenFile(path)
}

// NopOpener pretends to open documents. Useful in tests.
type NopOpener struct{}

func (NopOpener) Open(string) error { return nil }
