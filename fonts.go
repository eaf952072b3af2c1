package rec2pdf

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/ovoronin/go-rec2pdf/internal/fileutil"
)

// localFontNames are checked in the fonts directory before any system
// location, so operators can ship a font with the project.
var localFontNames = []string{"DejaVuSans.ttf", "Roboto-Regular.ttf"}

const fontFaceCSS = `@font-face {
  font-family: 'AppCyrillic';
  src: url('%s');
  font-weight: normal;
  font-style: normal;
}
html, body { font-family: 'AppCyrillic', 'DejaVu Sans', 'Roboto', 'Arial', 'Segoe UI', sans-serif; }
`

const fallbackFontCSS = `html, body { font-family: 'DejaVu Sans', 'Roboto', 'Arial', 'Segoe UI', sans-serif; }`

// FindFontFile locates a Cyrillic-capable font, preferring the project
// fonts directory over system locations. Returns false when none exists;
// rendering then falls back to whatever the browser resolves.
func FindFontFile(fontsDir string) (string, bool) {
	for _, name := range localFontNames {
		p := filepath.Join(fontsDir, name)
		if fileutil.FileExists(p) {
			return p, true
		}
	}
	for _, p := range systemFontCandidates() {
		if fileutil.FileExists(p) {
			return p, true
		}
	}
	return "", false
}

// BuildFontCSS returns the stylesheet injected into every document: an
// embedded font face when a font file is available, otherwise a plain
// family stack.
func BuildFontCSS(fontPath string) string {
	if fontPath != "" && fileutil.FileExists(fontPath) {
		return fmt.Sprintf(fontFaceCSS, fileURI(fontPath))
	}
	return fallbackFontCSS
}

// fileURI converts a path into a file:// URL the browser can load.
func fileURI(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	abs = filepath.ToSlash(abs)
	if !strings.HasPrefix(abs, "/") {
		abs = "/" + abs
	}
	u := url.URL{Scheme: "file", Path: abs}
	return u.String()
}
