//go:build windows

package rec2pdf

import (
	"os"
	"path/filepath"
)

func systemFontCandidates() []string {
	winDir := os.Getenv("WINDIR")
	if winDir == "" {
		winDir = `C:\Windows`
	}
	fonts := filepath.Join(winDir, "Fonts")
	return []string{
		filepath.Join(fonts, "DejaVuSans.ttf"),
		filepath.Join(fonts, "Roboto-Regular.ttf"),
		filepath.Join(fonts, "arial.ttf"),
		filepath.Join(fonts, "segoeui.ttf"),
	}
}
