//go:build !windows && !darwin

package rec2pdf

import (
	"os"
	"path/filepath"
)

func systemFontCandidates() []string {
	home, _ := os.UserHomeDir()
	return []string{
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/truetype/roboto/hinted/Roboto-Regular.ttf",
		filepath.Join(home, ".local", "share", "fonts", "DejaVuSans.ttf"),
	}
}
