//go:build darwin

package rec2pdf

func systemFontCandidates() []string {
	return []string{
		"/System/Library/Fonts/Supplemental/DejaVuSans.ttf",
		"/Library/Fonts/DejaVuSans.ttf",
		"/Library/Fonts/Roboto-Regular.ttf",
		"/System/Library/Fonts/Supplemental/Arial.ttf",
	}
}
