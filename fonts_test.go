package rec2pdf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFont(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("fake font"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFindFontFile(t *testing.T) {
	t.Run("project fonts dir wins", func(t *testing.T) {
		dir := t.TempDir()
		want := writeFont(t, dir, "DejaVuSans.ttf")

		got, ok := FindFontFile(dir)
		if !ok {
			t.Fatal("expected a font to be found")
		}
		if got != want {
			t.Errorf("FindFontFile() = %q, want %q", got, want)
		}
	})

	t.Run("DejaVu preferred over Roboto", func(t *testing.T) {
		dir := t.TempDir()
		writeFont(t, dir, "Roboto-Regular.ttf")
		want := writeFont(t, dir, "DejaVuSans.ttf")

		got, ok := FindFontFile(dir)
		if !ok {
			t.Fatal("expected a font to be found")
		}
		if got != want {
			t.Errorf("FindFontFile() = %q, want %q", got, want)
		}
	})

	t.Run("Roboto found when DejaVu absent", func(t *testing.T) {
		dir := t.TempDir()
		want := writeFont(t, dir, "Roboto-Regular.ttf")

		got, ok := FindFontFile(dir)
		if !ok {
			t.Fatal("expected a font to be found")
		}
		if got != want {
			t.Errorf("FindFontFile() = %q, want %q", got, want)
		}
	})
}

func TestBuildFontCSS(t *testing.T) {
	t.Run("embeds an existing font", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFont(t, dir, "DejaVuSans.ttf")

		css := BuildFontCSS(path)
		if !strings.Contains(css, "@font-face") {
			t.Errorf("missing @font-face rule: %q", css)
		}
		if !strings.Contains(css, "AppCyrillic") {
			t.Errorf("missing font family name: %q", css)
		}
		if !strings.Contains(css, "file://") {
			t.Errorf("missing file URI: %q", css)
		}
		if !strings.Contains(css, "DejaVuSans.ttf") {
			t.Errorf("missing font file name: %q", css)
		}
	})

	t.Run("falls back to a family stack", func(t *testing.T) {
		for _, path := range []string{"", filepath.Join(t.TempDir(), "absent.ttf")} {
			css := BuildFontCSS(path)
			if strings.Contains(css, "@font-face") {
				t.Errorf("BuildFontCSS(%q) should not embed a font: %q", path, css)
			}
			if !strings.Contains(css, "font-family") {
				t.Errorf("BuildFontCSS(%q) missing family stack: %q", path, css)
			}
		}
	})
}

func TestFileURI(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "DejaVuSans.ttf")

	uri := fileURI(path)
	if !strings.HasPrefix(uri, "file:///") {
		t.Errorf("fileURI(%q) = %q, want file:/// prefix", path, uri)
	}
	if strings.Contains(uri, "\\") {
		t.Errorf("fileURI(%q) = %q, contains backslashes", path, uri)
	}
}
