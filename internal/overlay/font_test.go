package overlay

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestLoadFontFallsBackToBuiltin(t *testing.T) {
	fnt, name, err := loadFont([]string{"/nonexistent/missing.ttf", ""})
	if err != nil {
		t.Fatalf("loadFont: %v", err)
	}
	if fnt == nil {
		t.Fatal("loadFont returned nil font")
	}
	if name != builtinFontName {
		t.Errorf("name = %q, want %q", name, builtinFontName)
	}
}

func TestLoadFontPrefersFirstReadableCandidate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "regular.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o644); err != nil {
		t.Fatalf("write font: %v", err)
	}

	fnt, name, err := loadFont([]string{"/nonexistent/missing.ttf", path})
	if err != nil {
		t.Fatalf("loadFont: %v", err)
	}
	if fnt == nil {
		t.Fatal("loadFont returned nil font")
	}
	if name != path {
		t.Errorf("name = %q, want %q", name, path)
	}
}

func TestLoadFontSkipsUnparseableFile(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.ttf")
	if err := os.WriteFile(garbage, []byte("not a font"), 0o644); err != nil {
		t.Fatalf("write garbage: %v", err)
	}
	valid := filepath.Join(dir, "valid.ttf")
	if err := os.WriteFile(valid, goregular.TTF, 0o644); err != nil {
		t.Fatalf("write font: %v", err)
	}

	_, name, err := loadFont([]string{garbage, valid})
	if err != nil {
		t.Fatalf("loadFont: %v", err)
	}
	if name != valid {
		t.Errorf("name = %q, want %q", name, valid)
	}
}

func TestParseFontSingleFace(t *testing.T) {
	fnt, err := parseFont(goregular.TTF)
	if err != nil {
		t.Fatalf("parseFont: %v", err)
	}
	if fnt == nil {
		t.Fatal("parseFont returned nil font")
	}
}
