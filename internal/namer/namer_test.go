package namer

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("touch %s: %v", path, err)
	}
}

func TestNextAvailablePathFresh(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "holiday.mp4")

	got, err := NextAvailablePath(source, "", "")
	if err != nil {
		t.Fatalf("NextAvailablePath: %v", err)
	}
	want := filepath.Join(dir, "holiday_watermarked.mp4")
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestNextAvailablePathCollisions(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "holiday.mp4")
	touch(t, source)

	steps := []string{
		"holiday_watermarked.mp4",
		"holiday_watermarked_copy.mp4",
		"holiday_watermarked_copy2.mp4",
		"holiday_watermarked_copy3.mp4",
	}
	for i, want := range steps {
		got, err := NextAvailablePath(source, "", "")
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if got != filepath.Join(dir, want) {
			t.Fatalf("step %d: got %s, want %s", i, got, filepath.Join(dir, want))
		}
		touch(t, got)
	}
}

func TestNextAvailablePathIdempotentWithoutWrites(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "clip.mkv")

	first, err := NextAvailablePath(source, "", "")
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := NextAvailablePath(source, "", "")
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if first != second {
		t.Errorf("paths differ without intervening writes: %s vs %s", first, second)
	}
}

func TestNextAvailablePathDestDir(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	source := filepath.Join(srcDir, "clip.webm")

	got, err := NextAvailablePath(source, outDir, "")
	if err != nil {
		t.Fatalf("NextAvailablePath: %v", err)
	}
	want := filepath.Join(outDir, "clip_watermarked.webm")
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestNextAvailablePathExtensionOverride(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "capture.xyz")

	got, err := NextAvailablePath(source, "", ".mp4")
	if err != nil {
		t.Fatalf("NextAvailablePath: %v", err)
	}
	want := filepath.Join(dir, "capture_watermarked.mp4")
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestNextAvailablePathMixedExtensionsDoNotCollide(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "clip.mp4")
	touch(t, filepath.Join(dir, "clip_watermarked.mkv"))

	got, err := NextAvailablePath(source, "", "")
	if err != nil {
		t.Fatalf("NextAvailablePath: %v", err)
	}
	want := filepath.Join(dir, "clip_watermarked.mp4")
	if got != want {
		t.Errorf("existing .mkv should not force a copy suffix: got %s, want %s", got, want)
	}
}
