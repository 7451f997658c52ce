package watermarker

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZacxDev/video-watermarker/pkg/types"
)

func TestWatermarkFileRejectsEmptySpec(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "clip.mp4")
	if err := os.WriteFile(source, []byte("x"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	_, err := WatermarkFile(&Options{
		InputPath:       source,
		CoveragePercent: 50,
		OpacityPercent:  15,
	})
	var specErr *types.InvalidSpecError
	if !errors.As(err, &specErr) {
		t.Fatalf("error is %T (%v), want *types.InvalidSpecError", err, err)
	}

	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatalf("read dir: %v", readErr)
	}
	if len(entries) != 1 {
		t.Errorf("spec validation must not create files, dir has %d entries", len(entries))
	}
}

func TestWatermarkFileRejectsBadPercentages(t *testing.T) {
	tests := []struct {
		name     string
		coverage int
		opacity  int
	}{
		{"zero coverage", 0, 15},
		{"coverage above range", 101, 15},
		{"negative opacity", 50, -1},
		{"opacity above range", 50, 101},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := WatermarkFile(&Options{
				InputPath:       "clip.mp4",
				Line1:           "Some Mark",
				CoveragePercent: tt.coverage,
				OpacityPercent:  tt.opacity,
			})
			var specErr *types.InvalidSpecError
			if !errors.As(err, &specErr) {
				t.Fatalf("error is %T (%v), want *types.InvalidSpecError", err, err)
			}
		})
	}
}

func TestWatermarkDirectoryRejectsEmptySpec(t *testing.T) {
	_, err := WatermarkDirectory(&Options{
		InputPath:       t.TempDir(),
		CoveragePercent: 50,
		OpacityPercent:  15,
	})
	var specErr *types.InvalidSpecError
	if !errors.As(err, &specErr) {
		t.Fatalf("error is %T (%v), want *types.InvalidSpecError", err, err)
	}
}

func TestWatermarkFileMissingSource(t *testing.T) {
	_, err := WatermarkFile(&Options{
		InputPath:       filepath.Join(t.TempDir(), "absent.mp4"),
		Line1:           "Some Mark",
		CoveragePercent: 50,
		OpacityPercent:  15,
	})
	var openErr *types.SourceOpenError
	if !errors.As(err, &openErr) {
		t.Fatalf("error is %T (%v), want *types.SourceOpenError", err, err)
	}
}
