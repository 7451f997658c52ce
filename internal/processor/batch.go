package processor

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/ZacxDev/video-watermarker/internal/container"
	"github.com/ZacxDev/video-watermarker/pkg/types"
)

// ProcessDirectory watermarks every supported video directly inside dir in
// sorted order. One file's failure never stops the remaining files; the
// returned slice carries each file's individual outcome. An error is returned
// only when the directory itself is unusable or holds no videos.
func (w *Watermarker) ProcessDirectory(dir string) ([]types.FileResult, error) {
	files, err := listVideos(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no video files found in directory: %s", dir)
	}

	if w.opts.Verbose {
		log.Printf("Found %d video files in %s\n", len(files), dir)
	}

	results := make([]types.FileResult, 0, len(files))
	for i, file := range files {
		results = append(results, w.processFile(file, i+1, len(files)))
	}
	return results, nil
}

// listVideos returns the supported video files directly inside dir, sorted by
// name so batch order is deterministic.
func listVideos(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read directory %s", dir)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if container.IsSupported(ext) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	slices.Sort(files)
	return files, nil
}
