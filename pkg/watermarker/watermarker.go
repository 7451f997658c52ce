// Package watermarker is the public entry point for burning text watermarks
// into video files. It validates the requested watermark up front, then runs
// the decode, composite and encode pipeline for one file or a directory.
package watermarker

import (
	"github.com/ZacxDev/video-watermarker/internal/config"
	"github.com/ZacxDev/video-watermarker/internal/container"
	"github.com/ZacxDev/video-watermarker/internal/overlay"
	"github.com/ZacxDev/video-watermarker/internal/processor"
	"github.com/ZacxDev/video-watermarker/pkg/types"
)

// Default flag values, exported for callers building their own front ends.
const (
	DefaultCoveragePercent = config.DefaultCoveragePercent
	DefaultOpacityPercent  = config.DefaultOpacityPercent
)

// Options defines options for watermarking videos
type Options struct {
	InputPath       string // video file or directory to process
	OutputDir       string // destination directory, source directory when empty
	Line1           string // first watermark line
	Line2           string // optional second line
	CoveragePercent int    // widest line width as a percent of frame width, 1-100
	OpacityPercent  int    // ink strength, 0-100
	FontPath        string // TrueType/OpenType font file, system font when empty
	Verbose         bool

	// Optional observers. All of them may be nil.
	OnJobStart types.JobStartFunc
	OnProgress types.ProgressFunc
	OnWarning  types.WarnFunc
}

// WatermarkFile watermarks a single video and returns the output path.
// Sources whose audio cannot be carried over still produce a silent output;
// the condition is reported through OnWarning as a *types.AudioMuxWarning.
func WatermarkFile(opts *Options) (string, error) {
	w, err := newWatermarker(opts)
	if err != nil {
		return "", err
	}
	return w.ProcessVideo(opts.InputPath)
}

// WatermarkDirectory watermarks every supported video directly inside the
// input directory. Individual file failures are reported per entry in the
// returned slice rather than aborting the batch.
func WatermarkDirectory(opts *Options) ([]types.FileResult, error) {
	w, err := newWatermarker(opts)
	if err != nil {
		return nil, err
	}
	return w.ProcessDirectory(opts.InputPath)
}

// SupportedExtensions returns the video file extensions a directory run picks
// up, sorted alphabetically.
func SupportedExtensions() []string {
	return container.SupportedExtensions()
}

func newWatermarker(opts *Options) (*processor.Watermarker, error) {
	spec, err := overlay.NewSpec(opts.Line1, opts.Line2, opts.CoveragePercent, opts.OpacityPercent)
	if err != nil {
		return nil, err
	}

	cfg := &config.WatermarkOptions{
		InputPath:       opts.InputPath,
		OutputDir:       opts.OutputDir,
		Line1:           opts.Line1,
		Line2:           opts.Line2,
		CoveragePercent: opts.CoveragePercent,
		OpacityPercent:  opts.OpacityPercent,
		FontPath:        opts.FontPath,
		Verbose:         opts.Verbose,
	}
	cfg.ApplyEnvDefaults()

	w := processor.New(cfg, spec)
	w.OnJobStart = opts.OnJobStart
	w.OnProgress = opts.OnProgress
	w.OnWarning = opts.OnWarning
	return w, nil
}
