package processor

import (
	"github.com/ZacxDev/video-watermarker/internal/config"
	"github.com/ZacxDev/video-watermarker/internal/container"
	"github.com/ZacxDev/video-watermarker/internal/ffmpeg"
	"github.com/ZacxDev/video-watermarker/internal/overlay"
	"github.com/ZacxDev/video-watermarker/pkg/types"
)

// FrameSource yields fixed-size RGB24 frames in stream order. ReadFrame
// returns io.EOF at the clean end of the stream.
type FrameSource interface {
	ReadFrame(buf []byte) error
	Close() error
}

// FrameSink accepts fixed-size RGB24 frames in presentation order. Close
// flushes the stream and reports any finalization error.
type FrameSink interface {
	WriteFrame(buf []byte) error
	Close() error
}

// Watermarker runs the watermark pipeline for single files and directories.
// The callback fields are optional observers; leaving them nil is fine.
type Watermarker struct {
	OnJobStart types.JobStartFunc
	OnProgress types.ProgressFunc
	OnWarning  types.WarnFunc

	opts     *config.WatermarkOptions
	spec     overlay.Spec
	renderer *overlay.Renderer

	// Indirections below are swapped out by tests.
	processFile func(path string, index, total int) types.FileResult
	probe       func(path string) (*ffmpeg.Metadata, error)
	openSource  func(path string, meta *ffmpeg.Metadata) FrameSource
	openSink    func(path string, meta *ffmpeg.Metadata, cont container.Container) FrameSink
	muxAudio    func(videoPath, audioSourcePath, outPath string, cont container.Container) error
}

// New creates a watermarker for a validated spec.
func New(opts *config.WatermarkOptions, spec overlay.Spec) *Watermarker {
	proc := ffmpeg.NewProcessor(opts.Verbose)
	w := &Watermarker{
		opts: opts,
		spec: spec,
		renderer: &overlay.Renderer{
			FontPaths: fontPaths(opts),
			Verbose:   opts.Verbose,
		},
	}
	w.processFile = w.watermarkFile
	w.probe = proc.GetVideoMetadata
	w.openSource = func(path string, meta *ffmpeg.Metadata) FrameSource {
		return proc.OpenFrameSource(path, meta)
	}
	w.openSink = func(path string, meta *ffmpeg.Metadata, cont container.Container) FrameSink {
		return proc.OpenFrameSink(path, meta, cont)
	}
	w.muxAudio = proc.MuxAudio
	return w
}

func fontPaths(opts *config.WatermarkOptions) []string {
	if opts.FontPath == "" {
		return nil
	}
	return []string{opts.FontPath}
}

func (w *Watermarker) emitJobStart(info types.JobInfo) {
	if w.OnJobStart != nil {
		w.OnJobStart(info)
	}
}

func (w *Watermarker) emitProgress(p types.Progress) {
	if w.OnProgress != nil {
		w.OnProgress(p)
	}
}

func (w *Watermarker) emitWarning(err error) {
	if w.OnWarning != nil {
		w.OnWarning(err)
	}
}
