package processor

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ZacxDev/video-watermarker/internal/config"
	"github.com/ZacxDev/video-watermarker/internal/container"
	ffmpegWrap "github.com/ZacxDev/video-watermarker/internal/ffmpeg"
	"github.com/ZacxDev/video-watermarker/internal/namer"
	"github.com/ZacxDev/video-watermarker/internal/overlay"
	"github.com/ZacxDev/video-watermarker/pkg/types"
)

// ProcessVideo watermarks a single video and returns the output path. Mux
// warnings are delivered through OnWarning; they do not fail the job.
func (w *Watermarker) ProcessVideo(sourcePath string) (string, error) {
	res := w.processFile(sourcePath, 1, 1)
	return res.Output, res.Err
}

// watermarkFile runs the full pipeline for one source file: probe, render
// the overlay, composite every frame into a temp encode, then attach audio
// and move the result to a collision-free path.
func (w *Watermarker) watermarkFile(sourcePath string, index, total int) types.FileResult {
	res := types.FileResult{Source: sourcePath}

	meta, err := w.probe(sourcePath)
	if err != nil {
		res.Err = &types.SourceOpenError{Path: sourcePath, Err: err}
		return res
	}

	w.emitJobStart(types.JobInfo{
		Source:     sourcePath,
		Index:      index,
		Total:      total,
		Width:      meta.Width,
		Height:     meta.Height,
		FPS:        meta.FPS,
		FrameCount: meta.FrameCount,
	})

	layer, err := w.renderer.Render(meta.Width, meta.Height, w.spec)
	if err != nil {
		res.Err = err
		return res
	}

	destDir := w.opts.OutputDir
	if destDir == "" {
		destDir = filepath.Dir(sourcePath)
	}
	if err := os.MkdirAll(destDir, 0755); err != nil {
		res.Err = errors.Wrapf(err, "error creating output directory %s", destDir)
		return res
	}

	sourceExt := strings.ToLower(filepath.Ext(sourcePath))
	cont := container.ForExtension(sourceExt)
	outExt := sourceExt
	if !container.IsSupported(sourceExt) {
		outExt = cont.GetOutputExtension()
		if w.opts.Verbose {
			log.Printf("No container settings for %q, writing %s instead\n", sourceExt, outExt)
		}
	}

	tempPath := filepath.Join(destDir, config.TempFilePrefix+uuid.New().String()+outExt)

	if err := w.encodeWatermarked(sourcePath, tempPath, meta, cont, layer); err != nil {
		_ = os.Remove(tempPath)
		res.Err = err
		return res
	}

	// Resolved late so the check reflects files created earlier in a batch.
	outputPath, err := namer.NextAvailablePath(sourcePath, destDir, outExt)
	if err != nil {
		_ = os.Remove(tempPath)
		res.Err = err
		return res
	}

	warning, err := w.finalize(sourcePath, tempPath, outputPath, meta, cont)
	if err != nil {
		_ = os.Remove(tempPath)
		res.Err = err
		return res
	}
	if warning != nil {
		w.emitWarning(warning)
	}

	res.Output = outputPath
	res.Warning = warning
	return res
}

// encodeWatermarked streams the source through the overlay composite into an
// encoder writing tempPath.
func (w *Watermarker) encodeWatermarked(sourcePath, tempPath string, meta *ffmpegWrap.Metadata, cont container.Container, layer *overlay.Layer) error {
	src := w.openSource(sourcePath, meta)
	defer src.Close()
	sink := w.openSink(tempPath, meta, cont)

	frames, err := compositeFrames(sourcePath, src, sink, layer, meta.FrameCount, w.emitProgress)
	closeErr := sink.Close()
	if err != nil {
		return err
	}
	if closeErr != nil {
		return &types.FrameIOError{Path: sourcePath, Frame: frames, Err: closeErr}
	}
	if frames == 0 {
		return &types.SourceOpenError{Path: sourcePath, Err: errors.New("no readable frames")}
	}
	if meta.FrameCountExact && frames < meta.FrameCount {
		return &types.FrameIOError{
			Path:  sourcePath,
			Frame: frames,
			Err:   errors.Errorf("decoded only %d of %d frames", frames, meta.FrameCount),
		}
	}
	if w.opts.Verbose {
		log.Printf("Encoded %d watermarked frames to %s\n", frames, tempPath)
	}
	return nil
}

// compositeFrames copies frames from src to sink, blending layer onto each
// one, and reports coarse progress. It returns the number of frames fully
// processed.
func compositeFrames(path string, src FrameSource, sink FrameSink, layer *overlay.Layer, total int64, progress types.ProgressFunc) (int64, error) {
	buf := make([]byte, layer.Width*layer.Height*3)
	step := progressStep(total)

	var frames, lastReported int64
	for {
		if err := src.ReadFrame(buf); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return frames, &types.FrameIOError{Path: path, Frame: frames + 1, Err: err}
		}
		layer.Composite(buf)
		if err := sink.WriteFrame(buf); err != nil {
			return frames, &types.FrameIOError{Path: path, Frame: frames + 1, Err: err}
		}
		frames++
		if progress != nil && (frames%step == 0 || frames == total) {
			progress(progressFor(frames, total))
			lastReported = frames
		}
	}
	if progress != nil && frames > 0 && lastReported != frames {
		progress(progressFor(frames, total))
	}
	return frames, nil
}

// finalize produces the deliverable at outputPath. Sources with audio get
// their track muxed in; when that fails the silent encode is promoted as-is
// and an AudioMuxWarning is returned. The returned warning is never an error
// for the job.
func (w *Watermarker) finalize(sourcePath, tempPath, outputPath string, meta *ffmpegWrap.Metadata, cont container.Container) (warning error, err error) {
	if !meta.HasAudio {
		if w.opts.Verbose {
			log.Printf("Source has no audio track, keeping video-only output\n")
		}
		return nil, errors.Wrap(os.Rename(tempPath, outputPath), "failed to move output into place")
	}

	if muxErr := w.muxAudio(tempPath, sourcePath, outputPath, cont); muxErr != nil {
		// A failed mux may leave a partial file at the output path.
		_ = os.Remove(outputPath)
		if err := os.Rename(tempPath, outputPath); err != nil {
			return nil, errors.Wrap(err, "failed to move output into place")
		}
		return &types.AudioMuxWarning{Path: sourcePath, Err: muxErr}, nil
	}

	if err := os.Remove(tempPath); err != nil && w.opts.Verbose {
		log.Printf("Warning: failed to remove temp file %s: %v\n", tempPath, err)
	}
	return nil, nil
}

func progressFor(frame, total int64) types.Progress {
	p := types.Progress{Frame: frame, Total: total, Percent: -1}
	if total > 0 {
		p.Percent = float64(frame) / float64(total) * 100
	}
	return p
}

// progressStep returns the frame interval between progress reports.
func progressStep(total int64) int64 {
	if total <= 0 {
		return config.ProgressFallbackInterval
	}
	step := total / config.ProgressSteps
	if step < 1 {
		step = 1
	}
	return step
}
