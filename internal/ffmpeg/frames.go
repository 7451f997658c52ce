package ffmpeg

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
	"golang.org/x/exp/slices"

	"github.com/ZacxDev/video-watermarker/internal/container"
)

// stderrTailLines bounds how much subprocess stderr is folded into errors.
const stderrTailLines = 4

// FrameReader streams decoded RGB24 frames out of an ffmpeg subprocess. The
// subprocess feeds an in-process pipe from a goroutine; reads observe its
// exit error once the pipe drains.
type FrameReader struct {
	pr        *io.PipeReader
	frameSize int
	done      chan error
	closeOnce sync.Once
}

// OpenFrameSource starts a decoder that emits the first video stream of path
// as packed RGB24 frames.
func (p *Processor) OpenFrameSource(path string, meta *Metadata) *FrameReader {
	errBuf := &bytes.Buffer{}
	stream := ffmpeg.Input(path).
		Output("pipe:", ffmpeg.KwArgs{
			"format":  "rawvideo",
			"pix_fmt": "rgb24",
			"map":     "0:v:0",
		}).
		GlobalArgs("-nostats")
	if p.verbose {
		log.Printf("FFmpeg decode command: %s\n", stream.String())
	}

	return newFrameReader(meta.FrameSize(), func(w io.Writer) error {
		err := stream.WithOutput(w).WithErrorOutput(p.errorWriter(errBuf)).Run()
		if err != nil {
			return errors.Wrapf(err, "ffmpeg decoder: %s", lastLines(errBuf.String(), stderrTailLines))
		}
		return nil
	})
}

// newFrameReader runs the decode function in a goroutine and exposes its
// output as frame-sized reads. The run error, if any, is surfaced by the
// first ReadFrame past the buffered data.
func newFrameReader(frameSize int, run func(io.Writer) error) *FrameReader {
	pr, pw := io.Pipe()
	done := make(chan error, 1)
	go func() {
		err := run(pw)
		pw.CloseWithError(err) // nil turns subsequent reads into io.EOF
		done <- err
	}()
	return &FrameReader{pr: pr, frameSize: frameSize, done: done}
}

// ReadFrame fills buf with the next frame. It returns io.EOF at the clean end
// of the stream, and the decoder's exit error if it died mid-stream.
func (r *FrameReader) ReadFrame(buf []byte) error {
	if len(buf) != r.frameSize {
		return errors.Errorf("frame buffer is %d bytes, want %d", len(buf), r.frameSize)
	}
	_, err := io.ReadFull(r.pr, buf)
	if err == io.ErrUnexpectedEOF {
		return errors.Wrap(err, "decoder emitted a partial frame")
	}
	return err
}

// Close tears down the pipe and waits for the decoder goroutine to exit. Safe
// to call at any point and more than once.
func (r *FrameReader) Close() error {
	r.closeOnce.Do(func() {
		r.pr.CloseWithError(errors.New("frame reader closed"))
		<-r.done
	})
	return nil
}

// FrameWriter streams packed RGB24 frames into an ffmpeg encoder subprocess.
type FrameWriter struct {
	pw        *io.PipeWriter
	done      chan error
	closeOnce sync.Once
	closeErr  error
}

// OpenFrameSink starts an encoder that reads packed RGB24 frames at the
// source frame rate and writes outPath with the container's codec settings.
func (p *Processor) OpenFrameSink(outPath string, meta *Metadata, cont container.Container) *FrameWriter {
	outputKwargs := ffmpeg.KwArgs{
		"c:v":     cont.GetVideoCodec(),
		"pix_fmt": "yuv420p",
		"threads": GetOptimalThreadCount(),
	}
	for k, v := range cont.GetEncoderArgs() {
		outputKwargs[k] = v
	}

	errBuf := &bytes.Buffer{}
	stream := ffmpeg.Input("pipe:", ffmpeg.KwArgs{
		"format":    "rawvideo",
		"pix_fmt":   "rgb24",
		"s":         fmt.Sprintf("%dx%d", meta.Width, meta.Height),
		"framerate": meta.RateString,
	}).
		Output(outPath, outputKwargs).
		OverWriteOutput().
		GlobalArgs("-nostats")
	if p.verbose {
		log.Printf("FFmpeg encode command: %s\n", stream.String())
	}

	return newFrameWriter(func(rd io.Reader) error {
		err := stream.WithInput(rd).WithErrorOutput(p.errorWriter(errBuf)).Run()
		if err != nil {
			return errors.Wrapf(err, "ffmpeg encoder: %s", lastLines(errBuf.String(), stderrTailLines))
		}
		return nil
	})
}

// newFrameWriter runs the encode function in a goroutine fed by frame writes.
// Once the encoder exits, pending and subsequent writes fail with its error.
func newFrameWriter(run func(io.Reader) error) *FrameWriter {
	pr, pw := io.Pipe()
	done := make(chan error, 1)
	go func() {
		err := run(pr)
		pr.CloseWithError(err)
		done <- err
	}()
	return &FrameWriter{pw: pw, done: done}
}

// WriteFrame sends one frame to the encoder.
func (w *FrameWriter) WriteFrame(buf []byte) error {
	_, err := w.pw.Write(buf)
	return err
}

// Close signals end of stream and waits for the encoder to finalize the
// output, returning its exit error. Safe to call more than once.
func (w *FrameWriter) Close() error {
	w.closeOnce.Do(func() {
		w.pw.Close()
		w.closeErr = <-w.done
	})
	return w.closeErr
}

// MuxAudio combines the video stream of videoPath with the audio stream of
// audioSourcePath into outPath. Stream copy is tried first; when the source
// audio codec is not valid for the container, it is re-encoded with the
// container's audio codec.
func (p *Processor) MuxAudio(videoPath, audioSourcePath, outPath string, cont container.Container) error {
	copyErr := p.runMux(videoPath, audioSourcePath, outPath, ffmpeg.KwArgs{
		"c:v": "copy",
		"c:a": "copy",
	})
	if copyErr == nil {
		return nil
	}
	if p.verbose {
		log.Printf("Audio stream copy failed, re-encoding with %s: %v\n", cont.GetAudioCodec(), copyErr)
	}

	err := p.runMux(videoPath, audioSourcePath, outPath, ffmpeg.KwArgs{
		"c:v": "copy",
		"c:a": cont.GetAudioCodec(),
	})
	if err != nil {
		return errors.Wrap(err, "audio mux failed")
	}
	return nil
}

func (p *Processor) runMux(videoPath, audioSourcePath, outPath string, kwargs ffmpeg.KwArgs) error {
	video := ffmpeg.Input(videoPath).Video()
	audio := ffmpeg.Input(audioSourcePath).Audio()

	errBuf := &bytes.Buffer{}
	stream := ffmpeg.Output([]*ffmpeg.Stream{video, audio}, outPath, kwargs).
		OverWriteOutput().
		GlobalArgs("-nostats")
	if p.verbose {
		log.Printf("FFmpeg mux command: %s\n", stream.String())
	}

	if err := stream.WithErrorOutput(p.errorWriter(errBuf)).Run(); err != nil {
		return errors.Wrapf(err, "ffmpeg mux: %s", lastLines(errBuf.String(), stderrTailLines))
	}
	return nil
}

// errorWriter returns the stderr sink for a subprocess: the capture buffer,
// teed to the terminal in verbose mode.
func (p *Processor) errorWriter(buf *bytes.Buffer) io.Writer {
	if p.verbose {
		return io.MultiWriter(os.Stderr, buf)
	}
	return buf
}

// lastLines collapses the trailing n non-empty lines of s into one line, for
// folding subprocess stderr into error messages.
func lastLines(s string, n int) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r", "\n"), "\n")
	kept := make([]string, 0, n)
	for i := len(lines) - 1; i >= 0 && len(kept) < n; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		kept = append(kept, line)
	}
	if len(kept) == 0 {
		return "(no ffmpeg output)"
	}
	slices.Reverse(kept)
	return strings.Join(kept, "; ")
}
