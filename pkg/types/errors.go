package types

import "fmt"

// InvalidSpecError indicates the watermark parameters failed validation
// before any file was touched.
type InvalidSpecError struct {
	Reason string
}

func (e *InvalidSpecError) Error() string {
	return fmt.Sprintf("invalid watermark spec: %s", e.Reason)
}

// SourceOpenError indicates the source video could not be probed, contains no
// usable video stream, or yielded no readable frames.
type SourceOpenError struct {
	Path string
	Err  error
}

func (e *SourceOpenError) Error() string {
	return fmt.Sprintf("failed to open source video %s: %v", e.Path, e.Err)
}

func (e *SourceOpenError) Unwrap() error {
	return e.Err
}

// FrameIOError indicates a frame could not be decoded, composited, or
// encoded mid-stream. Frame is the 1-based index of the frame being handled
// when the failure occurred.
type FrameIOError struct {
	Path  string
	Frame int64
	Err   error
}

func (e *FrameIOError) Error() string {
	return fmt.Sprintf("frame %d of %s: %v", e.Frame, e.Path, e.Err)
}

func (e *FrameIOError) Unwrap() error {
	return e.Err
}

// AudioMuxWarning indicates the watermarked video was written but the audio
// track from the source could not be attached, so the output is silent.
type AudioMuxWarning struct {
	Path string
	Err  error
}

func (e *AudioMuxWarning) Error() string {
	return fmt.Sprintf("audio could not be muxed for %s, output is silent: %v", e.Path, e.Err)
}

func (e *AudioMuxWarning) Unwrap() error {
	return e.Err
}
