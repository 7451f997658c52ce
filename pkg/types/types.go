package types

// JobInfo describes a video job after probing, before any frame is processed.
// Index and Total identify the job's position in a batch (both 1 for a single
// file).
type JobInfo struct {
	Source     string
	Index      int
	Total      int
	Width      int
	Height     int
	FPS        float64
	FrameCount int64
}

// Progress reports how far frame processing has advanced. Total is zero when
// the frame count could not be determined up front, in which case Percent is
// negative.
type Progress struct {
	Frame   int64
	Total   int64
	Percent float64
}

// FileResult records the outcome of one file in a directory batch. Output is
// set on success. Warning carries a non-fatal problem such as a failed audio
// mux. Err is non-nil when the file failed outright.
type FileResult struct {
	Source  string
	Output  string
	Warning error
	Err     error
}

// JobStartFunc receives job details once probing succeeds.
type JobStartFunc func(JobInfo)

// ProgressFunc receives coarse-grained progress updates during processing.
type ProgressFunc func(Progress)

// WarnFunc receives non-fatal problems that did not stop the job.
type WarnFunc func(error)
