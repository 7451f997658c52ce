package config

import "os"

// WatermarkOptions defines options for watermarking videos
type WatermarkOptions struct {
	InputPath       string
	OutputDir       string
	Line1           string
	Line2           string
	CoveragePercent int
	OpacityPercent  int
	FontPath        string
	Verbose         bool
}

const (
	// Flag defaults
	DefaultCoveragePercent = 50 // widest line spans half the frame width
	DefaultOpacityPercent  = 15 // faint but readable on most footage

	// Environment variables consulted for unset options
	EnvOutputDir = "WATERMARKER_OUTPUT_DIR"
	EnvFontPath  = "WATERMARKER_FONT"

	// Progress reporting cadence
	ProgressSteps            = 10  // one update per 10% when the total is known
	ProgressFallbackInterval = 300 // frames between updates when it is not

	// Temporary encode artifact prefix
	TempFilePrefix = ".wmtmp-"
)

// ApplyEnvDefaults fills unset fields from the environment. Explicit flag
// values always win; main loads .env files before this runs so both sources
// land here.
func (o *WatermarkOptions) ApplyEnvDefaults() {
	if o.OutputDir == "" {
		o.OutputDir = os.Getenv(EnvOutputDir)
	}
	if o.FontPath == "" {
		o.FontPath = os.Getenv(EnvFontPath)
	}
}
