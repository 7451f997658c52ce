package ffmpeg

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"runtime"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// defaultFrameRate is assumed when the container reports no usable rate.
const defaultFrameRate = 30.0

// Metadata describes the source video properties the frame pipeline needs.
type Metadata struct {
	Width      int
	Height     int
	Duration   float64
	FPS        float64
	RateString string // frame rate as ffprobe reported it, e.g. "30000/1001"
	FrameCount int64  // zero when unknown
	// FrameCountExact is true when FrameCount came from container metadata
	// rather than a duration*fps estimate.
	FrameCountExact bool
	HasAudio        bool
	Codec           string
}

// FrameSize returns the byte length of one packed RGB24 frame.
func (m *Metadata) FrameSize() int {
	return m.Width * m.Height * 3
}

// Processor wraps FFmpeg functionality
type Processor struct {
	verbose bool
}

// NewProcessor creates a new FFmpeg processor
func NewProcessor(verbose bool) *Processor {
	return &Processor{
		verbose: verbose,
	}
}

// GetVideoMetadata retrieves metadata about a video file
func (p *Processor) GetVideoMetadata(inputPath string) (*Metadata, error) {
	probe, err := ffmpeg.Probe(inputPath)
	if err != nil {
		return nil, fmt.Errorf("error probing video: %v", err)
	}

	meta, err := parseProbeData([]byte(probe))
	if err != nil {
		return nil, err
	}

	if p.verbose {
		log.Printf("Probed %s: %dx%d, %.3f fps, %d frames (exact=%v), audio=%v\n",
			inputPath, meta.Width, meta.Height, meta.FPS, meta.FrameCount, meta.FrameCountExact, meta.HasAudio)
	}
	return meta, nil
}

// parseProbeData extracts Metadata from raw ffprobe JSON output.
func parseProbeData(probe []byte) (*Metadata, error) {
	var data map[string]interface{}
	if err := json.Unmarshal(probe, &data); err != nil {
		return nil, errors.WithStack(err)
	}

	streams, ok := data["streams"].([]interface{})
	if !ok || len(streams) == 0 {
		return nil, fmt.Errorf("no streams found in video")
	}

	var videoStream map[string]interface{}
	hasAudio := false
	for _, stream := range streams {
		s, ok := stream.(map[string]interface{})
		if !ok {
			continue
		}
		switch s["codec_type"] {
		case "video":
			if videoStream == nil {
				videoStream = s
			}
		case "audio":
			hasAudio = true
		}
	}
	if videoStream == nil {
		return nil, fmt.Errorf("no video stream found")
	}

	width, _ := videoStream["width"].(float64)
	height, _ := videoStream["height"].(float64)
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("video stream has no usable dimensions")
	}

	fps, rateString := parseFrameRate(videoStream)

	var duration float64

	// First try video stream duration
	if durationStr, ok := videoStream["duration"].(string); ok {
		if d, err := strconv.ParseFloat(strings.TrimSpace(durationStr), 64); err == nil {
			duration = d
		}
	}

	// If stream duration is not available, try format duration
	if duration == 0 {
		if format, ok := data["format"].(map[string]interface{}); ok {
			if durationStr, ok := format["duration"].(string); ok {
				if d, err := strconv.ParseFloat(strings.TrimSpace(durationStr), 64); err == nil {
					duration = d
				}
			}
		}
	}

	var frameCount int64
	frameCountExact := false
	if nbFrames, ok := videoStream["nb_frames"].(string); ok {
		if frames, err := strconv.ParseInt(strings.TrimSpace(nbFrames), 10, 64); err == nil && frames > 0 {
			frameCount = frames
			frameCountExact = true
		}
	}

	// Containers without a stored frame count get an estimate from duration
	// and rate, good enough for progress reporting
	if frameCount == 0 && duration > 0 {
		frameCount = int64(math.Round(duration * fps))
	}

	codec, _ := videoStream["codec_name"].(string)

	return &Metadata{
		Width:           int(width),
		Height:          int(height),
		Duration:        duration,
		FPS:             fps,
		RateString:      rateString,
		FrameCount:      frameCount,
		FrameCountExact: frameCountExact,
		HasAudio:        hasAudio,
		Codec:           codec,
	}, nil
}

// parseFrameRate extracts the video frame rate, preferring r_frame_rate over
// avg_frame_rate and falling back to 30 fps when neither is usable. The
// second return value is the rate in ffmpeg argument form.
func parseFrameRate(videoStream map[string]interface{}) (float64, string) {
	for _, key := range []string{"r_frame_rate", "avg_frame_rate"} {
		rateStr, ok := videoStream[key].(string)
		if !ok {
			continue
		}
		rateStr = strings.TrimSpace(rateStr)
		if nums := strings.Split(rateStr, "/"); len(nums) == 2 {
			num, err1 := strconv.ParseFloat(nums[0], 64)
			den, err2 := strconv.ParseFloat(nums[1], 64)
			if err1 == nil && err2 == nil && den != 0 && num > 0 {
				return num / den, rateStr
			}
			continue
		}
		if rate, err := strconv.ParseFloat(rateStr, 64); err == nil && rate > 0 {
			return rate, rateStr
		}
	}
	return defaultFrameRate, "30"
}

func GetOptimalThreadCount() int {
	cpuCount := runtime.NumCPU()
	// Use 75% of available cores to prevent overload
	return int(math.Max(1, float64(cpuCount)*0.75))
}
