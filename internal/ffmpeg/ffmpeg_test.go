package ffmpeg

import (
	"math"
	"strings"
	"testing"
)

const sampleProbeJSON = `{
    "streams": [
        {
            "index": 0,
            "codec_name": "h264",
            "codec_long_name": "H.264 / AVC / MPEG-4 AVC / MPEG-4 part 10",
            "profile": "High",
            "codec_type": "video",
            "codec_tag_string": "avc1",
            "width": 1920,
            "height": 1080,
            "coded_width": 1920,
            "coded_height": 1080,
            "pix_fmt": "yuv420p",
            "r_frame_rate": "30/1",
            "avg_frame_rate": "30/1",
            "time_base": "1/15360",
            "duration_ts": 460800,
            "duration": "30.000000",
            "bit_rate": "4937429",
            "nb_frames": "900"
        },
        {
            "index": 1,
            "codec_name": "aac",
            "codec_type": "audio",
            "sample_rate": "44100",
            "channels": 2,
            "duration": "30.000000",
            "bit_rate": "127999"
        }
    ],
    "format": {
        "filename": "sample.mp4",
        "nb_streams": 2,
        "format_name": "mov,mp4,m4a,3gp,3g2,mj2",
        "duration": "30.023220",
        "size": "19087909",
        "bit_rate": "5086333",
        "probe_score": 100
    }
}`

func TestParseProbeData(t *testing.T) {
	meta, err := parseProbeData([]byte(sampleProbeJSON))
	if err != nil {
		t.Fatalf("parseProbeData: %v", err)
	}
	if meta.Width != 1920 || meta.Height != 1080 {
		t.Errorf("dimensions = %dx%d, want 1920x1080", meta.Width, meta.Height)
	}
	if meta.FPS != 30 {
		t.Errorf("FPS = %v, want 30", meta.FPS)
	}
	if meta.RateString != "30/1" {
		t.Errorf("RateString = %q, want 30/1", meta.RateString)
	}
	if meta.FrameCount != 900 || !meta.FrameCountExact {
		t.Errorf("FrameCount = %d (exact=%v), want 900 exact", meta.FrameCount, meta.FrameCountExact)
	}
	if !meta.HasAudio {
		t.Error("HasAudio = false, want true")
	}
	if meta.Codec != "h264" {
		t.Errorf("Codec = %q, want h264", meta.Codec)
	}
	if meta.Duration != 30 {
		t.Errorf("Duration = %v, want 30", meta.Duration)
	}
	if meta.FrameSize() != 1920*1080*3 {
		t.Errorf("FrameSize() = %d, want %d", meta.FrameSize(), 1920*1080*3)
	}
}

func TestParseProbeDataNoAudio(t *testing.T) {
	probe := `{
        "streams": [
            {"codec_type": "video", "codec_name": "vp9", "width": 1280, "height": 720,
             "r_frame_rate": "25/1", "nb_frames": "250", "duration": "10.000000"}
        ],
        "format": {"format_name": "matroska,webm", "duration": "10.000000"}
    }`
	meta, err := parseProbeData([]byte(probe))
	if err != nil {
		t.Fatalf("parseProbeData: %v", err)
	}
	if meta.HasAudio {
		t.Error("HasAudio = true, want false")
	}
}

func TestParseProbeDataEstimatesFrameCount(t *testing.T) {
	// Matroska-style input: no per-stream duration or frame count, NTSC rate.
	probe := `{
        "streams": [
            {"codec_type": "video", "codec_name": "h264", "width": 1920, "height": 1080,
             "r_frame_rate": "30000/1001"}
        ],
        "format": {"format_name": "matroska,webm", "duration": "10.000000"}
    }`
	meta, err := parseProbeData([]byte(probe))
	if err != nil {
		t.Fatalf("parseProbeData: %v", err)
	}
	if math.Abs(meta.FPS-29.97) > 0.01 {
		t.Errorf("FPS = %v, want about 29.97", meta.FPS)
	}
	if meta.RateString != "30000/1001" {
		t.Errorf("RateString = %q, want 30000/1001", meta.RateString)
	}
	if meta.FrameCount != 300 {
		t.Errorf("FrameCount = %d, want 300 (duration * fps)", meta.FrameCount)
	}
	if meta.FrameCountExact {
		t.Error("FrameCountExact = true for an estimated count")
	}
}

func TestParseProbeDataUnknownFrameCount(t *testing.T) {
	probe := `{
        "streams": [
            {"codec_type": "video", "codec_name": "h264", "width": 640, "height": 360,
             "r_frame_rate": "25/1"}
        ],
        "format": {"format_name": "mpegts"}
    }`
	meta, err := parseProbeData([]byte(probe))
	if err != nil {
		t.Fatalf("parseProbeData: %v", err)
	}
	if meta.FrameCount != 0 || meta.FrameCountExact {
		t.Errorf("FrameCount = %d (exact=%v), want 0 unknown", meta.FrameCount, meta.FrameCountExact)
	}
}

func TestParseProbeDataNoVideoStream(t *testing.T) {
	probe := `{
        "streams": [
            {"codec_type": "audio", "codec_name": "mp3"}
        ],
        "format": {"format_name": "mp3", "duration": "180.0"}
    }`
	_, err := parseProbeData([]byte(probe))
	if err == nil {
		t.Fatal("parseProbeData succeeded without a video stream")
	}
	if !strings.Contains(err.Error(), "no video stream") {
		t.Errorf("error = %q, want mention of missing video stream", err)
	}
}

func TestParseProbeDataRejectsMissingDimensions(t *testing.T) {
	probe := `{
        "streams": [
            {"codec_type": "video", "codec_name": "h264", "r_frame_rate": "25/1"}
        ],
        "format": {}
    }`
	if _, err := parseProbeData([]byte(probe)); err == nil {
		t.Fatal("parseProbeData succeeded without dimensions")
	}
}

func TestParseProbeDataRejectsGarbage(t *testing.T) {
	if _, err := parseProbeData([]byte("not json")); err == nil {
		t.Fatal("parseProbeData succeeded on garbage input")
	}
	if _, err := parseProbeData([]byte(`{"streams": []}`)); err == nil {
		t.Fatal("parseProbeData succeeded with no streams")
	}
}

func TestParseFrameRate(t *testing.T) {
	tests := []struct {
		name     string
		stream   map[string]interface{}
		wantFPS  float64
		wantRate string
	}{
		{"integer rational", map[string]interface{}{"r_frame_rate": "25/1"}, 25, "25/1"},
		{"ntsc rational", map[string]interface{}{"r_frame_rate": "30000/1001"}, 29.97, "30000/1001"},
		{"zero rational falls through", map[string]interface{}{"r_frame_rate": "0/0", "avg_frame_rate": "24/1"}, 24, "24/1"},
		{"plain number", map[string]interface{}{"r_frame_rate": "24"}, 24, "24"},
		{"garbage", map[string]interface{}{"r_frame_rate": "abc"}, 30, "30"},
		{"missing", map[string]interface{}{}, 30, "30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fps, rate := parseFrameRate(tt.stream)
			if math.Abs(fps-tt.wantFPS) > 0.01 {
				t.Errorf("fps = %v, want %v", fps, tt.wantFPS)
			}
			if rate != tt.wantRate {
				t.Errorf("rate = %q, want %q", rate, tt.wantRate)
			}
		})
	}
}

func TestGetOptimalThreadCount(t *testing.T) {
	if got := GetOptimalThreadCount(); got < 1 {
		t.Errorf("GetOptimalThreadCount() = %d, want at least 1", got)
	}
}
