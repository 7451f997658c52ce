package container

import ffmpeg "github.com/u2takey/ffmpeg-go"

type MP4 struct{}

func init() {
	Register(&MP4{})
}

func (c *MP4) GetName() string {
	return "mp4"
}

func (c *MP4) GetExtensions() []string {
	return []string{".mp4", ".m4v", ".mov"}
}

func (c *MP4) GetOutputExtension() string {
	return ".mp4"
}

func (c *MP4) GetVideoCodec() string {
	return "libx264" // H.264 for better compatibility
}

func (c *MP4) GetAudioCodec() string {
	return "aac"
}

func (c *MP4) GetEncoderArgs() ffmpeg.KwArgs {
	return ffmpeg.KwArgs{
		"crf":      23,
		"preset":   "medium",
		"movflags": "+faststart", // moov atom up front for streaming playback
	}
}
