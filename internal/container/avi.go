package container

import ffmpeg "github.com/u2takey/ffmpeg-go"

type AVI struct{}

func init() {
	Register(&AVI{})
}

func (c *AVI) GetName() string {
	return "avi"
}

func (c *AVI) GetExtensions() []string {
	return []string{".avi"}
}

func (c *AVI) GetOutputExtension() string {
	return ".avi"
}

func (c *AVI) GetVideoCodec() string {
	return "mpeg4" // AVI players rarely handle H.264 well
}

func (c *AVI) GetAudioCodec() string {
	return "libmp3lame"
}

func (c *AVI) GetEncoderArgs() ffmpeg.KwArgs {
	return ffmpeg.KwArgs{
		"q:v": 5,
	}
}
