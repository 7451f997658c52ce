package container

import ffmpeg "github.com/u2takey/ffmpeg-go"

type WebM struct{}

func init() {
	Register(&WebM{})
}

func (c *WebM) GetName() string {
	return "webm"
}

func (c *WebM) GetExtensions() []string {
	return []string{".webm"}
}

func (c *WebM) GetOutputExtension() string {
	return ".webm"
}

func (c *WebM) GetVideoCodec() string {
	return "libvpx-vp9"
}

func (c *WebM) GetAudioCodec() string {
	return "libopus"
}

func (c *WebM) GetEncoderArgs() ffmpeg.KwArgs {
	return ffmpeg.KwArgs{
		"crf":    32,
		"b:v":    "0", // constant quality mode requires an explicit zero bitrate
		"row-mt": 1,
	}
}
