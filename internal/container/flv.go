package container

import ffmpeg "github.com/u2takey/ffmpeg-go"

type FLV struct{}

func init() {
	Register(&FLV{})
}

func (c *FLV) GetName() string {
	return "flv"
}

func (c *FLV) GetExtensions() []string {
	return []string{".flv"}
}

func (c *FLV) GetOutputExtension() string {
	return ".flv"
}

func (c *FLV) GetVideoCodec() string {
	return "libx264"
}

func (c *FLV) GetAudioCodec() string {
	return "aac"
}

func (c *FLV) GetEncoderArgs() ffmpeg.KwArgs {
	return ffmpeg.KwArgs{
		"crf":    23,
		"preset": "medium",
	}
}
