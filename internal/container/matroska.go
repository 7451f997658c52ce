package container

import ffmpeg "github.com/u2takey/ffmpeg-go"

type Matroska struct{}

func init() {
	Register(&Matroska{})
}

func (c *Matroska) GetName() string {
	return "matroska"
}

func (c *Matroska) GetExtensions() []string {
	return []string{".mkv"}
}

func (c *Matroska) GetOutputExtension() string {
	return ".mkv"
}

func (c *Matroska) GetVideoCodec() string {
	return "libx264"
}

func (c *Matroska) GetAudioCodec() string {
	return "aac"
}

func (c *Matroska) GetEncoderArgs() ffmpeg.KwArgs {
	return ffmpeg.KwArgs{
		"crf":    23,
		"preset": "medium",
	}
}
