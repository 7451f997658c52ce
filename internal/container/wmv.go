package container

import ffmpeg "github.com/u2takey/ffmpeg-go"

type WMV struct{}

func init() {
	Register(&WMV{})
}

func (c *WMV) GetName() string {
	return "wmv"
}

func (c *WMV) GetExtensions() []string {
	return []string{".wmv"}
}

func (c *WMV) GetOutputExtension() string {
	return ".wmv"
}

func (c *WMV) GetVideoCodec() string {
	return "wmv2"
}

func (c *WMV) GetAudioCodec() string {
	return "wmav2"
}

func (c *WMV) GetEncoderArgs() ffmpeg.KwArgs {
	return ffmpeg.KwArgs{
		"q:v": 5,
	}
}
