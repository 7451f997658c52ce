package container

import (
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
	"golang.org/x/exp/slices"
)

// Container defines the interface for container-specific encode settings
type Container interface {
	// GetName returns the container family name
	GetName() string

	// GetExtensions returns the file extensions this container handles,
	// lowercase with a leading dot
	GetExtensions() []string

	// GetOutputExtension returns the canonical extension for output files
	GetOutputExtension() string

	// GetVideoCodec returns the video encoder for watermarked output
	GetVideoCodec() string

	// GetAudioCodec returns the audio encoder used when stream copy fails
	GetAudioCodec() string

	// GetEncoderArgs returns extra ffmpeg output arguments for the encoder
	GetEncoderArgs() ffmpeg.KwArgs
}

var containers = make(map[string]Container)

// Register adds a container to the registry, keyed by each of its extensions.
func Register(c Container) {
	for _, ext := range c.GetExtensions() {
		containers[ext] = c
	}
}

// ForExtension returns the container responsible for ext, case-insensitively.
// Unknown extensions fall back to MP4, the most portable target.
func ForExtension(ext string) Container {
	if c, ok := containers[strings.ToLower(ext)]; ok {
		return c
	}
	return containers[".mp4"]
}

// IsSupported reports whether ext maps to a registered container.
func IsSupported(ext string) bool {
	_, ok := containers[strings.ToLower(ext)]
	return ok
}

// SupportedExtensions returns all registered extensions in sorted order.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(containers))
	for ext := range containers {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}
