package overlay

import (
	"image"
	"log"

	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

const fontDPI = 72

// Layer is a rendered watermark mask sized to one frame. Alpha holds one byte
// per pixel in row-major order; 255 means the pixel is fully replaced by the
// watermark color (white).
type Layer struct {
	Width  int
	Height int
	Alpha  []uint8
}

// Composite blends the layer onto a packed RGB24 frame in place, applying
// standard "over" blending with white as the source color. The frame must be
// Width*Height*3 bytes.
func (l *Layer) Composite(frame []byte) {
	for i, a := range l.Alpha {
		if a == 0 {
			continue
		}
		j := i * 3
		if a == 255 {
			frame[j] = 255
			frame[j+1] = 255
			frame[j+2] = 255
			continue
		}
		inv := uint32(255 - a)
		frame[j] = a + uint8((uint32(frame[j])*inv+127)/255)
		frame[j+1] = a + uint8((uint32(frame[j+1])*inv+127)/255)
		frame[j+2] = a + uint8((uint32(frame[j+2])*inv+127)/255)
	}
}

// Renderer builds watermark layers. FontPaths lists font files tried before
// the system candidates; the embedded Go Regular face is the final fallback,
// so rendering never fails for lack of a font.
type Renderer struct {
	FontPaths []string
	Verbose   bool
}

// Render produces a layer of the given frame size for the spec. The layer is
// pure derived data: deterministic for identical inputs and font availability,
// and safe to reuse across every frame of a video.
func (r *Renderer) Render(width, height int, spec Spec) (*Layer, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("invalid frame dimensions %dx%d", width, height)
	}

	candidates := make([]string, 0, len(r.FontPaths)+len(systemFontCandidates))
	candidates = append(candidates, r.FontPaths...)
	candidates = append(candidates, systemFontCandidates...)
	fnt, fontName, err := loadFont(candidates)
	if err != nil {
		return nil, err
	}
	if r.Verbose {
		log.Printf("Watermark font: %s\n", fontName)
	}

	lines := spec.Lines()
	targetWidth := width * spec.CoveragePercent / 100
	if targetWidth < 1 {
		targetWidth = 1
	}
	size, err := fitFontSize(fnt, lines, targetWidth, height)
	if err != nil {
		return nil, err
	}
	if r.Verbose {
		log.Printf("Watermark font size %dpx for %d%% coverage of %dpx\n", size, spec.CoveragePercent, width)
	}

	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     fontDPI,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build font face at size %d", size)
	}

	gap := 0
	if len(lines) == 2 {
		gap = size / 4
	}
	dst := drawLines(face, lines, width, height, gap)

	alpha := make([]uint8, width*height)
	for i := range alpha {
		glyph := int(dst.Pix[i*4+3])
		alpha[i] = uint8((glyph*spec.OpacityPercent + 50) / 100)
	}
	return &Layer{Width: width, Height: height, Alpha: alpha}, nil
}

// fitFontSize finds the largest integer size in [1, maxSize] whose widest
// line stays within targetWidth. Ink width is monotonic in size, so a binary
// search converges on the boundary.
func fitFontSize(fnt *sfnt.Font, lines []string, targetWidth, maxSize int) (int, error) {
	lo, hi := 1, maxSize
	for lo < hi {
		mid := (lo + hi + 1) / 2
		w, err := widestLine(fnt, mid, lines)
		if err != nil {
			return 0, err
		}
		if w <= targetWidth {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo, nil
}

// widestLine measures the widest ink bounding box among lines at the given
// font size.
func widestLine(fnt *sfnt.Font, size int, lines []string) (int, error) {
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     fontDPI,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return 0, errors.Wrapf(err, "failed to build font face at size %d", size)
	}
	widest := 0
	for _, line := range lines {
		bounds, _ := font.BoundString(face, line)
		if w := (bounds.Max.X - bounds.Min.X).Ceil(); w > widest {
			widest = w
		}
	}
	return widest, nil
}

// drawLines renders the lines in white onto a transparent RGBA image, with
// each line's ink box centered horizontally and the whole block centered
// vertically. The alpha channel of the result is the anti-aliased glyph
// coverage.
func drawLines(face font.Face, lines []string, width, height, gap int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	drawer := &font.Drawer{Dst: dst, Src: image.White, Face: face}

	bounds := make([]fixed.Rectangle26_6, len(lines))
	heights := make([]int, len(lines))
	blockHeight := gap * (len(lines) - 1)
	for i, line := range lines {
		b, _ := font.BoundString(face, line)
		bounds[i] = b
		heights[i] = (b.Max.Y - b.Min.Y).Ceil()
		blockHeight += heights[i]
	}

	top := (height - blockHeight) / 2
	for i, line := range lines {
		inkWidth := (bounds[i].Max.X - bounds[i].Min.X).Ceil()
		left := (width - inkWidth) / 2
		drawer.Dot = fixed.Point26_6{
			X: fixed.I(left) - bounds[i].Min.X,
			Y: fixed.I(top) - bounds[i].Min.Y,
		}
		drawer.DrawString(line)
		top += heights[i] + gap
	}
	return dst
}
