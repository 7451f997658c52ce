package overlay

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// builtinFontName identifies the embedded fallback face in logs.
const builtinFontName = "go-regular (embedded)"

// systemFontCandidates lists common font locations probed in order when no
// explicit font path is configured. macOS first, then Linux, then Windows.
var systemFontCandidates = []string{
	"/System/Library/Fonts/Arial.ttf",
	"/Library/Fonts/Arial.ttf",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	"/System/Library/Fonts/Helvetica.ttc",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/freefont/FreeSans.ttf",
	"C:\\Windows\\Fonts\\arial.ttf",
	"C:\\Windows\\Fonts\\segoeui.ttf",
}

// loadFont returns the first candidate path that parses as a usable font,
// falling back to the embedded Go Regular face when none can be read. The
// returned name is the path that was chosen.
func loadFont(candidates []string) (*sfnt.Font, string, error) {
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		fnt, err := parseFont(data)
		if err != nil {
			continue
		}
		return fnt, path, nil
	}
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to parse embedded fallback font")
	}
	return fnt, builtinFontName, nil
}

// parseFont accepts both single fonts (.ttf, .otf) and collections (.ttc) by
// parsing as a collection and taking the first face.
func parseFont(data []byte) (*sfnt.Font, error) {
	coll, err := opentype.ParseCollection(data)
	if err != nil {
		return nil, err
	}
	return coll.Font(0)
}
