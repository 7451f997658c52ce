package namer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Suffix is appended to the source file's base name for watermarked output.
const Suffix = "_watermarked"

// NextAvailablePath returns an output path for the watermarked rendition of
// sourcePath that does not collide with an existing file. The first candidate
// is <base>_watermarked<ext>; on collision it tries <base>_watermarked_copy<ext>,
// then _copy2, _copy3 and so on.
//
// The file is placed in destDir, or next to the source when destDir is empty.
// outExt overrides the output extension; when empty the source extension is
// kept. The result is only guaranteed free at the moment of the check, so
// callers should resolve it immediately before writing.
func NextAvailablePath(sourcePath, destDir, outExt string) (string, error) {
	dir := destDir
	if dir == "" {
		dir = filepath.Dir(sourcePath)
	}
	ext := outExt
	if ext == "" {
		ext = filepath.Ext(sourcePath)
	}
	base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))

	candidate := filepath.Join(dir, base+Suffix+ext)
	free, err := pathFree(candidate)
	if err != nil {
		return "", err
	}
	if free {
		return candidate, nil
	}

	for n := 1; ; n++ {
		name := base + Suffix + "_copy"
		if n > 1 {
			name = fmt.Sprintf("%s%d", name, n)
		}
		candidate = filepath.Join(dir, name+ext)
		free, err := pathFree(candidate)
		if err != nil {
			return "", err
		}
		if free {
			return candidate, nil
		}
	}
}

func pathFree(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return false, nil
	}
	if os.IsNotExist(err) {
		return true, nil
	}
	return false, errors.Wrapf(err, "failed to check output path %s", path)
}
