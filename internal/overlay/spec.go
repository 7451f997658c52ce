package overlay

import (
	"fmt"
	"strings"

	"github.com/ZacxDev/video-watermarker/pkg/types"
)

// Spec holds the watermark parameters for one run. Construct it with NewSpec;
// a zero or hand-built Spec is re-validated by Render before any drawing.
type Spec struct {
	Line1           string
	Line2           string
	CoveragePercent int
	OpacityPercent  int
}

// NewSpec trims both lines and validates the parameters.
func NewSpec(line1, line2 string, coveragePercent, opacityPercent int) (Spec, error) {
	s := Spec{
		Line1:           strings.TrimSpace(line1),
		Line2:           strings.TrimSpace(line2),
		CoveragePercent: coveragePercent,
		OpacityPercent:  opacityPercent,
	}
	if err := s.Validate(); err != nil {
		return Spec{}, err
	}
	return s, nil
}

// Validate reports an InvalidSpecError when the parameters are unusable.
func (s Spec) Validate() error {
	if strings.TrimSpace(s.Line1) == "" && strings.TrimSpace(s.Line2) == "" {
		return &types.InvalidSpecError{Reason: "both watermark lines are empty"}
	}
	if s.CoveragePercent < 1 || s.CoveragePercent > 100 {
		return &types.InvalidSpecError{Reason: fmt.Sprintf("coverage %d%% is outside 1-100", s.CoveragePercent)}
	}
	if s.OpacityPercent < 0 || s.OpacityPercent > 100 {
		return &types.InvalidSpecError{Reason: fmt.Sprintf("opacity %d%% is outside 0-100", s.OpacityPercent)}
	}
	return nil
}

// Lines returns the non-empty lines in display order.
func (s Spec) Lines() []string {
	lines := make([]string, 0, 2)
	if l := strings.TrimSpace(s.Line1); l != "" {
		lines = append(lines, l)
	}
	if l := strings.TrimSpace(s.Line2); l != "" {
		lines = append(lines, l)
	}
	return lines
}
