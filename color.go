package v2x

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"strings"
)

var (
	transparent = color.NRGBA{}
	white       = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// ParseColor parses a hex color of the form '#RRGGBB' or '#RRGGBBAA'.
// The leading '#' is optional.
func ParseColor(s string) (color.NRGBA, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(raw) != 6 && len(raw) != 8 {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	b, err := hex.DecodeString(raw)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	c := color.NRGBA{R: b[0], G: b[1], B: b[2], A: 0xff}
	if len(b) == 4 {
		c.A = b[3]
	}
	return c, nil
}

// backgroundFor returns the canvas color for format f. An explicit background
// always wins; otherwise alpha capable formats get a transparent canvas and
// the others solid white.
func backgroundFor(f Format, bg *color.NRGBA) color.NRGBA {
	switch {
	case bg != nil:
		return *bg
	case f.HasAlpha():
		return transparent
	default:
		return white
	}
}
