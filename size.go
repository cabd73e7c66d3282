package v2x

import (
	"fmt"
	"math"
)

// maxDimension bounds each side of the output raster.
const maxDimension = 1 << 15

// Size is a raster size in whole pixels.
type Size struct {
	Width, Height int
}

// ResolveSize computes the output raster size from the intrinsic size of the
// vector image. A non zero width or height overrides the scale factor; when
// only one of them is given the other one keeps the aspect ratio (truncated).
// Otherwise both sides are multiplied by scale and rounded.
func ResolveSize(base Size, width, height int, scale float64) (Size, error) {
	if base.Width <= 0 || base.Height <= 0 {
		return Size{}, fmt.Errorf("%w: the image has no intrinsic size (%dx%d)", ErrInvalidSize, base.Width, base.Height)
	}
	if width < 0 || height < 0 {
		return Size{}, fmt.Errorf("%w: width and height must be positive", ErrInvalidSize)
	}

	var out Size
	if width > 0 || height > 0 {
		bw, bh := float64(base.Width), float64(base.Height)

		switch {
		case width > 0:
			out.Width = width
		default:
			out.Width = int(bw * (float64(height) / bh))
		}
		switch {
		case height > 0:
			out.Height = height
		default:
			out.Height = int(bh * (float64(width) / bw))
		}
	} else {
		if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
			return Size{}, fmt.Errorf("%w: scale must be a positive number, got %v", ErrInvalidSize, scale)
		}
		out.Width = int(math.Round(float64(base.Width) * scale))
		out.Height = int(math.Round(float64(base.Height) * scale))
	}

	if out.Width <= 0 || out.Height <= 0 {
		return Size{}, fmt.Errorf("%w: size should not be zero (%dx%d)", ErrInvalidSize, out.Width, out.Height)
	}
	if out.Width > maxDimension || out.Height > maxDimension {
		return Size{}, fmt.Errorf("%w: %dx%d exceeds the %d pixel limit", ErrInvalidSize, out.Width, out.Height, maxDimension)
	}
	return out, nil
}
