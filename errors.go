package v2x

import "errors"

var (
	// ErrUnsupportedFormat is returned for an unknown output format name.
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrInvalidColor is returned when a background color cannot be parsed.
	ErrInvalidColor = errors.New("invalid color format (expected '#RRGGBB' or '#RRGGBBAA')")

	// ErrInvalidSize is returned when the requested or resolved size is unusable.
	ErrInvalidSize = errors.New("invalid output size")

	// ErrInvalidInput is returned when the source is not an SVG document.
	ErrInvalidInput = errors.New("invalid SVG input")
)
