package v2x

import (
	"fmt"
	"strings"
)

// Format is a raster output format.
type Format string

// Supported output formats.
const (
	AVIF Format = "avif"
	JPEG Format = "jpeg"
	PNG  Format = "png"
	TIFF Format = "tiff"
	WEBP Format = "webp"
	BMP  Format = "bmp"
	GIF  Format = "gif"
)

// formatAliases maps the accepted spellings to their canonical format.
var formatAliases = map[string]Format{
	"avif": AVIF,
	"jpeg": JPEG,
	"jpg":  JPEG,
	"png":  PNG,
	"tiff": TIFF,
	"tif":  TIFF,
	"webp": WEBP,
	"bmp":  BMP,
	"gif":  GIF,
}

// DefaultFormats returns the formats generated when none is requested explicitly.
func DefaultFormats() []Format {
	return []Format{AVIF, JPEG, PNG, TIFF, WEBP}
}

// SupportedFormats returns every format an encoder exists for.
func SupportedFormats() []Format {
	return []Format{AVIF, JPEG, PNG, TIFF, WEBP, BMP, GIF}
}

// ParseFormat converts a format name (case-insensitive) into a Format.
func ParseFormat(s string) (Format, error) {
	f, ok := formatAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
	return f, nil
}

// ParseFormats parses a list of format names. Entries may themselves be comma
// separated. Duplicates are dropped, keeping the order of first occurrence.
// An empty list yields DefaultFormats.
func ParseFormats(names []string) ([]Format, error) {
	var (
		formats []Format
		seen    = make(map[Format]struct{})
	)
	for _, name := range names {
		for _, part := range strings.Split(name, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			f, err := ParseFormat(part)
			if err != nil {
				return nil, err
			}
			if _, ok := seen[f]; ok {
				continue
			}
			seen[f] = struct{}{}
			formats = append(formats, f)
		}
	}
	if len(formats) == 0 {
		return DefaultFormats(), nil
	}
	return formats, nil
}

// Extension returns the file extension, without the leading dot.
func (f Format) Extension() string {
	return string(f)
}

// HasAlpha reports whether the format can store an alpha channel.
func (f Format) HasAlpha() bool {
	switch f {
	case JPEG, BMP:
		return false
	default:
		return true
	}
}

func (f Format) String() string {
	return string(f)
}
