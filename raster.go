package v2x

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// unitToPx holds the number of CSS pixels per absolute length unit.
var unitToPx = map[string]float64{
	"":   1,
	"px": 1,
	"pt": 4.0 / 3.0,
	"pc": 16,
	"mm": 96 / 25.4,
	"cm": 96 / 2.54,
	"in": 96,
}

// Document is a parsed SVG document ready to be rasterized.
type Document struct {
	icon *oksvg.SvgIcon
	// Size is the intrinsic size of the document, in pixels.
	Size Size
	// Warnings lists the elements and attributes skipped while parsing.
	Warnings []string
}

// parseMu serializes the redirection of the standard logger, which the
// SVG parser writes its warnings to.
var parseMu sync.Mutex

// readIcon parses the SVG and collects the warnings the parser reports
// through the standard logger instead of letting them reach stderr.
func readIcon(data []byte, mode oksvg.ErrorMode) (*oksvg.SvgIcon, []string, error) {
	parseMu.Lock()
	defer parseMu.Unlock()

	var buf bytes.Buffer
	out, flags, prefix := log.Writer(), log.Flags(), log.Prefix()
	log.SetOutput(&buf)
	log.SetFlags(0)
	log.SetPrefix("")
	defer func() {
		log.SetOutput(out)
		log.SetFlags(flags)
		log.SetPrefix(prefix)
	}()

	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), mode)

	var warnings []string
	for _, line := range strings.Split(buf.String(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			warnings = append(warnings, line)
		}
	}
	return icon, warnings, err
}

// ParseSVG parses an SVG document. In strict mode unsupported elements or
// attributes abort the parsing, otherwise they are reported and skipped.
func ParseSVG(data []byte, strict bool) (*Document, error) {
	width, height, err := rootLength(data)
	if err != nil {
		return nil, err
	}

	mode := oksvg.WarnErrorMode
	if strict {
		mode = oksvg.StrictErrorMode
	}
	icon, warnings, err := readIcon(data, mode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// The width and height attributes take precedence over the viewBox.
	w, h := icon.ViewBox.W, icon.ViewBox.H
	if width > 0 && height > 0 {
		w, h = width, height
	}
	if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		icon.ViewBox.W, icon.ViewBox.H = w, h
	}

	return &Document{
		icon:     icon,
		Warnings: warnings,
		Size: Size{
			Width:  int(math.Ceil(w)),
			Height: int(math.Ceil(h)),
		},
	}, nil
}

// Rasterize renders the document stretched to size onto a transparent
// canvas. The horizontal and vertical scale factors are independent.
func (d *Document) Rasterize(size Size) *image.RGBA {
	w, h := size.Width, size.Height
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	// The viewBox origin is translated before scaling so that it lands on
	// the top left corner whatever the scale factors are.
	vb := d.icon.ViewBox
	d.icon.Transform = rasterx.Identity.
		Scale(float64(w)/vb.W, float64(h)/vb.H).
		Translate(-vb.X, -vb.Y)

	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	d.icon.Draw(dasher, 1.0)

	return img
}

// rootLength returns the absolute width and height declared on the root
// element, or zero for the ones missing or using relative units.
func rootLength(data []byte) (width, height float64, err error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = false
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return 0, 0, fmt.Errorf("%w: no root element", ErrInvalidInput)
			}
			return 0, 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		el, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if el.Name.Local != "svg" {
			return 0, 0, fmt.Errorf("%w: unexpected root element <%s>", ErrInvalidInput, el.Name.Local)
		}
		for _, attr := range el.Attr {
			switch attr.Name.Local {
			case "width":
				width = parseLength(attr.Value)
			case "height":
				height = parseLength(attr.Value)
			}
		}
		return width, height, nil
	}
}

// parseLength converts an absolute SVG length to pixels. It returns zero for
// malformed values and for relative units (%, em, ex).
func parseLength(s string) float64 {
	s = strings.TrimSpace(s)
	i := len(s)
	for i > 0 && (s[i-1] >= 'a' && s[i-1] <= 'z' || s[i-1] == '%') {
		i--
	}
	factor, ok := unitToPx[s[i:]]
	if !ok {
		return 0
	}
	v, err := strconv.ParseFloat(s[:i], 64)
	if err != nil || v <= 0 {
		return 0
	}
	return v * factor
}
