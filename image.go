package v2x

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"os"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/avif"
	"github.com/gen2brain/webp"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// encodeFn serializes an image into a specific file format.
type encodeFn func(w io.Writer, img image.Image) error

// encoders maps every supported format to its encoder. All of them run with
// the library default settings.
var encoders = map[Format]encodeFn{
	PNG: func(w io.Writer, img image.Image) error {
		return imaging.Encode(w, img, imaging.PNG)
	},
	JPEG: func(w io.Writer, img image.Image) error {
		return imaging.Encode(w, img, imaging.JPEG)
	},
	GIF: func(w io.Writer, img image.Image) error {
		return imaging.Encode(w, img, imaging.GIF)
	},
	TIFF: func(w io.Writer, img image.Image) error {
		return tiff.Encode(w, img, nil)
	},
	BMP: bmp.Encode,
	WEBP: func(w io.Writer, img image.Image) error {
		return webp.Encode(w, img)
	},
	AVIF: func(w io.Writer, img image.Image) error {
		return avif.Encode(w, img)
	},
}

// encodeImg encodes img in format f to w.
func encodeImg(w io.Writer, img image.Image, f Format) error {
	enc, ok := encoders[f]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	return enc(w, img)
}

// compose flattens the rendered layer over the background of format f.
// Formats without an alpha channel get their alpha discarded afterwards.
func compose(layer image.Image, f Format, bg *color.NRGBA) *image.NRGBA {
	b := layer.Bounds()
	canvas := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(backgroundFor(f, bg)), image.Point{}, draw.Src)
	draw.Draw(canvas, canvas.Bounds(), layer, b.Min, draw.Over)

	img := imaging.Clone(canvas)
	if !f.HasAlpha() {
		dropAlpha(img)
	}
	return img
}

// dropAlpha makes every pixel fully opaque, keeping the unpremultiplied
// color channels. Fully transparent pixels become black.
func dropAlpha(img *image.NRGBA) {
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
}

// saveImg writes img in format f to the file at path. The file is removed
// if encoding fails.
func saveImg(path string, img image.Image, f Format) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create the destination file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("could not close the destination file: %w", cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	w := bufio.NewWriter(file)
	if err = encodeImg(w, img, f); err != nil {
		return fmt.Errorf("%s encoding failed: %w", f, err)
	}
	return w.Flush()
}
