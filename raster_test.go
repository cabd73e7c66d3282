package v2x

import (
	"bytes"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readTestdata(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func TestRaster_IntrinsicSize(t *testing.T) {
	tests := []struct {
		file string
		want Size
	}{
		{file: "sample.svg", want: Size{100, 50}},
		{file: "viewbox.svg", want: Size{20, 10}},
		{file: "units.svg", want: Size{96, 64}},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			doc, err := ParseSVG(readTestdata(t, tt.file), false)
			require.NoError(t, err)
			assert.Equal(t, tt.want, doc.Size)
		})
	}
}

func TestRaster_InvalidInput(t *testing.T) {
	_, err := ParseSVG(readTestdata(t, "notsvg.xml"), false)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ParseSVG([]byte("   "), false)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRaster_Rasterize(t *testing.T) {
	red := color.RGBA{R: 0xff, A: 0xff}

	doc, err := ParseSVG(readTestdata(t, "sample.svg"), false)
	require.NoError(t, err)

	img := doc.Rasterize(Size{200, 100})
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())

	// The square covers the left half of the drawing.
	assert.Equal(t, red, img.RGBAAt(50, 50))
	assert.Equal(t, red, img.RGBAAt(10, 90))
	assert.Equal(t, color.RGBA{}, img.RGBAAt(150, 50))
	assert.Equal(t, color.RGBA{}, img.RGBAAt(190, 10))
}

func TestRaster_NonUniformScale(t *testing.T) {
	doc, err := ParseSVG(readTestdata(t, "sample.svg"), false)
	require.NoError(t, err)

	// Stretched vertically, the square still covers the left half.
	img := doc.Rasterize(Size{100, 200})
	assert.Equal(t, uint8(0xff), img.RGBAAt(25, 180).R)
	assert.Equal(t, uint8(0), img.RGBAAt(75, 180).A)
}

func TestRaster_ViewBoxOrigin(t *testing.T) {
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="10 10 20 20">
  <rect x="10" y="10" width="20" height="20" fill="red"/>
</svg>`
	doc, err := ParseSVG([]byte(svg), false)
	require.NoError(t, err)
	assert.Equal(t, Size{20, 20}, doc.Size)

	// The rectangle fills the whole viewBox at any output size.
	for _, size := range []Size{{20, 20}, {40, 40}, {60, 30}} {
		img := doc.Rasterize(size)
		for _, pt := range [][2]int{{0, 0}, {5, 5}, {size.Width / 2, size.Height / 2}, {size.Width - 1, size.Height - 1}} {
			assert.Equal(t, uint8(0xff), img.RGBAAt(pt[0], pt[1]).A, "%v at %v", size, pt)
		}
	}
}

func TestRaster_WarningsStayOffStderr(t *testing.T) {
	var buf bytes.Buffer
	out := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(out) })

	doc, err := ParseSVG(readTestdata(t, "units.svg"), false)
	require.NoError(t, err)

	assert.Empty(t, buf.String())
	require.NotEmpty(t, doc.Warnings)
	assert.Contains(t, strings.Join(doc.Warnings, "\n"), "1in")
	assert.Equal(t, &buf, log.Writer())
}

func TestRaster_ParseLength(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"100", 100},
		{"100px", 100},
		{" 12.5 ", 12.5},
		{"1in", 96},
		{"72pt", 96},
		{"2.54cm", 96},
		{"50%", 0},
		{"2em", 0},
		{"-4", 0},
		{"abc", 0},
		{"", 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, parseLength(tt.in), 1e-9, tt.in)
	}
}
