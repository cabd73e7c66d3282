package v2x

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColor_Parse(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{in: "#ff8000", want: color.NRGBA{R: 0xff, G: 0x80, B: 0x00, A: 0xff}},
		{in: "FF8000", want: color.NRGBA{R: 0xff, G: 0x80, B: 0x00, A: 0xff}},
		{in: "#11223344", want: color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x44}},
		{in: "#00000000", want: color.NRGBA{}},
		{in: "#fff", wantErr: true},
		{in: "#ff80001", wantErr: true},
		{in: "#gg0000", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidColor)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColor_DefaultBackground(t *testing.T) {
	assert.Equal(t, transparent, backgroundFor(PNG, nil))
	assert.Equal(t, transparent, backgroundFor(WEBP, nil))
	assert.Equal(t, white, backgroundFor(JPEG, nil))
	assert.Equal(t, white, backgroundFor(BMP, nil))

	bg := color.NRGBA{R: 10, G: 20, B: 30, A: 40}
	assert.Equal(t, bg, backgroundFor(PNG, &bg))
	assert.Equal(t, bg, backgroundFor(JPEG, &bg))
}
