package v2x

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSize_Resolve(t *testing.T) {
	base := Size{Width: 100, Height: 50}

	tests := []struct {
		name          string
		width, height int
		scale         float64
		want          Size
	}{
		{name: "intrinsic", scale: 1, want: Size{100, 50}},
		{name: "scaled up", scale: 2, want: Size{200, 100}},
		{name: "scale rounds", scale: 0.333, want: Size{33, 17}},
		{name: "width keeps aspect", width: 30, scale: 1, want: Size{30, 15}},
		{name: "height keeps aspect", height: 25, scale: 1, want: Size{50, 25}},
		{name: "both override aspect", width: 10, height: 40, scale: 1, want: Size{10, 40}},
		{name: "width overrides scale", width: 300, scale: 5, want: Size{300, 150}},
		{name: "aspect truncates", width: 33, scale: 1, want: Size{33, 16}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveSize(base, tt.width, tt.height, tt.scale)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSize_ResolveErrors(t *testing.T) {
	base := Size{Width: 100, Height: 50}

	tests := []struct {
		name          string
		base          Size
		width, height int
		scale         float64
	}{
		{name: "zero scale", base: base, scale: 0},
		{name: "negative scale", base: base, scale: -1},
		{name: "nan scale", base: base, scale: math.NaN()},
		{name: "negative width", base: base, width: -1, scale: 1},
		{name: "no intrinsic size", base: Size{}, scale: 1},
		{name: "rounds to zero", base: base, scale: 0.001},
		{name: "truncates to zero", base: base, width: 1, scale: 1},
		{name: "too large", base: base, width: 1 << 16, scale: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveSize(tt.base, tt.width, tt.height, tt.scale)
			assert.ErrorIs(t, err, ErrInvalidSize)
		})
	}
}
