package surface

import (
	"errors"
	"image/color"
	"testing"

	"github.com/jenafy/cardfx/internal/fx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRasterClearAndFill(t *testing.T) {
	bg := color.RGBA{R: 3, G: 7, B: 18, A: 255}
	r, err := NewRaster(40, 30, bg)
	require.NoError(t, err)

	w, h := r.Size()
	assert.Equal(t, 40.0, w)
	assert.Equal(t, 30.0, h)

	r.Clear()
	assert.Equal(t, bg, r.Image().RGBAAt(5, 5))

	r.SetAlpha(1)
	r.SetFill(color.RGBA{R: 255, A: 255})
	r.FillRect(10, 10, 10, 10)

	got := r.Image().RGBAAt(15, 15)
	assert.Equal(t, uint8(255), got.R)
	assert.Equal(t, bg, r.Image().RGBAAt(2, 2))
}

func TestRasterBadSize(t *testing.T) {
	_, err := NewRaster(0, 10, color.RGBA{})
	assert.True(t, errors.Is(err, fx.ErrBadSize))
}

func TestRasterSetSize(t *testing.T) {
	r, err := NewRaster(10, 10, color.RGBA{A: 255})
	require.NoError(t, err)
	require.NoError(t, r.SetSize(64, 32))

	assert.Equal(t, 64, r.Image().Bounds().Dx())
	assert.Equal(t, 32, r.Image().Bounds().Dy())
}
