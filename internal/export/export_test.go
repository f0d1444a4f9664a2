package export

import (
	"bytes"
	"context"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jenafy/cardfx/internal/coderain"
	"github.com/jenafy/cardfx/internal/fx"
	"github.com/jenafy/cardfx/internal/metrics"
	"github.com/jenafy/cardfx/internal/shapefield"
	"github.com/jenafy/cardfx/internal/surface"
	"github.com/jenafy/cardfx/internal/theme"
)

func TestCaptureAndGIF(t *testing.T) {
	r, err := surface.NewRaster(96, 64, theme.Pink.Background)
	require.NoError(t, err)

	peak := metrics.NewPopulationPeak()
	col := metrics.NewCollector(0, peak)
	frames, err := Capture(context.Background(), shapefield.New(theme.Pink, fx.NewRand(3)), r, 10, 3, col)
	require.NoError(t, err)
	assert.Len(t, frames, 4, "frames 3, 6, 9 and the last")
	assert.Len(t, col.Samples(), 10)
	assert.NotSame(t, frames[0], frames[1])

	var buf bytes.Buffer
	require.NoError(t, EncodeGIF(&buf, frames, DelayFor(60, 3)))

	anim, err := gif.DecodeAll(&buf)
	require.NoError(t, err)
	assert.Len(t, anim.Image, 4)
	assert.Equal(t, 96, anim.Image[0].Bounds().Dx())
	assert.Equal(t, 5, anim.Delay[0])
}

func TestCaptureCancelled(t *testing.T) {
	r, err := surface.NewRaster(32, 32, theme.Green.Background)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Capture(ctx, coderain.New(theme.Green, fx.NewRand(1)), r, 5, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteFile(t *testing.T) {
	r, err := surface.NewRaster(40, 30, theme.Blue.Background)
	require.NoError(t, err)
	frames, err := Capture(context.Background(), coderain.New(theme.Blue, fx.NewRand(2)), r, 4, 1)
	require.NoError(t, err)

	dir := t.TempDir()
	pngPath := filepath.Join(dir, "card.png")
	require.NoError(t, WriteFile(pngPath, frames, 2))

	f, err := os.Open(pngPath)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())

	assert.Error(t, WriteFile(filepath.Join(dir, "card.bmp"), frames, 2))
	assert.ErrorIs(t, WriteFile(filepath.Join(dir, "empty.gif"), nil, 2), ErrNoFrames)
}

func TestBrailleToSVG(t *testing.T) {
	b := surface.NewBraille(4, 2, 1, theme.Blue.Background)
	b.Set(0, 0, theme.Blue.Palette[0], 1)
	b.SetAlpha(1)
	b.SetFill(theme.Blue.Palette[1])
	b.FillText("<", 4, 0, 12)

	svg := BrailleToSVG(b, 2)
	assert.True(t, strings.HasPrefix(svg, "<?xml"))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
	assert.Contains(t, svg, `fill="`+b.Background()+`"`)
	assert.Equal(t, 1, strings.Count(svg, "<circle"))
	assert.Contains(t, svg, "&lt;</text>")

	assert.Empty(t, BrailleToSVG(nil, 2))
}

func TestSeriesToSVG(t *testing.T) {
	svg := SeriesToSVG([]float64{1, 3, 2}, 100, 50, "#10b981")
	assert.Contains(t, svg, `stroke="#10b981"`)
	assert.Equal(t, 2, strings.Count(svg, " L"))
	assert.Empty(t, SeriesToSVG([]float64{1}, 100, 50, "#fff"))
}

func TestDelayFor(t *testing.T) {
	assert.Equal(t, 2, DelayFor(60, 1))
	assert.Equal(t, 10, DelayFor(30, 3))
	assert.Equal(t, 2, DelayFor(0, 0))
}
