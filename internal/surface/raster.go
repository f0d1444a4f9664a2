package surface

import (
	"fmt"
	"image"
	"image/color"

	"github.com/tfriedel6/canvas"
	"github.com/tfriedel6/canvas/backend/softwarebackend"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/jenafy/cardfx/internal/fx"
)

// Raster is a headless Surface rendering into an RGBA image through the
// tfriedel6/canvas software backend.
type Raster struct {
	backend *softwarebackend.SoftwareBackend
	cv      *canvas.Canvas
	font    *canvas.Font
	bg      color.RGBA
}

func NewRaster(w, h int, bg color.RGBA) (*Raster, error) {
	r := &Raster{bg: bg}
	if err := r.SetSize(w, h); err != nil {
		return nil, err
	}
	return r, nil
}

// SetSize replaces the backing image. Drawing state is reset.
func (r *Raster) SetSize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %dx%d", fx.ErrBadSize, w, h)
	}
	r.backend = softwarebackend.New(w, h)
	r.cv = canvas.New(r.backend)

	font, err := r.cv.LoadFont(gomono.TTF)
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}
	r.font = font
	return nil
}

// Image returns the current frame. It is overwritten by the next frame.
func (r *Raster) Image() *image.RGBA { return r.backend.Image }

func (r *Raster) Size() (float64, float64) {
	return float64(r.cv.Width()), float64(r.cv.Height())
}

// Clear paints the whole image with the background colour.
func (r *Raster) Clear() {
	w, h := r.Size()
	r.cv.Save()
	r.cv.SetGlobalAlpha(1)
	r.cv.SetShadowBlur(0)
	r.cv.ClearRect(0, 0, w, h)
	r.cv.SetFillStyle(hexOf(r.bg))
	r.cv.FillRect(0, 0, w, h)
	r.cv.Restore()
}

func (r *Raster) Save()                  { r.cv.Save() }
func (r *Raster) Restore()               { r.cv.Restore() }
func (r *Raster) Translate(x, y float64) { r.cv.Translate(x, y) }
func (r *Raster) Rotate(theta float64)   { r.cv.Rotate(theta) }

func (r *Raster) SetAlpha(a float64) {
	if a < 0 {
		a = 0
	}
	r.cv.SetGlobalAlpha(a)
}

func (r *Raster) SetFill(c color.RGBA)   { r.cv.SetFillStyle(hexOf(c)) }
func (r *Raster) SetStroke(c color.RGBA) { r.cv.SetStrokeStyle(hexOf(c)) }
func (r *Raster) SetLineWidth(w float64) { r.cv.SetLineWidth(w) }

func (r *Raster) SetGlow(blur float64, c color.RGBA) {
	r.cv.SetShadowBlur(blur)
	r.cv.SetShadowColor(hexOf(c))
}

func (r *Raster) BeginPath()          { r.cv.BeginPath() }
func (r *Raster) MoveTo(x, y float64) { r.cv.MoveTo(x, y) }
func (r *Raster) LineTo(x, y float64) { r.cv.LineTo(x, y) }
func (r *Raster) ClosePath()          { r.cv.ClosePath() }
func (r *Raster) Fill()               { r.cv.Fill() }
func (r *Raster) Stroke()             { r.cv.Stroke() }

func (r *Raster) Arc(x, y, rad, start, end float64) {
	r.cv.Arc(x, y, rad, start, end, false)
}

func (r *Raster) FillRect(x, y, w, h float64)   { r.cv.FillRect(x, y, w, h) }
func (r *Raster) StrokeRect(x, y, w, h float64) { r.cv.StrokeRect(x, y, w, h) }

func (r *Raster) FillText(s string, x, y, size float64) {
	r.cv.SetFont(r.font, size)
	r.cv.FillText(s, x, y)
}

func hexOf(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

var _ fx.Surface = (*Raster)(nil)
