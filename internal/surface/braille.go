package surface

import (
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jenafy/cardfx/internal/fx"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]uint8{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const (
	brailleBase = 0x2800

	// DefaultScale is logical pixels per braille dot.
	DefaultScale = 4.0
	// MinAlpha is the faintest ink that still sets a dot.
	MinAlpha = 0.015

	arcSegments = 24
)

// ink is the strongest colour written into a cell this frame.
type ink struct {
	c     color.RGBA
	alpha float64
}

type glyph struct {
	r   rune
	ink ink
}

// affine is a 2D transform: x' = a*x + c*y + e, y' = b*x + d*y + f.
type affine struct {
	a, b, c, d, e, f float64
}

var identity = affine{a: 1, d: 1}

func (m affine) apply(x, y float64) (float64, float64) {
	return m.a*x + m.c*y + m.e, m.b*x + m.d*y + m.f
}

type gstate struct {
	m      affine
	alpha  float64
	fill   color.RGBA
	stroke color.RGBA
	width  float64
}

type subpath struct {
	pts    []fx.Point
	closed bool
}

// Braille is a terminal Surface. Logical pixels map onto braille dots
// divided by Scale; each cell keeps the colour of its strongest ink.
type Braille struct {
	Width, Height int
	Scale         float64

	bg    colorful.Color
	dots  [][]uint8
	inks  [][]ink
	text  [][]glyph
	st    gstate
	stack []gstate
	path  []subpath
}

// NewBraille returns a cols×rows canvas. A non-positive scale means DefaultScale.
func NewBraille(cols, rows int, scale float64, bg color.RGBA) *Braille {
	if scale <= 0 {
		scale = DefaultScale
	}
	c := &Braille{
		Scale: scale,
		bg:    toColorful(bg),
		st:    gstate{m: identity, alpha: 1, width: 1},
	}
	c.SetCells(cols, rows)
	return c
}

// SetCells resizes the grid. Contents are dropped; the next frame redraws.
func (c *Braille) SetCells(cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	c.Width, c.Height = cols, rows
	c.dots = make([][]uint8, rows)
	c.inks = make([][]ink, rows)
	c.text = make([][]glyph, rows)
	for i := 0; i < rows; i++ {
		c.dots[i] = make([]uint8, cols)
		c.inks[i] = make([]ink, cols)
		c.text[i] = make([]glyph, cols)
	}
}

// Size returns the logical pixel size: 2×4 dots per cell times Scale.
func (c *Braille) Size() (float64, float64) {
	return float64(c.Width*2) * c.Scale, float64(c.Height*4) * c.Scale
}

// Clear resets the canvas. The transform and style state are kept.
func (c *Braille) Clear() {
	for i := range c.dots {
		for j := range c.dots[i] {
			c.dots[i][j] = 0
			c.inks[i][j] = ink{}
			c.text[i][j] = glyph{}
		}
	}
}

func (c *Braille) Save() { c.stack = append(c.stack, c.st) }

func (c *Braille) Restore() {
	if n := len(c.stack); n > 0 {
		c.st = c.stack[n-1]
		c.stack = c.stack[:n-1]
	}
}

func (c *Braille) Translate(x, y float64) {
	m := &c.st.m
	m.e += m.a*x + m.c*y
	m.f += m.b*x + m.d*y
}

func (c *Braille) Rotate(theta float64) {
	m := c.st.m
	cos, sin := math.Cos(theta), math.Sin(theta)
	c.st.m = affine{
		a: m.a*cos + m.c*sin,
		b: m.b*cos + m.d*sin,
		c: m.c*cos - m.a*sin,
		d: m.d*cos - m.b*sin,
		e: m.e,
		f: m.f,
	}
}

func (c *Braille) SetAlpha(a float64)       { c.st.alpha = a }
func (c *Braille) SetFill(col color.RGBA)   { c.st.fill = col }
func (c *Braille) SetStroke(col color.RGBA) { c.st.stroke = col }
func (c *Braille) SetLineWidth(w float64)   { c.st.width = w }

// SetGlow is a no-op: terminal cells cannot blur.
func (c *Braille) SetGlow(blur float64, col color.RGBA) {}

func (c *Braille) BeginPath() { c.path = c.path[:0] }

// dot maps a logical point to dot space through the current transform.
func (c *Braille) dot(x, y float64) fx.Point {
	tx, ty := c.st.m.apply(x, y)
	return fx.Point{X: tx / c.Scale, Y: ty / c.Scale}
}

func (c *Braille) MoveTo(x, y float64) {
	c.path = append(c.path, subpath{pts: []fx.Point{c.dot(x, y)}})
}

func (c *Braille) LineTo(x, y float64) {
	if len(c.path) == 0 {
		c.MoveTo(x, y)
		return
	}
	sp := &c.path[len(c.path)-1]
	sp.pts = append(sp.pts, c.dot(x, y))
}

// Arc appends a flattened arc, joined to the current point by a line.
func (c *Braille) Arc(x, y, r, start, end float64) {
	sweep := end - start
	for i := 0; i <= arcSegments; i++ {
		a := start + sweep*float64(i)/arcSegments
		c.LineTo(x+math.Cos(a)*r, y+math.Sin(a)*r)
	}
}

func (c *Braille) ClosePath() {
	if len(c.path) > 0 {
		c.path[len(c.path)-1].closed = true
	}
}

// Fill sets every dot whose centre lies inside the path (even-odd rule).
func (c *Braille) Fill() {
	if !c.visible() || len(c.path) == 0 {
		return
	}
	c.fillPolygons(c.path, c.st.fill)
}

func (c *Braille) Stroke() {
	if !c.visible() {
		return
	}
	for _, sp := range c.path {
		c.strokePoints(sp.pts, sp.closed, c.st.stroke)
	}
}

func (c *Braille) rect(x, y, w, h float64) []fx.Point {
	return []fx.Point{c.dot(x, y), c.dot(x+w, y), c.dot(x+w, y+h), c.dot(x, y+h)}
}

func (c *Braille) FillRect(x, y, w, h float64) {
	if !c.visible() {
		return
	}
	c.fillPolygons([]subpath{{pts: c.rect(x, y, w, h), closed: true}}, c.st.fill)
}

func (c *Braille) StrokeRect(x, y, w, h float64) {
	if !c.visible() {
		return
	}
	c.strokePoints(c.rect(x, y, w, h), true, c.st.stroke)
}

// FillText writes text into the cells starting at the one containing
// (x, y). Size is ignored; every rune occupies its terminal width.
func (c *Braille) FillText(s string, x, y, size float64) {
	if !c.visible() {
		return
	}
	p := c.dot(x, y)
	col, row := int(math.Floor(p.X/2)), int(math.Floor(p.Y/4))
	if row < 0 || row >= c.Height {
		return
	}
	in := ink{c: c.st.fill, alpha: c.st.alpha}
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col >= 0 && col < c.Width {
			if cur := c.text[row][col]; cur.r == 0 || in.alpha >= cur.ink.alpha {
				c.text[row][col] = glyph{r: r, ink: in}
			}
		}
		col += w
	}
}

func (c *Braille) visible() bool { return c.st.alpha >= MinAlpha }

// Set sets a dot at (x, y) in dot coordinates with the given colour.
// The canvas size in dots is (Width*2) x (Height*4).
func (c *Braille) Set(x, y int, col color.RGBA, alpha float64) {
	// Early bounds check for negative coordinates
	if x < 0 || y < 0 {
		return
	}

	cx := x / 2
	row := y / 4
	if cx >= c.Width || row >= c.Height {
		return
	}

	c.dots[row][cx] |= pixelMap[y%4][x%2]
	if alpha >= c.inks[row][cx].alpha {
		c.inks[row][cx] = ink{c: col, alpha: alpha}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Braille) DrawLine(x0, y0, x1, y1 int, col color.RGBA, alpha float64) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, col, alpha)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Braille) strokePoints(pts []fx.Point, closed bool, col color.RGBA) {
	if len(pts) == 0 {
		return
	}
	if len(pts) == 1 {
		c.Set(round(pts[0].X), round(pts[0].Y), col, c.st.alpha)
		return
	}
	for i := 1; i < len(pts); i++ {
		c.DrawLine(round(pts[i-1].X), round(pts[i-1].Y), round(pts[i].X), round(pts[i].Y), col, c.st.alpha)
	}
	if closed {
		last, first := pts[len(pts)-1], pts[0]
		c.DrawLine(round(last.X), round(last.Y), round(first.X), round(first.Y), col, c.st.alpha)
	}
}

func (c *Braille) fillPolygons(polys []subpath, col color.RGBA) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, sp := range polys {
		for _, p := range sp.pts {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}
	if minX > maxX || minY > maxY {
		return
	}

	x0 := clampInt(int(math.Floor(minX)), 0, c.Width*2-1)
	x1 := clampInt(int(math.Ceil(maxX)), 0, c.Width*2-1)
	y0 := clampInt(int(math.Floor(minY)), 0, c.Height*4-1)
	y1 := clampInt(int(math.Ceil(maxY)), 0, c.Height*4-1)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if insideEvenOdd(polys, float64(x)+0.5, float64(y)+0.5) {
				c.Set(x, y, col, c.st.alpha)
			}
		}
	}
}

// insideEvenOdd treats every subpath as implicitly closed.
func insideEvenOdd(polys []subpath, px, py float64) bool {
	in := false
	for _, sp := range polys {
		n := len(sp.pts)
		for i, j := 0, n-1; i < n; j, i = i, i+1 {
			a, b := sp.pts[i], sp.pts[j]
			if (a.Y > py) != (b.Y > py) &&
				px < (b.X-a.X)*(py-a.Y)/(b.Y-a.Y)+a.X {
				in = !in
			}
		}
	}
	return in
}

// Cell returns what a cell shows: a text rune if one was written,
// otherwise the braille pattern, with its colour and strongest alpha.
func (c *Braille) Cell(col, row int) (rune, color.RGBA, float64) {
	if g := c.text[row][col]; g.r != 0 {
		return g.r, g.ink.c, g.ink.alpha
	}
	in := c.inks[row][col]
	return rune(brailleBase + int(c.dots[row][col])), in.c, in.alpha
}

// String returns the canvas as plain text rows.
func (c *Braille) String() string {
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			r, _, _ := c.Cell(col, row)
			b.WriteRune(r)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Render returns the canvas as rows coloured with lipgloss. Ink is
// blended toward the background by the square root of its alpha so that
// faint layers stay visible in a terminal.
func (c *Braille) Render() string {
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		var run strings.Builder
		runHex := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runHex == "" {
				b.WriteString(run.String())
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(runHex)).Render(run.String()))
			}
			run.Reset()
		}

		for col := 0; col < c.Width; col++ {
			r, ic, alpha := c.Cell(col, row)
			hex := ""
			if r != brailleBase {
				hex = c.Blend(ic, alpha)
			}
			if hex != runHex {
				flush()
				runHex = hex
			}
			run.WriteRune(r)
		}
		flush()
		b.WriteString("\n")
	}
	return b.String()
}

// Background returns the background colour as hex.
func (c *Braille) Background() string { return c.bg.Clamped().Hex() }

// Blend returns the terminal colour for ink of the given alpha.
func (c *Braille) Blend(col color.RGBA, alpha float64) string {
	t := math.Sqrt(math.Max(0, math.Min(1, alpha)))
	return c.bg.BlendRgb(toColorful(col), t).Clamped().Hex()
}

func toColorful(c color.RGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func round(v float64) int { return int(math.Round(v)) }

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var _ fx.Surface = (*Braille)(nil)
