package surface

import (
	"image/color"
	"math"
	"strings"
	"testing"
)

var (
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.RGBA{A: 255}
)

func TestBrailleSize(t *testing.T) {
	c := NewBraille(10, 5, 2, black)
	w, h := c.Size()
	if w != 40 || h != 40 {
		t.Errorf("expected 40x40, got %.0fx%.0f", w, h)
	}

	c.SetCells(20, 5)
	w, _ = c.Size()
	if w != 80 {
		t.Errorf("expected width 80 after resize, got %.0f", w)
	}
}

func TestBrailleSetAndClear(t *testing.T) {
	c := NewBraille(2, 1, 1, black)
	c.Set(0, 0, white, 1)
	c.Set(3, 3, white, 1)

	r, _, _ := c.Cell(0, 0)
	if r != rune(brailleBase+0x1) {
		t.Errorf("expected dot 1, got %U", r)
	}
	r, _, _ = c.Cell(1, 0)
	if r != rune(brailleBase+0x80) {
		t.Errorf("expected dot 8, got %U", r)
	}

	c.Set(-1, 0, white, 1)
	c.Set(100, 100, white, 1)

	c.Clear()
	if got := c.String(); got != strings.Repeat(string(rune(brailleBase)), 2)+"\n" {
		t.Errorf("expected blank canvas, got %q", got)
	}
}

func TestBrailleStrokeLine(t *testing.T) {
	c := NewBraille(4, 1, 1, black)
	c.SetAlpha(1)
	c.SetStroke(white)
	c.BeginPath()
	c.MoveTo(0, 1)
	c.LineTo(7, 1)
	c.Stroke()

	for col := 0; col < 4; col++ {
		r, ic, alpha := c.Cell(col, 0)
		if r != rune(brailleBase+0x2+0x10) {
			t.Errorf("cell %d: expected row-2 dots, got %U", col, r)
		}
		if ic != white || alpha != 1 {
			t.Errorf("cell %d: unexpected ink %v %.2f", col, ic, alpha)
		}
	}
}

func TestBrailleFillRectRotated(t *testing.T) {
	c := NewBraille(10, 5, 1, black)
	c.SetAlpha(1)
	c.SetFill(white)

	c.Save()
	c.Translate(10, 10)
	c.Rotate(math.Pi / 4)
	c.FillRect(-3, -3, 6, 6)
	c.Restore()

	r, _, _ := c.Cell(5, 2)
	if r == rune(brailleBase) {
		t.Error("expected the rotated square to cover its centre cell")
	}
	r, _, _ = c.Cell(0, 0)
	if r != rune(brailleBase) {
		t.Errorf("expected corner untouched, got %U", r)
	}

	// restore must drop the transform
	c.Clear()
	c.FillRect(0, 0, 2, 4)
	r, _, _ = c.Cell(0, 0)
	if r != rune(brailleBase+0xff) {
		t.Errorf("expected full cell at origin, got %U", r)
	}
}

func TestBrailleFaintInkSkipped(t *testing.T) {
	c := NewBraille(2, 1, 1, black)
	c.SetAlpha(MinAlpha / 2)
	c.SetFill(white)
	c.FillRect(0, 0, 4, 4)
	c.FillText("x", 0, 0, 12)

	if got := c.String(); strings.Trim(got, string(rune(brailleBase))+"\n") != "" {
		t.Errorf("expected nothing drawn, got %q", got)
	}
}

func TestBrailleFillText(t *testing.T) {
	c := NewBraille(8, 2, 1, black)
	c.SetFill(white)

	c.SetAlpha(0.5)
	c.FillText("const", 2, 4, 12)
	c.SetAlpha(0.2)
	c.FillText("xx", 2, 4, 12)

	row := strings.Split(c.String(), "\n")[1]
	if !strings.HasPrefix(string([]rune(row)[1:]), "const") {
		t.Errorf("expected stronger text to win, got %q", row)
	}
}

func TestBrailleRenderColour(t *testing.T) {
	c := NewBraille(1, 1, 1, black)
	if got := c.Blend(white, 1); got != "#ffffff" {
		t.Errorf("expected full ink to be white, got %s", got)
	}
	if got := c.Blend(white, 0); got != "#000000" {
		t.Errorf("expected zero ink to be background, got %s", got)
	}

	c.SetAlpha(1)
	c.SetFill(white)
	c.FillText("x", 0, 0, 12)
	if !strings.Contains(c.Render(), "x") {
		t.Error("expected rendered output to contain the glyph")
	}
}
