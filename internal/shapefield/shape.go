package shapefield

import (
	"image/color"
	"math"
)

// Kind is the outline a shape is drawn with.
type Kind int

const (
	Circle Kind = iota
	Square
	Triangle
	Wave
	Star

	numKinds = 5
)

func (k Kind) String() string {
	switch k {
	case Circle:
		return "circle"
	case Square:
		return "square"
	case Triangle:
		return "triangle"
	case Wave:
		return "wave"
	case Star:
		return "star"
	default:
		return "unknown"
	}
}

// Shape is one persistent figure. Only position, velocity, rotation and
// connections change after creation.
type Shape struct {
	ID       int
	X, Y     float64
	VX, VY   float64
	Size     float64
	Rotation float64
	Spin     float64
	Kind     Kind
	Color    color.RGBA
	Opacity  float64
	// Connections lists the indices of shapes within the proximity
	// threshold in the current frame.
	Connections []int
}

func (s *Shape) clone() Shape {
	c := *s
	c.Connections = append([]int(nil), s.Connections...)
	return c
}

// step advances rotation and position and reflects velocity at the bounds.
func (s *Shape) step(w, h float64) {
	s.Rotation += s.Spin
	s.X, s.VX = reflect(s.X+s.VX, s.VX, s.Size, w)
	s.Y, s.VY = reflect(s.Y+s.VY, s.VY, s.Size, h)
}

// reflect keeps pos within [size/2, dim-size/2]. An overshoot is mirrored
// back inside and the velocity is pointed inward, so it flips once per
// crossing.
func reflect(pos, vel, size, dim float64) (float64, float64) {
	lo, hi := size/2, dim-size/2
	if hi < lo {
		// narrower than the shape: hold it on the centre line
		return dim / 2, vel
	}

	// after a shrink the mirror can land past the far edge; pin to the
	// edge that was crossed instead
	switch {
	case pos < lo:
		pos = lo + (lo - pos)
		if pos > hi {
			pos = lo
		}
		vel = math.Abs(vel)
	case pos > hi:
		pos = hi - (pos - hi)
		if pos < lo {
			pos = hi
		}
		vel = -math.Abs(vel)
	}
	return pos, vel
}

// InBounds reports whether the shape lies inside a w×h surface.
func (s *Shape) InBounds(w, h float64) bool {
	half := s.Size / 2
	inX := s.X >= half && s.X <= w-half
	inY := s.Y >= half && s.Y <= h-half
	if w < s.Size {
		inX = true
	}
	if h < s.Size {
		inY = true
	}
	return inX && inY
}
