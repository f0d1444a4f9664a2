// Package shapefield implements the designer card backdrop: a fixed
// population of slowly drifting geometric shapes linked by proximity
// lines, over an isometric grid and a golden-angle spiral.
package shapefield
