// Package surface provides [fx.Surface] implementations:
//
//   - [Braille]: terminal canvas, 2x4 dots per cell, coloured with lipgloss
//   - [Raster]: headless RGBA image via the tfriedel6/canvas software backend
//   - [Recorder]: counts draw calls without drawing anything
package surface
