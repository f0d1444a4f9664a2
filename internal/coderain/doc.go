// Package coderain implements the developer card backdrop: code glyphs
// rising from the bottom edge with fading trails, over faint circuit
// lines and background digit speckle.
//
// Particle attributes come from the content [fx.Rand] passed to [New];
// the decorative layers use a separate noise source (see [WithNoise]) and
// are regenerated every frame.
package coderain
