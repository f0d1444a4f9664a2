package export

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/gif"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	"github.com/jenafy/cardfx/internal/fx"
	"github.com/jenafy/cardfx/internal/surface"
)

var ErrNoFrames = errors.New("export: no frames")

// Capture runs scene on a raster for n frames and keeps a copy of every
// every-th frame. Observers see every frame.
func Capture(ctx context.Context, scene fx.Scene, r *surface.Raster, n, every int, obs ...fx.Observer) ([]*image.RGBA, error) {
	if every < 1 {
		every = 1
	}

	runner := fx.NewRunner(scene)
	for _, o := range obs {
		runner.AddObserver(o)
	}
	if err := runner.Start(r, nil); err != nil {
		return nil, err
	}
	defer runner.Stop()

	frames := make([]*image.RGBA, 0, n/every+1)
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return frames, err
		}
		if !runner.Step() {
			break
		}
		if i%every == 0 || i == n {
			frames = append(frames, cloneRGBA(r.Image()))
		}
	}
	return frames, nil
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}

// EncodeGIF writes frames as a looping animation. delay is in 100ths of a
// second per frame.
func EncodeGIF(w io.Writer, frames []*image.RGBA, delay int) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}

	anim := gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		b := frame.Bounds()
		img := image.NewPaletted(b, palette.Plan9)
		draw.FloydSteinberg.Draw(img, b, frame, b.Min)
		anim.Image = append(anim.Image, img)
		anim.Delay = append(anim.Delay, delay)
	}
	return gif.EncodeAll(w, &anim)
}

// EncodePNG writes the last frame.
func EncodePNG(w io.Writer, frames []*image.RGBA) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}
	return png.Encode(w, frames[len(frames)-1])
}

// WriteFile picks the encoder from the file extension.
func WriteFile(path string, frames []*image.RGBA, delay int) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".gif" && ext != ".png" {
		return fmt.Errorf("export: unsupported format %q", ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if ext == ".gif" {
		err = EncodeGIF(f, frames, delay)
	} else {
		err = EncodePNG(f, frames)
	}
	if err != nil {
		return err
	}
	return f.Close()
}

// DelayFor converts a frame rate and capture stride to a GIF delay.
func DelayFor(fps, every int) int {
	if fps <= 0 {
		fps = 60
	}
	if every < 1 {
		every = 1
	}
	d := 100 * every / fps
	if d < 2 {
		d = 2
	}
	return d
}
