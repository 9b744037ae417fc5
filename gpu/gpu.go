// Package gpu is a reference draw.Signal collaborator: it opens an
// SDL2 window and blits pixels as they arrive on a channel. It is not
// part of the instruction-level core; a host that only wants to run
// programs and inspect registers never needs to import this package.
package gpu

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/image/bmp"

	"github.com/retrocore/lr35902/draw"
)

// Palette maps the four DMG shade indices to an RGB color. Index 0 is
// the lightest shade, 3 the darkest, matching the classic green-tinted
// LCD; a host wanting a different look installs its own Palette.
type Palette [4]sdl.Color

// DefaultPalette is the classic four-shade green palette.
var DefaultPalette = Palette{
	{R: 0x9B, G: 0xBC, B: 0x0F, A: 0xFF},
	{R: 0x8B, G: 0xAC, B: 0x0F, A: 0xFF},
	{R: 0x30, G: 0x62, B: 0x30, A: 0xFF},
	{R: 0x0F, G: 0x38, B: 0x0F, A: 0xFF},
}

// Screen owns an SDL window and surface and drains a draw.Signal
// channel onto it until the channel is closed.
type Screen struct {
	window  *sdl.Window
	surface *sdl.Surface
	pixels  []byte
	scale   int32
	pal     Palette
}

// Width and Height are the DMG's visible resolution in pixels.
const (
	Width  = 160
	Height = 144
)

// NewScreen creates an SDL window scale times the native resolution
// and returns a Screen ready to drain signals onto it. Callers must
// run NewScreen and Close inside sdl.Main/sdl.Do the same way the rest
// of an SDL2 program does; this package does not wrap that for them.
func NewScreen(scale int32, pal Palette) (*Screen, error) {
	if scale < 1 {
		scale = 1
	}
	win, err := sdl.CreateWindow("lr35902", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		Width*scale, Height*scale, sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}
	surf, err := win.GetSurface()
	if err != nil {
		win.Destroy()
		return nil, fmt.Errorf("getting surface: %w", err)
	}
	return &Screen{
		window:  win,
		surface: surf,
		pixels:  surf.Pixels(),
		scale:   scale,
		pal:     pal,
	}, nil
}

// Close tears down the window.
func (s *Screen) Close() {
	s.window.Destroy()
}

// set pokes a single scaled pixel block directly into the surface
// buffer, avoiding the per-pixel color.Color conversion a generic
// image.Image.Set would pay.
func (s *Screen) set(x, y int32, c sdl.Color) {
	for dy := int32(0); dy < s.scale; dy++ {
		for dx := int32(0); dx < s.scale; dx++ {
			px := x*s.scale + dx
			py := y*s.scale + dy
			i := py*s.surface.Pitch + px*int32(s.surface.Format.BytesPerPixel)
			s.pixels[i+0] = c.R
			s.pixels[i+1] = c.G
			s.pixels[i+2] = c.B
			s.pixels[i+3] = c.A
		}
	}
}

// Drain reads signals off sigs until it is closed, painting each onto
// the surface and calling present after every signal. Run this on the
// SDL thread (inside sdl.Do) the same way vcs_main's FrameDone does.
func (s *Screen) Drain(sigs <-chan draw.Signal, present func()) {
	for sig := range sigs {
		s.set(int32(sig.X), int32(sig.Y), s.pal[sig.Color&0x3])
		if present != nil {
			present()
		}
	}
}

// Present pushes the surface to the window. Call it after a batch of
// Drain-driven writes, not per-pixel, to avoid flooding SDL with
// redundant UpdateSurface calls.
func (s *Screen) Present() {
	s.window.UpdateSurface()
}

// SaveScreenshot encodes the current surface contents as a BMP and
// writes it to path. Unlike Drain/Present this doesn't touch SDL at
// all once surf.Pixels() has been read, so it's safe to call from
// outside the SDL thread as long as nothing is concurrently resizing
// the window.
func (s *Screen) SaveScreenshot(path string) error {
	w := int(s.surface.W)
	h := int(s.surface.H)
	bpp := int(s.surface.Format.BytesPerPixel)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*int(s.surface.Pitch) + x*bpp
			img.Set(x, y, color.RGBA{
				R: s.pixels[i+0],
				G: s.pixels[i+1],
				B: s.pixels[i+2],
				A: s.pixels[i+3],
			})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	return bmp.Encode(f, img)
}
