// Package render rasterizes a display list into a pixel canvas and
// exports it as PNG. This is the "rasterization/export sink"
// collaborator spec.md §1 calls out as outside the core: it consumes
// the paint package's display-list contract, it does not produce one.
package render

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/lukehoban/browser/layout"
	"github.com/lukehoban/browser/paint"
)

// Canvas is a width x height grid of pixels, row-major, top to
// bottom, left to right.
type Canvas struct {
	Width  int
	Height int
	Pixels []color.RGBA
}

// NewCanvas creates a canvas filled with opaque white, per spec.md
// §4.4.4's rasterizer contract.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{Width: width, Height: height, Pixels: make([]color.RGBA, width*height)}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for i := range c.Pixels {
		c.Pixels[i] = white
	}
	return c
}

func (c *Canvas) setPixel(x, y int, col color.RGBA) {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return
	}
	c.Pixels[y*c.Width+x] = col
}

// Paint rasterizes list onto a new width x height canvas: each
// command's rectangle is clipped to the canvas bounds, then every
// pixel inside the clipped range is overwritten with the command's
// color. Alpha compositing is deliberately not implemented — later
// commands simply overwrite earlier ones, matching spec.md §4.4.4.
// Paint is a pure function of list and bounds: repeated calls over the
// same display list produce byte-identical canvases.
func Paint(list paint.DisplayList, width, height int) *Canvas {
	canvas := NewCanvas(width, height)
	for _, cmd := range list {
		switch c := cmd.(type) {
		case paint.SolidColor:
			fillRect(canvas, c.Rect, paint.ToRGBA(c.Color))
		case paint.Text:
			fillRect(canvas, c.Rect, paint.ToRGBA(c.Color))
		}
	}
	return canvas
}

func fillRect(canvas *Canvas, rect layout.Rect, col color.RGBA) {
	x0 := clampInt(int(rect.X), 0, canvas.Width)
	y0 := clampInt(int(rect.Y), 0, canvas.Height)
	x1 := clampInt(int(rect.X+rect.Width), 0, canvas.Width)
	y1 := clampInt(int(rect.Y+rect.Height), 0, canvas.Height)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			canvas.setPixel(x, y, col)
		}
	}
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

// SavePNG encodes the canvas as a PNG file at path.
func (c *Canvas) SavePNG(path string) error {
	img := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			img.SetRGBA(x, y, c.Pixels[y*c.Width+x])
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
