package render

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/lukehoban/browser/css"
	"github.com/lukehoban/browser/html"
	"github.com/lukehoban/browser/layout"
	"github.com/lukehoban/browser/paint"
	"github.com/lukehoban/browser/style"
)

func TestNewCanvasIsOpaqueWhite(t *testing.T) {
	c := NewCanvas(10, 5)
	if c.Width != 10 || c.Height != 5 {
		t.Fatalf("dimensions = %dx%d, want 10x5", c.Width, c.Height)
	}
	if len(c.Pixels) != 50 {
		t.Fatalf("len(Pixels) = %d, want 50", len(c.Pixels))
	}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for i, px := range c.Pixels {
		if px != white {
			t.Fatalf("pixel %d = %v, want white", i, px)
		}
	}
}

func TestPaintFillsSolidColorRect(t *testing.T) {
	list := paint.DisplayList{
		paint.SolidColor{Color: css.Color{R: 1, G: 2, B: 3, A: 255}, Rect: layout.Rect{X: 2, Y: 2, Width: 4, Height: 4}},
	}
	canvas := Paint(list, 10, 10)

	inside := canvas.Pixels[3*10+3]
	if inside != (color.RGBA{R: 1, G: 2, B: 3, A: 255}) {
		t.Errorf("inside pixel = %v, want filled color", inside)
	}
	outside := canvas.Pixels[0]
	if outside != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("outside pixel = %v, want white", outside)
	}
}

func TestPaintClipsToCanvasBounds(t *testing.T) {
	list := paint.DisplayList{
		paint.SolidColor{Color: css.Color{R: 9, G: 9, B: 9, A: 255}, Rect: layout.Rect{X: -5, Y: -5, Width: 100, Height: 100}},
	}
	// Must not panic despite the rect overrunning the canvas on every side.
	canvas := Paint(list, 10, 10)
	if canvas.Pixels[0] != (color.RGBA{R: 9, G: 9, B: 9, A: 255}) {
		t.Errorf("expected clipped fill to still cover the origin pixel")
	}
}

// Later commands paint over earlier ones — no alpha compositing.
func TestPaintLaterCommandsOverwriteEarlier(t *testing.T) {
	list := paint.DisplayList{
		paint.SolidColor{Color: css.Color{R: 255, A: 255}, Rect: layout.Rect{X: 0, Y: 0, Width: 10, Height: 10}},
		paint.SolidColor{Color: css.Color{B: 255, A: 255}, Rect: layout.Rect{X: 0, Y: 0, Width: 10, Height: 10}},
	}
	canvas := Paint(list, 10, 10)
	if canvas.Pixels[0] != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("expected the second command to win, got %v", canvas.Pixels[0])
	}
}

// Paint determinism: repeated calls over the same box tree produce
// byte-identical canvases.
func TestPaintDeterministic(t *testing.T) {
	doc, err := html.Parse(`<div></div>`)
	if err != nil {
		t.Fatalf("html.Parse: %v", err)
	}
	sheet, err := css.Parse(`div { display: block; width: 20px; height: 10px; background: #123456; }`)
	if err != nil {
		t.Fatalf("css.Parse: %v", err)
	}
	styled := style.StyleTree(doc, sheet)
	box, err := layout.LayoutTree(styled, layout.Dimensions{Content: layout.Rect{Width: 100, Height: 100}})
	if err != nil {
		t.Fatalf("LayoutTree: %v", err)
	}
	list := paint.BuildDisplayList(box)

	a := Paint(list, 100, 100)
	b := Paint(list, 100, 100)
	for i := range a.Pixels {
		if a.Pixels[i] != b.Pixels[i] {
			t.Fatalf("pixel %d differs between runs: %v vs %v", i, a.Pixels[i], b.Pixels[i])
		}
	}
}

func TestSavePNGWritesAFile(t *testing.T) {
	canvas := NewCanvas(4, 4)
	path := filepath.Join(t.TempDir(), "out.png")
	if err := canvas.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() == 0 {
		t.Error("expected a non-empty PNG file")
	}
}
