// Package pipeline drives the four core stages — HTML parse, CSS
// parse, style resolution, layout+paint — end to end and stops at the
// first error. It is the one place that knows the stage order; every
// stage's output is an immutable input to the next, per spec.md §2.
package pipeline

import (
	"fmt"
	"os"

	"github.com/lukehoban/browser/css"
	"github.com/lukehoban/browser/dom"
	"github.com/lukehoban/browser/html"
	"github.com/lukehoban/browser/layout"
	"github.com/lukehoban/browser/paint"
	"github.com/lukehoban/browser/render"
	"github.com/lukehoban/browser/style"
)

// Result holds every intermediate tree the pipeline produced, so a
// caller (the CLI's render command, its inspect subcommand, or a test)
// can look at any stage without re-running the earlier ones.
type Result struct {
	DOM     *dom.Node
	Sheet   *css.Stylesheet
	Styled  *style.StyledNode
	Box     *layout.LayoutBox
	Display paint.DisplayList
	Width   int
	Height  int
}

// Canvas rasterizes the result's display list at its viewport size.
func (r *Result) Canvas() *render.Canvas {
	return render.Paint(r.Display, r.Width, r.Height)
}

// Run reads htmlPath and cssPath, then executes parse -> style ->
// layout -> paint in order, returning the first error encountered.
// The user-agent stylesheet (style.DefaultUserAgentStylesheet) is
// applied before the page stylesheet, giving common elements their
// default display per spec.md §4.4.1's fallback rule.
func Run(htmlPath, cssPath string, width, height int) (*Result, error) {
	htmlSrc, err := os.ReadFile(htmlPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", htmlPath, err)
	}
	cssSrc, err := os.ReadFile(cssPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", cssPath, err)
	}
	return RunSource(string(htmlSrc), string(cssSrc), width, height)
}

// RunSource runs the pipeline directly over in-memory sources, for
// callers (tests, the inspect subcommand) that already have the text.
func RunSource(htmlSrc, cssSrc string, width, height int) (*Result, error) {
	domRoot, err := html.Parse(htmlSrc)
	if err != nil {
		return nil, err
	}

	uaSheet, err := style.DefaultUserAgentStylesheet()
	if err != nil {
		return nil, err
	}
	pageSheet, err := css.Parse(cssSrc)
	if err != nil {
		return nil, err
	}
	sheet := &css.Stylesheet{Rules: append(append([]*css.Rule{}, uaSheet.Rules...), pageSheet.Rules...)}

	styled := style.StyleTree(domRoot, sheet)

	viewport := layout.Dimensions{Content: layout.Rect{Width: float64(width), Height: float64(height)}}
	box, err := layout.LayoutTree(styled, viewport)
	if err != nil {
		return nil, err
	}

	display := paint.BuildDisplayList(box)

	return &Result{
		DOM:     domRoot,
		Sheet:   sheet,
		Styled:  styled,
		Box:     box,
		Display: display,
		Width:   width,
		Height:  height,
	}, nil
}
