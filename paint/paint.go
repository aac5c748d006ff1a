// Package paint flattens a layout box tree into an ordered display
// list of primitive paint commands. Rasterizing that list into a pixel
// canvas is done by the render package.
//
// Spec references:
// - CSS 2.1 §14 Colors and backgrounds
// - CSS 2.1 §8.5 Border properties
package paint

import (
	"image/color"

	"github.com/lukehoban/browser/css"
	"github.com/lukehoban/browser/dom"
	"github.com/lukehoban/browser/layout"
	"github.com/lukehoban/browser/style"
)

// defaultTextColor is used when a text box's own styled node has no
// "color" property. The original source hardcodes black; spec.md §4.4.4
// notes an implementation should honor "color" where present, which
// BuildDisplayList does via the styled node's own Styles map.
var defaultTextColor = css.Color{R: 0, G: 0, B: 0, A: 255}

// Command is one entry in a display list: either a SolidColor fill or
// a Text draw. Both carry the rectangle they paint into.
type Command interface {
	isCommand()
}

// SolidColor fills rect with a single flat color.
type SolidColor struct {
	Color css.Color
	Rect  layout.Rect
}

func (SolidColor) isCommand() {}

// Text draws a string as a flat color rectangle — spec.md explicitly
// treats text painting as a color fill of the text's box, not shaped
// glyphs; font metrics and shaping are a Non-goal.
type Text struct {
	Text  string
	Color css.Color
	Rect  layout.Rect
}

func (Text) isCommand() {}

// DisplayList is an ordered sequence of paint commands in paint order:
// earlier entries are drawn first, later entries land on top.
type DisplayList []Command

// BuildDisplayList walks root in preorder, per spec.md §4.4.4: for
// each box, emit a background fill if one is set, emit four border
// strips if a border color is set, emit a text fill if the box is an
// Inline box backed by a text node, then recurse into children.
func BuildDisplayList(root *layout.LayoutBox) DisplayList {
	var list DisplayList
	appendBoxCommands(&list, root)
	return list
}

func appendBoxCommands(list *DisplayList, box *layout.LayoutBox) {
	if box.StyledNode != nil {
		if bg, ok := colorValue(box.StyledNode, "background"); ok {
			*list = append(*list, SolidColor{Color: bg, Rect: box.Dimensions.BorderBox()})
		}
		if borderColor, ok := colorValue(box.StyledNode, "border-color"); ok {
			appendBorders(list, box, borderColor)
		}
		if box.BoxType == layout.InlineBox && box.StyledNode.Node != nil &&
			box.StyledNode.Node.Type == dom.TextNode {
			*list = append(*list, Text{
				Text:  box.StyledNode.Node.Data,
				Color: textColor(box),
				Rect:  box.Dimensions.BorderBox(),
			})
		}
	}
	for _, child := range box.Children {
		appendBoxCommands(list, child)
	}
}

// appendBorders emits the four border strips (left, right, top,
// bottom) of box's border box, each sized by the corresponding border
// width, per spec.md §4.4.4 step 2.
func appendBorders(list *DisplayList, box *layout.LayoutBox, borderColor css.Color) {
	d := box.Dimensions
	border := d.BorderBox()

	*list = append(*list,
		SolidColor{ // left
			Color: borderColor,
			Rect:  layout.Rect{X: border.X, Y: border.Y, Width: d.Border.Left, Height: border.Height},
		},
		SolidColor{ // right
			Color: borderColor,
			Rect: layout.Rect{
				X: border.X + border.Width - d.Border.Right, Y: border.Y,
				Width: d.Border.Right, Height: border.Height,
			},
		},
		SolidColor{ // top
			Color: borderColor,
			Rect:  layout.Rect{X: border.X, Y: border.Y, Width: border.Width, Height: d.Border.Top},
		},
		SolidColor{ // bottom
			Color: borderColor,
			Rect: layout.Rect{
				X: border.X, Y: border.Y + border.Height - d.Border.Bottom,
				Width: border.Width, Height: d.Border.Bottom,
			},
		},
	)
}

func colorValue(node *style.StyledNode, name string) (css.Color, bool) {
	v, ok := node.Value(name)
	if !ok || v.Kind != css.ColorKind {
		return css.Color{}, false
	}
	return v.Color, true
}

// textColor resolves the "color" property off box's own styled node,
// falling back to black. Inheritance is an explicit Non-goal, so an
// ancestor's "color" never applies — only what is specified directly
// on the text's own styled node (which, per the style resolver, is
// always empty for a text node, making black the practical default;
// this stays general in case a future resolver does set it).
func textColor(box *layout.LayoutBox) css.Color {
	if c, ok := colorValue(box.StyledNode, "color"); ok {
		return c
	}
	return defaultTextColor
}

// ToRGBA converts a css.Color to the standard library's color.RGBA.
func ToRGBA(c css.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
