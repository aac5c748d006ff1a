// Package layout implements the CSS 2.1 block/inline visual formatting
// model: styled tree + viewport -> a tree of boxes with computed
// geometry.
//
// Spec references:
// - CSS 2.1 §8 Box model
// - CSS 2.1 §9.2, §9.4 Block/inline formatting contexts
// - CSS 2.1 §10.3.3, §10.6.3 Width/height calculation
package layout

import (
	"github.com/lukehoban/browser/css"
	"github.com/lukehoban/browser/dom"
	"github.com/lukehoban/browser/log"
	"github.com/lukehoban/browser/style"
)

// BoxType is the tag of a LayoutBox: Block and Inline boxes carry a
// backing styled node; Anonymous boxes exist only to group consecutive
// inline children of a block box and carry none.
type BoxType int

const (
	// BlockBox is a block-level box backed by a styled node.
	BlockBox BoxType = iota
	// InlineBox is an inline-level box backed by a styled node.
	InlineBox
	// AnonymousBox groups a run of inline children under a block
	// parent. It has no backing styled node.
	AnonymousBox
)

func (t BoxType) String() string {
	switch t {
	case BlockBox:
		return "block"
	case InlineBox:
		return "inline"
	case AnonymousBox:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Rect is an axis-aligned rectangle in CSS pixels.
type Rect struct {
	X, Y, Width, Height float64
}

// Expanded returns rect grown outward by edge on all four sides.
func (r Rect) Expanded(edge EdgeSizes) Rect {
	return Rect{
		X:      r.X - edge.Left,
		Y:      r.Y - edge.Top,
		Width:  r.Width + edge.Left + edge.Right,
		Height: r.Height + edge.Top + edge.Bottom,
	}
}

// EdgeSizes holds the four edge widths of one box-model layer
// (margin, border, or padding).
type EdgeSizes struct {
	Top, Right, Bottom, Left float64
}

// Dimensions is the full box-model geometry of a box: a content
// rectangle plus the three surrounding edge layers.
type Dimensions struct {
	Content Rect
	Padding EdgeSizes
	Border  EdgeSizes
	Margin  EdgeSizes
}

// PaddingBox returns the content rect expanded by padding.
func (d Dimensions) PaddingBox() Rect { return d.Content.Expanded(d.Padding) }

// BorderBox returns the padding box expanded by the border.
func (d Dimensions) BorderBox() Rect { return d.PaddingBox().Expanded(d.Border) }

// MarginBox returns the border box expanded by the margin.
func (d Dimensions) MarginBox() Rect { return d.BorderBox().Expanded(d.Margin) }

// LayoutBox is one node of the box tree: a type tag, computed
// geometry, and ordered children. Block and Inline boxes borrow a
// reference to the styled node that produced them; Anonymous boxes
// leave StyledNode nil.
type LayoutBox struct {
	BoxType    BoxType
	StyledNode *style.StyledNode
	Dimensions Dimensions
	Children   []*LayoutBox
}

// LayoutError reports the one fatal condition layout can raise: a
// root styled node whose display is none.
type LayoutError struct {
	Message string
}

func (e *LayoutError) Error() string { return "layout: " + e.Message }

// LayoutTree builds and computes the box tree for styledRoot inside
// viewport. The containing block's content height starts at zero so
// each top-level box is positioned from the top of the viewport down,
// per spec.md §4.4.3.
func LayoutTree(styledRoot *style.StyledNode, viewport Dimensions) (*LayoutBox, error) {
	viewport.Content.Height = 0

	root, err := buildLayoutTree(styledRoot)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, &LayoutError{Message: "root element has display: none"}
	}
	root.layout(viewport)
	return root, nil
}

// buildLayoutTree constructs the box tree per spec.md §4.4.2. It
// returns (nil, nil) for any display:none node; LayoutTree turns that
// result for the root into a *LayoutError, and addChildren never calls
// it for a display:none child.
func buildLayoutTree(node *style.StyledNode) (*LayoutBox, error) {
	switch node.Display() {
	case style.DisplayBlock:
		box := &LayoutBox{BoxType: BlockBox, StyledNode: node}
		if err := addChildren(box, node); err != nil {
			return nil, err
		}
		return box, nil
	case style.DisplayInline:
		box := &LayoutBox{BoxType: InlineBox, StyledNode: node}
		if err := addChildren(box, node); err != nil {
			return nil, err
		}
		return box, nil
	default: // DisplayNone
		if node.Node != nil && node.Node.Type == dom.ElementNode {
			log.Debugf("layout: skipping display:none element <%s>", node.Node.Data)
		}
		return nil, nil
	}
}

// addChildren appends each styled child of node to box, routing block
// children directly and inline children through the inline-container
// rule (spec.md §4.4.2).
func addChildren(box *LayoutBox, node *style.StyledNode) error {
	for _, child := range node.Children {
		if child.Node != nil && child.Node.Type == dom.TextNode && isBlankText(child.Node.Data) {
			log.Debug("layout: skipping whitespace-only text node")
			continue
		}
		switch child.Display() {
		case style.DisplayBlock:
			childBox, err := buildLayoutTree(child)
			if err != nil {
				return err
			}
			box.Children = append(box.Children, childBox)
		case style.DisplayInline:
			childBox, err := buildLayoutTree(child)
			if err != nil {
				return err
			}
			box.inlineContainer().Children = append(box.inlineContainer().Children, childBox)
		default: // DisplayNone
			if child.Node != nil && child.Node.Type == dom.ElementNode {
				log.Debugf("layout: skipping display:none element <%s>", child.Node.Data)
			}
		}
	}
	return nil
}

func isBlankText(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}

// inlineContainer returns the box that a new inline child of box
// should be appended to, per spec.md §4.4.2's "Inline container rule".
// If box is itself Inline or Anonymous it is its own container. If box
// is Block, its last child is reused if it is already Anonymous,
// otherwise a fresh Anonymous box is appended and used — this
// guarantees no two Anonymous boxes ever sit adjacent under the same
// Block parent.
func (box *LayoutBox) inlineContainer() *LayoutBox {
	switch box.BoxType {
	case InlineBox, AnonymousBox:
		return box
	case BlockBox:
		if n := len(box.Children); n > 0 && box.Children[n-1].BoxType == AnonymousBox {
			return box.Children[n-1]
		}
		anon := &LayoutBox{BoxType: AnonymousBox}
		box.Children = append(box.Children, anon)
		return anon
	default:
		return box
	}
}

// layout dispatches geometry computation by box type.
func (box *LayoutBox) layout(containingBlock Dimensions) {
	switch box.BoxType {
	case BlockBox:
		box.layoutBlock(containingBlock)
	case InlineBox:
		box.layoutInline(containingBlock)
	case AnonymousBox:
		box.layoutAnonymous(containingBlock)
	}
}

// layoutBlock implements spec.md §4.4.3's block algorithm in order:
// width, vertical edges, position, children, height.
func (box *LayoutBox) layoutBlock(containingBlock Dimensions) {
	box.calculateBlockWidth(containingBlock)
	box.calculateBlockPosition(containingBlock)
	box.layoutBlockChildren()
	box.calculateBlockHeight()
}

// readEdges reads the twelve box-model edge properties off node, applying the
// shorthand fallback named for each: margin-<side> falls back to
// margin, border-<side>-width falls back to border-width, padding-<side>
// falls back to padding; the final fallback for all is 0px.
type edgeValues struct {
	marginTop, marginRight, marginBottom, marginLeft     css.Value
	borderTop, borderRight, borderBottom, borderLeft     css.Value
	paddingTop, paddingRight, paddingBottom, paddingLeft css.Value
}

func readEdges(node *style.StyledNode) edgeValues {
	zero := css.Length(0)
	return edgeValues{
		marginTop:    node.Lookup("margin-top", "margin", zero),
		marginRight:  node.Lookup("margin-right", "margin", zero),
		marginBottom: node.Lookup("margin-bottom", "margin", zero),
		marginLeft:   node.Lookup("margin-left", "margin", zero),

		borderTop:    node.Lookup("border-top-width", "border-width", zero),
		borderRight:  node.Lookup("border-right-width", "border-width", zero),
		borderBottom: node.Lookup("border-bottom-width", "border-width", zero),
		borderLeft:   node.Lookup("border-left-width", "border-width", zero),

		paddingTop:    node.Lookup("padding-top", "padding", zero),
		paddingRight:  node.Lookup("padding-right", "padding", zero),
		paddingBottom: node.Lookup("padding-bottom", "padding", zero),
		paddingLeft:   node.Lookup("padding-left", "padding", zero),
	}
}

// calculateBlockWidth implements CSS 2.1 §10.3.3 as simplified by
// spec.md §4.4.3 step 1: resolve width and the four horizontal edges,
// distributing any underflow (or absorbing any overflow) per the
// (width-auto, margin-left-auto, margin-right-auto) case table.
func (box *LayoutBox) calculateBlockWidth(containingBlock Dimensions) {
	node := box.StyledNode
	edges := readEdges(node)

	width := node.Lookup("width", "", css.Auto)

	marginLeft := edges.marginLeft
	marginRight := edges.marginRight

	total := width.ToPx() + marginLeft.ToPx() + marginRight.ToPx() +
		edges.borderLeft.ToPx() + edges.borderRight.ToPx() +
		edges.paddingLeft.ToPx() + edges.paddingRight.ToPx()

	widthAuto := width.IsAuto()
	marginLeftAuto := marginLeft.IsAuto()
	marginRightAuto := marginRight.IsAuto()

	if !widthAuto && total > containingBlock.Content.Width {
		if marginLeftAuto {
			marginLeft = css.Length(0)
			marginLeftAuto = false
		}
		if marginRightAuto {
			marginRight = css.Length(0)
			marginRightAuto = false
		}
	}

	underflow := containingBlock.Content.Width - total

	switch {
	case !widthAuto && !marginLeftAuto && !marginRightAuto:
		marginRight = css.Length(marginRight.ToPx() + underflow)
	case !widthAuto && !marginLeftAuto && marginRightAuto:
		marginRight = css.Length(underflow)
	case !widthAuto && marginLeftAuto && !marginRightAuto:
		marginLeft = css.Length(underflow)
	case !widthAuto && marginLeftAuto && marginRightAuto:
		marginLeft = css.Length(underflow / 2)
		marginRight = css.Length(underflow / 2)
	default: // widthAuto
		if marginLeftAuto {
			marginLeft = css.Length(0)
		}
		if marginRightAuto {
			marginRight = css.Length(0)
		}
		if underflow >= 0 {
			width = css.Length(underflow)
		} else {
			width = css.Length(0)
			marginRight = css.Length(marginRight.ToPx() + underflow)
		}
	}

	box.Dimensions.Content.Width = width.ToPx()
	box.Dimensions.Padding.Left = edges.paddingLeft.ToPx()
	box.Dimensions.Padding.Right = edges.paddingRight.ToPx()
	box.Dimensions.Border.Left = edges.borderLeft.ToPx()
	box.Dimensions.Border.Right = edges.borderRight.ToPx()
	box.Dimensions.Margin.Left = marginLeft.ToPx()
	box.Dimensions.Margin.Right = marginRight.ToPx()
}

// calculateBlockPosition implements spec.md §4.4.3 steps 2-3: the
// vertical edges resolve straight from the properties (auto -> 0, no
// underflow distribution), then position the content box below the
// containing block's previously accumulated content height.
func (box *LayoutBox) calculateBlockPosition(containingBlock Dimensions) {
	node := box.StyledNode
	edges := readEdges(node)

	box.Dimensions.Margin.Top = edges.marginTop.ToPx()
	box.Dimensions.Margin.Bottom = edges.marginBottom.ToPx()
	box.Dimensions.Border.Top = edges.borderTop.ToPx()
	box.Dimensions.Border.Bottom = edges.borderBottom.ToPx()
	box.Dimensions.Padding.Top = edges.paddingTop.ToPx()
	box.Dimensions.Padding.Bottom = edges.paddingBottom.ToPx()

	box.Dimensions.Content.X = containingBlock.Content.X +
		box.Dimensions.Margin.Left + box.Dimensions.Border.Left + box.Dimensions.Padding.Left
	box.Dimensions.Content.Y = containingBlock.Content.Y + containingBlock.Content.Height +
		box.Dimensions.Margin.Top + box.Dimensions.Border.Top + box.Dimensions.Padding.Top
}

// layoutBlockChildren implements spec.md §4.4.3 step 4: lay out each
// child against this box's own dimensions as its containing block,
// growing this box's content height by each child's margin-box height
// in turn so the next child stacks below it.
func (box *LayoutBox) layoutBlockChildren() {
	for _, child := range box.Children {
		child.layout(box.Dimensions)
		box.Dimensions.Content.Height += child.Dimensions.MarginBox().Height
	}
}

// calculateBlockHeight implements spec.md §4.4.3 step 5: an explicit
// height overrides the accumulated value from laying out children;
// otherwise the accumulated value stands.
func (box *LayoutBox) calculateBlockHeight() {
	if h, ok := box.StyledNode.Value("height"); ok && h.Kind == css.LengthKind {
		box.Dimensions.Content.Height = h.Length
	}
}

// layoutInline implements spec.md §4.4.3's simplified inline
// algorithm: vertical edges resolve the same way as a block box, but
// width comes straight from the width property (default 0, no auto
// resolution), and the box is positioned to the right of the
// containing content rather than at its origin.
func (box *LayoutBox) layoutInline(containingBlock Dimensions) {
	node := box.StyledNode
	edges := readEdges(node)

	box.Dimensions.Margin.Top = edges.marginTop.ToPx()
	box.Dimensions.Margin.Bottom = edges.marginBottom.ToPx()
	box.Dimensions.Margin.Left = edges.marginLeft.ToPx()
	box.Dimensions.Margin.Right = edges.marginRight.ToPx()
	box.Dimensions.Border.Top = edges.borderTop.ToPx()
	box.Dimensions.Border.Bottom = edges.borderBottom.ToPx()
	box.Dimensions.Border.Left = edges.borderLeft.ToPx()
	box.Dimensions.Border.Right = edges.borderRight.ToPx()
	box.Dimensions.Padding.Top = edges.paddingTop.ToPx()
	box.Dimensions.Padding.Bottom = edges.paddingBottom.ToPx()
	box.Dimensions.Padding.Left = edges.paddingLeft.ToPx()
	box.Dimensions.Padding.Right = edges.paddingRight.ToPx()

	width := node.Lookup("width", "", css.Length(0)).ToPx()
	box.Dimensions.Content.Width = width

	box.Dimensions.Content.X = containingBlock.Content.X + containingBlock.Content.Width +
		box.Dimensions.Margin.Left + box.Dimensions.Border.Left + box.Dimensions.Padding.Left
	box.Dimensions.Content.Y = containingBlock.Content.Y +
		box.Dimensions.Margin.Top + box.Dimensions.Border.Top + box.Dimensions.Padding.Top

	box.layoutInlineChildren(containingBlock)

	if h, ok := node.Value("height"); ok && h.Kind == css.LengthKind {
		box.Dimensions.Content.Height = h.Length
	}
}

// layoutInlineChildren lays out this box's inline children left to
// right against containingBlock, accumulating width and wrapping to a
// new line (resetting x/width, advancing y) whenever a child would
// overflow the containing block's width. Line wrapping is the one
// piece of real inline-flow text-shaping work spec.md §4.4.3
// acknowledges and simplifies: no baseline alignment, no per-glyph
// measurement.
func (box *LayoutBox) layoutInlineChildren(containingBlock Dimensions) {
	var lineY float64
	var lineWidth float64
	for _, child := range box.Children {
		line := Dimensions{Content: Rect{
			X:      box.Dimensions.Content.X + lineWidth,
			Y:      box.Dimensions.Content.Y + lineY,
			Width:  0,
			Height: box.Dimensions.Content.Height,
		}}
		child.layout(line)

		childWidth := child.Dimensions.MarginBox().Width
		if lineWidth > 0 && lineWidth+childWidth > containingBlock.Content.Width {
			lineY += lineHeight(box)
			lineWidth = 0
			line.Content.X = box.Dimensions.Content.X
			line.Content.Y = box.Dimensions.Content.Y + lineY
			child.layout(line)
		}
		lineWidth += childWidth
	}
}

func lineHeight(box *LayoutBox) float64 {
	var max float64
	for _, child := range box.Children {
		if h := child.Dimensions.MarginBox().Height; h > max {
			max = h
		}
	}
	if max == 0 {
		return 1
	}
	return max
}

// layoutAnonymous implements spec.md §4.4.3's anonymous-box rule:
// position at the containing block's content origin, lay out inline
// children, and take on the containing block's content height (an
// anonymous box never grows its parent's height independently — its
// block parent accumulates height from the anonymous box's margin box
// like any other child).
func (box *LayoutBox) layoutAnonymous(containingBlock Dimensions) {
	box.Dimensions.Content.X = containingBlock.Content.X
	box.Dimensions.Content.Y = containingBlock.Content.Y

	box.layoutInlineChildren(containingBlock)

	box.Dimensions.Content.Height = containingBlock.Content.Height
}
