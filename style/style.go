// Package style implements the cascade: matching CSS rules against DOM
// elements and folding their declarations into a per-node property map.
//
// Spec references:
// - CSS 2.1 §6 Assigning property values, cascading, and inheritance
package style

import (
	"sort"

	"github.com/lukehoban/browser/css"
	"github.com/lukehoban/browser/dom"
)

// StyledNode is the DOM's parallel tree: one node per DOM node, holding
// only the specified property values for that node. Text and comment
// nodes always have an empty Styles map.
type StyledNode struct {
	Node     *dom.Node
	Styles   map[string]css.Value
	Children []*StyledNode
}

// Value returns the specified value of a property, if present.
func (s *StyledNode) Value(name string) (css.Value, bool) {
	v, ok := s.Styles[name]
	return v, ok
}

// Lookup returns the value of name, falling back to the shorthand
// property fallback, falling back to def. This is how the layout
// engine resolves e.g. margin-left against margin against 0px,
// without the style resolver ever expanding shorthand into longhand
// keys itself.
func (s *StyledNode) Lookup(name, fallback string, def css.Value) css.Value {
	if v, ok := s.Value(name); ok {
		return v
	}
	if v, ok := s.Value(fallback); ok {
		return v
	}
	return def
}

// Display is the box display kind derived from the "display" property.
type Display int

const (
	// DisplayInline is the default when "display" is absent or
	// unrecognized.
	DisplayInline Display = iota
	// DisplayBlock corresponds to the keyword "block".
	DisplayBlock
	// DisplayNone corresponds to the keyword "none"; such nodes are not
	// laid out.
	DisplayNone
)

// Display derives the display kind per spec.md §4.4.1: keyword "block"
// -> Block, "none" -> None, anything else (or absent) -> Inline.
func (s *StyledNode) Display() Display {
	v, ok := s.Value("display")
	if !ok || v.Kind != css.KeywordKind {
		return DisplayInline
	}
	switch v.Keyword {
	case "block":
		return DisplayBlock
	case "none":
		return DisplayNone
	default:
		return DisplayInline
	}
}

// MatchedRule pairs a rule with the specificity of the selector that
// matched it.
type MatchedRule struct {
	Rule        *css.Rule
	Specificity Specificity
}

// Specificity is the (id-count, class-count, tag-count) triple,
// lexicographically ordered. There is no inline-style slot here — that
// cascade layer is an explicit Non-goal.
type Specificity struct {
	ID    int
	Class int
	Tag   int
}

// Less reports whether s is strictly less specific than other.
func (s Specificity) Less(other Specificity) bool {
	if s.ID != other.ID {
		return s.ID < other.ID
	}
	if s.Class != other.Class {
		return s.Class < other.Class
	}
	return s.Tag < other.Tag
}

// StyleTree walks a DOM tree and a stylesheet, producing a styled tree
// in document order.
func StyleTree(root *dom.Node, stylesheet *css.Stylesheet) *StyledNode {
	return styleNode(root, stylesheet)
}

func styleNode(node *dom.Node, stylesheet *css.Stylesheet) *StyledNode {
	styled := &StyledNode{
		Node:   node,
		Styles: make(map[string]css.Value),
	}

	if node.Type == dom.ElementNode {
		for _, matched := range matchRules(node, stylesheet) {
			for _, decl := range matched.Rule.Declarations {
				styled.Styles[decl.Property] = decl.Value
			}
		}
	}

	for _, child := range node.Children {
		styled.Children = append(styled.Children, styleNode(child, stylesheet))
	}

	return styled
}

// matchRules collects every rule with at least one matching selector,
// pairs it with the specificity of the first selector (in the rule's
// own order) that matched, and returns them sorted by specificity
// ascending. The sort is stable so that equal-specificity rules keep
// their stylesheet order, letting the caller apply declarations
// last-writer-wins and get the correct cascade result.
func matchRules(node *dom.Node, stylesheet *css.Stylesheet) []MatchedRule {
	var matched []MatchedRule
	for _, rule := range stylesheet.Rules {
		for _, selector := range rule.Selectors {
			if matchesSimpleSelector(node, selector) {
				matched = append(matched, MatchedRule{
					Rule:        rule,
					Specificity: calculateSpecificity(selector),
				})
				break
			}
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Specificity.Less(matched[j].Specificity)
	})

	return matched
}

// matchesSimpleSelector reports whether every component the selector
// specifies (tag, id, each class) is present on node.
func matchesSimpleSelector(node *dom.Node, selector *css.SimpleSelector) bool {
	if selector.TagName != "" && selector.TagName != node.Data {
		return false
	}
	if selector.ID != "" && selector.ID != node.ID() {
		return false
	}
	if len(selector.Classes) > 0 {
		nodeClasses := node.Classes()
		for _, want := range selector.Classes {
			found := false
			for _, have := range nodeClasses {
				if have == want {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}
	return true
}

func calculateSpecificity(selector *css.SimpleSelector) Specificity {
	spec := Specificity{}
	if selector.ID != "" {
		spec.ID = 1
	}
	spec.Class = len(selector.Classes)
	if selector.TagName != "" {
		spec.Tag = 1
	}
	return spec
}
