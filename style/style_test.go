package style

import (
	"testing"

	"github.com/lukehoban/browser/css"
	"github.com/lukehoban/browser/dom"
)

func TestMatchesSimpleSelector(t *testing.T) {
	tests := []struct {
		name     string
		node     *dom.Node
		selector *css.SimpleSelector
		expected bool
	}{
		{
			name:     "match tag name",
			node:     dom.NewElement("div"),
			selector: &css.SimpleSelector{TagName: "div"},
			expected: true,
		},
		{
			name:     "no match tag name",
			node:     dom.NewElement("div"),
			selector: &css.SimpleSelector{TagName: "p"},
			expected: false,
		},
		{
			name: "match ID",
			node: func() *dom.Node {
				n := dom.NewElement("div")
				n.SetAttribute("id", "header")
				return n
			}(),
			selector: &css.SimpleSelector{ID: "header"},
			expected: true,
		},
		{
			name: "no match ID",
			node: func() *dom.Node {
				n := dom.NewElement("div")
				n.SetAttribute("id", "header")
				return n
			}(),
			selector: &css.SimpleSelector{ID: "footer"},
			expected: false,
		},
		{
			name: "match class",
			node: func() *dom.Node {
				n := dom.NewElement("div")
				n.SetAttribute("class", "container")
				return n
			}(),
			selector: &css.SimpleSelector{Classes: []string{"container"}},
			expected: true,
		},
		{
			name: "match multiple classes",
			node: func() *dom.Node {
				n := dom.NewElement("div")
				n.SetAttribute("class", "container active main")
				return n
			}(),
			selector: &css.SimpleSelector{Classes: []string{"container", "active"}},
			expected: true,
		},
		{
			name: "no match class",
			node: func() *dom.Node {
				n := dom.NewElement("div")
				n.SetAttribute("class", "container")
				return n
			}(),
			selector: &css.SimpleSelector{Classes: []string{"footer"}},
			expected: false,
		},
		{
			name: "match tag and ID",
			node: func() *dom.Node {
				n := dom.NewElement("div")
				n.SetAttribute("id", "main")
				return n
			}(),
			selector: &css.SimpleSelector{TagName: "div", ID: "main"},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := matchesSimpleSelector(tt.node, tt.selector)
			if result != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestCalculateSpecificity(t *testing.T) {
	tests := []struct {
		name     string
		selector *css.SimpleSelector
		expected Specificity
	}{
		{
			name:     "element selector",
			selector: &css.SimpleSelector{TagName: "div"},
			expected: Specificity{ID: 0, Class: 0, Tag: 1},
		},
		{
			name:     "ID selector",
			selector: &css.SimpleSelector{ID: "header"},
			expected: Specificity{ID: 1, Class: 0, Tag: 0},
		},
		{
			name:     "class selector",
			selector: &css.SimpleSelector{Classes: []string{"container"}},
			expected: Specificity{ID: 0, Class: 1, Tag: 0},
		},
		{
			name:     "combined selector",
			selector: &css.SimpleSelector{TagName: "div", ID: "main", Classes: []string{"container", "active"}},
			expected: Specificity{ID: 1, Class: 2, Tag: 1},
		},
		{
			name:     "no selector parts",
			selector: &css.SimpleSelector{},
			expected: Specificity{ID: 0, Class: 0, Tag: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := calculateSpecificity(tt.selector)
			if result != tt.expected {
				t.Errorf("Expected %+v, got %+v", tt.expected, result)
			}
		})
	}
}

func TestSpecificityLess(t *testing.T) {
	tests := []struct {
		name     string
		s1       Specificity
		s2       Specificity
		expected bool
	}{
		{
			name:     "equal",
			s1:       Specificity{ID: 0, Class: 1, Tag: 1},
			s2:       Specificity{ID: 0, Class: 1, Tag: 1},
			expected: false,
		},
		{
			name:     "ID beats class and tag",
			s1:       Specificity{ID: 0, Class: 10, Tag: 10},
			s2:       Specificity{ID: 1, Class: 0, Tag: 0},
			expected: true,
		},
		{
			name:     "class beats tag",
			s1:       Specificity{ID: 0, Class: 0, Tag: 10},
			s2:       Specificity{ID: 0, Class: 1, Tag: 0},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s1.Less(tt.s2); got != tt.expected {
				t.Errorf("expected Less=%v, got %v", tt.expected, got)
			}
		})
	}
}

func TestStyleTree(t *testing.T) {
	doc := dom.NewDocument()
	div := dom.NewElement("div")
	div.SetAttribute("id", "main")
	div.SetAttribute("class", "container")
	p := dom.NewElement("p")
	text := dom.NewText("Hello")
	p.AppendChild(text)
	div.AppendChild(p)
	doc.AppendChild(div)

	stylesheet := &css.Stylesheet{
		Rules: []*css.Rule{
			{
				Selectors:    []*css.SimpleSelector{{TagName: "div"}},
				Declarations: []*css.Declaration{{Property: "display", Value: css.Keyword("block")}},
			},
			{
				Selectors:    []*css.SimpleSelector{{ID: "main"}},
				Declarations: []*css.Declaration{{Property: "background", Value: css.RGBA(0, 0, 255, 255)}},
			},
			{
				Selectors:    []*css.SimpleSelector{{Classes: []string{"container"}}},
				Declarations: []*css.Declaration{{Property: "width", Value: css.Length(10)}},
			},
		},
	}

	styledTree := StyleTree(doc, stylesheet)

	divStyled := styledTree.Children[0]
	if v, ok := divStyled.Value("display"); !ok || v != css.Keyword("block") {
		t.Errorf("expected display 'block', got %v (ok=%v)", v, ok)
	}
	if v, ok := divStyled.Value("background"); !ok || v != css.RGBA(0, 0, 255, 255) {
		t.Errorf("expected background blue, got %v (ok=%v)", v, ok)
	}
	if v, ok := divStyled.Value("width"); !ok || v != css.Length(10) {
		t.Errorf("expected width 10px, got %v (ok=%v)", v, ok)
	}
}

func TestStyleTreeCascadeOrder(t *testing.T) {
	doc := dom.NewDocument()
	div := dom.NewElement("div")
	div.SetAttribute("id", "main")
	doc.AppendChild(div)

	// ID selector appears first in the stylesheet but has higher
	// specificity, so it must still win over the later tag selector.
	stylesheet := &css.Stylesheet{
		Rules: []*css.Rule{
			{
				Selectors:    []*css.SimpleSelector{{ID: "main"}},
				Declarations: []*css.Declaration{{Property: "color", Value: css.Keyword("yellow")}},
			},
			{
				Selectors:    []*css.SimpleSelector{{TagName: "div"}},
				Declarations: []*css.Declaration{{Property: "color", Value: css.Keyword("blue")}},
			},
		},
	}

	styledTree := StyleTree(doc, stylesheet)
	divStyled := styledTree.Children[0]
	if v, _ := divStyled.Value("color"); v != css.Keyword("yellow") {
		t.Errorf("expected ID selector to win with 'yellow', got %v", v)
	}
}

func TestStyleTreeLastWriterWinsAtEqualSpecificity(t *testing.T) {
	doc := dom.NewDocument()
	div := dom.NewElement("div")
	doc.AppendChild(div)

	stylesheet := &css.Stylesheet{
		Rules: []*css.Rule{
			{
				Selectors:    []*css.SimpleSelector{{TagName: "div"}},
				Declarations: []*css.Declaration{{Property: "color", Value: css.Keyword("red")}},
			},
			{
				Selectors:    []*css.SimpleSelector{{TagName: "div"}},
				Declarations: []*css.Declaration{{Property: "color", Value: css.Keyword("green")}},
			},
		},
	}

	styledTree := StyleTree(doc, stylesheet)
	divStyled := styledTree.Children[0]
	if v, _ := divStyled.Value("color"); v != css.Keyword("green") {
		t.Errorf("expected later rule to win at equal specificity, got %v", v)
	}
}

func TestStyleTreeTextNodeHasNoStyles(t *testing.T) {
	doc := dom.NewDocument()
	text := dom.NewText("Hello")
	doc.AppendChild(text)

	stylesheet := &css.Stylesheet{}
	styledTree := StyleTree(doc, stylesheet)
	textStyled := styledTree.Children[0]
	if len(textStyled.Styles) != 0 {
		t.Errorf("expected no styles on a text node, got %v", textStyled.Styles)
	}
}

func TestLookup(t *testing.T) {
	s := &StyledNode{Styles: map[string]css.Value{
		"margin": css.Length(10),
	}}

	if v := s.Lookup("margin-left", "margin", css.Length(0)); v != css.Length(10) {
		t.Errorf("expected fallback to 'margin' = 10px, got %v", v)
	}
	if v := s.Lookup("margin-top", "padding", css.Length(0)); v != css.Length(0) {
		t.Errorf("expected default 0px when neither name nor fallback is set, got %v", v)
	}

	s.Styles["margin-left"] = css.Length(5)
	if v := s.Lookup("margin-left", "margin", css.Length(0)); v != css.Length(5) {
		t.Errorf("expected the specific property to win over the shorthand fallback, got %v", v)
	}
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		name     string
		styles   map[string]css.Value
		expected Display
	}{
		{"absent", map[string]css.Value{}, DisplayInline},
		{"block", map[string]css.Value{"display": css.Keyword("block")}, DisplayBlock},
		{"none", map[string]css.Value{"display": css.Keyword("none")}, DisplayNone},
		{"unrecognized keyword", map[string]css.Value{"display": css.Keyword("flex")}, DisplayInline},
		{"non-keyword value", map[string]css.Value{"display": css.Length(10)}, DisplayInline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &StyledNode{Styles: tt.styles}
			if got := s.Display(); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}
