// Package html implements a single-pass recursive-descent HTML parser.
//
// The grammar is a deliberately small subset: balanced elements with
// quoted attributes, loose comments, and text runs. There is no error
// recovery — any place the grammar demands a specific character and the
// source supplies something else is a fatal ParseError.
package html

import (
	"github.com/lukehoban/browser/dom"
)

// Parser walks an HTML source with a character cursor. It holds no
// other state; the tree is built by the recursion itself, not by a
// mutable insertion-point stack.
type Parser struct {
	input string
	pos   int
}

// NewParser creates a parser positioned at the start of input.
func NewParser(input string) *Parser {
	return &Parser{input: input, pos: 0}
}

// Parse parses a sequence of top-level nodes and returns the last one.
// The source may contain leading/trailing whitespace and more than one
// top-level node; only the last is returned, per the DOM model's "root
// returned by the parser is the last top-level element of the source".
func (p *Parser) Parse() (*dom.Node, error) {
	// An ephemeral root collects top-level nodes exactly the way the
	// open-element stack of a tree-construction parser would, so the
	// insertion point for siblings is always well defined; it never
	// escapes this function.
	root := dom.NewDocument()
	nodes, err := p.parseNodes()
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	if len(root.Children) == 0 {
		return nil, newParseError(p.pos, "empty document")
	}
	return root.Children[len(root.Children)-1], nil
}

// parseNodes parses a sequence of sibling nodes, stopping at end of
// input or at the literal "</" that closes an enclosing element.
func (p *Parser) parseNodes() ([]*dom.Node, error) {
	var nodes []*dom.Node
	for {
		p.skipWhitespace()
		if p.eof() || p.startsWith("</") {
			return nodes, nil
		}
		node, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
}

// parseNode dispatches on the next character(s) per the node-boundary
// rules: "<!" starts a comment, "<" otherwise starts an element,
// anything else is text.
func (p *Parser) parseNode() (*dom.Node, error) {
	if p.startsWith("<!") {
		return p.parseComment()
	}
	if p.startsWith("<") {
		return p.parseElement()
	}
	return p.parseText()
}

// parseComment consumes "<!" then everything up to (not including) the
// next "<", discarding it. This is intentionally loose: a literal
// "-->" is never required, so document-visible text beginning with
// "<!" can be swallowed. That is a known hazard, not a bug to fix here.
func (p *Parser) parseComment() (*dom.Node, error) {
	p.pos += len("<!")
	for !p.eof() && p.peekChar() != '<' {
		p.pos++
	}
	return dom.NewComment(), nil
}

// parseText consumes everything up to the next "<" as a single text
// node. The node-boundary loop already skipped any leading whitespace,
// so the result is always non-empty.
func (p *Parser) parseText() (*dom.Node, error) {
	start := p.pos
	for !p.eof() && p.peekChar() != '<' {
		p.pos++
	}
	return dom.NewText(p.input[start:p.pos]), nil
}

// parseElement consumes "<tag attrs...>children</tag>".
func (p *Parser) parseElement() (*dom.Node, error) {
	openOffset := p.pos
	p.pos++ // consume '<'

	tagName, err := p.parseTagName()
	if err != nil {
		return nil, err
	}
	if tagName == "" {
		return nil, newParseError(openOffset, "expected tag name after '<'")
	}

	elem := dom.NewElement(tagName)
	if err := p.parseAttributes(elem); err != nil {
		return nil, err
	}
	if err := p.consume('>'); err != nil {
		return nil, err
	}

	children, err := p.parseNodes()
	if err != nil {
		return nil, err
	}
	for _, c := range children {
		elem.AppendChild(c)
	}

	if err := p.consumeLiteral("</"); err != nil {
		return nil, err
	}
	closeOffset := p.pos
	closeName, err := p.parseTagName()
	if err != nil {
		return nil, err
	}
	if closeName != tagName {
		return nil, newParseError(closeOffset, "mismatched closing tag: expected %q, got %q", tagName, closeName)
	}
	if err := p.consume('>'); err != nil {
		return nil, err
	}

	return elem, nil
}

// parseAttributes reads "name=\"value\"" pairs until '>', applying
// last-writer-wins for duplicate names.
func (p *Parser) parseAttributes(elem *dom.Node) error {
	for {
		p.skipWhitespace()
		if p.eof() {
			return newParseError(p.pos, "unexpected end of input inside element %q", elem.Data)
		}
		if p.peekChar() == '>' {
			return nil
		}
		name, err := p.parseTagName()
		if err != nil {
			return err
		}
		if name == "" {
			return newParseError(p.pos, "expected attribute name or '>' in element %q", elem.Data)
		}
		if err := p.consume('='); err != nil {
			return err
		}
		value, err := p.parseQuotedValue()
		if err != nil {
			return err
		}
		elem.SetAttribute(name, value)
	}
}

// parseQuotedValue reads a single- or double-quoted attribute value;
// the value ends at the matching quote.
func (p *Parser) parseQuotedValue() (string, error) {
	if p.eof() {
		return "", newParseError(p.pos, "expected quoted attribute value")
	}
	quote := p.peekChar()
	if quote != '"' && quote != '\'' {
		return "", newParseError(p.pos, "expected quote to start attribute value, got %q", string(quote))
	}
	p.pos++
	start := p.pos
	for {
		if p.eof() {
			return "", newParseError(start, "unterminated attribute value")
		}
		if p.peekChar() == quote {
			value := p.input[start:p.pos]
			p.pos++
			return value, nil
		}
		p.pos++
	}
}

// parseTagName reads a run of ASCII letters and digits, per the
// grammar's identifier character class for both tag and attribute
// names.
func (p *Parser) parseTagName() (string, error) {
	start := p.pos
	for !p.eof() && isNameChar(p.peekChar()) {
		p.pos++
	}
	return p.input[start:p.pos], nil
}

func isNameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func (p *Parser) skipWhitespace() {
	for !p.eof() {
		switch p.peekChar() {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *Parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *Parser) peekChar() byte {
	return p.input[p.pos]
}

func (p *Parser) startsWith(s string) bool {
	return len(p.input)-p.pos >= len(s) && p.input[p.pos:p.pos+len(s)] == s
}

func (p *Parser) consume(c byte) error {
	if p.eof() || p.peekChar() != c {
		return newParseError(p.pos, "expected %q", string(c))
	}
	p.pos++
	return nil
}

func (p *Parser) consumeLiteral(s string) error {
	if !p.startsWith(s) {
		return newParseError(p.pos, "expected %q", s)
	}
	p.pos += len(s)
	return nil
}

// Parse is a convenience function to parse an HTML source in one call.
func Parse(input string) (*dom.Node, error) {
	return NewParser(input).Parse()
}
