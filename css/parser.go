package css

import "strconv"

// Stylesheet is an ordered sequence of rules.
type Stylesheet struct {
	Rules []*Rule
}

// Rule pairs a non-empty ordered list of selectors with an ordered
// list of declarations.
type Rule struct {
	Selectors    []*SimpleSelector
	Declarations []*Declaration
}

// SimpleSelector is the only selector shape this grammar supports: an
// optional tag name, an optional id, and an ordered list of class
// names. Every component is individually optional, but the parser
// never produces one with all three empty.
type SimpleSelector struct {
	TagName string
	ID      string
	Classes []string
}

// Declaration is a (name, value) pair.
type Declaration struct {
	Property string
	Value    Value
}

// Parser parses CSS source into a Stylesheet, one rule per iteration.
type Parser struct {
	tokenizer *Tokenizer
}

// NewParser creates a parser over input.
func NewParser(input string) *Parser {
	return &Parser{tokenizer: NewTokenizer(input)}
}

// Parse loops until end of input, producing one rule per iteration.
func (p *Parser) Parse() (*Stylesheet, error) {
	sheet := &Stylesheet{}
	for {
		p.tokenizer.SkipWhitespace()
		if p.tokenizer.Peek().Type == EOFToken {
			return sheet, nil
		}
		rule, err := p.parseRule()
		if err != nil {
			return nil, err
		}
		sheet.Rules = append(sheet.Rules, rule)
	}
}

// parseRule parses a selector list followed by a declaration block.
func (p *Parser) parseRule() (*Rule, error) {
	selectors, err := p.parseSelectorList()
	if err != nil {
		return nil, err
	}

	p.tokenizer.SkipWhitespace()
	if tok := p.tokenizer.Next(); tok.Type != LeftBraceToken {
		return nil, newParseError(p.tokenizer.pos, "expected '{' to start declaration block")
	}

	declarations, err := p.parseDeclarations()
	if err != nil {
		return nil, err
	}

	p.tokenizer.SkipWhitespace()
	if tok := p.tokenizer.Next(); tok.Type != RightBraceToken {
		return nil, newParseError(p.tokenizer.pos, "expected '}' to close declaration block")
	}

	return &Rule{Selectors: selectors, Declarations: declarations}, nil
}

// parseSelectorList parses one or more simple selectors separated by
// ','. After each selector the next non-whitespace character must be
// ',' (continue) or '{' (end).
func (p *Parser) parseSelectorList() ([]*SimpleSelector, error) {
	var selectors []*SimpleSelector
	for {
		selector, err := p.parseSimpleSelector()
		if err != nil {
			return nil, err
		}
		selectors = append(selectors, selector)

		p.tokenizer.SkipWhitespace()
		next := p.tokenizer.Peek()
		switch next.Type {
		case CommaToken:
			p.tokenizer.Next()
			p.tokenizer.SkipWhitespace()
			continue
		case LeftBraceToken:
			return selectors, nil
		default:
			return nil, newParseError(p.tokenizer.pos, "expected ',' or '{' after selector")
		}
	}
}

// parseSimpleSelector consumes components until ',' / '{' / EOF,
// branching on '#' (id), '.' (class), or a bare identifier (tag name).
func (p *Parser) parseSimpleSelector() (*SimpleSelector, error) {
	simple := &SimpleSelector{}
	for {
		p.tokenizer.SkipWhitespace()
		next := p.tokenizer.Peek()
		switch next.Type {
		case CommaToken, LeftBraceToken, EOFToken:
			if simple.TagName == "" && simple.ID == "" && len(simple.Classes) == 0 {
				return nil, newParseError(p.tokenizer.pos, "expected a selector component")
			}
			return simple, nil
		case HashToken:
			p.tokenizer.Next()
			simple.ID = next.Value
		case DotToken:
			p.tokenizer.Next()
			name := p.tokenizer.Next()
			if name.Type != IdentToken {
				return nil, newParseError(p.tokenizer.pos, "expected class name after '.'")
			}
			simple.Classes = append(simple.Classes, name.Value)
		case IdentToken:
			p.tokenizer.Next()
			simple.TagName = next.Value
		default:
			return nil, newParseError(p.tokenizer.pos, "unexpected token in selector")
		}
	}
}

// parseDeclarations parses "name : value ;" entries until '}'. Every
// declaration must end with ';' — there is no trailing-semicolon
// tolerance.
func (p *Parser) parseDeclarations() ([]*Declaration, error) {
	var declarations []*Declaration
	for {
		p.tokenizer.SkipWhitespace()
		if p.tokenizer.Peek().Type == RightBraceToken {
			return declarations, nil
		}
		decl, err := p.parseDeclaration()
		if err != nil {
			return nil, err
		}
		declarations = append(declarations, decl)
	}
}

func (p *Parser) parseDeclaration() (*Declaration, error) {
	nameTok := p.tokenizer.Next()
	if nameTok.Type != IdentToken {
		return nil, newParseError(p.tokenizer.pos, "expected a property name")
	}

	p.tokenizer.SkipWhitespace()
	if tok := p.tokenizer.Next(); tok.Type != ColonToken {
		return nil, newParseError(p.tokenizer.pos, "expected ':' after property name %q", nameTok.Value)
	}
	p.tokenizer.SkipWhitespace()

	value, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	p.tokenizer.SkipWhitespace()
	if tok := p.tokenizer.Next(); tok.Type != SemicolonToken {
		return nil, newParseError(p.tokenizer.pos, "expected ';' to end declaration %q", nameTok.Value)
	}

	return &Declaration{Property: nameTok.Value, Value: value}, nil
}

// parseValue reads directly off the tokenizer's cursor rather than
// through Next/Peek: the numeric branch's "consume remaining
// characters up to ';'" rule (so "10foo" parses as 10px, matching the
// quirk named in the width-resolution design notes) doesn't correspond
// to any single token boundary.
func (p *Parser) parseValue() (Value, error) {
	t := p.tokenizer
	if t.pos >= len(t.input) {
		return Value{}, newParseError(t.pos, "expected a value")
	}

	c := t.input[t.pos]

	if isDigit(c) {
		start := t.pos
		for t.pos < len(t.input) && (isDigit(t.input[t.pos]) || t.input[t.pos] == '.') {
			t.pos++
		}
		numStr := t.input[start:t.pos]
		for t.pos < len(t.input) && t.input[t.pos] != ';' {
			t.pos++
		}
		px, err := strconv.ParseFloat(numStr, 64)
		if err != nil {
			return Value{}, newParseError(start, "invalid number %q", numStr)
		}
		return Length(px), nil
	}

	if c == '#' {
		start := t.pos
		t.pos++
		if t.pos+6 > len(t.input) {
			return Value{}, newParseError(start, "expected six hex digits after '#'")
		}
		hex := t.input[t.pos : t.pos+6]
		r, err1 := strconv.ParseUint(hex[0:2], 16, 8)
		g, err2 := strconv.ParseUint(hex[2:4], 16, 8)
		b, err3 := strconv.ParseUint(hex[4:6], 16, 8)
		if err1 != nil || err2 != nil || err3 != nil {
			return Value{}, newParseError(start, "invalid hex color %q", hex)
		}
		t.pos += 6
		return RGBA(uint8(r), uint8(g), uint8(b), 255), nil
	}

	start := t.pos
	for t.pos < len(t.input) && isNameChar(t.input[t.pos]) {
		t.pos++
	}
	if t.pos == start {
		return Value{}, newParseError(start, "expected a keyword, length, or color value")
	}
	return Keyword(t.input[start:t.pos]), nil
}

// Parse parses a CSS source in one call.
func Parse(input string) (*Stylesheet, error) {
	return NewParser(input).Parse()
}
