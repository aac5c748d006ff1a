package css

import "fmt"

// ParseError reports a structural violation in a CSS source: a
// malformed selector, a declaration missing its ':' or ';', or an
// unterminated block. There is no recovery.
type ParseError struct {
	Offset  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("css: parse error at offset %d: %s", e.Offset, e.Message)
}

func newParseError(offset int, format string, args ...interface{}) *ParseError {
	return &ParseError{Offset: offset, Message: fmt.Sprintf(format, args...)}
}
