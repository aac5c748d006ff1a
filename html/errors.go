package html

import "fmt"

// ParseError reports a structural violation in an HTML source: a
// mismatched tag, an unterminated attribute, or any other place the
// grammar demands a specific character and the input supplies something
// else. There is no recovery; parsing stops at the first one.
type ParseError struct {
	Offset  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("html: parse error at offset %d: %s", e.Offset, e.Message)
}

func newParseError(offset int, format string, args ...interface{}) *ParseError {
	return &ParseError{Offset: offset, Message: fmt.Sprintf(format, args...)}
}
