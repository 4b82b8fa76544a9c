package format

import (
	"fmt"

	"lumefmt/internal/diag"
	"lumefmt/internal/source"
)

// Error is a terminal formatting failure. Formatting is all-or-nothing:
// no partial output accompanies an Error.
type Error struct {
	Code diag.Code
	Span source.Span
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func errorf(code diag.Code, sp source.Span, msg string, args ...any) *Error {
	return &Error{Code: code, Span: sp, Msg: fmt.Sprintf(msg, args...)}
}

// fatal aborts the current render. FormatFile recovers it into the
// returned error.
func fatal(code diag.Code, sp source.Span, msg string, args ...any) {
	panic(errorf(code, sp, msg, args...))
}
