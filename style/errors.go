package style

import (
	"fmt"
)

// SyntaxError reports a malformed rule or snippet declaration. It aborts the
// styling pass for the declaring table: bad declarations are never guessed at.
type SyntaxError struct {
	Category string // rule category or "computed"
	Raw      string // the offending declaration text
	Offset   int    // byte offset of the error within Raw
	Err      error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s rules: offset %d: %v", e.Category, e.Offset, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// SnippetError reports a computed snippet failing for one cell. Unless strict
// evaluation is requested the failure is recoverable: the snippet contributes
// nothing for that cell and resolution continues.
type SnippetError struct {
	Snippet string // snippet name
	Row     int
	Column  int
	Err     error
}

func (e *SnippetError) Error() string {
	return fmt.Sprintf("snippet %s at cell (%d,%d): %v", e.Snippet, e.Row, e.Column, e.Err)
}

func (e *SnippetError) Unwrap() error {
	return e.Err
}
