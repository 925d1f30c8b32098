package dialogue

import (
	"fmt"
	"strings"
)

// Validation error codes (E200-E209)
const (
	ErrParse       = "E200" // malformed YAML or unknown field
	ErrSchema      = "E201" // line fails the chirp schema
	ErrDuplicateID = "E202" // id used by more than one line
	ErrEmptyTable  = "E203" // no lines
	ErrUnknownID   = "E204" // no line with this id
)

// ValidationError describes one problem in a chirp table.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Line    int    `json:"line,omitempty"`
}

func (e ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s: %s", e.Code, e.Line, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// ValidationErrors is every problem found while loading a table.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}
