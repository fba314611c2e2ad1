package parser

import (
	"fmt"
	"strings"
)

// ParseError is a single parse failure with its source position.
type ParseError struct {
	Message string
	Line    int
	Column  int
}

func (e ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// ParseErrors accumulates failures instead of aborting at the first one, so
// a single bad file still gets a full error report in one pass.
type ParseErrors struct {
	errors []ParseError
}

func (p *ParseErrors) Add(msg string, line, column int) {
	p.errors = append(p.errors, ParseError{Message: msg, Line: line, Column: column})
}

func (p *ParseErrors) Addf(line, column int, format string, args ...interface{}) {
	p.Add(fmt.Sprintf(format, args...), line, column)
}

func (p *ParseErrors) HasErrors() bool { return len(p.errors) > 0 }
func (p *ParseErrors) Count() int      { return len(p.errors) }
func (p *ParseErrors) Errors() []ParseError {
	return p.errors
}

func (p *ParseErrors) Error() string {
	if len(p.errors) == 0 {
		return "no errors"
	}
	if len(p.errors) == 1 {
		return p.errors[0].Error()
	}
	msgs := make([]string, len(p.errors))
	for i, err := range p.errors {
		msgs[i] = err.Error()
	}

	return fmt.Sprintf("%d parse errors:\n%s", len(p.errors), strings.Join(msgs, "\n"))
}

func (p *ParseErrors) First() error {
	if len(p.errors) == 0 {
		return nil
	}

	return p.errors[0]
}
