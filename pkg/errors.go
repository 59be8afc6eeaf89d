package lox

import (
	"fmt"
	"strings"
)

// ScanError aborts lexing: an unterminated string or a character the
// language has no token for.
type ScanError struct {
	Loc Location
	Msg string
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("[line %s] scan error: %s", e.Loc, e.Msg)
}

// ParseError carries the token the parser found where Expected was required.
type ParseError struct {
	Tok      Token
	Expected string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("[line %s] parse error at %s: %s", e.Tok.Loc, e.Tok, e.Expected)
}

// RuntimeError is raised by the evaluator when an operator is applied to
// operand types it does not accept.
type RuntimeError struct {
	Loc Location
	Op  string
	Msg string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("[line %s] runtime error: '%s' %s", e.Loc, e.Op, e.Msg)
}

// CheckError collects everything the checker found in a program.
type CheckError struct {
	Errors []CompileError
}

func (e *CheckError) Error() string {
	var b strings.Builder
	b.WriteString("type check failed:")
	for _, err := range e.Errors {
		b.WriteString("\n- ")
		b.WriteString(err.String())
	}

	return b.String()
}
