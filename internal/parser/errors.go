package parser

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSyntax is matched by every error returned from Parse for malformed input.
var ErrSyntax = errors.New("syntax error")

// Expectation names what the grammar required at a failure position:
// either a named rule or a literal token.
type Expectation struct {
	Name    string `json:"name"`
	Literal bool   `json:"literal,omitempty"`
}

func expectRule(name string) Expectation {
	return Expectation{Name: name}
}

func expectLiteral(text string) Expectation {
	return Expectation{Name: text, Literal: true}
}

// String renders rules as <name> and literals as "text".
func (e Expectation) String() string {
	if e.Literal {
		return `"` + e.Name + `"`
	}
	return "<" + e.Name + ">"
}

// Diagnostic is a rendered syntax error report for one position.
type Diagnostic struct {
	File     string      `json:"file"`
	Pos      Position    `json:"pos"`
	Expected Expectation `json:"expected"`
	// SourceLine is the single line containing Pos.
	SourceLine string `json:"source_line"`
	// HidePosition drops ":line:column" from the header.
	HidePosition bool `json:"-"`
}

func newDiagnostic(src *Source, offset int, expected Expectation, opts Options) Diagnostic {
	return Diagnostic{
		File:         src.Name(),
		Pos:          src.Position(offset, opts.tabSize()),
		Expected:     expected,
		SourceLine:   src.LineText(offset),
		HidePosition: opts.HidePosition,
	}
}

// Header returns "<file>:<line>:<column>: expected <what>".
func (d Diagnostic) Header() string {
	if d.HidePosition {
		return fmt.Sprintf("%s: expected %s", d.File, d.Expected)
	}
	return fmt.Sprintf("%s:%d:%d: expected %s", d.File, d.Pos.Line, d.Pos.Column, d.Expected)
}

// Caret returns the marker line pointing at the failure column. The caret
// sits under the column itself after Column-1 spaces, one position left of
// a setw(column) rendering.
func (d Diagnostic) Caret() string {
	pad := d.Pos.Column - 1
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + "^~~~"
}

// String renders the header, the source line and the caret line.
func (d Diagnostic) String() string {
	return d.Header() + "\n" + d.SourceLine + "\n" + d.Caret() + "\n"
}

// SyntaxError reports a required grammar element that failed to match.
// The parse is aborted at the first such error.
type SyntaxError struct {
	Diagnostic
}

func (e *SyntaxError) Error() string {
	return e.Header()
}

func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

// TrailingInputError reports input left over after the last complete entity.
type TrailingInputError struct {
	Diagnostic
}

func (e *TrailingInputError) Error() string {
	return "trailing input: " + e.Header()
}

func (e *TrailingInputError) Is(target error) bool {
	return target == ErrSyntax
}

// DiagnosticOf extracts the diagnostic carried by a parse error.
func DiagnosticOf(err error) (Diagnostic, bool) {
	var syntaxErr *SyntaxError
	if errors.As(err, &syntaxErr) {
		return syntaxErr.Diagnostic, true
	}
	var trailingErr *TrailingInputError
	if errors.As(err, &trailingErr) {
		return trailingErr.Diagnostic, true
	}
	return Diagnostic{}, false
}
