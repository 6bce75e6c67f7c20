package parser

import (
	"bytes"
	"errors"
	"log/slog"
)

// Options configures one parse call.
type Options struct {
	// TabSize is the tab stop width for columns (default 8).
	TabSize int
	// HidePosition omits ":line:column" from diagnostic headers.
	HidePosition bool
	// Skipper is the inter-token policy (default SkipSpaceAndComments).
	Skipper Skipper
	// Logger receives a Debug record for every rule attempt. Nil disables tracing.
	Logger *slog.Logger
}

func (o Options) tabSize() int {
	if o.TabSize <= 0 {
		return DefaultTabSize
	}
	return o.TabSize
}

// Parse runs the entity grammar over the whole source. It returns a
// *SyntaxError when a required element fails after its rule committed and a
// *TrailingInputError when entities were parsed but input remains.
func Parse(src *Source, opts Options) (*Result, error) {
	p := newParser(src, opts)

	entities, err := p.start()
	if err != nil {
		return nil, err
	}

	if rest := p.skipped(); rest < len(p.buf) {
		p.trace("trailing input", rest)
		return nil, &TrailingInputError{newDiagnostic(src, rest, expectRule("entity"), opts)}
	}

	if entities == nil {
		entities = []Entity{}
	}
	return &Result{File: src.Name(), Entities: entities}, nil
}

// ParseBytes is a convenience wrapper around NewSource and Parse.
func ParseBytes(name string, content []byte, opts Options) (*Result, error) {
	return Parse(NewSource(name, content), opts)
}

var errNoMatch = errors.New("no match")

// parser is the per-call engine state. It is never shared between calls.
type parser struct {
	src  *Source
	buf  []byte
	pos  int
	opts Options
	skip Skipper
	log  *slog.Logger
}

func newParser(src *Source, opts Options) *parser {
	skip := opts.Skipper
	if skip == nil {
		skip = SkipSpaceAndComments
	}
	return &parser{
		src:  src,
		buf:  src.Content(),
		opts: opts,
		skip: skip,
		log:  opts.Logger,
	}
}

// skipped returns the offset of the next significant byte without moving.
func (p *parser) skipped() int {
	return p.skip(p.buf, p.pos)
}

func (p *parser) position(offset int) Position {
	return p.src.Position(offset, p.opts.tabSize())
}

// keyword matches kw as a lexeme after skipping. The cursor only moves on
// success.
func (p *parser) keyword(kw string) bool {
	end, ok := matchKeyword(p.buf, p.skipped(), kw)
	if ok {
		p.pos = end
	}
	return ok
}

func (p *parser) literal(text string) bool {
	at := p.skipped()
	if !bytes.HasPrefix(p.buf[at:], []byte(text)) {
		return false
	}
	p.pos = at + len(text)
	return true
}

// fail raises a committed failure at the next significant byte.
func (p *parser) fail(expected Expectation) error {
	at := p.skipped()
	p.trace("expectation failed", at, "expected", expected.String())
	return &SyntaxError{newDiagnostic(p.src, at, expected, p.opts)}
}

func (p *parser) trace(msg string, offset int, args ...any) {
	if p.log == nil {
		return
	}
	pos := p.position(offset)
	p.log.Debug(msg, append([]any{"line", pos.Line, "column", pos.Column}, args...)...)
}

// rule runs fn as the named grammar rule. A soft failure (errNoMatch)
// restores the cursor so the caller can try an alternative.
func rule[T any](p *parser, name string, fn func() (T, error)) (T, error) {
	start := p.pos
	v, err := fn()
	if errors.Is(err, errNoMatch) {
		p.pos = start
	}
	if p.log != nil {
		p.trace("rule", start, "rule", name, "ok", err == nil, "consumed", p.pos-start)
	}
	return v, err
}
