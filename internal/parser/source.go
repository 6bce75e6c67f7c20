package parser

import (
	"bytes"
	"fmt"
	"sort"
)

// DefaultTabSize is the tab stop width used for column numbers.
const DefaultTabSize = 8

// Source is an immutable VHDL input buffer with a line index.
// The index is built once so that offset -> line lookups are O(log n).
type Source struct {
	name       string
	content    []byte
	lineStarts []int
}

// NewSource wraps content for parsing. The slice must not be modified
// while the Source is in use.
func NewSource(name string, content []byte) *Source {
	lineCnt := bytes.Count(content, []byte("\n")) + 1
	lineStarts := make([]int, 1, lineCnt)
	for i, c := range content {
		if c == '\n' {
			lineStarts = append(lineStarts, i+1)
		}
	}
	return &Source{name: name, content: content, lineStarts: lineStarts}
}

// Name returns the file name used in diagnostics.
func (s *Source) Name() string {
	return s.name
}

// Content returns the raw buffer.
func (s *Source) Content() []byte {
	return s.content
}

// Len returns the buffer length in bytes.
func (s *Source) Len() int {
	return len(s.content)
}

// LineCount returns the number of lines, counting a trailing empty line.
func (s *Source) LineCount() int {
	return len(s.lineStarts)
}

// Position describes a byte offset as a 1-based line and a tab-aware column.
type Position struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Position converts an offset into a line/column pair. Offsets outside the
// buffer are clamped. Tabs advance the column to the next multiple of
// tabSize; UTF-8 continuation bytes do not advance it.
func (s *Source) Position(offset, tabSize int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(s.content) {
		offset = len(s.content)
	}
	if tabSize <= 0 {
		tabSize = DefaultTabSize
	}

	idx := s.lineIndex(offset)
	column := 1
	for _, c := range s.content[s.lineStarts[idx]:offset] {
		switch {
		case c == '\t':
			column += tabSize - (column-1)%tabSize
		case c&0xC0 == 0x80:
		default:
			column++
		}
	}
	return Position{Offset: offset, Line: idx + 1, Column: column}
}

// LineText returns the text of the line containing offset, without its
// line terminator.
func (s *Source) LineText(offset int) string {
	if offset < 0 {
		offset = 0
	}
	if offset > len(s.content) {
		offset = len(s.content)
	}
	start := s.lineStarts[s.lineIndex(offset)]
	end := start
	for end < len(s.content) && s.content[end] != '\n' {
		end++
	}
	return string(bytes.TrimRight(s.content[start:end], "\r"))
}

// lineIndex returns the 0-based index of the line containing offset.
func (s *Source) lineIndex(offset int) int {
	// first line start strictly greater than offset, minus one
	return sort.SearchInts(s.lineStarts, offset+1) - 1
}
