package parser

import (
	"strconv"
	"strings"
)

// Keywords reserved by the entity-header grammar. An identifier whose whole
// spelling equals one of these (ignoring case) is rejected.
var Keywords = []string{
	"entity", "is", "port", "begin", "end", "signal", "bus",
	"in", "out", "inout", "buffer", "linkage", "to", "downto",
}

var keywordSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Keywords))
	for _, kw := range Keywords {
		m[kw] = struct{}{}
	}
	return m
}()

// IsKeyword reports whether word is a reserved keyword, case-insensitively.
func IsKeyword(word string) bool {
	_, ok := keywordSet[strings.ToLower(word)]
	return ok
}

func isIdentStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// scanIdentifier returns the end of the longest identifier-shaped span
// starting at off, or off when there is none.
func scanIdentifier(buf []byte, off int) int {
	if off >= len(buf) || !isIdentStart(buf[off]) {
		return off
	}
	end := off + 1
	for end < len(buf) && isIdentPart(buf[end]) {
		end++
	}
	return end
}

// matchKeyword matches kw as a whole lexeme at off, ignoring case.
// "internal" does not match "in".
func matchKeyword(buf []byte, off int, kw string) (int, bool) {
	end := off + len(kw)
	if end > len(buf) {
		return off, false
	}
	if !strings.EqualFold(string(buf[off:end]), kw) {
		return off, false
	}
	if end < len(buf) && isIdentPart(buf[end]) {
		return off, false
	}
	return end, true
}

// scanInteger matches an optionally signed decimal integer literal that
// fits in an int64.
func scanInteger(buf []byte, off int) (int64, int, bool) {
	end := off
	if end < len(buf) && (buf[end] == '+' || buf[end] == '-') {
		end++
	}
	digits := end
	for end < len(buf) && isDigit(buf[end]) {
		end++
	}
	if end == digits {
		return 0, off, false
	}
	v, err := strconv.ParseInt(string(buf[off:end]), 10, 64)
	if err != nil {
		return 0, off, false
	}
	return v, end, true
}
