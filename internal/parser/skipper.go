package parser

// Skipper consumes insignificant text between tokens. It returns the offset
// of the first significant byte at or after off and never fails.
type Skipper func(buf []byte, off int) int

// SkipSpaceAndComments skips whitespace and "--" comments. A comment ends
// before the line terminator, which is then skipped as whitespace.
func SkipSpaceAndComments(buf []byte, off int) int {
	for off < len(buf) {
		c := buf[off]
		switch {
		case isSpace(c):
			off++
		case c == '-' && off+1 < len(buf) && buf[off+1] == '-':
			off += 2
			for off < len(buf) && buf[off] != '\n' && buf[off] != '\r' {
				off++
			}
		default:
			return off
		}
	}
	return off
}

// SkipSpace skips whitespace only. Comments are significant under this policy.
func SkipSpace(buf []byte, off int) int {
	for off < len(buf) && isSpace(buf[off]) {
		off++
	}
	return off
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
