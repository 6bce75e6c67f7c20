package extractor

import (
	"math"
	"strings"

	"github.com/robert-at-pretension-io/vapi/internal/parser"
)

// singleBitTypes are type marks that are one bit wide without a constraint.
var singleBitTypes = map[string]bool{
	"std_logic":  true,
	"std_ulogic": true,
	"bit":        true,
	"boolean":    true,
}

// CalculateWidth returns the number of elements a subtype spans: the range
// length for constrained types, 1 for single-bit types and 0 when unknown
// or when the range is null. Lengths beyond math.MaxInt are clamped.
func CalculateWidth(st parser.SubtypeIndication) int {
	if c := st.Constraint; c != nil {
		if c.IsNull() {
			return 0
		}
		return rangeLength(c.Left.Value, c.Right.Value)
	}
	if singleBitTypes[strings.ToLower(st.TypeMark)] {
		return 1
	}
	return 0
}

// rangeLength is |left-right|+1 computed without signed overflow.
func rangeLength(left, right int64) int {
	var diff uint64
	if left >= right {
		diff = uint64(left) - uint64(right)
	} else {
		diff = uint64(right) - uint64(left)
	}
	if diff >= math.MaxInt {
		return math.MaxInt
	}
	return int(diff) + 1
}
