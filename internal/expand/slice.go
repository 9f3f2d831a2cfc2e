package expand

import (
	"strconv"
	"strings"
)

// parseSlice parses a `[...]` index expression starting at in[0] == '['
// against a collection of the given length. It returns the resolved
// 1-based indices (possibly repeated, possibly in descending order for a
// reverse range), the rune offset just past the closing ']', and ok=false
// with the offset of the first bad token if the slice is malformed.
//
// Ported from fish's parse_slice (expand.cpp): whitespace and the
// InternalSep sentinel are permitted between tokens; a token is a signed
// integer, or two signed integers joined by "..". Negative indices count
// from the end (-1 == last element). A slice whose tokens all begin with a
// literal '0' (and whose single indices are all zero) is rejected at the
// first such token, so that `$foo[0]` is rejected regardless of $foo's
// eventual value; a zero mixed with other indices is not rejected here.
func parseSlice(in []rune, size int) (idx []int, endPos int, badPos int, ok bool) {
	pos := 1 // skip the opening '['

	zeroIndex := -1
	literalZeroIndex := true

	for {
		for pos < len(in) && (isSpace(in[pos]) || in[pos] == InternalSep) {
			pos++
		}
		if pos >= len(in) {
			return nil, 0, pos, false
		}
		if in[pos] == ']' {
			pos++
			break
		}

		if literalZeroIndex {
			if in[pos] == '0' {
				zeroIndex = pos
			} else {
				literalZeroIndex = false
			}
		}

		tmp, next, err := scanSignedInt(in, pos)
		if err {
			return nil, 0, pos, false
		}
		i1 := tmp
		if tmp <= -1 {
			i1 = size + tmp + 1
		}
		pos = next
		for pos < len(in) && in[pos] == InternalSep {
			pos++
		}

		if pos+1 < len(in) && in[pos] == '.' && in[pos+1] == '.' {
			pos += 2
			for pos < len(in) && in[pos] == InternalSep {
				pos++
			}
			tmp1, next2, err2 := scanSignedInt(in, pos)
			if err2 {
				return nil, 0, pos, false
			}
			pos = next2

			i2 := tmp1
			if tmp1 <= -1 {
				i2 = size + tmp1 + 1
			}

			if i1 > size && i2 > size {
				// Entirely outside the collection: the whole range drops.
				continue
			}

			direction := 1
			if i2 < i1 {
				direction = -1
			}
			if (tmp1 > -1) != (tmp > -1) {
				// Exactly one endpoint was negative in the original token:
				// the negative one forces the direction, preventing
				// e.g. [2..-1] from collapsing to a single element on a
				// short collection.
				if tmp1 > -1 {
					direction = -1
				} else {
					direction = 1
				}
			} else {
				if i1 > size {
					i1 = size
				}
				if i2 > size {
					i2 = size
				}
			}
			for j := i1; j*direction <= i2*direction; j += direction {
				idx = append(idx, j)
			}
			continue
		}

		literalZeroIndex = literalZeroIndex && tmp == 0
		idx = append(idx, i1)
	}

	if literalZeroIndex && zeroIndex != -1 {
		return nil, 0, zeroIndex, false
	}

	return idx, pos, 0, true
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// scanSignedInt reads an optionally '-'- or '+'-prefixed run of digits starting at
// in[pos], returning the parsed value and the offset just past it. err is
// true if no valid integer starts at pos.
func scanSignedInt(in []rune, pos int) (value int, next int, err bool) {
	start := pos
	if pos < len(in) && (in[pos] == '-' || in[pos] == '+') {
		pos++
	}
	digitsStart := pos
	for pos < len(in) && in[pos] >= '0' && in[pos] <= '9' {
		pos++
	}
	if pos == digitsStart {
		return 0, start, true
	}
	n, convErr := strconv.Atoi(string(in[start:pos]))
	if convErr != nil {
		return 0, start, true
	}
	return n, pos, false
}

// sliceErrorMessage mirrors expand.cpp's two distinct messages for a bad
// slice token: a literal zero index gets a dedicated hint, anything else
// gets a generic one.
func sliceErrorMessage(in []rune, badPos int) string {
	if badPos < len(in) && in[badPos] == '0' {
		return "array indices start at 1, not 0."
	}
	return "Invalid index value"
}

// joinStrings mirrors fish's join_strings helper used to splice a quoted
// variable's selected items back together with its delimiter.
func joinStrings(items []string, delim rune) string {
	return strings.Join(items, string(delim))
}
