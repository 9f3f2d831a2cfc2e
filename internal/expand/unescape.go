package expand

import "strings"

// unescape performs the reversible conversion from user syntax to sentinel
// form described in spec.md §4.3: it consumes quote characters and
// backslash escapes, and rewrites the characters that are special outside
// quotes into their sentinel equivalents. It runs in
// UNESCAPE_SPECIAL|UNESCAPE_INCOMPLETE mode: unterminated quotes and a
// trailing backslash are tolerated rather than rejected, since this also
// runs on the partial token a completion request is expanding.
//
// Mirrors fish's unescape_string call in expander_t::stage_variables; the
// full unescape.cpp isn't in the reference pack, so the escape table below
// is reconstructed from its documented call contract (§4.3) rather than
// ported line for line.
func unescape(in string) []rune {
	runes := []rune(in)
	n := len(runes)
	out := make([]rune, 0, n)

	var quote rune
	i := 0
	for i < n {
		c := runes[i]
		switch {
		case quote == 0 && c == '\\':
			if i+1 >= n {
				// Trailing backslash on an incomplete token: tolerate it as
				// literal.
				out = append(out, '\\')
				i++
				continue
			}
			out = append(out, literalEscape(runes[i+1]))
			i += 2

		case quote == '\'':
			if c == '\\' && i+1 < n && (runes[i+1] == '\'' || runes[i+1] == '\\') {
				out = append(out, runes[i+1])
				i += 2
			} else if c == '\'' {
				quote = 0
				i++
			} else {
				out = append(out, c)
				i++
			}

		case quote == '"':
			if c == '\\' && i+1 < n && isDoubleQuoteEscapable(runes[i+1]) {
				out = append(out, runes[i+1])
				i += 2
			} else if c == '"' {
				quote = 0
				i++
			} else if c == '$' {
				out = append(out, VarExpandSingle)
				i++
			} else {
				out = append(out, c)
				i++
			}

		case c == '\'':
			quote = '\''
			i++

		case c == '"':
			quote = '"'
			i++

		case c == '$':
			out = append(out, VarExpand)
			i++

		case c == '~' && i == 0:
			out = append(out, HomeDir)
			i++

		case c == '%' && i == 0 && hasLiteralPrefix(runes, "%self"):
			out = append(out, ProcessSelf)
			i += 5

		case c == '*':
			if i+1 < n && runes[i+1] == '*' {
				out = append(out, AnyStringRecursive)
				i += 2
			} else {
				out = append(out, AnyString)
				i++
			}

		case c == '?':
			out = append(out, AnyChar)
			i++

		case c == '{':
			out = append(out, BraceBegin)
			i++

		case c == '}':
			out = append(out, BraceEnd)
			i++

		case c == ',':
			out = append(out, BraceSep)
			i++

		default:
			out = append(out, c)
			i++
		}
	}
	return out
}

// literalEscape maps the character following an unquoted backslash to its
// literal output. An escaped space becomes BraceSpace so it survives brace
// splitting without being mistaken for a structural separator; every stage
// that can be the last one to see a BraceSpace converts it back to ' '.
func literalEscape(c rune) rune {
	if c == ' ' {
		return BraceSpace
	}
	return c
}

// isDoubleQuoteEscapable reports whether c may follow a backslash inside a
// double-quoted region and be consumed as a literal (bash/fish both limit
// this set so that most backslashes inside "..." stay literal backslashes).
func isDoubleQuoteEscapable(c rune) bool {
	switch c {
	case '$', '"', '\\', '`':
		return true
	default:
		return false
	}
}

func hasLiteralPrefix(runes []rune, prefix string) bool {
	pr := []rune(prefix)
	if len(runes) < len(pr) {
		return false
	}
	return string(runes[:len(pr)]) == prefix
}

// reescapeDollar is used by the skip_variables path (§4.3 "Skip mode") to
// turn the unescape pass's VarExpand/VarExpandSingle sentinels back into a
// literal '$' when variable expansion itself is disabled for this call.
func reescapeDollar(runes []rune) string {
	var b strings.Builder
	b.Grow(len(runes))
	for _, r := range runes {
		switch r {
		case VarExpand, VarExpandSingle:
			b.WriteRune('$')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
