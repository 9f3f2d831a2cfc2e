package lexer

import "gobash/internal/expand"

// SubshellLocator implements expand.Locator on top of LocateSubshell, so the
// executor can wire the lexer's own quoting rules into the expansion core
// instead of the core's byte-level fallback scanner.
type SubshellLocator struct{}

func (SubshellLocator) LocateCmdsubst(in []rune, acceptIncomplete bool) (begin, end int, result expand.LocateResult) {
	return LocateSubshell(in, acceptIncomplete)
}

// LocateSubshell finds the first top-level, unquoted `(...)` region in in,
// honoring the same backslash and quote conventions New's tokenizer uses for
// '\'', '"' and '`'. Command substitution expansion needs this done ahead of
// full tokenization, since a `(...)` region can itself still contain
// unexpanded variables and further substitutions.
func LocateSubshell(in []rune, acceptIncomplete bool) (begin, end int, result expand.LocateResult) {
	var quote rune
	depth := 0
	begin = -1
	for i := 0; i < len(in); i++ {
		c := in[i]
		switch {
		case c == '\\' && quote != '\'' && i+1 < len(in):
			i++
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"' || c == '`':
			quote = c
		case c == '(':
			if depth == 0 {
				begin = i
			}
			depth++
		case c == ')':
			if depth == 0 {
				return 0, 0, expand.LocateError
			}
			depth--
			if depth == 0 {
				return begin, i, expand.LocateFound
			}
		}
	}
	if depth > 0 {
		if acceptIncomplete {
			return begin, len(in) - 1, expand.LocateFound
		}
		return 0, 0, expand.LocateError
	}
	return 0, 0, expand.LocateNone
}
