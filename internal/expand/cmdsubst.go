package expand

import "strings"

// stageCmdsubst implements spec.md §4.2.
func (p *Pipeline) stageCmdsubst(in string) ([]Completion, StageResult) {
	if p.flags.Has(SkipCmdsubst) {
		runes := []rune(in)
		begin, _, result := p.locate(runes, true)
		switch result {
		case LocateNone:
			return []Completion{{Value: in}}, StageOK
		case LocateFound:
			p.errs.AppendCmdsub(begin, "Command substitutions not allowed")
			return nil, StageError
		default:
			return nil, StageError
		}
	}

	out, ok := p.expandCmdsubst([]rune(in))
	if !ok {
		return nil, StageError
	}
	return out, StageOK
}

func (p *Pipeline) locate(in []rune, acceptIncomplete bool) (begin, end int, result LocateResult) {
	if p.locator != nil {
		return p.locator.LocateCmdsubst(in, acceptIncomplete)
	}
	return locateCmdsubstFallback(in, acceptIncomplete)
}

// expandCmdsubst is the direct port of fish's expand_cmdsubst: find the
// first top-level `(...)`, run it through the CmdSubstExecutor, optionally
// slice the resulting lines, and recursively expand (and cartesian-product
// with) the remainder of the string.
func (p *Pipeline) expandCmdsubst(in []rune) ([]Completion, bool) {
	parenBegin, parenEnd, result := p.locate(in, false)
	switch result {
	case LocateError:
		p.errs.AppendSyntax(SourceLocationUnknown, "Mismatched parenthesis")
		return nil, false
	case LocateNone:
		return []Completion{{Value: string(in)}}, true
	}

	subcmd := string(in[parenBegin+1 : parenEnd])
	lines, status, err := p.exec.ExecSubshell(p.ctx, subcmd)
	if err != nil {
		p.errs.AppendCmdsub(SourceLocationUnknown, "Unknown error while evaluating command substitution")
		return nil, false
	}
	if status == StatusReadTooMuch {
		// expand.cpp computes this offset as `in - paren_begin`, which is
		// negative (paren_begin is always >= in). §9 flags this as likely a
		// reversed-operand bug; we compute the sensible direction instead of
		// replicating it.
		p.errs.AppendCmdsub(parenBegin, "Too much data emitted by command substitution so it was discarded")
		return nil, false
	}

	tailBegin := parenEnd + 1
	if tailBegin < len(in) && in[tailBegin] == '[' {
		idx, endPos, badPos, ok := parseSlice(in[tailBegin:], len(lines))
		if !ok {
			p.errs.AppendSyntax(tailBegin+badPos, "Invalid index value")
			return nil, false
		}
		var sliced []string
		for _, i := range idx {
			if i < 1 || i > len(lines) {
				continue
			}
			sliced = append(sliced, lines[i-1])
		}
		lines = sliced
		tailBegin += endPos
	}

	tailExpand, ok := p.expandCmdsubst(in[tailBegin:])
	if !ok {
		return nil, false
	}

	prefix := string(in[:parenBegin])
	var out []Completion
	for _, subItem := range lines {
		escaped := escapeForSentinelPipeline(subItem)
		for _, tailItem := range tailExpand {
			var b strings.Builder
			b.WriteString(prefix)
			b.WriteRune(InternalSep)
			b.WriteString(escaped)
			b.WriteRune(InternalSep)
			b.WriteString(tailItem.Value)
			out = append(out, Completion{Value: b.String()})
		}
	}
	return out, true
}

// escapeForSentinelPipeline backslash-escapes the handful of characters that
// are meaningful to this package's own unescape pass, so a command
// substitution's literal output round-trips through the subsequent
// unescape+variable stage unchanged. This is deliberately not general shell
// quoting (see DESIGN.md): it only needs to survive one more pass of *our*
// unescape(), not a shell.
func escapeForSentinelPipeline(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\\', '$', '~', '*', '?', '{', '}', ',', '\'', '"':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// locateCmdsubstFallback is used when no Locator collaborator is wired in
// (e.g. unit tests exercising the cmdsubst stage directly). It mirrors
// parse_util_locate_cmdsubst: scan for the first unquoted, unescaped '(',
// then track nesting depth (while still respecting quotes) to find its
// matching ')'.
func locateCmdsubstFallback(in []rune, acceptIncomplete bool) (begin, end int, result LocateResult) {
	var quote rune
	depth := 0
	begin = -1
	for i := 0; i < len(in); i++ {
		c := in[i]
		switch {
		case c == '\\' && i+1 < len(in):
			i++
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '(':
			if depth == 0 {
				begin = i
			}
			depth++
		case c == ')':
			if depth == 0 {
				return 0, 0, LocateError
			}
			depth--
			if depth == 0 {
				return begin, i, LocateFound
			}
		}
	}
	if depth > 0 {
		if acceptIncomplete {
			return begin, len(in) - 1, LocateFound
		}
		return 0, 0, LocateError
	}
	return 0, 0, LocateNone
}
