package expand

// stageBraces implements spec.md §4.4: recursive `{a,b,c}` splitting.
func (p *Pipeline) stageBraces(in string) ([]Completion, StageResult) {
	out, res := expandBraces([]rune(in), p.flags, p.errs)
	return out, res
}

// expandBraces is the direct port of fish's expand_braces. It locates the
// first top-level, non-nested brace pair and recurses on every item it
// contains; braces that are deeper than depth 0 (nested groups) are left
// alone for the recursive call on each item to handle.
func expandBraces(in []rune, flags ExpandFlags, errs *ParseErrorList) ([]Completion, StageResult) {
	syntaxError := false
	braceCount := 0

	braceBegin, braceEnd := -1, -1
	lastSep := -1

	for pos := 0; pos < len(in) && !syntaxError; pos++ {
		switch in[pos] {
		case BraceBegin:
			if braceCount == 0 {
				braceBegin = pos
			}
			braceCount++
		case BraceEnd:
			braceCount--
			if braceCount < 0 {
				syntaxError = true
			} else if braceCount == 0 {
				braceEnd = pos
			}
		case BraceSep:
			if braceCount == 1 {
				lastSep = pos
			}
		}
	}

	if braceCount > 0 {
		if !flags.Has(ForCompletions) {
			syntaxError = true
		} else {
			// The user hasn't typed a closing brace yet. Synthesize one so
			// completion can still see what they typed so far.
			//
			// This retry always uses only SkipCmdsubst, discarding whatever
			// else the caller passed in. Preserved intentionally (see
			// DESIGN.md's Open Questions) rather than silently "fixed".
			var mod []rune
			if lastSep != -1 {
				mod = append(mod, in[:braceBegin+1]...)
				mod = append(mod, in[lastSep+1:]...)
				mod = append(mod, BraceEnd)
			} else {
				mod = append(mod, in...)
				mod = append(mod, BraceEnd)
			}
			return expandBraces(mod, SkipCmdsubst, errs)
		}
	}

	if syntaxError {
		errs.AppendSyntax(SourceLocationUnknown, "Mismatched braces")
		return nil, StageError
	}

	if braceBegin == -1 {
		return []Completion{{Value: string(in)}}, StageOK
	}

	prefix := in[:braceBegin]
	suffix := in[braceEnd+1:]

	var out []Completion
	itemBegin := braceBegin + 1
	depth := 0
	for pos := braceBegin + 1; ; pos++ {
		atSep := depth == 0 && pos < len(in) && in[pos] == BraceSep
		atEnd := pos == braceEnd
		if depth == 0 && (atSep || atEnd) {
			item := trimBraceSpace(in[itemBegin:pos])
			item = convertBraceSpace(item)

			wholeItem := make([]rune, 0, len(prefix)+len(item)+len(suffix))
			wholeItem = append(wholeItem, prefix...)
			wholeItem = append(wholeItem, item...)
			wholeItem = append(wholeItem, suffix...)

			sub, res := expandBraces(wholeItem, flags, errs)
			if res == StageError {
				return nil, StageError
			}
			out = append(out, sub...)

			itemBegin = pos + 1
			if atEnd {
				break
			}
		}

		if pos < len(in) {
			switch in[pos] {
			case BraceBegin:
				depth++
			case BraceEnd:
				depth--
			}
		}
	}
	return out, StageOK
}

func trimBraceSpace(item []rune) []rune {
	start, end := 0, len(item)
	for start < end && item[start] == BraceSpace {
		start++
	}
	for end > start && item[end-1] == BraceSpace {
		end--
	}
	return item[start:end]
}

func convertBraceSpace(item []rune) []rune {
	out := make([]rune, len(item))
	for i, c := range item {
		if c == BraceSpace {
			out[i] = ' '
		} else {
			out[i] = c
		}
	}
	return out
}
