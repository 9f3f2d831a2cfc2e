package expand

import "context"

// variableStageCtx carries the collaborators the variable stage needs,
// bundled so expandVariables's recursive calls stay readable.
type variableStageCtx struct {
	ctx     context.Context
	vars    VariableStore
	history HistoryStore
	errs    *ParseErrorList
}

// stageVariables implements spec.md §4.3: unescape, then (unless
// skip_variables) right-to-left variable substitution.
func (p *Pipeline) stageVariables(in string) ([]Completion, StageResult) {
	runes := unescape(in)

	if p.flags.Has(SkipVariables) {
		return completionsOf(reescapeDollar(runes)), StageOK
	}

	vctx := &variableStageCtx{ctx: p.ctx, vars: p.vars, history: p.history, errs: p.errs}
	var out []Completion
	if !expandVariables(vctx, runes, len(runes), &out) {
		return nil, StageError
	}
	return out, StageOK
}

// expandVariables is the direct port of fish's expand_variables: it scans
// instr backwards from lastIdx looking for the last unprocessed VarExpand /
// VarExpandSingle sentinel, resolves the name it introduces, and recurses on
// the rewritten remainder. lastIdx is "one past where we last finished", so
// the first call passes len(instr).
func expandVariables(c *variableStageCtx, instr []rune, lastIdx int, out *[]Completion) bool {
	insize := len(instr)
	if lastIdx == 0 {
		*out = append(*out, Completion{Value: string(instr)})
		return true
	}

	isSingle := false
	varexpCharIdx := lastIdx
	found := false
	for varexpCharIdx > 0 {
		varexpCharIdx--
		ch := instr[varexpCharIdx]
		if ch == VarExpand || ch == VarExpandSingle {
			isSingle = ch == VarExpandSingle
			found = true
			break
		}
	}
	if !found {
		*out = append(*out, Completion{Value: string(instr)})
		return true
	}

	varNameStart := varexpCharIdx + 1
	varNameStop := varNameStart
	for varNameStop < insize {
		nc := instr[varNameStop]
		if nc == VarExpandEmpty {
			varNameStop++
			break
		}
		if !ValidVarNameChar(nc) {
			break
		}
		varNameStop++
	}
	varNameLen := varNameStop - varNameStart

	if varNameLen == 0 {
		c.errs.AppendSyntax(varexpCharIdx, "$ followed by non-name")
		return false
	}

	varName := string(instr[varNameStart:varNameStop])

	var history HistoryStore
	var v EnvVar
	var haveVar bool
	if varName == "history" {
		history = c.history // nil if off the main goroutine / not wired
	} else if varName != string(VarExpandEmpty) {
		v, haveVar = c.vars.Get(varName)
	}

	varNameAndSliceStop := varNameStop
	allValues := true
	var varIdxList []int
	sliceStart := varNameStop
	if sliceStart < insize && instr[sliceStart] == '[' {
		allValues = false
		effectiveValCount := 1
		if haveVar {
			effectiveValCount = len(v.AsList())
		} else if history != nil {
			effectiveValCount = history.Size()
		}
		idx, endPos, badPos, ok := parseSlice(instr[sliceStart:], effectiveValCount)
		if !ok {
			c.errs.AppendSyntax(sliceStart+badPos, "%s", sliceErrorMessage(instr[sliceStart:], badPos))
			return false
		}
		varIdxList = idx
		varNameAndSliceStop = sliceStart + endPos
	}

	if !haveVar && history == nil {
		if !isSingle {
			// Missing variable, unquoted: expands to nothing.
			return true
		}
		// Missing variable, quoted-single: splice in VarExpandEmpty and
		// recurse so "$unset$x" still distinguishes empty from absent.
		res := append([]rune{}, instr[:varexpCharIdx]...)
		if len(res) > 0 && res[len(res)-1] == VarExpandSingle {
			res = append(res, VarExpandEmpty)
		}
		res = append(res, instr[varNameAndSliceStop:]...)
		return expandVariables(c, res, varexpCharIdx, out)
	}

	var varItemList []string
	if allValues {
		if history != nil {
			varItemList = history.GetHistory()
		} else {
			varItemList = v.AsList()
		}
	} else {
		if history != nil {
			itemMap := history.ItemsAtIndexes(varIdxList)
			for _, itemIndex := range varIdxList {
				if s, ok := itemMap[itemIndex]; ok {
					varItemList = append(varItemList, s)
				}
			}
		} else {
			allVarItems := v.AsList()
			for _, itemIndex := range varIdxList {
				if itemIndex >= 1 && itemIndex <= len(allVarItems) {
					varItemList = append(varItemList, allVarItems[itemIndex-1])
				}
			}
		}
	}

	if isSingle {
		delim := ' '
		if history == nil {
			delim = v.Delimiter()
		}
		res := append([]rune{}, instr[:varexpCharIdx]...)
		if len(res) > 0 {
			if res[len(res)-1] != VarExpandSingle {
				res = append(res, InternalSep)
			} else if len(varItemList) == 0 || varItemList[0] == "" {
				res = append(res, VarExpandEmpty)
			}
		}
		res = append(res, []rune(joinStrings(varItemList, delim))...)
		res = append(res, instr[varNameAndSliceStop:]...)
		return expandVariables(c, res, varexpCharIdx, out)
	}

	// Normal cartesian-product expansion.
	for _, item := range varItemList {
		if varexpCharIdx == 0 && varNameAndSliceStop == insize {
			*out = append(*out, Completion{Value: item})
			continue
		}
		newIn := append([]rune{}, instr[:varexpCharIdx]...)
		if len(newIn) > 0 {
			if newIn[len(newIn)-1] != VarExpand {
				newIn = append(newIn, InternalSep)
			} else if item == "" {
				newIn = append(newIn, VarExpandEmpty)
			}
		}
		newIn = append(newIn, []rune(item)...)
		newIn = append(newIn, instr[varNameAndSliceStop:]...)
		if !expandVariables(c, newIn, varexpCharIdx, out) {
			return false
		}
	}
	return true
}
