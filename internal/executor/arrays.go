package executor

import (
	"strconv"
	"strings"

	"gobash/internal/parser"
)

// executeArrayAssignment populates e.arrays/e.assocArrays from an
// ArrayAssignmentStatement, produced either by `arr=(1 2 3)` /
// `arr=([0]=a [2]=c)` or by the single-element `arr[key]=value` form the
// parser folds into the same node with one IndexedValues entry.
func (e *Executor) executeArrayAssignment(stmt *parser.ArrayAssignmentStatement) error {
	if len(stmt.IndexedValues) > 0 {
		isAssoc := e.arrayTypes[stmt.Name] == "assoc"
		for key, valExpr := range stmt.IndexedValues {
			value := e.evaluateExpression(valExpr)

			if !isAssoc {
				if idx, err := strconv.Atoi(key); err == nil {
					arr := e.arrays[stmt.Name]
					for len(arr) <= idx {
						arr = append(arr, "")
					}
					arr[idx] = value
					e.arrays[stmt.Name] = arr
					if _, declared := e.arrayTypes[stmt.Name]; !declared {
						e.arrayTypes[stmt.Name] = "array"
					}
					continue
				}
				// Non-numeric key with no prior `declare -A`: treat as an
				// associative array created on first use.
				isAssoc = true
				e.arrayTypes[stmt.Name] = "assoc"
			}

			if e.assocArrays[stmt.Name] == nil {
				e.assocArrays[stmt.Name] = make(map[string]string)
			}
			e.assocArrays[stmt.Name][key] = value
		}
		return nil
	}

	values := make([]string, 0, len(stmt.Values))
	for _, v := range stmt.Values {
		values = append(values, e.expandArgument(v)...)
	}
	e.arrays[stmt.Name] = values
	e.arrayTypes[stmt.Name] = "array"
	return nil
}

// executeDeclare implements enough of `declare`/`typeset` to back -A/-a
// array declarations and plain `declare NAME=value` assignment.
func (e *Executor) executeDeclare(args []string) error {
	assoc := false
	indexed := false
	var names []string

	for _, a := range args {
		switch {
		case a == "-A":
			assoc = true
		case a == "-a":
			indexed = true
		case strings.HasPrefix(a, "-"):
			// Other declare flags (-x, -r, -i, ...) aren't modeled.
		default:
			names = append(names, a)
		}
	}

	for _, name := range names {
		varName := name
		value := ""
		hasValue := false
		if idx := strings.Index(name, "="); idx != -1 {
			varName = name[:idx]
			value = name[idx+1:]
			hasValue = true
		}

		switch {
		case assoc:
			if e.assocArrays[varName] == nil {
				e.assocArrays[varName] = make(map[string]string)
			}
			e.arrayTypes[varName] = "assoc"
		case indexed:
			if e.arrays[varName] == nil {
				e.arrays[varName] = []string{}
			}
			e.arrayTypes[varName] = "array"
		case hasValue:
			e.env[varName] = value
		default:
			if _, ok := e.env[varName]; !ok {
				e.env[varName] = ""
			}
		}
	}
	return nil
}

// expandArray joins an array's elements the way `"${arr[@]}"` (quoted) or
// `${arr[*]}` (unquoted, IFS-joined) would.
func (e *Executor) expandArray(name string, quoted bool) string {
	arr, ok := e.arrays[name]
	if !ok {
		return ""
	}
	if quoted {
		return strings.Join(arr, " ")
	}
	sep := " "
	if ifs := e.env["IFS"]; ifs != "" {
		sep = string([]rune(ifs)[0])
	}
	return strings.Join(arr, sep)
}

// getArrayElement resolves a combined "name[index]" expression (as produced
// by ${arr[0]}'s ParamExpandExpression.VarName+Word concatenation) against
// either a numeric array or an associative array, depending on which one
// was declared for name. A bare name with no "[" is looked up as a scalar.
func (e *Executor) getArrayElement(expr string) string {
	open := strings.Index(expr, "[")
	if open == -1 || !strings.HasSuffix(expr, "]") {
		return e.env[expr]
	}
	name := expr[:open]
	key := expr[open+1 : len(expr)-1]

	if e.arrayTypes[name] == "assoc" {
		return e.assocArrays[name][key]
	}

	arr, ok := e.arrays[name]
	if !ok {
		return ""
	}
	idx, err := strconv.Atoi(key)
	if err != nil {
		return ""
	}
	if idx < 0 {
		idx = len(arr) + idx
	}
	if idx < 0 || idx >= len(arr) {
		return ""
	}
	return arr[idx]
}
