package executor

import (
	"path/filepath"

	"gobash/internal/parser"
)

// breakSignal propagates a pending `break [n]` up through nested executeBlock
// calls until the n-th enclosing loop consumes it.
type breakSignal struct{ level int }

func (b *breakSignal) Error() string { return "break" }

// continueSignal is the `continue [n]` analogue of breakSignal.
type continueSignal struct{ level int }

func (c *continueSignal) Error() string { return "continue" }

func isLoopSignal(err error) bool {
	switch err.(type) {
	case *breakSignal, *continueSignal:
		return true
	default:
		return false
	}
}

// executeCommandChain runs a ; / && / || chain. Only && and || are
// conditional on the left side's status; ; always runs the right side.
func (e *Executor) executeCommandChain(chain *parser.CommandChain) error {
	leftErr := e.executeStatement(chain.Left)
	if isLoopSignal(leftErr) {
		return leftErr
	}

	switch chain.Operator {
	case "&&":
		if leftErr != nil {
			return leftErr
		}
		return e.executeStatement(chain.Right)
	case "||":
		if leftErr == nil {
			return nil
		}
		return e.executeStatement(chain.Right)
	default: // ";"
		return e.executeStatement(chain.Right)
	}
}

// executeCase runs the first case clause whose pattern matches value,
// using shell glob matching (the same semantics filepath.Match gives
// pathnameExpand's wildcards).
func (e *Executor) executeCase(stmt *parser.CaseStatement) error {
	value := e.evaluateExpression(stmt.Value)

	for _, clause := range stmt.Cases {
		for _, pattern := range clause.Patterns {
			if pattern == "*" {
				return e.executeBlock(clause.Body)
			}
			expanded := e.expandWord(pattern)
			if matched, err := filepath.Match(expanded, value); err == nil && matched {
				return e.executeBlock(clause.Body)
			}
		}
	}
	return nil
}
