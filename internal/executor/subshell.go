package executor

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	"gobash/internal/expand"
	"gobash/internal/lexer"
	"gobash/internal/parser"
)

// maxSubshellOutput bounds how much a command substitution may produce
// before it's discarded with expand.StatusReadTooMuch, the way fish's
// cmdsubst buffer has a cap.
const maxSubshellOutput = 10 << 20 // 10 MiB

// ExecSubshell implements expand.CmdSubstExecutor: it re-enters the lexer and
// parser on source, runs it against a child Executor that shares this one's
// variables, and captures everything the child writes to stdout.
func (e *Executor) ExecSubshell(ctx context.Context, source string) ([]string, int, error) {
	l := lexer.New(source)
	p := parser.New(l)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, 0, &SubshellError{Errors: errs}
	}

	r, w, err := os.Pipe()
	if err != nil {
		return nil, 0, err
	}

	child := &Executor{env: e.env, builtins: e.builtins, functions: e.functions}

	originalStdout := os.Stdout
	os.Stdout = w
	execErr := make(chan error, 1)
	go func() {
		defer w.Close()
		execErr <- child.Execute(program)
	}()

	status := 0
	var lines []string
	truncated := false
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxSubshellOutput)
	read := 0
	for scanner.Scan() {
		line := scanner.Text()
		read += len(line) + 1
		if read > maxSubshellOutput {
			truncated = true
			break
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil && err != io.EOF {
		truncated = true
	}
	io.Copy(io.Discard, r) // drain the rest so the child's goroutine can finish
	r.Close()
	os.Stdout = originalStdout

	if runErr := <-execErr; runErr != nil && !truncated {
		return lines, 0, nil
	}
	if truncated {
		status = expand.StatusReadTooMuch
	}
	return stripTrailingEmpty(lines), status, nil
}

// stripTrailingEmpty drops a single trailing empty line, the way splitting a
// subshell's trailing '\n'-terminated output on newlines otherwise leaves
// one spurious empty element.
func stripTrailingEmpty(lines []string) []string {
	if n := len(lines); n > 0 && lines[n-1] == "" {
		return lines[:n-1]
	}
	return lines
}

// SubshellError reports that the source handed to ExecSubshell failed to
// parse.
type SubshellError struct {
	Errors []string
}

func (e *SubshellError) Error() string {
	return "command substitution: " + strings.Join(e.Errors, "; ")
}
