package executor

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"gobash/internal/lexer"
	"gobash/internal/parser"
)

// runCapturingStdout parses and executes command against e, returning
// whatever it wrote to os.Stdout. Mirrors the pipe-capture pattern used by
// the command-substitution stdout tests.
func runCapturingStdout(t *testing.T, e *Executor, command string) string {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("创建管道失败: %v", err)
	}
	oldStdout := os.Stdout
	os.Stdout = w

	var buf bytes.Buffer
	done := make(chan bool)
	go func() {
		io.Copy(&buf, r)
		r.Close()
		done <- true
	}()

	l := lexer.New(command)
	p := parser.New(l)
	program := p.ParseProgram()
	if len(p.Errors()) > 0 {
		w.Close()
		<-done
		os.Stdout = oldStdout
		t.Fatalf("解析错误: %v", p.Errors())
	}

	execErr := e.Execute(program)

	w.Close()
	<-done
	os.Stdout = oldStdout

	if execErr != nil {
		t.Fatalf("执行错误: %v", execErr)
	}
	return buf.String()
}

// TestEnvStoreArrayCartesianProduct drives a real array variable through
// envStore/expand.Pipeline end to end: bare $arr must expand to one value
// per element (the variable stage's cartesian product), not collapse to
// nothing the way a scalar-only envStore.Get would.
func TestEnvStoreArrayCartesianProduct(t *testing.T) {
	e := New()
	output := runCapturingStdout(t, e, "arr=(a b c); echo $arr")

	if strings.TrimRight(output, "\n") != "a b c" {
		t.Fatalf("期望 echo $arr 输出 %q，得到 %q", "a b c\n", output)
	}
}

// TestEnvStoreArrayCartesianProductWithPrefix runs the same array through
// `echo p-$arr`. The lexer stops an identifier at '$' (readIdentifierOrPath),
// so "p-$arr" tokenizes as two separate tokens -- Identifier("p-") and
// Variable("arr") -- and parseCommandStatement appends one Args entry per
// token. Each argument expands independently: "p-" stays a literal, "$arr"
// fans out through the fixed envStore.Get into three separate words. The
// prefix is therefore never joined onto the array elements; echo sees four
// words, not three "p-"-prefixed ones.
func TestEnvStoreArrayCartesianProductWithPrefix(t *testing.T) {
	e := New()
	output := runCapturingStdout(t, e, "arr=(a b c); echo p-$arr")

	if strings.TrimRight(output, "\n") != "p- a b c" {
		t.Fatalf("期望 echo p-$arr 输出 %q，得到 %q", "p- a b c\n", output)
	}
}

// TestEnvStoreAssocArrayCartesianProduct exercises the associative-array
// branch of envStore.Get: bare $assoc must expand to one value per key,
// sorted for determinism across Go's unordered map iteration.
func TestEnvStoreAssocArrayCartesianProduct(t *testing.T) {
	e := New()
	e.assocArrays["assoc"] = map[string]string{"z": "last", "a": "first", "m": "mid"}

	output := runCapturingStdout(t, e, "echo $assoc")

	if strings.TrimRight(output, "\n") != "first mid last" {
		t.Fatalf("期望 echo $assoc 按键排序输出 %q，得到 %q", "first mid last\n", output)
	}
}

// TestEnvStoreScalarStillWorks guards against the array/assoc-array lookups
// added to envStore.Get shadowing the plain scalar path for names that are
// ordinary variables, not arrays.
func TestEnvStoreScalarStillWorks(t *testing.T) {
	e := New()
	output := runCapturingStdout(t, e, "x=hello; echo $x")

	if strings.TrimRight(output, "\n") != "hello" {
		t.Fatalf("期望 echo $x 输出 %q，得到 %q", "hello\n", output)
	}
}
