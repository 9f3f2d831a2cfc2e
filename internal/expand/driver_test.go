package expand

import (
	"testing"
)

func TestIsCleanFastPath(t *testing.T) {
	tests := []struct {
		in    string
		clean bool
	}{
		{"", true},
		{"hello", true},
		{"hello.txt", true},
		{"~foo", false},
		{"%self", false},
		{"$x", false},
		{"a*b", false},
		{"a?b", false},
		{"a{b,c}", false},
		{`a\b`, false},
		{`a"b`, false},
		{"a'b", false},
		{"a(b)", false},
		{"plain-path/to/file", true},
	}
	for _, tt := range tests {
		if got := isClean(tt.in); got != tt.clean {
			t.Errorf("isClean(%q) = %v, want %v", tt.in, got, tt.clean)
		}
	}
}

func TestExpandStringCleanInputIsIdentity(t *testing.T) {
	p := newTestPipeline(nil, nil, nil, nil)
	out, res := p.ExpandString("hello/world.txt", 0, NewParseErrorList())
	if res != StageOK {
		t.Fatalf("result = %v, want StageOK", res)
	}
	if got := Values(out); len(got) != 1 || got[0] != "hello/world.txt" {
		t.Fatalf("got %v, want [hello/world.txt]", got)
	}
}

func TestExpandOneOnCleanInput(t *testing.T) {
	p := newTestPipeline(nil, nil, nil, nil)
	got, ok := p.ExpandOne("hello", 0)
	if !ok || got != "hello" {
		t.Fatalf("ExpandOne = (%q, %v), want (hello, true)", got, ok)
	}
}

// Scenario 1 (spec.md §8): unquoted multi-valued variable cartesian-products
// with surrounding literal text, in order.
func TestVariableUnquotedCartesianProductWithSurroundingText(t *testing.T) {
	vars := newFakeVars().set("x", "a", "b", "c")
	p := newTestPipeline(vars, nil, nil, nil)

	out, res := p.ExpandString("prefix-$x-suffix", 0, NewParseErrorList())
	if res != StageOK {
		t.Fatalf("result = %v", res)
	}
	want := []string{"prefix-a-suffix", "prefix-b-suffix", "prefix-c-suffix"}
	got := Values(out)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

// Scenario 1 (quoted form): `"$v"` joins with the variable's delimiter into
// exactly one completion.
func TestVariableQuotedSingleJoinsWithDelimiter(t *testing.T) {
	vars := newFakeVars().set("x", "a", "b", "c")
	p := newTestPipeline(vars, nil, nil, nil)

	out, res := p.ExpandString(`"prefix-$x-suffix"`, 0, NewParseErrorList())
	if res != StageOK {
		t.Fatalf("result = %v", res)
	}
	if len(out) != 1 {
		t.Fatalf("got %d completions, want 1: %v", len(out), Values(out))
	}
	if out[0].Value != "prefix-a b c-suffix" {
		t.Fatalf("got %q, want %q", out[0].Value, "prefix-a b c-suffix")
	}
}

// Testable property: for any variable v with values [a,b,c] and prefix p,
// p$v expands to [pa, pb, pc] in order -- a smaller, more direct check of
// the same invariant as the scenario above.
func TestVariablePrefixOrderPreserved(t *testing.T) {
	vars := newFakeVars().set("v", "a", "b", "c")
	p := newTestPipeline(vars, nil, nil, nil)
	out, _ := p.ExpandString("p$v", 0, NewParseErrorList())
	got := Values(out)
	want := []string{"pa", "pb", "pc"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

// Empty variable inside quotes: "$unset$v" == "$v" (empty concatenates as
// empty, not as missing).
func TestQuotedEmptyVariableConcatenatesAsEmpty(t *testing.T) {
	vars := newFakeVars().set("v", "val")
	p := newTestPipeline(vars, nil, nil, nil)

	outUnset, res1 := p.ExpandString(`"$unset$v"`, 0, NewParseErrorList())
	outPlain, res2 := p.ExpandString(`"$v"`, 0, NewParseErrorList())
	if res1 != StageOK || res2 != StageOK {
		t.Fatalf("results = %v, %v", res1, res2)
	}
	if Values(outUnset)[0] != Values(outPlain)[0] {
		t.Fatalf(`"$unset$v" = %q, want %q`, Values(outUnset)[0], Values(outPlain)[0])
	}
}

// $unset[1] is valid syntax and expands to nothing (not an error).
func TestMissingVariableWithSliceExpandsToNothing(t *testing.T) {
	p := newTestPipeline(nil, nil, nil, nil)
	out, res := p.ExpandString("$unset[1]", 0, NewParseErrorList())
	if res != StageOK {
		t.Fatalf("result = %v, want StageOK", res)
	}
	if len(out) != 0 {
		t.Fatalf("got %v, want no completions", Values(out))
	}
}

// A missing unquoted variable expands to nothing.
func TestMissingVariableUnquotedExpandsToNothing(t *testing.T) {
	p := newTestPipeline(nil, nil, nil, nil)
	out, res := p.ExpandString("$unset", 0, NewParseErrorList())
	if res != StageOK {
		t.Fatalf("result = %v", res)
	}
	if len(out) != 0 {
		t.Fatalf("got %v, want no completions", Values(out))
	}
}

// $v[0] is a syntax error at the '0' offset regardless of $v's values.
func TestZeroSliceIndexIsSyntaxError(t *testing.T) {
	vars := newFakeVars().set("x", "a", "b", "c")
	p := newTestPipeline(vars, nil, nil, nil)
	errs := NewParseErrorList()
	_, res := p.ExpandString("$x[0]", 0, errs)
	if res != StageError {
		t.Fatalf("result = %v, want StageError", res)
	}
	got := errs.Errors()
	if len(got) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(got), got)
	}
	pe, ok := got[0].(*ParseError)
	if !ok {
		t.Fatalf("error is not *ParseError: %T", got[0])
	}
	if pe.SourceStart != 3 {
		t.Errorf("offset = %d, want 3 (position of '0' in \"$x[0]\")", pe.SourceStart)
	}
}

// Scenario 2: slices.
func TestVariableSliceScenarios(t *testing.T) {
	vars := newFakeVars().set("x", "a", "b", "c", "d", "e")
	p := newTestPipeline(vars, nil, nil, nil)

	out, res := p.ExpandString("$x[2..-1]", 0, NewParseErrorList())
	if res != StageOK {
		t.Fatalf("result = %v", res)
	}
	if got := Values(out); !equalStrings(got, []string{"b", "c", "d", "e"}) {
		t.Errorf("$x[2..-1] = %v, want [b c d e]", got)
	}

	out, res = p.ExpandString("$x[-1..2]", 0, NewParseErrorList())
	if res != StageOK {
		t.Fatalf("result = %v", res)
	}
	if got := Values(out); !equalStrings(got, []string{"e", "d", "c", "b"}) {
		t.Errorf("$x[-1..2] = %v, want [e d c b]", got)
	}
}

// Slice [1..-1] is the identity on a non-empty list; [-1..1] is its reverse.
func TestSliceFullRangeIdentityAndReverse(t *testing.T) {
	vars := newFakeVars().set("x", "a", "b", "c")
	p := newTestPipeline(vars, nil, nil, nil)

	out, _ := p.ExpandString("$x[1..-1]", 0, NewParseErrorList())
	if got := Values(out); !equalStrings(got, []string{"a", "b", "c"}) {
		t.Errorf("$x[1..-1] = %v, want [a b c]", got)
	}

	out, _ = p.ExpandString("$x[-1..1]", 0, NewParseErrorList())
	if got := Values(out); !equalStrings(got, []string{"c", "b", "a"}) {
		t.Errorf("$x[-1..1] = %v, want [c b a]", got)
	}
}

// Maximum slice value equal to the collection length selects the last
// element; length+1 is silently dropped.
func TestSliceBoundaries(t *testing.T) {
	vars := newFakeVars().set("x", "a", "b", "c")
	p := newTestPipeline(vars, nil, nil, nil)

	out, _ := p.ExpandString("$x[3]", 0, NewParseErrorList())
	if got := Values(out); !equalStrings(got, []string{"c"}) {
		t.Errorf("$x[3] = %v, want [c]", got)
	}

	out, res := p.ExpandString("$x[4]", 0, NewParseErrorList())
	if res != StageOK {
		t.Fatalf("result = %v", res)
	}
	if len(out) != 0 {
		t.Errorf("$x[4] = %v, want []", Values(out))
	}
}

// Scenario 3: brace expansion.
func TestBraceExpansionScenarios(t *testing.T) {
	p := newTestPipeline(nil, nil, nil, nil)

	out, res := p.ExpandString("a{1,2,3}b", 0, NewParseErrorList())
	if res != StageOK {
		t.Fatalf("result = %v", res)
	}
	if got := Values(out); !equalStrings(got, []string{"a1b", "a2b", "a3b"}) {
		t.Errorf("a{1,2,3}b = %v", got)
	}

	out, res = p.ExpandString("a{b{1,2},c}d", 0, NewParseErrorList())
	if res != StageOK {
		t.Fatalf("result = %v", res)
	}
	if got := Values(out); !equalStrings(got, []string{"ab1d", "ab2d", "acd"}) {
		t.Errorf("a{b{1,2},c}d = %v", got)
	}
}

// Scenario 4: command substitution.
func TestCommandSubstitutionScenarios(t *testing.T) {
	exec := newFakeExecutor().on("echo a b", "a b").on("echo a\nb", "a", "b")
	p := newTestPipeline(nil, nil, exec, nil)

	out, res := p.ExpandString("pre-(echo a b)-suf", 0, NewParseErrorList())
	if res != StageOK {
		t.Fatalf("result = %v", res)
	}
	if got := Values(out); !equalStrings(got, []string{"pre-a b-suf"}) {
		t.Errorf("got %v, want [pre-a b-suf]", got)
	}

	out, res = p.ExpandString("pre-(echo a\nb)-suf", 0, NewParseErrorList())
	if res != StageOK {
		t.Fatalf("result = %v", res)
	}
	if got := Values(out); !equalStrings(got, []string{"pre-a-suf", "pre-b-suf"}) {
		t.Errorf("got %v, want [pre-a-suf pre-b-suf]", got)
	}
}

// Scenario 5: tilde expansion and restoration.
func TestTildeExpansionScenarios(t *testing.T) {
	vars := newFakeVars().set("HOME", "/u/me")
	users := &fakeUsers{homes: map[string]string{}}
	p := newTestPipeline(vars, nil, nil, users)

	out, res := p.ExpandString("~/x", 0, NewParseErrorList())
	if res != StageOK {
		t.Fatalf("result = %v", res)
	}
	if got := Values(out); !equalStrings(got, []string{"/u/me/x"}) {
		t.Errorf("~/x = %v, want [/u/me/x]", got)
	}

	out, res = p.ExpandString("~foo/x", 0, NewParseErrorList())
	if res != StageOK {
		t.Fatalf("result = %v", res)
	}
	if got := Values(out); !equalStrings(got, []string{"~foo/x"}) {
		t.Errorf("~foo/x = %v, want [~foo/x] (restored)", got)
	}
}

func TestExpandToCommandAndArgs(t *testing.T) {
	vars := newFakeVars().set("x", "echo", "a", "b")
	p := newTestPipeline(vars, nil, nil, nil)
	cmd, args, res := p.ExpandToCommandAndArgs("$x")
	if res != StageOK {
		t.Fatalf("result = %v", res)
	}
	if cmd != "echo" {
		t.Fatalf("cmd = %q, want echo", cmd)
	}
	if !equalStrings(args, []string{"a", "b"}) {
		t.Fatalf("args = %v, want [a b]", args)
	}
}

func TestSkipVariablesLeavesDollarLiteral(t *testing.T) {
	p := newTestPipeline(nil, nil, nil, nil)
	out, res := p.ExpandString("$x", SkipVariables, NewParseErrorList())
	if res != StageOK {
		t.Fatalf("result = %v", res)
	}
	if got := Values(out); !equalStrings(got, []string{"$x"}) {
		t.Fatalf("got %v, want [$x]", got)
	}
}

func TestExpandOneFailsOnMultipleCompletions(t *testing.T) {
	vars := newFakeVars().set("x", "a", "b")
	p := newTestPipeline(vars, nil, nil, nil)
	_, ok := p.ExpandOne("$x", 0)
	if ok {
		t.Fatalf("ExpandOne succeeded on a multi-valued expansion")
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
