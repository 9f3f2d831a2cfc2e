package expand

import "testing"

func TestLocateCmdsubstFallbackFindsTopLevelParens(t *testing.T) {
	begin, end, res := locateCmdsubstFallback([]rune("pre-(echo hi)-suf"), false)
	if res != LocateFound {
		t.Fatalf("result = %v, want LocateFound", res)
	}
	if begin != 4 || end != 12 {
		t.Fatalf("begin,end = %d,%d, want 4,12", begin, end)
	}
}

func TestLocateCmdsubstFallbackIgnoresQuotedParens(t *testing.T) {
	_, _, res := locateCmdsubstFallback([]rune(`"(not a subst)"`), false)
	if res != LocateNone {
		t.Fatalf("result = %v, want LocateNone", res)
	}
}

func TestLocateCmdsubstFallbackMismatchedCloseIsError(t *testing.T) {
	_, _, res := locateCmdsubstFallback([]rune("foo)"), false)
	if res != LocateError {
		t.Fatalf("result = %v, want LocateError", res)
	}
}

func TestLocateCmdsubstFallbackUnclosedIsErrorUnlessIncomplete(t *testing.T) {
	_, _, res := locateCmdsubstFallback([]rune("foo(bar"), false)
	if res != LocateError {
		t.Fatalf("result = %v, want LocateError", res)
	}
	_, _, res = locateCmdsubstFallback([]rune("foo(bar"), true)
	if res != LocateFound {
		t.Fatalf("result = %v, want LocateFound when accepting incomplete", res)
	}
}

func TestSkipCmdsubstPassesThroughPlainInput(t *testing.T) {
	p := newTestPipeline(nil, nil, nil, nil)
	out, res := p.ExpandString("plain text", SkipCmdsubst, NewParseErrorList())
	if res != StageOK {
		t.Fatalf("result = %v", res)
	}
	if got := Values(out); len(got) != 1 || got[0] != "plain text" {
		t.Fatalf("got %v", got)
	}
}

func TestSkipCmdsubstErrorsOnSubstitution(t *testing.T) {
	p := newTestPipeline(nil, nil, newFakeExecutor(), nil)
	errs := NewParseErrorList()
	_, res := p.ExpandString("pre-(echo hi)-suf", SkipCmdsubst, errs)
	if res != StageError {
		t.Fatalf("result = %v, want StageError", res)
	}
	if errs.Empty() {
		t.Fatalf("expected a recorded cmdsubst error")
	}
}

func TestCmdsubstExecutorFailureIsRecordedError(t *testing.T) {
	exec := newFakeExecutor().onFail("boom")
	p := newTestPipeline(nil, nil, exec, nil)
	errs := NewParseErrorList()
	_, res := p.ExpandString("(boom)", 0, errs)
	if res != StageError {
		t.Fatalf("result = %v, want StageError", res)
	}
	if errs.Empty() {
		t.Fatalf("expected a recorded error")
	}
}

func TestCmdsubstReadTooMuchIsRecordedError(t *testing.T) {
	exec := newFakeExecutor().onStatus("big", StatusReadTooMuch)
	p := newTestPipeline(nil, nil, exec, nil)
	errs := NewParseErrorList()
	_, res := p.ExpandString("(big)", 0, errs)
	if res != StageError {
		t.Fatalf("result = %v, want StageError", res)
	}
	if errs.Empty() {
		t.Fatalf("expected a recorded error")
	}
}

func TestCmdsubstSlice(t *testing.T) {
	exec := newFakeExecutor().on("ls", "a", "b", "c")
	p := newTestPipeline(nil, nil, exec, nil)
	out, res := p.ExpandString("(ls)[2]", 0, NewParseErrorList())
	if res != StageOK {
		t.Fatalf("result = %v", res)
	}
	if got := Values(out); !equalStrings(got, []string{"b"}) {
		t.Fatalf("got %v, want [b]", got)
	}
}

func TestCmdsubstOutOfBoundsSliceIndexDropsSilently(t *testing.T) {
	exec := newFakeExecutor().on("ls", "a", "b")
	p := newTestPipeline(nil, nil, exec, nil)
	out, res := p.ExpandString("(ls)[5]", 0, NewParseErrorList())
	if res != StageOK {
		t.Fatalf("result = %v", res)
	}
	if len(out) != 0 {
		t.Fatalf("got %v, want no completions", Values(out))
	}
}

func TestCmdsubstErrorDedupByText(t *testing.T) {
	errs := NewParseErrorList()
	errs.AppendCmdsub(SourceLocationUnknown, "same message")
	errs.AppendCmdsub(SourceLocationUnknown, "same message")
	errs.AppendCmdsub(SourceLocationUnknown, "different message")
	if got := len(errs.Errors()); got != 2 {
		t.Fatalf("got %d errors, want 2 (dedup by text): %v", got, errs.Errors())
	}
}
