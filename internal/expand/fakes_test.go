package expand

import (
	"context"
	"fmt"
	"strings"
)

// listVar is a minimal EnvVar backed by a plain string slice, standing in
// for whatever multi-valued store a real VariableStore adapter wraps.
type listVar struct {
	values []string
	delim  rune
}

func (v listVar) AsList() []string { return v.values }
func (v listVar) AsString() string { return strings.Join(v.values, " ") }
func (v listVar) Delimiter() rune {
	if v.delim == 0 {
		return ' '
	}
	return v.delim
}
func (v listVar) MissingOrEmpty() bool {
	return len(v.values) == 0 || (len(v.values) == 1 && v.values[0] == "")
}

// fakeVars is a map-backed VariableStore for exercising the variable and
// wildcard stages without a real executor environment.
type fakeVars struct {
	vars map[string]listVar
	pwd  string
}

func newFakeVars() *fakeVars {
	return &fakeVars{vars: make(map[string]listVar)}
}

func (f *fakeVars) set(name string, values ...string) *fakeVars {
	f.vars[name] = listVar{values: values}
	return f
}

func (f *fakeVars) setDelim(name string, delim rune, values ...string) *fakeVars {
	f.vars[name] = listVar{values: values, delim: delim}
	return f
}

func (f *fakeVars) Get(name string) (EnvVar, bool) {
	v, ok := f.vars[name]
	if !ok {
		return nil, false
	}
	return v, true
}

func (f *fakeVars) PwdSlash() string { return f.pwd }

func (f *fakeVars) Names(flags int) []string {
	out := make([]string, 0, len(f.vars))
	for name := range f.vars {
		out = append(out, name)
	}
	return out
}

// fakeHistory is a slice-backed HistoryStore.
type fakeHistory struct {
	items []string
}

func (h *fakeHistory) Size() int { return len(h.items) }

func (h *fakeHistory) GetHistory() []string { return h.items }

func (h *fakeHistory) ItemsAtIndexes(idx []int) map[int]string {
	out := make(map[int]string, len(idx))
	for _, i := range idx {
		if i >= 1 && i <= len(h.items) {
			out[i] = h.items[i-1]
		}
	}
	return out
}

// fakeExecutor maps a subshell source string directly to its output lines,
// standing in for the real os/exec-backed CmdSubstExecutor.
type fakeExecutor struct {
	outputs map[string][]string
	status  map[string]int
	fail    map[string]bool
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{outputs: make(map[string][]string), status: make(map[string]int), fail: make(map[string]bool)}
}

func (e *fakeExecutor) on(source string, lines ...string) *fakeExecutor {
	e.outputs[source] = lines
	return e
}

func (e *fakeExecutor) onStatus(source string, status int) *fakeExecutor {
	e.status[source] = status
	return e
}

func (e *fakeExecutor) onFail(source string) *fakeExecutor {
	e.fail[source] = true
	return e
}

func (e *fakeExecutor) ExecSubshell(ctx context.Context, source string) ([]string, int, error) {
	if e.fail[source] {
		return nil, -1, fmt.Errorf("exec failed: %s", source)
	}
	if s, ok := e.status[source]; ok {
		return nil, s, nil
	}
	return e.outputs[source], 0, nil
}

// fakeUsers is a map-backed UserDatabase.
type fakeUsers struct {
	homes map[string]string
}

func (u *fakeUsers) Lookup(username string) (string, bool) {
	h, ok := u.homes[username]
	return h, ok
}

// newTestPipeline builds a Pipeline with fake collaborators wired in, for
// tests that only need a subset of them (pass nil for the rest).
func newTestPipeline(vars *fakeVars, hist *fakeHistory, exec *fakeExecutor, users *fakeUsers) *Pipeline {
	if vars == nil {
		vars = newFakeVars()
	}
	opts := Options{Vars: vars}
	if hist != nil {
		opts.History = hist
	}
	if exec != nil {
		opts.Executor = exec
	}
	if users != nil {
		opts.Users = users
	}
	return NewPipeline(context.Background(), opts)
}
