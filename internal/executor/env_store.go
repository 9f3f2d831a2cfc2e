package executor

import (
	"os"
	"sort"
	"strings"

	"gobash/internal/expand"
)

// scalarVar adapts one Executor variable to expand.EnvVar. gobash's executor
// keeps variables as plain scalar strings, so AsList splits on IFS-style
// whitespace only when the expansion core asks for a multi-valued view; a
// scalar that doesn't need splitting (the common case) reports itself as a
// single-element list.
type scalarVar struct {
	value string
	set   bool
}

func (v scalarVar) AsString() string { return v.value }

func (v scalarVar) AsList() []string {
	if v.value == "" {
		if v.set {
			return []string{""}
		}
		return nil
	}
	return strings.Fields(v.value)
}

func (v scalarVar) Delimiter() rune { return ' ' }

func (v scalarVar) MissingOrEmpty() bool { return !v.set || v.value == "" }

// listVar adapts a gobash array or associative-array variable to
// expand.EnvVar, exposing every element as its own AsList entry so the
// variable stage's cartesian-product handling sees the real multi-valued
// shape instead of a single joined scalar.
type listVar struct {
	values []string
	set    bool
}

func (v listVar) AsString() string { return strings.Join(v.values, " ") }

func (v listVar) AsList() []string {
	if len(v.values) == 0 && v.set {
		return []string{""}
	}
	return v.values
}

func (v listVar) Delimiter() rune { return ' ' }

func (v listVar) MissingOrEmpty() bool { return !v.set || len(v.values) == 0 }

// envStore adapts *Executor to expand.VariableStore, so internal/expand can
// resolve $variables and PWD/CDPATH-style lookups directly against the
// executor's environment table without depending on the executor package.
type envStore struct {
	e *Executor
}

func newEnvStore(e *Executor) envStore { return envStore{e: e} }

func (s envStore) Get(name string) (expand.EnvVar, bool) {
	if arr, ok := s.e.arrays[name]; ok {
		return listVar{values: arr, set: true}, true
	}
	if assoc, ok := s.e.assocArrays[name]; ok {
		keys := make([]string, 0, len(assoc))
		for k := range assoc {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		values := make([]string, len(keys))
		for i, k := range keys {
			values[i] = assoc[k]
		}
		return listVar{values: values, set: true}, true
	}
	v, ok := s.e.env[name]
	if !ok {
		return nil, false
	}
	return scalarVar{value: v, set: true}, true
}

func (s envStore) PwdSlash() string {
	if pwd, ok := s.e.env["PWD"]; ok && pwd != "" {
		return pwd
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "/"
}

// Names returns every variable name currently set. flags is accepted for
// symmetry with fish's env_vars_snapshot_t::get_names(flags) but gobash has
// no export/universal scoping to filter on, so it's ignored.
func (s envStore) Names(flags int) []string {
	names := make([]string, 0, len(s.e.env))
	for name := range s.e.env {
		names = append(names, name)
	}
	return names
}
