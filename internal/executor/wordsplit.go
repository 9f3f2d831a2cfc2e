package executor

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gobash/internal/expand"
)

// wordSplit implements IFS-based field splitting. An unset IFS defaults to
// space/tab/newline; an IFS explicitly set to "" disables splitting
// entirely, and any other IFS value splits on runs of its characters.
func (e *Executor) wordSplit(text string) []string {
	if text == "" {
		return nil
	}

	ifs, isSet := e.env["IFS"]
	if isSet && ifs == "" {
		return []string{text}
	}
	if !isSet {
		ifs = " \t\n"
	}

	return strings.FieldsFunc(text, func(r rune) bool {
		return strings.ContainsRune(ifs, r)
	})
}

// tildeExpand resolves a leading ~, ~/path, ~user or ~user/path via the
// argument-expansion core's own home-directory stage, plus the bash-only
// ~+ (PWD) / ~- (OLDPWD) extensions fish's expand.cpp doesn't define.
func (e *Executor) tildeExpand(text string) string {
	if !strings.HasPrefix(text, "~") {
		return text
	}

	switch text {
	case "~+":
		if pwd, ok := e.env["PWD"]; ok && pwd != "" {
			return pwd
		}
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
		return text
	case "~-":
		if old, ok := e.env["OLDPWD"]; ok && old != "" {
			return old
		}
		return text
	}

	out, ok := e.expandPipeline().ExpandOne(text, expand.SkipCmdsubst|expand.SkipVariables)
	if !ok {
		return text
	}
	return out
}

// pathnameExpand expands a wildcard pattern against the filesystem. A
// pattern with no glob metacharacters passes through unchanged, matching
// fish/bash's "literal word that happens not to match anything real"
// behavior. A "**" segment fans out recursively when globstar is enabled.
func (e *Executor) pathnameExpand(pattern string) []string {
	if !strings.ContainsAny(pattern, "*?[") {
		return []string{pattern}
	}

	if e.options["globstar"] && strings.Contains(pattern, "**") {
		return e.globstarExpand(pattern)
	}

	matches, err := filepath.Glob(pattern)
	if err != nil || len(matches) == 0 {
		return nil
	}
	sort.Strings(matches)
	return matches
}

// globstarExpand handles a single "**" segment in pattern: "**" alone walks
// everything under root, "**/suffix" filters by basename pattern, and a
// "prefix/**[/suffix]" form roots the walk at prefix.
func (e *Executor) globstarExpand(pattern string) []string {
	parts := strings.SplitN(pattern, "**", 2)
	prefix := strings.TrimSuffix(parts[0], "/")
	suffix := strings.TrimPrefix(parts[1], "/")

	root := prefix
	if root == "" {
		root = "."
	}

	var results []string
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || path == root {
			return nil
		}
		if suffix == "" {
			results = append(results, path)
			return nil
		}
		if matched, _ := filepath.Match(suffix, d.Name()); matched {
			results = append(results, path)
		}
		return nil
	})

	sort.Strings(results)
	return results
}
