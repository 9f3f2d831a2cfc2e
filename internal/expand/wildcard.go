package expand

import (
	"path"
	"sort"
	"strings"
)

// stageWildcards implements spec.md §4.6.
func (p *Pipeline) stageWildcards(in string) ([]Completion, StageResult) {
	runes := []rune(in)
	runes = removeInternalSeparator(runes, p.flags.Has(SkipWildcards))
	pathToExpand := string(runes)

	hasWildcard := wildcardHas(pathToExpand)
	forCompletions := p.flags.Has(ForCompletions)
	skipWildcards := p.flags.Has(SkipWildcards)

	if hasWildcard && p.flags.Has(ExecutablesOnly) {
		// Historical behavior (fish issue #785): don't glob executables.
		return nil, StageOK
	}

	if !((forCompletions && !skipWildcards) || hasWildcard) {
		if !forCompletions {
			return []Completion{{Value: pathToExpand}}, StageOK
		}
		// SKIP_WILDCARDS during completion with nothing left to match:
		// drop the completion silently.
		return nil, StageOK
	}

	workingDirs := p.effectiveWorkingDirs(pathToExpand)

	result := StageNoMatch
	var expanded []Completion
	for _, wd := range workingDirs {
		switch p.matchOneDir(pathToExpand, wd, &expanded) {
		case WildcardMatched:
			result = StageWildcardMatch
		case WildcardCancelled:
			return nil, StageError
		}
	}

	sort.SliceStable(expanded, func(i, j int) bool {
		return naturalLess(expanded[i].Value, expanded[j].Value)
	})
	return expanded, result
}

func (p *Pipeline) matchOneDir(pattern, workingDir string, out *[]Completion) WildcardMatchResult {
	if p.matcher != nil {
		return p.matcher.WildcardExpand(pattern, workingDir, p.flags, out)
	}
	return defaultWildcardExpand(pattern, workingDir, p.flags, out)
}

// effectiveWorkingDirs computes the directory list a wildcard pattern is
// matched against, honoring SpecialForCd/SpecialForCommand's CDPATH/PATH
// fan-out per spec.md §4.6.
func (p *Pipeline) effectiveWorkingDirs(pathToExpand string) []string {
	workingDir := p.vars.PwdSlash()
	forCd := p.flags.Has(SpecialForCd)
	forCommand := p.flags.Has(SpecialForCommand)

	if !forCd && !forCommand {
		return []string{workingDir}
	}

	if strings.HasPrefix(pathToExpand, "/") ||
		strings.HasPrefix(pathToExpand, "./") ||
		strings.HasPrefix(pathToExpand, "../") ||
		(forCommand && strings.ContainsRune(pathToExpand, '/')) {
		return []string{workingDir}
	}

	varName := "PATH"
	if forCd {
		varName = "CDPATH"
	}
	var paths []string
	if v, ok := p.vars.Get(varName); ok {
		paths = v.AsList()
	}
	if len(paths) == 0 {
		if forCd {
			paths = []string{"."}
		} else {
			paths = []string{""}
		}
	}

	dirs := make([]string, len(paths))
	for i, next := range paths {
		dirs[i] = pathApplyWorkingDirectory(next, workingDir)
	}
	return dirs
}

func pathApplyWorkingDirectory(p, workingDir string) string {
	if p == "" {
		// "" is the matcher's signal for "absolute paths only, no cwd
		// prefix" per spec.md §4.6.
		return ""
	}
	if strings.HasPrefix(p, "/") {
		return p
	}
	return path.Join(workingDir, p)
}

// removeInternalSeparator strips InternalSep throughout, and -- when conv is
// set (SkipWildcards) -- downgrades the wildcard and brace-space sentinels
// to their literal equivalents. This is the stage responsible for the
// pipeline-wide invariant that no sentinel ever reaches a final output
// string.
func removeInternalSeparator(s []rune, conv bool) []rune {
	out := s[:0:0]
	for _, r := range s {
		switch r {
		case InternalSep:
			continue
		case BraceSpace:
			out = append(out, ' ')
			continue
		}
		if conv {
			switch r {
			case AnyChar:
				out = append(out, '?')
				continue
			case AnyString, AnyStringRecursive:
				out = append(out, '*')
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

func wildcardHas(s string) bool {
	for _, r := range s {
		if r == AnyChar || r == AnyString || r == AnyStringRecursive {
			return true
		}
	}
	return false
}
