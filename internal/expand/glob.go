package expand

import (
	"os"
	"path"
	"strings"

	"github.com/posener/complete"
	glob "github.com/ryanuber/go-glob"
)

// defaultWildcardExpand is the filesystem-backed WildcardMatcher used when no
// collaborator is wired in. It walks pattern segment by segment against real
// directory entries, handling the AnyChar/AnyString/AnyStringRecursive
// sentinels spec.md §4.6 defines. go-glob supplies the base '*'-only segment
// match; '?' and recursive '**' descent are hand-rolled on top of it (see
// DESIGN.md -- no pack library covers either).
func defaultWildcardExpand(pattern, workingDir string, flags ExpandFlags, out *[]Completion) WildcardMatchResult {
	segs, dir, prefix := splitPatternSegments(pattern, workingDir)
	if dir == "" {
		return WildcardNoMatch
	}
	return walkSegments(dir, prefix, segs, flags, out)
}

// splitPatternSegments decides whether matching starts from workingDir or
// (for a pattern beginning with '/') from the filesystem root, and splits the
// remainder into path components. An empty workingDir is effectiveWorkingDirs'
// signal for "absolute paths only"; a relative pattern against it can never
// match anything.
func splitPatternSegments(pattern, workingDir string) (segs []string, dir, prefix string) {
	if strings.HasPrefix(pattern, "/") {
		return strings.Split(strings.TrimPrefix(pattern, "/"), "/"), "/", "/"
	}
	if workingDir == "" {
		return nil, "", ""
	}
	return strings.Split(pattern, "/"), workingDir, ""
}

func walkSegments(dir, prefix string, segs []string, flags ExpandFlags, out *[]Completion) WildcardMatchResult {
	if len(segs) == 0 {
		return WildcardNoMatch
	}
	seg, rest := segs[0], segs[1:]

	switch {
	case seg == "":
		if len(rest) == 0 {
			return WildcardNoMatch
		}
		return walkSegments(dir, prefix, rest, flags, out)
	case isRecursiveSegment(seg):
		return matchRecursiveSegment(dir, prefix, seg, rest, flags, out)
	case flags.Has(ForCompletions) && len(rest) == 0 && !wildcardHas(seg):
		return predictSegment(dir, prefix, seg, out)
	case wildcardHas(seg):
		return matchWildcardSegment(dir, prefix, seg, rest, flags, out)
	default:
		return matchLiteralSegment(dir, prefix, seg, rest, flags, out)
	}
}

func isRecursiveSegment(seg string) bool {
	r := []rune(seg)
	return len(r) == 1 && r[0] == AnyStringRecursive
}

// matchRecursiveSegment implements '**': zero or more directory levels,
// tried breadth-first (zero levels first, then one level into every
// subdirectory, recursing the same segment set each time).
func matchRecursiveSegment(dir, prefix, seg string, rest []string, flags ExpandFlags, out *[]Completion) WildcardMatchResult {
	result := walkSegments(dir, prefix, rest, flags, out)
	if result == WildcardCancelled {
		return WildcardCancelled
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return result
	}
	segsHere := append([]string{seg}, rest...)
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		r := walkSegments(path.Join(dir, e.Name()), joinPrefix(prefix, e.Name()), segsHere, flags, out)
		switch r {
		case WildcardCancelled:
			return WildcardCancelled
		case WildcardMatched:
			result = WildcardMatched
		}
	}
	return result
}

// matchLiteralSegment handles a path component with no wildcard sentinel: an
// exact lookup, then either a completion or a descent into the rest.
func matchLiteralSegment(dir, prefix, seg string, rest []string, flags ExpandFlags, out *[]Completion) WildcardMatchResult {
	full := path.Join(dir, seg)
	info, err := os.Lstat(full)
	if err != nil {
		return WildcardNoMatch
	}
	childPrefix := joinPrefix(prefix, seg)
	if len(rest) == 0 {
		appendMatch(out, childPrefix, info.IsDir())
		return WildcardMatched
	}
	if !info.IsDir() {
		return WildcardNoMatch
	}
	return walkSegments(full, childPrefix, rest, flags, out)
}

// matchWildcardSegment matches a component containing AnyChar/AnyString
// against every entry of dir, recursing (or emitting a completion) for each
// hit. Dotfiles are excluded unless the pattern segment itself starts with
// a literal '.', matching the shell convention.
func matchWildcardSegment(dir, prefix, seg string, rest []string, flags ExpandFlags, out *[]Completion) WildcardMatchResult {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return WildcardNoMatch
	}
	showHidden := strings.HasPrefix(seg, ".")
	result := WildcardNoMatch
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") && !showHidden {
			continue
		}
		if !segmentMatch(seg, name) {
			continue
		}
		childPrefix := joinPrefix(prefix, name)
		if len(rest) == 0 {
			appendMatch(out, childPrefix, e.IsDir())
			result = WildcardMatched
			continue
		}
		if !e.IsDir() {
			continue
		}
		r := walkSegments(path.Join(dir, name), childPrefix, rest, flags, out)
		switch r {
		case WildcardCancelled:
			return WildcardCancelled
		case WildcardMatched:
			result = WildcardMatched
		}
	}
	return result
}

// segmentMatch matches one path component's pattern against one directory
// entry's name. Patterns built only of AnyString (translated to go-glob's
// '*') delegate to go-glob directly; a pattern also using AnyChar falls back
// to the hand-rolled matcher, since go-glob has no '?' support.
func segmentMatch(pattern, name string) bool {
	if !strings.ContainsRune(pattern, AnyChar) {
		return glob.Glob(sentinelToGlobStar(pattern), name)
	}
	return matchRunes([]rune(pattern), []rune(name))
}

func sentinelToGlobStar(pattern string) string {
	var b strings.Builder
	b.Grow(len(pattern))
	for _, r := range pattern {
		if r == AnyString {
			b.WriteByte('*')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// matchRunes is a small backtracking matcher over AnyChar ('?') and
// AnyString ('*') sentinels, used for every segment that contains AnyChar
// (the case go-glob can't express).
func matchRunes(pattern, name []rune) bool {
	for len(pattern) > 0 {
		switch pattern[0] {
		case AnyChar:
			if len(name) == 0 {
				return false
			}
			pattern, name = pattern[1:], name[1:]
		case AnyString:
			if len(pattern) == 1 {
				return true
			}
			for i := 0; i <= len(name); i++ {
				if matchRunes(pattern[1:], name[i:]) {
					return true
				}
			}
			return false
		default:
			if len(name) == 0 || pattern[0] != name[0] {
				return false
			}
			pattern, name = pattern[1:], name[1:]
		}
	}
	return len(name) == 0
}

// predictSegment handles ForCompletions with a plain (non-wildcarded) final
// segment: list dir for entries whose name extends the typed prefix, via
// posener/complete's file predictor rather than an exact lookup.
func predictSegment(dir, prefix, seg string, out *[]Completion) WildcardMatchResult {
	predictor := complete.PredictFiles("*")
	names := predictor.Predict(complete.Args{Last: path.Join(dir, seg)})

	result := WildcardNoMatch
	for _, n := range names {
		isDir := strings.HasSuffix(n, "/")
		base := path.Base(strings.TrimSuffix(n, "/"))
		if base == "." || base == ".." {
			continue
		}
		appendMatch(out, joinPrefix(prefix, base), isDir)
		result = WildcardMatched
	}
	return result
}

func appendMatch(out *[]Completion, value string, isDir bool) {
	if isDir {
		value += "/"
	}
	*out = append(*out, Completion{Value: value, Flags: ReplacesToken})
}

func joinPrefix(prefix, name string) string {
	switch {
	case prefix == "":
		return name
	case strings.HasSuffix(prefix, "/"):
		return prefix + name
	default:
		return prefix + "/" + name
	}
}
