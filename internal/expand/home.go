package expand

import (
	"os"
	"path"
	"strconv"
	"strings"
)

// stageHomeAndSelf implements spec.md §4.5: resolve a leading HomeDir or
// ProcessSelf sentinel.
func (p *Pipeline) stageHomeAndSelf(in string) ([]Completion, StageResult) {
	runes := []rune(in)
	if !p.flags.Has(SkipHomeDirectories) {
		runes = p.expandHomeDirectory(runes)
	}
	runes = p.expandPercentSelf(runes)
	return []Completion{{Value: string(runes)}}, StageOK
}

// homeDirectoryName returns the username encoded after a leading HomeDir (or
// literal '~') sentinel -- empty for a bare tilde -- and the rune index of
// the remainder of the string (the first '/' onward, or the string's end).
func homeDirectoryName(input []rune) (username string, tailIdx int) {
	for i, r := range input {
		if i == 0 {
			continue
		}
		if r == '/' {
			return string(input[1:i]), i
		}
	}
	return string(input[1:]), len(input)
}

// expandHomeDirectory implements spec.md §4.5. For a bare tilde it consults
// the variable store's HOME only (the collaborator contract spec.md §6
// requires) -- no OS-level fallback: a missing or empty HOME makes the whole
// completion empty, exactly as spec.md §4.5 states.
func (p *Pipeline) expandHomeDirectory(input []rune) []rune {
	if len(input) == 0 || input[0] != HomeDir {
		return input
	}
	username, tailIdx := homeDirectoryName(input)

	var home string
	var resolved bool
	if username == "" {
		if v, ok := p.vars.Get("HOME"); ok && !v.MissingOrEmpty() {
			home, resolved = v.AsString(), true
		}
		tailIdx = 1
	} else if p.users != nil {
		home, resolved = p.users.Lookup(username)
	}

	if !resolved {
		if username == "" {
			// No HOME and no OS fallback: whole completion becomes empty,
			// matching fish's expand_home_directory.
			return nil
		}
		// Named user's lookup failed: restore a literal '~'.
		out := append([]rune{}, input...)
		out[0] = '~'
		return out
	}

	realHome := []rune(normalizePath(home))
	return append(realHome, input[tailIdx:]...)
}

func (p *Pipeline) expandPercentSelf(input []rune) []rune {
	if len(input) == 0 || input[0] != ProcessSelf {
		return input
	}
	out := []rune(strconv.Itoa(os.Getpid()))
	return append(out, input[1:]...)
}

// normalizePath collapses "." / ".." segments and duplicate slashes, the way
// fish's normalize_path does before splicing a resolved home directory in.
func normalizePath(p string) string {
	if p == "" {
		return p
	}
	cleaned := path.Clean(strings.ReplaceAll(p, "//", "/"))
	if cleaned == "." {
		return p
	}
	return cleaned
}
