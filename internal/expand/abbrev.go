package expand

import "strings"

// abbrPrefix names the variables that back gobash's abbreviation table: an
// abbreviation "ll" -> "ls -la" is stored as the variable
// "_gobash_abbr_ll" = "ls -la". This is gobash's own naming convention,
// standing in for fish's "_fish_abbr_" prefix.
const abbrPrefix = "_gobash_abbr_"

// Abbreviation looks up cmd as a user-defined abbreviation and returns its
// expansion, ported from fish's expand_abbreviation.
func Abbreviation(vars VariableStore, cmd string) (string, bool) {
	if cmd == "" {
		return "", false
	}
	v, ok := vars.Get(abbrPrefix + cmd)
	if !ok || v.MissingOrEmpty() {
		return "", false
	}
	return v.AsString(), true
}

// Abbreviations returns the full abbreviation table, ported from fish's
// get_abbreviations. Keys are the abbreviation name (without the storage
// prefix); order is unspecified.
func Abbreviations(vars VariableStore) map[string]string {
	out := make(map[string]string)
	for _, name := range vars.Names(0) {
		short, ok := strings.CutPrefix(name, abbrPrefix)
		if !ok || short == "" {
			continue
		}
		v, ok := vars.Get(name)
		if !ok || v.MissingOrEmpty() {
			continue
		}
		out[short] = v.AsString()
	}
	return out
}

// ReplaceHomeDirectoryWithTilde rewrites any leading occurrence of the
// current user's home directory in p with '~', the way fish's
// replace_home_directory_with_tilde formats paths for prompts and pwd
// output. It is a display helper only: callers opt into it explicitly,
// nothing in the expansion pipeline itself calls it.
func ReplaceHomeDirectoryWithTilde(vars VariableStore, users UserDatabase, p string) string {
	home, ok := vars.Get("HOME")
	if !ok || home.MissingOrEmpty() {
		return p
	}
	dir := normalizePath(home.AsString())
	if dir == "" || dir == "/" {
		return p
	}
	np := normalizePath(p)
	switch {
	case np == dir:
		return "~"
	case strings.HasPrefix(np, dir+"/"):
		return "~" + strings.TrimPrefix(np, dir)
	default:
		return p
	}
}
