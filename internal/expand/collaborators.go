package expand

import "context"

// EnvVar is a single variable's value as exposed by a VariableStore. gobash
// variables are normally scalar, but the interface models bash-style
// multi-valued (array) variables too, so a richer store (e.g. one backed by
// internal/executor's array support) can plug in without changing the
// expansion core.
type EnvVar interface {
	AsList() []string
	AsString() string
	Delimiter() rune
	MissingOrEmpty() bool
}

// VariableStore is the read-only view of the shell's variable table the
// variable stage consults. The expansion core never writes through it.
type VariableStore interface {
	Get(name string) (EnvVar, bool)
	PwdSlash() string
	Names(flags int) []string
}

// HistoryStore is the read-only view of command history consulted for the
// special `$history` variable. Per spec.md §5, a HistoryStore may only be
// queried from the main goroutine; callers off the main goroutine should
// simply not pass one (a nil HistoryStore makes `$history` behave as an
// absent variable).
type HistoryStore interface {
	Size() int
	GetHistory() []string
	ItemsAtIndexes(idx []int) map[int]string
}

// StatusReadTooMuch is the distinguished exit status a CmdSubstExecutor
// reports when the subshell produced more output than the core is willing
// to buffer.
const StatusReadTooMuch = -2

// CmdSubstExecutor evaluates the snippet of source inside a `(...)` region
// and returns its output split into lines. It may recursively re-enter the
// expansion core (the executed snippet can itself contain expansions).
type CmdSubstExecutor interface {
	ExecSubshell(ctx context.Context, source string) (lines []string, status int, err error)
}

// UserDatabase resolves a username to its home directory, for the named-user
// tilde form (`~alice`).
type UserDatabase interface {
	Lookup(username string) (homeDir string, ok bool)
}

// WildcardMatchResult is the outcome of delegating one pattern to a
// WildcardMatcher against one working directory.
type WildcardMatchResult int

const (
	WildcardNoMatch WildcardMatchResult = iota
	WildcardMatched
	WildcardCancelled
)

// WildcardMatcher expands pattern (which may contain the wildcard sentinels
// AnyChar/AnyString/AnyStringRecursive) against workingDir, appending
// matches to out.
type WildcardMatcher interface {
	WildcardExpand(pattern, workingDir string, flags ExpandFlags, out *[]Completion) WildcardMatchResult
}

// LocateResult mirrors parse_util_locate_cmdsubst's three-way return.
type LocateResult int

const (
	LocateError LocateResult = iota - 1
	LocateNone
	LocateFound
)

// Locator finds the first top-level `(...)` region in a string, honoring
// backslash and quote escapes the way the outer command-line lexer already
// does for full command lines.
type Locator interface {
	LocateCmdsubst(in []rune, acceptIncomplete bool) (begin, end int, result LocateResult)
}

// ValidVarNameChar reports whether r can appear inside a variable name. This
// is a free function rather than a collaborator method because it has no
// state: it mirrors fish's valid_var_name_char.
func ValidVarNameChar(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
