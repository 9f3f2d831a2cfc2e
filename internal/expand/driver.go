package expand

import (
	"context"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// StageResult is a single stage's (or the whole pipeline's) outcome.
type StageResult int

const (
	StageOK StageResult = iota
	StageNoMatch
	StageWildcardMatch
	StageError
)

// uncleanFirst / unclean mirror expand.cpp's UNCLEAN_FIRST/UNCLEAN macros
// used by the clean-string fast path.
const uncleanFirst = "~%"
const unclean = "$*?\\\"'({})"

// isClean reports whether in needs no expansion at all: spec.md §4.1's
// clean-string fast path test.
func isClean(in string) bool {
	if in == "" {
		return true
	}
	if strings.ContainsRune(uncleanFirst, rune(in[0])) {
		return false
	}
	return !strings.ContainsAny(in, unclean)
}

// Options wires the collaborators and ambient logger into a Pipeline.
// Executor is required unless every call sets SkipCmdsubst.
type Options struct {
	Vars      VariableStore
	History   HistoryStore // nil is fine: $history then behaves as absent
	Executor  CmdSubstExecutor
	Users     UserDatabase
	Matcher   WildcardMatcher
	Locator   Locator
	Logger    hclog.Logger // nil defaults to hclog.NewNullLogger()
}

// Pipeline runs the five-stage expansion over one or more inputs. It holds
// no state across calls to ExpandString beyond the collaborators it was
// built with, so one Pipeline may be reused (and shared) freely.
type Pipeline struct {
	ctx     context.Context
	vars    VariableStore
	history HistoryStore
	exec    CmdSubstExecutor
	users   UserDatabase
	matcher WildcardMatcher
	locator Locator
	log     hclog.Logger

	flags ExpandFlags
	errs  *ParseErrorList
}

// NewPipeline builds a Pipeline from Options. ctx governs cancellation of
// any collaborator call the stages make (principally command substitution
// and wildcard matching).
func NewPipeline(ctx context.Context, opts Options) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Pipeline{
		ctx:     ctx,
		vars:    opts.Vars,
		history: opts.History,
		exec:    opts.Executor,
		users:   opts.Users,
		matcher: opts.Matcher,
		locator: opts.Locator,
		log:     logger,
	}
}

type stageFunc func(p *Pipeline, in string) ([]Completion, StageResult)

var stages = []struct {
	name string
	fn   stageFunc
}{
	{"cmdsubst", (*Pipeline).stageCmdsubst},
	{"variables", (*Pipeline).stageVariables},
	{"braces", (*Pipeline).stageBraces},
	{"home_and_self", (*Pipeline).stageHomeAndSelf},
	{"wildcards", (*Pipeline).stageWildcards},
}

// ExpandString is spec.md §4.1's expand_string: the driver that wires the
// five stages together, applies the clean-string fast path, and runs the
// post-pipeline tilde un-expander.
func (base *Pipeline) ExpandString(input string, flags ExpandFlags, errs *ParseErrorList) ([]Completion, StageResult) {
	if !flags.Has(ForCompletions) && isClean(input) {
		return []Completion{{Value: input}}, StageOK
	}

	p := &Pipeline{
		ctx: base.ctx, vars: base.vars, history: base.history, exec: base.exec,
		users: base.users, matcher: base.matcher, locator: base.locator, log: base.log,
		flags: flags, errs: errs,
	}

	completions := []Completion{{Value: input}}
	total := StageOK

	for _, stage := range stages {
		var outputStorage []Completion
		for _, comp := range completions {
			out, res := stage.fn(p, comp.Value)
			if !(res == StageNoMatch && total == StageWildcardMatch) {
				total = res
			}
			if total == StageError {
				break
			}
			outputStorage = append(outputStorage, out...)
		}
		p.log.Trace("expand stage complete", "stage", stage.name, "count", len(outputStorage))
		completions = outputStorage
		if total == StageError {
			break
		}
	}

	if total == StageError {
		return nil, StageError
	}

	if !flags.Has(SkipHomeDirectories) {
		completions = p.unexpandTildes(input, completions)
	}
	return completions, total
}

// ExpandOne is spec.md's expand_one: succeeds only when the pipeline
// produces exactly one completion.
func (p *Pipeline) ExpandOne(input string, flags ExpandFlags) (string, bool) {
	if !flags.Has(ForCompletions) && isClean(input) {
		return input, true
	}
	errs := NewParseErrorList()
	out, res := p.ExpandString(input, flags|NoDescriptions, errs)
	if res == StageError || len(out) != 1 {
		return "", false
	}
	return out[0].Value, true
}

// ExpandToCommandAndArgs is spec.md's expand_to_command_and_args: expands
// instr as a single token (no word splitting) and returns its first
// completion as the command and the remaining ones as positional arguments.
func (p *Pipeline) ExpandToCommandAndArgs(instr string) (cmd string, args []string, res StageResult) {
	if isClean(instr) {
		return instr, nil, StageOK
	}
	errs := NewParseErrorList()
	out, result := p.ExpandString(instr, SkipCmdsubst|NoDescriptions|SkipJobs, errs)
	if result != StageOK && result != StageWildcardMatch {
		return "", nil, result
	}
	for i, c := range out {
		if i == 0 {
			cmd = c.Value
			continue
		}
		args = append(args, c.Value)
	}
	return cmd, args, result
}

// unexpandTildes is spec.md §4.6's post-pipeline tilde restoration: if the
// original input began with '~', rewrite any REPLACES_TOKEN completion that
// still starts with the resolved home directory back to "~user/...".
func (p *Pipeline) unexpandTildes(input string, completions []Completion) []Completion {
	if input == "" || input[0] != '~' {
		return completions
	}
	hasCandidate := false
	for _, c := range completions {
		if c.Has(ReplacesToken) {
			hasCandidate = true
			break
		}
	}
	if !hasCandidate {
		return completions
	}

	inRunes := []rune(input)
	inRunes[0] = HomeDir
	username, _ := homeDirectoryName(inRunes)
	usernameWithTilde := "~" + username

	// expandHomeDirectory expects a leading HomeDir sentinel, not '~'.
	homeSentinelForm := append([]rune{HomeDir}, []rune(username)...)
	home := string(p.expandHomeDirectory(homeSentinelForm))
	if home == "" {
		return completions
	}

	out := make([]Completion, len(completions))
	for i, c := range completions {
		out[i] = c
		if c.Has(ReplacesToken) && strings.HasPrefix(c.Value, home) {
			out[i].Value = usernameWithTilde + strings.TrimPrefix(c.Value, home)
			out[i].Flags |= DontEscapeTildes
		}
	}
	return out
}
