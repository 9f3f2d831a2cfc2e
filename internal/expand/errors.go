package expand

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// ParseErrorCode classifies a ParseError the way parser.ParseError and
// executor.ExecutionError already classify their own failures.
type ParseErrorCode int

const (
	ErrSyntax ParseErrorCode = iota
	ErrCmdsubst
)

// SourceLocationUnknown marks a ParseError whose offset couldn't be derived
// (e.g. an error discovered only after recursing past the original string).
const SourceLocationUnknown = -1

// ParseError is one record in the pipeline's append-only error list.
type ParseError struct {
	SourceStart  int
	SourceLength int
	Code         ParseErrorCode
	Text         string
}

func (e *ParseError) Error() string {
	return e.Text
}

// ParseErrorList accumulates ParseErrors across a single expansion,
// deduplicating cmdsubst errors by message text the way expand.cpp's
// append_cmdsub_error does (command substitution is recursive, and the same
// failure can otherwise be recorded once per recursive call).
//
// It is backed by hashicorp/go-multierror so the list composes with any
// other Go error-aggregation code in the surrounding shell (error_report.go
// already knows how to range over a []error).
type ParseErrorList struct {
	errs *multierror.Error
}

// NewParseErrorList returns an empty error list ready to use. The zero value
// is also usable; this constructor exists for symmetry with other
// collaborator constructors in the package.
func NewParseErrorList() *ParseErrorList {
	return &ParseErrorList{}
}

// AppendSyntax records a syntax error at sourceStart.
func (l *ParseErrorList) AppendSyntax(sourceStart int, format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.errs = multierror.Append(l.errs, &ParseError{
		SourceStart: sourceStart,
		Code:        ErrSyntax,
		Text:        fmt.Sprintf(format, args...),
	})
}

// AppendCmdsub records a command-substitution error at sourceStart, unless an
// error with identical text has already been recorded.
func (l *ParseErrorList) AppendCmdsub(sourceStart int, format string, args ...interface{}) {
	if l == nil {
		return
	}
	text := fmt.Sprintf(format, args...)
	if l.errs != nil {
		for _, existing := range l.errs.Errors {
			if existing.Error() == text {
				return
			}
		}
	}
	l.errs = multierror.Append(l.errs, &ParseError{
		SourceStart: sourceStart,
		Code:        ErrCmdsubst,
		Text:        text,
	})
}

// Errors returns the accumulated errors in order, or nil if there are none.
func (l *ParseErrorList) Errors() []error {
	if l == nil || l.errs == nil {
		return nil
	}
	return l.errs.Errors
}

// Empty reports whether no errors have been recorded.
func (l *ParseErrorList) Empty() bool {
	return l == nil || l.errs == nil || len(l.errs.Errors) == 0
}
