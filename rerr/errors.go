package rerr

import (
	"errors"
	"fmt"
)

// Category groups error kinds the way the teacher groups compiler
// diagnostics, without the terminal-formatting machinery that made sense
// for a build tool but not for a library that runs inside a browser tab.
type Category string

const (
	CategoryParse      Category = "parse"
	CategoryValidation Category = "validation"
	CategoryMatch      Category = "match"
	CategoryOutlet     Category = "outlet"
	CategoryCanceling  Category = "canceling"
)

// Kind is a sentinel usable with errors.Is.
type Kind struct {
	category Category
	label    string
}

func (k Kind) Error() string { return k.label }

var (
	// ErrParse marks a malformed URL string.
	ErrParse = Kind{CategoryParse, "url parse error"}
	// ErrValidation marks a route config invariant violation.
	ErrValidation = Kind{CategoryValidation, "route config validation error"}
	// ErrNoMatch marks a segment group with no matching route.
	ErrNoMatch = Kind{CategoryMatch, "cannot match any routes"}
	// ErrOutletConflict marks two siblings claiming the same outlet.
	ErrOutletConflict = Kind{CategoryOutlet, "duplicate outlet in segment group"}
	// ErrNavigationCanceling marks a guard/canLoad rejection. Caught by the
	// scheduler and converted to a NavigationCancel event, never an error.
	ErrNavigationCanceling = Kind{CategoryCanceling, "navigation canceled"}
)

// Error is the concrete structured error type returned by this module.
type Error struct {
	Kind    Kind
	Message string
	Wrapped error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Message)
}

func (e *Error) Unwrap() error { return e.Wrapped }

// Is reports whether target is the same Kind, supporting errors.Is(err, rerr.ErrNoMatch).
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// New builds an Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error of the given kind around an underlying cause.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Wrapped: err}
}

// IsCanceling reports whether err is (or wraps) a navigation-canceling error.
func IsCanceling(err error) bool {
	return errors.Is(err, ErrNavigationCanceling)
}
