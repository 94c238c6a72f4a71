package routeconfig

import (
	"fmt"
	"strings"

	"github.com/vango-dev/vangoroute/rerr"
)

// ValidationError describes a single invariant violation, naming the
// offending route's full path for diagnostics (spec.md §4.2 "Fails fast with
// a descriptive error naming the offending full path").
type ValidationError struct {
	FullPath string
	Message  string
}

func (e ValidationError) Error() string {
	if e.FullPath == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.FullPath, e.Message)
}

// MultiValidationError wraps every invariant violation found in one pass, in
// the order encountered.
type MultiValidationError struct {
	Errors []ValidationError
}

func (e *MultiValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d route config errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// Validate walks routes once, computing each node's full path and enforcing
// the invariants from spec.md §3/§4.2. It is meant to run once per config
// install, not on every navigation.
func Validate(routes []*Route) error {
	v := &validator{}
	v.walk(routes, nil, "")
	if len(v.errors) == 0 {
		return nil
	}
	return rerr.Wrap(rerr.ErrValidation, &MultiValidationError{Errors: v.errors}, "invalid route configuration")
}

type validator struct {
	errors []ValidationError
}

func (v *validator) fail(fullPath, format string, args ...any) {
	v.errors = append(v.errors, ValidationError{FullPath: fullPath, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) walk(routes []*Route, parent *Route, parentPath string) {
	for _, r := range routes {
		r.parent = parent
		full := joinFullPath(parentPath, r.Path)
		v.validateNode(r, full)
		if r.HasChildren() {
			v.walk(r.Children, r, full)
		}
	}
}

func joinFullPath(parent, segment string) string {
	segment = strings.TrimPrefix(segment, "/")
	if parent == "" {
		return "/" + segment
	}
	if segment == "" {
		return parent
	}
	return parent + "/" + segment
}

func (v *validator) validateNode(r *Route, full string) {
	if strings.HasPrefix(r.Path, "/") {
		v.fail(full, "path must not start with '/'")
	}
	if r.Path != "" && r.Matcher != nil {
		v.fail(full, "path and matcher are mutually exclusive")
	}

	// A component may sit alongside children or loadChildren (a shell route
	// with nested routes); redirectTo's own exclusions are checked below.
	discriminators := 0
	if r.HasChildren() {
		discriminators++
	}
	if r.LoadChildren {
		discriminators++
	}
	if r.HasRedirect() {
		discriminators++
	}
	if discriminators > 1 {
		v.fail(full, "exactly one of children, loadChildren, or redirectTo may be set")
	}

	if r.HasRedirect() {
		if r.HasChildren() || r.LoadChildren || r.HasComponent() {
			v.fail(full, "redirectTo is exclusive with children, loadChildren, and component")
		}
		if len(r.CanActivate) > 0 {
			v.fail(full, "redirectTo is exclusive with canActivate")
		}
		if r.Path == "" && r.PathMatchMode == "" {
			v.fail(full, "path=='' with redirectTo requires an explicit pathMatch")
		}
	}

	if r.IsComponentless() && !r.HasRedirect() && r.Outlet != "" && r.Outlet != "primary" {
		v.fail(full, "a componentless route may not have a non-primary outlet")
	}
}
