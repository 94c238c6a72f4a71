// Package preactivation computes the canDeactivate/canActivate/resolve
// check sets between a future and current RouterState and runs them in the
// order spec.md §4.7 describes, short-circuiting on the first denial or
// redirect. It never touches the network or any outlet: guards and
// resolvers are caller-supplied functions, and mounting/tearing down
// components is left to whatever "outlet collaborator" the navigation
// package is wired to.
package preactivation
