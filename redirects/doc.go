// Package redirects expands a UrlTree against a route config, applying
// redirectTo routes and lazily loading child configs along the way (spec.md
// §4.4 "Redirect applier"). The output is a UrlTree with every redirect
// resolved, ready for package recognizer to build an ActivatedRouteSnapshot
// tree from.
package redirects
