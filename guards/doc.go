// Package guards provides two concrete canActivate guards (spec.md §4.7)
// grounded on real auth libraries: JWTGuard validates a bearer token with
// github.com/golang-jwt/jwt/v5, and OAuthLoginGuard redirects an
// unauthenticated navigation to a login route carrying the provider's
// golang.org/x/oauth2 authorization URL.
package guards
