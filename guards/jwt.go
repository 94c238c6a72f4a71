package guards

import (
	"context"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vango-dev/vangoroute/collab"
)

// JWTGuard is a canActivate guard (spec.md §4.7) that parses a bearer token
// out of the ActivatedRouteSnapshot's query params and fails closed: any
// parse error, signature mismatch, or expiry denies the navigation rather
// than erroring it, since an absent/invalid token is an expected, not
// exceptional, outcome of the guard running.
type JWTGuard struct {
	secret     []byte
	method     jwt.SigningMethod
	queryParam string
}

// NewJWTGuard builds a JWTGuard that reads the bearer token from the
// queryParam query parameter (e.g. "token") and validates it against secret
// using method. A nil method defaults to HS256.
func NewJWTGuard(secret []byte, queryParam string, method jwt.SigningMethod) *JWTGuard {
	if method == nil {
		method = jwt.SigningMethodHS256
	}
	return &JWTGuard{secret: secret, method: method, queryParam: queryParam}
}

// CanActivate adapts g to collab.CanActivateFunc.
func (g *JWTGuard) CanActivate() collab.CanActivateFunc {
	return func(ctx context.Context, snapshot collab.Snapshot, state collab.StateSnapshot) (collab.GuardResult, error) {
		token := snapshot.QueryParams().Get(g.queryParam)
		if token == "" {
			return collab.Deny(), nil
		}

		parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
			if t.Method.Alg() != g.method.Alg() {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return g.secret, nil
		}, jwt.WithValidMethods([]string{g.method.Alg()}))
		if err != nil || !parsed.Valid {
			return collab.Deny(), nil
		}
		return collab.Allow(), nil
	}
}
