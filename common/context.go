package common

import (
    "context"

    "github.com/driftboard/driftboard-backend/auth"
)

type contextKey string

// AuthInfoKey is where the auth middleware stores the verified claims.
const AuthInfoKey contextKey = "authInfo"

// ClaimsFromContext returns the verified claims for the request, if any.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
    claims, ok := ctx.Value(AuthInfoKey).(*auth.Claims)
    return claims, ok
}
