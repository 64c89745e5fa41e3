package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/driftboard/driftboard-backend/auth"
	"github.com/driftboard/driftboard-backend/common"
	"github.com/driftboard/driftboard-backend/responses"
	"github.com/driftboard/driftboard-backend/utils"
)

// Authenticate verifies the Authorization bearer token with the injected
// verifier and stores the resulting claims in the request context.
func Authenticate(verifier auth.TokenVerifier) func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            tokenStr := r.Header.Get("Authorization")
            if tokenStr == "" {
                utils.HandleError(w, responses.UnauthorizedError{Msg: "Missing Authorization header."})
                return
            }
            tokenStr = strings.TrimPrefix(tokenStr, "Bearer ")

            claims, err := verifier.Verify(r.Context(), tokenStr)
            if err != nil {
                utils.HandleError(w, responses.UnauthorizedError{Msg: "Invalid authentication credentials."})
                return
            }

            ctx := context.WithValue(r.Context(), common.AuthInfoKey, claims)
            next.ServeHTTP(w, r.WithContext(ctx))
        })
    }
}
