package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/haifazahra-ui/pi-sosmed/internal/httputil"
)

type contextKey string

// ClaimsKey is the context key for the decoded token claims
const ClaimsKey contextKey = "claims"

// Middleware requires a bearer token. A header without a token part is
// answered with 401, a token that fails verification (empty included) with 403.
func Middleware(signer *TokenSigner, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				logger.WarnContext(r.Context(), "no bearer token", "path", r.URL.Path)
				httputil.RespondWithMessage(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			claims, err := signer.Parse(token)
			if err != nil {
				logger.WarnContext(r.Context(), "invalid token", "path", r.URL.Path, "error", err)
				httputil.RespondWithMessage(w, http.StatusForbidden, "Forbidden")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// bearerToken returns the second space separated part of the header. The
// part may be empty: "Bearer " carries a token that fails verification.
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 3)
	if len(parts) < 2 {
		return "", false
	}
	return parts[1], true
}

func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, ClaimsKey, claims)
}

// ClaimsFromContext extracts the caller's claims from context
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*Claims)
	return claims, ok && claims != nil
}
