package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"userauth/internal/adapters/http/response"
	"userauth/internal/domain"
)

type contextKey string

const claimsKey contextKey = "claims"

// Bearer admits requests carrying a valid "Authorization: Bearer <token>" header.
func Bearer(tokens domain.TokenIssuer, writer response.ResponseWriter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			raw = strings.TrimSpace(raw)
			if !ok || raw == "" {
				writer.WriteError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				msg := "Unauthorized"
				if errors.Is(err, domain.ErrTokenExpired) {
					msg = "Token expired"
				}
				writer.WriteError(w, http.StatusUnauthorized, msg)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func WithClaims(ctx context.Context, c *domain.TokenClaims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func GetClaims(ctx context.Context) (*domain.TokenClaims, bool) {
	c, ok := ctx.Value(claimsKey).(*domain.TokenClaims)
	return c, ok
}
