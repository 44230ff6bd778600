package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/laisvitor/wedding-backend/internal/http/response"
	"github.com/laisvitor/wedding-backend/internal/platform/session"
	"github.com/laisvitor/wedding-backend/pkg/logger"
)

type ctxKey string

const ctxAdminID ctxKey = "admin_id"

// RequireAdmin gates a route on a valid session token. Missing, unknown and
// expired tokens all get the same 403.
func RequireAdmin(store session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := r.Header.Get("Authorization")
			tok = strings.TrimPrefix(tok, "Bearer ")
			if tok == "" {
				response.Forbidden(w, "Não autorizado")
				return
			}

			adminID, ok, err := store.Validate(r.Context(), tok)
			if err != nil {
				logger.ErrorContext(r.Context(), "session validation failed", "error", err)
				response.InternalError(w, "erro ao validar sessão")
				return
			}
			if !ok {
				response.Forbidden(w, "Não autorizado")
				return
			}

			ctx := context.WithValue(r.Context(), ctxAdminID, adminID)
			ctx = context.WithValue(ctx, logger.AdminIDKey, adminID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminID returns the admin id RequireAdmin stored on the request context.
func AdminID(r *http.Request) int64 {
	if v := r.Context().Value(ctxAdminID); v != nil {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
