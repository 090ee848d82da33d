package handler

import (
	"log/slog"
	"net/http"

	"github.com/pavelanni/examcloud/internal/model"
)

// roleHeader carries the caller's role. It is trusted as sent; the portal
// has no authentication.
const roleHeader = "X-Examcloud-Role"

// withRole stores the role from roleHeader in the request context. Requests
// without a known role are treated as students.
func withRole(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := model.RoleStudent
		if v := r.Header.Get(roleHeader); v != "" {
			if parsed, ok := model.ParseRole(v); ok {
				role = parsed
			} else {
				slog.Warn("unknown role header", "value", v)
			}
		}
		next.ServeHTTP(w, r.WithContext(model.ContextWithRole(r.Context(), role)))
	})
}

// requireRole returns middleware that checks the caller has one of the allowed roles.
func requireRole(allowed ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := model.RoleFromContext(r.Context())
			for _, a := range allowed {
				if role == a {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeError(w, r, http.StatusForbidden, "forbidden", "Forbidden", nil)
		})
	}
}
