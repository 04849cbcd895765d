package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/faithfm/faithmedia-v1/internal/logging"
	"github.com/faithfm/faithmedia-v1/internal/permissions"
)

// RequireCapability resolves the caller's restriction for a capability and
// stores it in the request context. Callers who do not hold the capability
// get 403 before the handler runs.
func RequireCapability(provider permissions.Provider, capability string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			restriction, ok := provider.Restrictions(r.Context(), capability)
			if !ok {
				logging.Warn("Capability %q denied for %s %s", capability, r.Method, r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				json.NewEncoder(w).Encode(map[string]string{ //nolint:errcheck
					"error": "This application has not been authorized for your account",
				})
				return
			}

			ctx := permissions.NewContext(r.Context(), capability, restriction)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
