package middleware

import (
	"net/http"

	"github.com/heartmarshall/council-backend/pkg/ctxutil"
)

// RequireUser rejects anonymous requests with 401. Use it on routes that
// hand the connection off before a service call could refuse it, such as
// websocket upgrades.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ctxutil.UserIDFromCtx(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
