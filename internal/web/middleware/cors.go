package middleware

import (
	"net/http"
	"strings"
)

// CORS sets a fixed Access-Control-Allow-Origin and Allow-Methods on every
// response. Preflight OPTIONS requests are answered with 204 and never reach
// the router.
func CORS(origin string, methods []string) func(http.Handler) http.Handler {
	allowMethods := strings.Join(methods, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Methods", allowMethods)
			h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
			h.Add("Vary", "Origin")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
