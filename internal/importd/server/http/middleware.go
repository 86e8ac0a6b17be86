package http

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/vinsync-io/vinsync/pkg/log"
)

// bearerAuth guards the control endpoints with a static token. An empty
// configured token disables the check; that is logged loudly once so an
// unprotected deployment is never silent.
func bearerAuth(token string) mux.MiddlewareFunc {
	if token == "" {
		log.Warn("control API auth token is empty, endpoints are unprotected")
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
				writeError(w, http.StatusUnauthorized, "invalid or missing bearer token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
