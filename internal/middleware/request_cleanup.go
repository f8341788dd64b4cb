package middleware

import (
	"io"
	"net/http"
)

// handlers decode small JSON bodies; anything left past this is not worth reading
const maxDrainBytes = 256 << 10

// DrainAndCloseRequest reads what the handler left of the request body, up to
// maxDrainBytes, so the connection can be reused, then closes the body.
func DrainAndCloseRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			if r.Body != nil {
				_, _ = io.CopyN(io.Discard, r.Body, maxDrainBytes)
				_ = r.Body.Close()
			}
		})
	}
}
