package middleware

import (
	"net/http"
	"strings"
)

// JSONBodyLimit caps JSON request bodies at n bytes. Multipart uploads
// are left alone; the voice handler bounds those itself.
func JSONBodyLimit(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
				r.Body = http.MaxBytesReader(w, r.Body, n)
			}
			next.ServeHTTP(w, r)
		})
	}
}
