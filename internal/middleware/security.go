// internal/middleware/security.go
//
// Security-header middleware.
//
// Injects standard headers on every response:
//
//   • X-Content-Type-Options  –  MIME-sniffing defence (the Ajax view is
//     strictly JSON and must never be sniffed as HTML)
//   • X-Frame-Options         –  click-jacking defence for the demo pages
//   • Referrer-Policy         –  drops path/query from Referer, keeping
//     signed widget keys out of third-party logs
//
// Headers are added *after* next.ServeHTTP so handlers may set Content-Type
// first; the middleware never overwrites an existing value.

package middleware

import "net/http"

// Security sets security headers for every response.
func Security(next http.Handler) http.Handler {
	const (
		nosn  = "nosniff"
		xfo   = "SAMEORIGIN"
		refer = "strict-origin-when-cross-origin"
	)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)

		if w.Header().Get("X-Content-Type-Options") == "" {
			w.Header().Add("X-Content-Type-Options", nosn)
		}
		if w.Header().Get("X-Frame-Options") == "" {
			w.Header().Add("X-Frame-Options", xfo)
		}
		if w.Header().Get("Referrer-Policy") == "" {
			w.Header().Add("Referrer-Policy", refer)
		}
	})
}
