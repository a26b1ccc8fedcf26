// Package middleware provides the HTTP middleware stack of the directory API:
// CORS, request body limits and structured request logging.
package middleware

import (
	"net/http"
	"time"

	"github.com/rs/cors"
)

// preflightMaxAge is how long browsers may cache a preflight answer.
const preflightMaxAge = 10 * time.Minute

// NewCORSHandler returns a middleware that applies CORS headers based on allowedOrigins.
// Each entry must be a full origin (scheme + host, no trailing slash). The
// Content-Disposition header is exposed so browsers can read the CSV export
// filename.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Accept", "X-Request-Id"},
		ExposedHeaders: []string{"Content-Disposition", "X-Request-Id"},
		MaxAge:         int(preflightMaxAge.Seconds()),
	})
	return c.Handler
}
