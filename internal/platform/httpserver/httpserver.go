package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server with the project's timeouts. Writes allow for
// gallery uploads, which are proxied to the asset host within the request.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}
}
