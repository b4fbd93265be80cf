// internal/server/timeouts.go
//
// HTTP server helper with robust timeouts.
//
// The result listener accepts posts from local automation handlers,
// which occasionally wedge mid-request.  Bounding every phase keeps a
// stuck handler from pinning a connection forever:
//
//   • ReadTimeout   – abort slow request bodies (10 s)
//   • WriteTimeout  – cap total response time (15 s)
//   • IdleTimeout   – close keep-alives on idle clients (60 s)
//
// This helper centralises those defaults so internal/listener doesn’t
// repeat boilerplate.
//

package server

import (
	"net/http"
	"time"
)

// New constructs an *http.Server with sensible defaults.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
