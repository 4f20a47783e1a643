package middleware

import (
	"net/http"
	"time"
)

func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	message := `{"message":"request timed out","code":"REQUEST_TIMEOUT"}`

	return func(next http.Handler) http.Handler {
		timeoutHandler := http.TimeoutHandler(next, timeout, message)

		// The timeout body is written through w; handlers that finish replace this header.
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			timeoutHandler.ServeHTTP(w, r)
		})
	}
}
