package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	"userauth/internal/adapters/http/response"
	"userauth/internal/logger"
)

type headerTracker struct {
	http.ResponseWriter
	wroteHeader bool
}

func (h *headerTracker) WriteHeader(code int) {
	h.wroteHeader = true
	h.ResponseWriter.WriteHeader(code)
}

func (h *headerTracker) Write(b []byte) (int, error) {
	h.wroteHeader = true
	return h.ResponseWriter.Write(b)
}

// Recover turns a panic into a 500. http.ErrAbortHandler is passed through
// untouched, and a panic after the response has started aborts the
// connection instead of appending a second response.
func Recover(log logger.Logger, writer response.ResponseWriter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tw := &headerTracker{ResponseWriter: w}

			defer func() {
				p := recover()
				if p == nil {
					return
				}
				if err, ok := p.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(p)
				}

				log.Error("http: request panic",
					"method", r.Method,
					"path", r.URL.Path,
					"panic", p,
					"stack", string(debug.Stack()),
				)

				if tw.wroteHeader {
					panic(http.ErrAbortHandler)
				}
				writer.WriteError(w, http.StatusInternalServerError, "Internal server error")
			}()

			next.ServeHTTP(tw, r)
		})
	}
}
