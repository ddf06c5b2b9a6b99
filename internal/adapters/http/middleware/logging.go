package middleware

import (
	"net/http"
	"time"

	"userauth/internal/logger"
	"userauth/internal/metrics"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

// Logging records one access log line and the request metrics per request.
// m may be nil.
func Logging(log logger.Logger, m *metrics.HTTPMetrics) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			elapsed := time.Since(start)
			m.RecordRequest(r.Method, r.Pattern, rec.status, elapsed)

			args := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"bytes", rec.bytes,
				"duration", elapsed,
			}
			switch {
			case rec.status >= http.StatusInternalServerError:
				log.Error("http: request", args...)
			case rec.status >= http.StatusBadRequest:
				log.Warn("http: request", args...)
			default:
				log.Info("http: request", args...)
			}
		})
	}
}
