package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userauth/internal/adapters/http/response"
	"userauth/internal/config"
	"userauth/internal/domain"
	"userauth/internal/logger"
	"userauth/internal/metrics"
)

type stubIssuer struct {
	claims *domain.TokenClaims
	err    error
}

func (s *stubIssuer) Issue(domain.TokenClaims) (string, error) { return "", nil }

func (s *stubIssuer) Verify(token string) (*domain.TokenClaims, error) {
	if token != "good" {
		if s.err != nil {
			return nil, s.err
		}
		return nil, domain.ErrTokenInvalid
	}
	return s.claims, nil
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestChain_Order(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := New().Use(mark("outer")).Use(mark("inner")).Then(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestRecover(t *testing.T) {
	writer := response.NewJSONWriter(logger.NewNop())
	h := Recover(logger.NewNop(), writer)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("driver exploded: pq: secret detail")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/register", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", decodeError(t, rec))
	assert.NotContains(t, rec.Body.String(), "secret detail")
}

func TestRecover_PassesAbortHandlerThrough(t *testing.T) {
	writer := response.NewJSONWriter(logger.NewNop())
	h := Recover(logger.NewNop(), writer)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	rec := httptest.NewRecorder()
	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Empty(t, rec.Body.String())
}

func TestRecover_AfterHeadersWritten(t *testing.T) {
	writer := response.NewJSONWriter(logger.NewNop())
	h := Recover(logger.NewNop(), writer)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"partial":`))
		panic("encoder blew up")
	}))

	rec := httptest.NewRecorder()
	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Internal server error")
}

func TestBearer(t *testing.T) {
	writer := response.NewJSONWriter(logger.NewNop())
	claims := &domain.TokenClaims{UserID: "u-1", Username: "alice", ExpiresAt: time.Now().Add(time.Hour)}

	var seen *domain.TokenClaims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetClaims(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name      string
		header    string
		issuerErr error
		wantCode  int
		wantMsg   string
	}{
		{"valid", "Bearer good", nil, http.StatusOK, ""},
		{"missing", "", nil, http.StatusUnauthorized, "Unauthorized"},
		{"wrong scheme", "Basic good", nil, http.StatusUnauthorized, "Unauthorized"},
		{"invalid", "Bearer forged", nil, http.StatusUnauthorized, "Unauthorized"},
		{"expired", "Bearer old", domain.ErrTokenExpired, http.StatusUnauthorized, "Token expired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			h := Bearer(&stubIssuer{claims: claims, err: tt.issuerErr}, writer)(next)

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, decodeError(t, rec))
				assert.Nil(t, seen)
			} else {
				assert.Equal(t, claims, seen)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	cfg := &config.Config{AllowedOrigins: []string{"https://app.test"}}
	h := CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/login", nil)
	req.Header.Set("Origin", "https://app.test")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://app.test", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("{}"))
	req.Header.Set("Origin", "https://evil.test")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLogging_RecordsMetrics(t *testing.T) {
	m := metrics.NewHTTPMetrics(prometheus.NewRegistry())

	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	h := Logging(logger.NewNop(), m)(mux)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/login", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("POST", "POST /login", "401")))
}
