package http

import (
	"net/http"
	"time"

	"userauth/internal/adapters/http/middleware"
	"userauth/internal/adapters/http/response"
	"userauth/internal/config"
	"userauth/internal/domain"
	"userauth/internal/logger"
	"userauth/internal/metrics"
)

type RouterDeps struct {
	Auth   *AuthHandler
	System *SystemHandler

	Tokens  domain.TokenIssuer
	Writer  response.ResponseWriter
	Metrics *metrics.HTTPMetrics
	Log     logger.Logger

	// MetricsHandler serves GET /metrics when set.
	MetricsHandler http.Handler
}

func NewRouter(cfg *config.Config, deps *RouterDeps) http.Handler {
	mux := http.NewServeMux()

	globalMw := middleware.New()
	globalMw.Use(middleware.Logging(deps.Log, deps.Metrics))
	globalMw.Use(middleware.Recover(deps.Log, deps.Writer))
	globalMw.Use(middleware.CORS(cfg))

	userStack := middleware.New()
	userStack.Use(middleware.Bearer(deps.Tokens, deps.Writer))

	mux.HandleFunc("GET /{$}", deps.System.Index)
	mux.HandleFunc("GET /health", deps.System.Health)

	mux.HandleFunc("POST /register", deps.Auth.Register)
	mux.HandleFunc("POST /login", deps.Auth.Login)

	mux.Handle("GET /me", userStack.Then(http.HandlerFunc(deps.System.Me)))

	if deps.MetricsHandler != nil {
		mux.Handle("GET /metrics", deps.MetricsHandler)
	}

	return globalMw.Apply(mux)
}

func NewServer(handler http.Handler, addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
