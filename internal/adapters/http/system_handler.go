package http

import (
	"net/http"
	"time"

	"userauth/internal/adapters/http/middleware"
	"userauth/internal/adapters/http/response"
)

const (
	ServiceName = "User Auth API"
	Version     = "1.0.0"
)

type IndexResponse struct {
	Message   string   `json:"message"`
	Version   string   `json:"version"`
	Endpoints []string `json:"endpoints"`
}

type HealthResponse struct {
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime"`
}

type MeResponse struct {
	User      MeUser    `json:"user"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type MeUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

var endpoints = []string{
	"POST /register",
	"POST /login",
	"GET /me",
	"GET /health",
	"GET /metrics",
}

type SystemHandler struct {
	writer    response.ResponseWriter
	startedAt time.Time
	now       func() time.Time
}

func NewSystemHandler(w response.ResponseWriter, startedAt time.Time) *SystemHandler {
	return &SystemHandler{writer: w, startedAt: startedAt, now: time.Now}
}

func (h *SystemHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.writer.Write(w, http.StatusOK, IndexResponse{
		Message:   ServiceName,
		Version:   Version,
		Endpoints: endpoints,
	})
}

func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	h.writer.Write(w, http.StatusOK, HealthResponse{
		Status:    "OK",
		Timestamp: now.UTC().Format(time.RFC3339),
		Uptime:    now.Sub(h.startedAt).Seconds(),
	})
}

// Me echoes the identity of the bearer token. It must sit behind middleware.Bearer.
func (h *SystemHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		h.writer.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	h.writer.Write(w, http.StatusOK, MeResponse{
		User:      MeUser{ID: claims.UserID, Username: claims.Username},
		ExpiresAt: claims.ExpiresAt.UTC(),
	})
}
