package http

import (
	"errors"
	"net/http"

	"userauth/internal/adapters/http/request"
	"userauth/internal/adapters/http/response"
	"userauth/internal/domain"
	"userauth/internal/logger"
)

const (
	MsgInvalidBody     = "Invalid request body"
	MsgUsernameTaken   = "Username already exists"
	MsgInvalidLogin    = "Invalid credentials"
	MsgTooManyAttempts = "Too many login attempts"
	MsgInternal        = "Internal server error"
)

type AuthHandler struct {
	svc domain.AuthService
	log logger.Logger

	decoder request.RequestDecoder
	writer  response.ResponseWriter
}

func NewAuthHandler(
	svc domain.AuthService,
	log logger.Logger,
	d request.RequestDecoder,
	w response.ResponseWriter,
) *AuthHandler {
	return &AuthHandler{
		svc:     svc,
		log:     log,
		decoder: d,
		writer:  w,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := h.decoder.Decode(r, &req); err != nil {
		h.writer.WriteValidationError(w, []string{MsgInvalidBody})
		return
	}

	res, err := h.svc.Register(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writer.Write(w, http.StatusCreated, res)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := h.decoder.Decode(r, &req); err != nil {
		h.writer.WriteValidationError(w, []string{MsgInvalidBody})
		return
	}

	res, err := h.svc.Login(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writer.Write(w, http.StatusOK, res)
}

// writeServiceError never exposes the detail of an internal failure.
func (h *AuthHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		h.writer.WriteValidationError(w, verr.Errors)
	case errors.Is(err, domain.ErrDuplicateUser):
		h.writer.WriteError(w, http.StatusConflict, MsgUsernameTaken)
	case errors.Is(err, domain.ErrInvalidCredentials):
		h.writer.WriteError(w, http.StatusUnauthorized, MsgInvalidLogin)
	case errors.Is(err, domain.ErrTooManyAttempts):
		h.writer.WriteError(w, http.StatusTooManyRequests, MsgTooManyAttempts)
	default:
		h.log.Error("http: auth request failed", "path", r.URL.Path, "error", err)
		h.writer.WriteError(w, http.StatusInternalServerError, MsgInternal)
	}
}
