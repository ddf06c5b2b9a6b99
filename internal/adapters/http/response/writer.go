// Package response
package response

import (
	"encoding/json"
	"net/http"

	"userauth/internal/logger"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type ValidationErrorResponse struct {
	Errors []string `json:"errors"`
}

type ResponseWriter interface {
	Write(w http.ResponseWriter, status int, payload any)
	WriteError(w http.ResponseWriter, status int, message string)
	WriteValidationError(w http.ResponseWriter, errs []string)
}

type JSONWriter struct {
	log logger.Logger
}

func NewJSONWriter(log logger.Logger) *JSONWriter {
	return &JSONWriter{log: log}
}

func (j *JSONWriter) Write(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		j.log.Warn("http: failed to encode response", "error", err)
	}
}

func (j *JSONWriter) WriteError(w http.ResponseWriter, status int, message string) {
	j.Write(w, status, ErrorResponse{Error: message})
}

func (j *JSONWriter) WriteValidationError(w http.ResponseWriter, errs []string) {
	if errs == nil {
		errs = []string{}
	}
	j.Write(w, http.StatusBadRequest, ValidationErrorResponse{Errors: errs})
}
