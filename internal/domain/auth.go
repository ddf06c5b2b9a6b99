package domain

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many login attempts")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrSigningKey         = errors.New("signing key missing or malformed")
	ErrEncoding           = errors.New("password encoding failed")
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Age      *int   `json:"age,omitempty"`
	City     string `json:"city,omitempty"`
	Country  string `json:"country,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	User    *User  `json:"user"`
	Token   string `json:"token"`
}

type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// ValidationResult holds every rule a payload violates, in evaluation order.
type ValidationResult struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

func NewValidationResult(errs []string) ValidationResult {
	if errs == nil {
		errs = []string{}
	}
	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

// ValidationError carries a failed ValidationResult through the error chain.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, "; ")
}

// TokenClaims is the identity asserted by an issued token.
type TokenClaims struct {
	UserID    string    `json:"id"`
	Username  string    `json:"username"`
	IssuedAt  time.Time `json:"-"`
	ExpiresAt time.Time `json:"-"`
}

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
}

type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	// Verify reports a mismatch or an unreadable hash as false with a nil error.
	Verify(ctx context.Context, password, hash string) (bool, error)
}

type TokenIssuer interface {
	Issue(claims TokenClaims) (string, error)
	Verify(token string) (*TokenClaims, error)
}

// LoginLimiter counts login attempts per username. Attempt reserves one
// attempt before the password is checked and reports whether it may proceed;
// Reset clears the count after a successful login.
type LoginLimiter interface {
	Attempt(ctx context.Context, username string) (bool, error)
	Reset(ctx context.Context, username string) error
}
