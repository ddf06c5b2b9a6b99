package domain

import "time"

const (
	EventUserRegistered = "user.registered"
	EventLoginSucceeded = "login.succeeded"
	EventLoginFailed    = "login.failed"
	EventLoginLockedOut = "login.locked_out"
)

// AuthEvent never carries a password or hash. UserID is empty when the
// username did not resolve to a stored user.
type AuthEvent struct {
	UserID   string
	Username string
	At       time.Time
}

type EventPublisher interface {
	Publish(name string, event any)
}
