// Package audit turns auth events into security log lines.
package audit

import (
	"userauth/internal/domain"
	"userauth/internal/event"
	"userauth/internal/logger"
)

type EventBus interface {
	Subscribe(eventName string, handler event.Handler)
}

func Register(bus EventBus, log logger.Logger) {
	trail := NewTrail(log.With("component", "audit"))

	bus.Subscribe(domain.EventUserRegistered, trail.Handle(domain.EventUserRegistered))
	bus.Subscribe(domain.EventLoginSucceeded, trail.Handle(domain.EventLoginSucceeded))
	bus.Subscribe(domain.EventLoginFailed, trail.HandleWarn(domain.EventLoginFailed))
	bus.Subscribe(domain.EventLoginLockedOut, trail.HandleWarn(domain.EventLoginLockedOut))
}

type Trail struct {
	log logger.Logger
}

func NewTrail(log logger.Logger) *Trail {
	return &Trail{log: log}
}

func (t *Trail) Handle(name string) event.Handler {
	return func(e any) {
		if args, ok := fields(name, e); ok {
			t.log.Info("audit: "+name, args...)
		}
	}
}

func (t *Trail) HandleWarn(name string) event.Handler {
	return func(e any) {
		if args, ok := fields(name, e); ok {
			t.log.Warn("audit: "+name, args...)
		}
	}
}

func fields(name string, e any) ([]any, bool) {
	evt, ok := e.(domain.AuthEvent)
	if !ok {
		return nil, false
	}

	args := []any{"event", name, "username", evt.Username, "at", evt.At}
	if evt.UserID != "" {
		args = append(args, "user_id", evt.UserID)
	}
	return args, true
}
