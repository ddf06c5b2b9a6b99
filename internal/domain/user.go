// Package domain
package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("username already exists")
)

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Age          *int      `json:"age,omitempty"`
	City         string    `json:"city,omitempty"`
	Country      string    `json:"country,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Clone returns a deep copy; the copy shares no pointers with u.
func (u *User) Clone() *User {
	c := *u
	if u.Age != nil {
		age := *u.Age
		c.Age = &age
	}
	return &c
}

// Sanitized returns a copy of the user without its credential.
func (u *User) Sanitized() *User {
	c := u.Clone()
	c.PasswordHash = ""
	return c
}

type UserRepository interface {
	// Create fails with ErrDuplicateUser when the username is taken.
	Create(ctx context.Context, user *User) error
	// GetByUsername fails with ErrUserNotFound when no user matches.
	GetByUsername(ctx context.Context, username string) (*User, error)
}
