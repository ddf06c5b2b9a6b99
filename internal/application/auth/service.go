// Package auth
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"userauth/internal/domain"
	"userauth/internal/logger"
	"userauth/internal/metrics"
)

const (
	MsgRegistered = "User registered successfully"
	MsgLoggedIn   = "Login successful"
)

var _ domain.AuthService = (*Service)(nil)

type Service struct {
	repo    domain.UserRepository
	hasher  domain.PasswordHasher
	tokens  domain.TokenIssuer
	limiter domain.LoginLimiter
	metrics *metrics.AuthMetrics
	events  domain.EventPublisher
	log     logger.Logger

	// dummyHash is verified against when a username is unknown so a miss
	// costs the same as a wrong password.
	dummyHash string
	now       func() time.Time
}

type ServiceDeps struct {
	Repo   domain.UserRepository
	Hasher domain.PasswordHasher
	Tokens domain.TokenIssuer

	// Optional.
	Limiter domain.LoginLimiter
	Metrics *metrics.AuthMetrics
	Events  domain.EventPublisher
	Log     logger.Logger
}

func NewService(ctx context.Context, deps ServiceDeps) (*Service, error) {
	if deps.Repo == nil || deps.Hasher == nil || deps.Tokens == nil {
		return nil, errors.New("auth: repo, hasher and tokens are required")
	}
	if deps.Log == nil {
		deps.Log = logger.NewNop()
	}

	seed := make([]byte, 16)
	if _, err := rand.Read(seed); err != nil {
		return nil, fmt.Errorf("dummy password seed: %w", err)
	}
	dummy, err := deps.Hasher.Hash(ctx, hex.EncodeToString(seed))
	if err != nil {
		return nil, fmt.Errorf("dummy password hash: %w", err)
	}

	return &Service{
		repo:      deps.Repo,
		hasher:    deps.Hasher,
		tokens:    deps.Tokens,
		limiter:   deps.Limiter,
		metrics:   deps.Metrics,
		events:    deps.Events,
		log:       deps.Log,
		dummyHash: dummy,
		now:       time.Now,
	}, nil
}

func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterResponse, error) {
	outcome := metrics.OutcomeError
	defer func() { s.metrics.IncRegistration(outcome) }()

	if res := ValidateRegistration(req); !res.IsValid {
		outcome = metrics.OutcomeInvalid
		return nil, &domain.ValidationError{Errors: res.Errors}
	}

	hashed, err := s.hasher.Hash(ctx, req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashed,
		Age:          req.Age,
		City:         req.City,
		Country:      req.Country,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateUser) {
			outcome = metrics.OutcomeDuplicate
			return nil, domain.ErrDuplicateUser
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Issue(domain.TokenClaims{UserID: user.ID, Username: user.Username})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	outcome = metrics.OutcomeSuccess
	s.log.Info("auth: user registered", "user_id", user.ID)
	s.publish(domain.EventUserRegistered, user.ID, user.Username)

	return &domain.RegisterResponse{
		Message: MsgRegistered,
		User:    user.Sanitized(),
		Token:   token,
	}, nil
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	outcome := metrics.OutcomeError
	defer func() { s.metrics.IncLogin(outcome) }()

	if res := ValidateLogin(req); !res.IsValid {
		outcome = metrics.OutcomeInvalid
		return nil, &domain.ValidationError{Errors: res.Errors}
	}

	if s.limiter != nil {
		allowed, err := s.limiter.Attempt(ctx, req.Username)
		if err != nil {
			return nil, fmt.Errorf("reserve login attempt: %w", err)
		}
		if !allowed {
			outcome = metrics.OutcomeLockedOut
			s.publish(domain.EventLoginLockedOut, "", req.Username)
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.GetByUsername(ctx, req.Username)
	found := err == nil
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("get user: %w", err)
	}

	target := s.dummyHash
	if found {
		target = user.PasswordHash
	}

	ok, err := s.hasher.Verify(ctx, req.Password, target)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !found || !ok {
		outcome = metrics.OutcomeRejected
		s.publish(domain.EventLoginFailed, "", req.Username)
		return nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, req.Username); err != nil {
			s.log.Warn("auth: failed to reset login attempts", "error", err)
		}
	}

	token, err := s.tokens.Issue(domain.TokenClaims{UserID: user.ID, Username: user.Username})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	outcome = metrics.OutcomeSuccess
	s.publish(domain.EventLoginSucceeded, user.ID, user.Username)

	return &domain.LoginResponse{
		Message: MsgLoggedIn,
		Token:   token,
	}, nil
}

func (s *Service) publish(name, userID, username string) {
	if s.events == nil {
		return
	}
	s.events.Publish(name, domain.AuthEvent{UserID: userID, Username: username, At: s.now().UTC()})
}
