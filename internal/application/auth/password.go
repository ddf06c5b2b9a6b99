package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"

	"userauth/internal/domain"
	"userauth/internal/metrics"
)

// BcryptHasher hashes passwords with bcrypt, running at most `concurrency`
// hash or compare operations at once.
type BcryptHasher struct {
	cost    int
	slots   *semaphore.Weighted
	metrics *metrics.AuthMetrics
}

func NewBcryptHasher(cost, concurrency int, m *metrics.AuthMetrics) (*BcryptHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range", cost)
	}
	if concurrency < 1 {
		concurrency = 1
	}

	return &BcryptHasher{
		cost:    cost,
		slots:   semaphore.NewWeighted(int64(concurrency)),
		metrics: m,
	}, nil
}

func (h *BcryptHasher) Hash(ctx context.Context, password string) (string, error) {
	if err := h.slots.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer h.slots.Release(1)

	start := time.Now()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	h.metrics.ObserveHash(metrics.OperationHash, time.Since(start))
	if err != nil {
		return "", errors.Join(domain.ErrEncoding, err)
	}

	return string(hashed), nil
}

func (h *BcryptHasher) Verify(ctx context.Context, password, hash string) (bool, error) {
	if err := h.slots.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer h.slots.Release(1)

	start := time.Now()
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	h.metrics.ObserveHash(metrics.OperationVerify, time.Since(start))

	return err == nil, nil
}
