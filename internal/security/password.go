package security

import (
	"context"
	"runtime"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"

	"github.com/taskvault/backend/domain"
)

// PasswordHasher hashes and verifies passwords with bcrypt. The hash is
// deliberately expensive, so concurrent work is capped by a weighted
// semaphore instead of letting every request goroutine burn a core.
type PasswordHasher struct {
	cost    int
	workers *semaphore.Weighted
}

// NewPasswordHasher builds a hasher with the given bcrypt cost and
// worker limit. Non-positive arguments fall back to bcrypt.DefaultCost
// and runtime.NumCPU().
func NewPasswordHasher(cost, workers int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &PasswordHasher{
		cost:    cost,
		workers: semaphore.NewWeighted(int64(workers)),
	}
}

// Hash returns the bcrypt hash of the password. It blocks until a
// worker slot is free or the context is done.
func (h *PasswordHasher) Hash(ctx context.Context, password string) (string, error) {
	if err := h.workers.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer h.workers.Release(1)

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify checks the password against a stored hash, reporting
// domain.ErrInvalidCredentials on mismatch.
func (h *PasswordHasher) Verify(ctx context.Context, hashed, password string) error {
	if err := h.workers.Acquire(ctx, 1); err != nil {
		return err
	}
	defer h.workers.Release(1)

	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)); err != nil {
		return domain.ErrInvalidCredentials
	}
	return nil
}
