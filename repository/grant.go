package repository

import (
	"context"

	"github.com/taskvault/backend/domain"
)

type GrantRepository interface {
	// GetByID resolves a grant scoped to a task; a grant that exists
	// under a different task is reported as not found.
	GetByID(ctx context.Context, taskID, grantID string) (*domain.Grant, error)
	// GetForUser returns the target user's effective access on a task.
	// Nothing stops several grant rows from existing for one
	// (task, user) pair, so the flags of every row are OR-ed together;
	// domain.ErrGrantNotFound when no row exists.
	GetForUser(ctx context.Context, taskID, userID string) (*domain.Grant, error)
	Create(ctx context.Context, grant *domain.Grant) (*domain.Grant, error)
	Update(ctx context.Context, grant *domain.Grant) error
	Delete(ctx context.Context, taskID, grantID string) error
}
