package repository

import (
	"context"

	"github.com/taskvault/backend/domain"
)

// VisibleFilter selects the page of tasks a user may see: tasks they
// created plus tasks they hold a read grant on, deduplicated.
type VisibleFilter struct {
	UserID string
	Skip   int
	Limit  int
}

type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListVisible(ctx context.Context, filter VisibleFilter) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	// Delete removes the task and every grant attached to it in one
	// transaction, so no orphaned grants survive.
	Delete(ctx context.Context, id string) error
}
