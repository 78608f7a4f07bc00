package task

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/taskvault/backend/domain"
	"github.com/taskvault/backend/repository"
)

type UseCase struct {
	tasks  repository.TaskRepository
	grants repository.GrantRepository
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, grants repository.GrantRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		grants: grants,
		logger: logger,
	}
}

// CreateTask creates a task owned by the acting user. Status defaults
// to "Created" when empty.
func (uc *UseCase) CreateTask(ctx context.Context, user *domain.User, title, status string) (*domain.Task, error) {
	if user == nil || title == "" {
		return nil, domain.ErrInvalidPayload
	}
	if status == "" {
		status = domain.StatusCreated
	}
	return uc.tasks.Create(ctx, &domain.Task{
		Title:     title,
		Status:    status,
		CreatorID: user.ID,
	})
}

// ListTasks returns the page of tasks visible to the user: own tasks
// plus tasks with a read grant, deduplicated and ordered by creation
// time then id.
func (uc *UseCase) ListTasks(ctx context.Context, user *domain.User, skip, limit int) ([]domain.Task, error) {
	if user == nil {
		return nil, domain.ErrInvalidPayload
	}
	if skip < 0 {
		skip = 0
	}
	return uc.tasks.ListVisible(ctx, repository.VisibleFilter{
		UserID: user.ID,
		Skip:   skip,
		Limit:  limit,
	})
}

// UpdateTask overwrites title and status after the actor passes the
// Update capability check (creator, or holder of an update grant).
func (uc *UseCase) UpdateTask(ctx context.Context, user *domain.User, taskID, title, status string) (*domain.Task, error) {
	if user == nil || title == "" {
		return nil, domain.ErrInvalidPayload
	}

	task, err := uc.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if err := uc.authorize(ctx, user, task, domain.CapabilityUpdate); err != nil {
		return nil, err
	}

	task.Title = title
	if status == "" {
		status = domain.StatusCreated
	}
	task.Status = status

	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask removes a task and all of its grants. Only the creator may
// delete; no grant substitutes.
func (uc *UseCase) DeleteTask(ctx context.Context, user *domain.User, taskID string) error {
	if user == nil {
		return domain.ErrInvalidPayload
	}

	task, err := uc.tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}

	if !domain.Allows(user.ID, task, nil, domain.CapabilityDelete) {
		return domain.ErrForbidden
	}

	if err := uc.tasks.Delete(ctx, taskID); err != nil {
		return err
	}

	uc.logger.Info("task deleted", zap.String("task_id", taskID), zap.String("user_id", user.ID))
	return nil
}

// authorize fetches the actor's grant only when creator status alone is
// not enough to decide.
func (uc *UseCase) authorize(ctx context.Context, user *domain.User, task *domain.Task, cap domain.Capability) error {
	if domain.Allows(user.ID, task, nil, cap) {
		return nil
	}

	grant, err := uc.grants.GetForUser(ctx, task.ID, user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrGrantNotFound) {
			return domain.ErrForbidden
		}
		return err
	}

	if !domain.Allows(user.ID, task, grant, cap) {
		return domain.ErrForbidden
	}
	return nil
}
