package permission

import (
	"context"

	"go.uber.org/zap"

	"github.com/taskvault/backend/domain"
	"github.com/taskvault/backend/repository"
)

// UseCase manages per-task grants. Creation is gated on task ownership;
// mutation and revocation are gated on grant ownership. The two checks
// are deliberately distinct.
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

// CreateGrant lets the task creator authorize another user. Requesting
// can_update forces can_read on; the acting user becomes the grant
// owner for all later mutations.
func (uc *UseCase) CreateGrant(ctx context.Context, user *domain.User, taskID, targetUserID string, canRead, canUpdate bool) (*domain.Grant, error) {
	if user == nil || targetUserID == "" {
		return nil, domain.ErrInvalidPayload
	}

	task, err := uc.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if !domain.Allows(user.ID, task, nil, domain.CapabilityManageGrants) {
		return nil, domain.ErrForbidden
	}

	canRead, canUpdate = domain.NormalizedGrantFlags(canRead, canUpdate)

	grant, err := uc.grants.Create(ctx, &domain.Grant{
		TaskID:    taskID,
		OwnerID:   user.ID,
		UserID:    targetUserID,
		CanRead:   canRead,
		CanUpdate: canUpdate,
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("grant created",
		zap.String("task_id", taskID),
		zap.String("owner_id", user.ID),
		zap.String("target_user_id", targetUserID),
	)
	return grant, nil
}

// UpdateGrant overwrites both flags verbatim. Unlike creation there is
// no read-forcing here; tests pin that difference.
func (uc *UseCase) UpdateGrant(ctx context.Context, user *domain.User, taskID, grantID string, canRead, canUpdate bool) (*domain.Grant, error) {
	if user == nil {
		return nil, domain.ErrInvalidPayload
	}

	if _, err := uc.tasks.GetByID(ctx, taskID); err != nil {
		return nil, err
	}

	grant, err := uc.grants.GetByID(ctx, taskID, grantID)
	if err != nil {
		return nil, err
	}

	if !domain.AllowsGrantMutation(user.ID, grant) {
		return nil, domain.ErrForbidden
	}

	grant.CanRead = canRead
	grant.CanUpdate = canUpdate

	if err := uc.grants.Update(ctx, grant); err != nil {
		return nil, err
	}
	return grant, nil
}

// DeleteGrant revokes a grant. The lookup is scoped by task id, so a
// grant under another task reads as not found.
func (uc *UseCase) DeleteGrant(ctx context.Context, user *domain.User, taskID, grantID string) error {
	if user == nil {
		return domain.ErrInvalidPayload
	}

	grant, err := uc.grants.GetByID(ctx, taskID, grantID)
	if err != nil {
		return err
	}

	if !domain.AllowsGrantMutation(user.ID, grant) {
		return domain.ErrForbidden
	}

	if err := uc.grants.Delete(ctx, taskID, grantID); err != nil {
		return err
	}

	uc.logger.Info("grant deleted", zap.String("task_id", taskID), zap.String("grant_id", grantID))
	return nil
}
