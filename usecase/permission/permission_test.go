package permission

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/taskvault/backend/domain"
	"github.com/taskvault/backend/repository"
)

type fakeTaskRepo struct {
	tasks map[string]*domain.Task
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id string) (*domain.Task, error) {
	task, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

func (r *fakeTaskRepo) ListVisible(_ context.Context, _ repository.VisibleFilter) ([]domain.Task, error) {
	return nil, nil
}

func (r *fakeTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	r.tasks[task.ID] = task
	return task, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, _ *domain.Task) error { return nil }

func (r *fakeTaskRepo) Delete(_ context.Context, id string) error {
	delete(r.tasks, id)
	return nil
}

type fakeGrantRepo struct {
	grants map[string]*domain.Grant
}

func (r *fakeGrantRepo) GetByID(_ context.Context, taskID, grantID string) (*domain.Grant, error) {
	grant, ok := r.grants[grantID]
	if !ok || grant.TaskID != taskID {
		return nil, domain.ErrGrantNotFound
	}
	copied := *grant
	return &copied, nil
}

func (r *fakeGrantRepo) GetForUser(_ context.Context, taskID, userID string) (*domain.Grant, error) {
	found := false
	effective := domain.Grant{TaskID: taskID, UserID: userID}
	for _, grant := range r.grants {
		if grant.TaskID == taskID && grant.UserID == userID {
			found = true
			effective.CanRead = effective.CanRead || grant.CanRead
			effective.CanUpdate = effective.CanUpdate || grant.CanUpdate
		}
	}
	if !found {
		return nil, domain.ErrGrantNotFound
	}
	return &effective, nil
}

func (r *fakeGrantRepo) Create(_ context.Context, grant *domain.Grant) (*domain.Grant, error) {
	if grant.ID == "" {
		grant.ID = uuid.NewString()
	}
	grant.CreatedAt = time.Now()
	copied := *grant
	r.grants[grant.ID] = &copied
	return grant, nil
}

func (r *fakeGrantRepo) Update(_ context.Context, grant *domain.Grant) error {
	existing, ok := r.grants[grant.ID]
	if !ok || existing.TaskID != grant.TaskID {
		return domain.ErrGrantNotFound
	}
	existing.CanRead = grant.CanRead
	existing.CanUpdate = grant.CanUpdate
	return nil
}

func (r *fakeGrantRepo) Delete(_ context.Context, taskID, grantID string) error {
	grant, ok := r.grants[grantID]
	if !ok || grant.TaskID != taskID {
		return domain.ErrGrantNotFound
	}
	delete(r.grants, grantID)
	return nil
}

func newTestUseCase(taskIDs ...string) (*UseCase, *fakeTaskRepo, *fakeGrantRepo) {
	tasks := &fakeTaskRepo{tasks: make(map[string]*domain.Task)}
	grants := &fakeGrantRepo{grants: make(map[string]*domain.Grant)}
	for _, id := range taskIDs {
		tasks.tasks[id] = &domain.Task{ID: id, Title: id, Status: domain.StatusCreated, CreatorID: "alice"}
	}
	return New(tasks, grants, nil), tasks, grants
}

func user(id string) *domain.User {
	return &domain.User{ID: id, Login: id, Role: domain.DefaultRole}
}

func TestCreateGrant_UpdateForcesRead(t *testing.T) {
	uc, _, _ := newTestUseCase("t1")
	ctx := context.Background()

	// can_read explicitly false but can_update requested.
	grant, err := uc.CreateGrant(ctx, user("alice"), "t1", "bob", false, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !grant.CanRead || !grant.CanUpdate {
		t.Fatalf("expected read+update, got read=%v update=%v", grant.CanRead, grant.CanUpdate)
	}
	if grant.OwnerID != "alice" {
		t.Fatalf("expected owner alice, got %q", grant.OwnerID)
	}
}

func TestCreateGrant_ReadOnlyStaysReadOnly(t *testing.T) {
	uc, _, _ := newTestUseCase("t1")

	grant, err := uc.CreateGrant(context.Background(), user("alice"), "t1", "bob", true, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !grant.CanRead || grant.CanUpdate {
		t.Fatalf("expected read-only, got read=%v update=%v", grant.CanRead, grant.CanUpdate)
	}
}

func TestCreateGrant_OnlyTaskCreator(t *testing.T) {
	uc, _, _ := newTestUseCase("t1")

	if _, err := uc.CreateGrant(context.Background(), user("bob"), "t1", "carol", true, false); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestCreateGrant_TaskNotFound(t *testing.T) {
	uc, _, _ := newTestUseCase()

	if _, err := uc.CreateGrant(context.Background(), user("alice"), "missing", "bob", true, false); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestUpdateGrant_DoesNotForceRead(t *testing.T) {
	uc, _, _ := newTestUseCase("t1")
	ctx := context.Background()

	created, err := uc.CreateGrant(ctx, user("alice"), "t1", "bob", true, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Updating to can_update without can_read writes both flags
	// verbatim: updates deliberately skip the creation-time forcing.
	updated, err := uc.UpdateGrant(ctx, user("alice"), "t1", created.ID, false, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.CanRead {
		t.Fatalf("update forced can_read, expected verbatim flags")
	}
	if !updated.CanUpdate {
		t.Fatalf("can_update not applied")
	}
}

func TestUpdateGrant_OnlyGrantOwner(t *testing.T) {
	uc, _, _ := newTestUseCase("t1")
	ctx := context.Background()

	created, err := uc.CreateGrant(ctx, user("alice"), "t1", "bob", true, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Not even the grant's target may change their own flags.
	if _, err := uc.UpdateGrant(ctx, user("bob"), "t1", created.ID, true, true); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUpdateGrant_OwnerOutlivesTaskOwnership(t *testing.T) {
	// Grant mutation is keyed on the recorded grant owner, not on the
	// task's current creator.
	uc, tasks, _ := newTestUseCase("t1")
	ctx := context.Background()

	created, err := uc.CreateGrant(ctx, user("alice"), "t1", "bob", true, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tasks.tasks["t1"].CreatorID = "carol"

	if _, err := uc.UpdateGrant(ctx, user("carol"), "t1", created.ID, true, true); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("current task creator mutated a foreign grant: %v", err)
	}
	if _, err := uc.UpdateGrant(ctx, user("alice"), "t1", created.ID, false, false); err != nil {
		t.Fatalf("grant owner denied: %v", err)
	}
}

func TestUpdateGrant_TaskMismatch(t *testing.T) {
	uc, _, _ := newTestUseCase("t1", "t2")
	ctx := context.Background()

	created, err := uc.CreateGrant(ctx, user("alice"), "t1", "bob", true, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := uc.UpdateGrant(ctx, user("alice"), "t2", created.ID, true, true); !errors.Is(err, domain.ErrGrantNotFound) {
		t.Fatalf("expected ErrGrantNotFound, got %v", err)
	}
}

func TestDeleteGrant_OnlyGrantOwner(t *testing.T) {
	uc, _, grants := newTestUseCase("t1")
	ctx := context.Background()

	created, err := uc.CreateGrant(ctx, user("alice"), "t1", "bob", true, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := uc.DeleteGrant(ctx, user("bob"), "t1", created.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := uc.DeleteGrant(ctx, user("alice"), "t1", created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(grants.grants) != 0 {
		t.Fatalf("grant still present after delete")
	}
}

func TestDeleteGrant_NotFound(t *testing.T) {
	uc, _, _ := newTestUseCase("t1")

	if err := uc.DeleteGrant(context.Background(), user("alice"), "t1", "missing"); !errors.Is(err, domain.ErrGrantNotFound) {
		t.Fatalf("expected ErrGrantNotFound, got %v", err)
	}
}
