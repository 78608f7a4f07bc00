package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskvault/backend/domain"
	"github.com/taskvault/backend/repository"
)

type grantRepository struct {
	pool *pgxpool.Pool
}

// NewGrantRepository returns a Postgres-backed implementation of GrantRepository.
func NewGrantRepository(pool *pgxpool.Pool) repository.GrantRepository {
	return &grantRepository{pool: pool}
}

func (r *grantRepository) GetByID(ctx context.Context, taskID, grantID string) (*domain.Grant, error) {
	const query = `
	SELECT id, task_id, owner_id, user_id, can_read, can_update, created_at
	FROM task_grants
	WHERE id = $1 AND task_id = $2
	`
	return scanGrant(r.pool.QueryRow(ctx, query, grantID, taskID))
}

func (r *grantRepository) GetForUser(ctx context.Context, taskID, userID string) (*domain.Grant, error) {
	// Several grant rows may exist for one (task, user) pair; access is
	// the OR of their flags, so a read-only row cannot shadow a later
	// update grant.
	const query = `
	SELECT COUNT(*), COALESCE(bool_or(can_read), FALSE), COALESCE(bool_or(can_update), FALSE)
	FROM task_grants
	WHERE task_id = $1 AND user_id = $2
	`
	var count int
	grant := domain.Grant{TaskID: taskID, UserID: userID}
	if err := r.pool.QueryRow(ctx, query, taskID, userID).Scan(&count, &grant.CanRead, &grant.CanUpdate); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, domain.ErrGrantNotFound
	}
	return &grant, nil
}

func (r *grantRepository) Create(ctx context.Context, grant *domain.Grant) (*domain.Grant, error) {
	if grant == nil {
		return nil, domain.ErrInvalidPayload
	}
	if grant.ID == "" {
		grant.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO task_grants (id, task_id, owner_id, user_id, can_read, can_update)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING created_at
	`
	if err := r.pool.QueryRow(ctx, query,
		grant.ID,
		grant.TaskID,
		grant.OwnerID,
		grant.UserID,
		grant.CanRead,
		grant.CanUpdate,
	).Scan(&grant.CreatedAt); err != nil {
		return nil, err
	}

	return grant, nil
}

func (r *grantRepository) Update(ctx context.Context, grant *domain.Grant) error {
	if grant == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE task_grants
	SET can_read = $3,
		can_update = $4
	WHERE id = $1 AND task_id = $2
	RETURNING created_at
	`
	if err := r.pool.QueryRow(ctx, query,
		grant.ID,
		grant.TaskID,
		grant.CanRead,
		grant.CanUpdate,
	).Scan(&grant.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrGrantNotFound
		}
		return err
	}

	return nil
}

func (r *grantRepository) Delete(ctx context.Context, taskID, grantID string) error {
	const query = `DELETE FROM task_grants WHERE id = $1 AND task_id = $2`
	tag, err := r.pool.Exec(ctx, query, grantID, taskID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrGrantNotFound
	}
	return nil
}

func scanGrant(row pgx.Row) (*domain.Grant, error) {
	var grant domain.Grant
	if err := row.Scan(
		&grant.ID,
		&grant.TaskID,
		&grant.OwnerID,
		&grant.UserID,
		&grant.CanRead,
		&grant.CanUpdate,
		&grant.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGrantNotFound
		}
		return nil, err
	}
	return &grant, nil
}
