package domain

import "time"

// Grant is a directed, task-scoped permission edge: the grant owner
// (the task creator at the time the grant was made) allows the target
// user to read and/or update one task. OwnerID is fixed at creation and
// is the only identity allowed to later modify or revoke the grant.
type Grant struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	OwnerID   string    `json:"owner_id"`
	UserID    string    `json:"user_id"`
	CanRead   bool      `json:"can_read"`
	CanUpdate bool      `json:"can_update"`
	CreatedAt time.Time `json:"created_at"`
}
