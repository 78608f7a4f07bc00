package domain

import "time"

// Task represents a user-owned activity item.
type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	CreatorID string    `json:"creator_id"`
	CreatedAt time.Time `json:"created_at"`
}

// StatusCreated is the initial status of every task. Status is otherwise
// a free-form string; no transition graph is enforced.
const StatusCreated = "Created"
