package model

import "time"

// Todo is a task item. DueAt is an optional wall-clock timestamp string
// (YYYY-MM-DDTHH:MM, seconds optional); a todo without one has no place on
// the agenda or calendar.
type Todo struct {
	ID          int64      `json:"id"`
	FamilyID    int64      `json:"family_id"`
	Task        string     `json:"task"`
	Description string     `json:"description"`
	IsDone      bool       `json:"is_done"`
	DueAt       *string    `json:"due_at"`
	AssignedTo  *int64     `json:"assigned_to"`
	DoneBy      *int64     `json:"done_by"`
	DoneAt      *time.Time `json:"done_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
