package model

import "time"

// CalendarEvent is a single-day appointment. EventDate is stored as a
// YYYY-MM-DD wall-clock date and EventTime as an optional HH:MM string,
// exactly as entered; parsing happens at the view boundary so a malformed
// value degrades to the event being hidden rather than a failed request.
type CalendarEvent struct {
	ID          int64     `json:"id"`
	FamilyID    int64     `json:"family_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	EventDate   string    `json:"event_date"`
	EventTime   *string   `json:"event_time"`
	CreatedBy   *int64    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
