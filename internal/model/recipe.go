package model

import "time"

// Recipe stores ingredients and steps as plain text blocks, one entry per
// line, the way they are typed into the form.
type Recipe struct {
	ID          int64     `json:"id"`
	FamilyID    int64     `json:"family_id"`
	Title       string    `json:"title"`
	Ingredients string    `json:"ingredients"`
	Steps       string    `json:"steps"`
	Servings    int       `json:"servings"`
	CreatedBy   *int64    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
