package model

import "time"

// Contact is an address-book entry. Birthdate is an optional YYYY-MM-DD
// string; contacts without one never appear on the calendar.
type Contact struct {
	ID        int64     `json:"id"`
	FamilyID  int64     `json:"family_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Birthdate *string   `json:"birthdate"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName returns the display name for agenda and detail views.
func (c Contact) FullName() string {
	if c.FirstName == "" {
		return c.LastName
	}
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
