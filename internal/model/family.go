package model

import "time"

// Family is the household every record is scoped to. JoinCodeHash is a
// bcrypt hash of the shared join code used at login.
type Family struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	JoinCodeHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile is a named member of a family. Todos are assigned to and
// completed by profiles.
type Profile struct {
	ID        int64     `json:"id"`
	FamilyID  int64     `json:"family_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Session struct {
	ID        int64     `json:"id"`
	Token     string    `json:"-"`
	ProfileID int64     `json:"profile_id"`
	FamilyID  int64     `json:"family_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
