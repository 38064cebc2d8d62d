package model

import "time"

type ShoppingItem struct {
	ID        int64      `json:"id"`
	FamilyID  int64      `json:"family_id"`
	Name      string     `json:"name"`
	Quantity  string     `json:"quantity"`
	Checked   bool       `json:"checked"`
	CheckedBy *int64     `json:"checked_by"`
	CheckedAt *time.Time `json:"checked_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
