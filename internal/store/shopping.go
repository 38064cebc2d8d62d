package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/skoefer/famhub/internal/model"
)

type ShoppingStore struct {
	db *sql.DB
}

func NewShoppingStore(db *sql.DB) *ShoppingStore {
	return &ShoppingStore{db: db}
}

const shoppingCols = `id, family_id, name, quantity, checked, checked_by, checked_at, created_at, updated_at`

func scanShoppingItem(scanner interface{ Scan(...any) error }) (*model.ShoppingItem, error) {
	var it model.ShoppingItem
	var checked int
	var checkedBy sql.NullInt64
	var checkedAt sql.NullTime

	err := scanner.Scan(&it.ID, &it.FamilyID, &it.Name, &it.Quantity, &checked, &checkedBy, &checkedAt, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}

	it.Checked = checked != 0
	if checkedBy.Valid {
		it.CheckedBy = &checkedBy.Int64
	}
	if checkedAt.Valid {
		it.CheckedAt = &checkedAt.Time
	}
	return &it, nil
}

func (s *ShoppingStore) Create(familyID int64, name, quantity string) (*model.ShoppingItem, error) {
	result, err := s.db.Exec(
		`INSERT INTO shopping_items (family_id, name, quantity) VALUES (?, ?, ?)`,
		familyID, name, quantity,
	)
	if err != nil {
		return nil, fmt.Errorf("insert shopping item: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *ShoppingStore) GetByID(id int64) (*model.ShoppingItem, error) {
	row := s.db.QueryRow(`SELECT `+shoppingCols+` FROM shopping_items WHERE id = ?`, id)
	it, err := scanShoppingItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get shopping item: %w", err)
	}
	return it, nil
}

// ListByFamily returns the list with unchecked items first.
func (s *ShoppingStore) ListByFamily(familyID int64) ([]model.ShoppingItem, error) {
	rows, err := s.db.Query(
		`SELECT `+shoppingCols+` FROM shopping_items WHERE family_id = ? ORDER BY checked ASC, created_at ASC, id ASC`,
		familyID,
	)
	if err != nil {
		return nil, fmt.Errorf("query shopping items: %w", err)
	}
	defer rows.Close()

	var items []model.ShoppingItem
	for rows.Next() {
		it, err := scanShoppingItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shopping item: %w", err)
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

func (s *ShoppingStore) SetChecked(id int64, checked bool, checkedBy *int64) (*model.ShoppingItem, error) {
	var by sql.NullInt64
	var at sql.NullTime
	var c int
	if checked {
		c = 1
		at = sql.NullTime{Time: time.Now().UTC(), Valid: true}
		if checkedBy != nil {
			by = sql.NullInt64{Int64: *checkedBy, Valid: true}
		}
	}

	_, err := s.db.Exec(
		`UPDATE shopping_items SET checked = ?, checked_by = ?, checked_at = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		c, by, at, id,
	)
	if err != nil {
		return nil, fmt.Errorf("set shopping item checked: %w", err)
	}
	return s.GetByID(id)
}

// ClearChecked removes all checked items for a household and returns how
// many were deleted.
func (s *ShoppingStore) ClearChecked(familyID int64) (int64, error) {
	result, err := s.db.Exec(`DELETE FROM shopping_items WHERE family_id = ? AND checked = 1`, familyID)
	if err != nil {
		return 0, fmt.Errorf("clear checked shopping items: %w", err)
	}
	return result.RowsAffected()
}

func (s *ShoppingStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM shopping_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete shopping item: %w", err)
	}
	return nil
}
