package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/skoefer/famhub/internal/model"
)

type ContactStore struct {
	db *sql.DB
}

func NewContactStore(db *sql.DB) *ContactStore {
	return &ContactStore{db: db}
}

const contactCols = `id, family_id, first_name, last_name, birthdate, phone, email, created_at, updated_at`

func scanContact(scanner interface{ Scan(...any) error }) (*model.Contact, error) {
	var c model.Contact
	var birthdate sql.NullString

	err := scanner.Scan(
		&c.ID, &c.FamilyID, &c.FirstName, &c.LastName, &birthdate,
		&c.Phone, &c.Email, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if birthdate.Valid {
		c.Birthdate = &birthdate.String
	}
	return &c, nil
}

func (s *ContactStore) Create(familyID int64, firstName, lastName string, birthdate *string, phone, email string) (*model.Contact, error) {
	var bd sql.NullString
	if birthdate != nil {
		bd = sql.NullString{String: *birthdate, Valid: true}
	}

	result, err := s.db.Exec(
		`INSERT INTO contacts (family_id, first_name, last_name, birthdate, phone, email) VALUES (?, ?, ?, ?, ?, ?)`,
		familyID, firstName, lastName, bd, phone, email,
	)
	if err != nil {
		return nil, fmt.Errorf("insert contact: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *ContactStore) GetByID(id int64) (*model.Contact, error) {
	row := s.db.QueryRow(`SELECT `+contactCols+` FROM contacts WHERE id = ?`, id)
	c, err := scanContact(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return c, nil
}

func (s *ContactStore) ListByFamily(ctx context.Context, familyID int64) ([]model.Contact, error) {
	return s.list(ctx, `SELECT `+contactCols+` FROM contacts WHERE family_id = ? ORDER BY first_name, last_name, id`, familyID)
}

// ListWithBirthdays returns only contacts that can appear on the calendar.
// The birthdate value itself may still be unparsable; the agenda layer
// drops those.
func (s *ContactStore) ListWithBirthdays(ctx context.Context, familyID int64) ([]model.Contact, error) {
	return s.list(ctx,
		`SELECT `+contactCols+` FROM contacts
		 WHERE family_id = ? AND birthdate IS NOT NULL AND birthdate != ''
		 ORDER BY first_name, last_name, id`,
		familyID,
	)
}

func (s *ContactStore) list(ctx context.Context, query string, args ...any) ([]model.Contact, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query contacts: %w", err)
	}
	defer rows.Close()

	var contacts []model.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, *c)
	}
	return contacts, rows.Err()
}

func (s *ContactStore) Update(id int64, firstName, lastName string, birthdate *string, phone, email string) (*model.Contact, error) {
	var bd sql.NullString
	if birthdate != nil {
		bd = sql.NullString{String: *birthdate, Valid: true}
	}

	_, err := s.db.Exec(
		`UPDATE contacts
		 SET first_name = ?, last_name = ?, birthdate = ?, phone = ?, email = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		firstName, lastName, bd, phone, email, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update contact: %w", err)
	}
	return s.GetByID(id)
}

func (s *ContactStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	return nil
}
