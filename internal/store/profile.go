package store

import (
	"database/sql"
	"fmt"

	"github.com/skoefer/famhub/internal/model"
)

type ProfileStore struct {
	db *sql.DB
}

func NewProfileStore(db *sql.DB) *ProfileStore {
	return &ProfileStore{db: db}
}

const profileCols = `id, family_id, name, created_at, updated_at`

func scanProfile(scanner interface{ Scan(...any) error }) (*model.Profile, error) {
	var p model.Profile
	err := scanner.Scan(&p.ID, &p.FamilyID, &p.Name, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProfileStore) Create(familyID int64, name string) (*model.Profile, error) {
	result, err := s.db.Exec(`INSERT INTO profiles (family_id, name) VALUES (?, ?)`, familyID, name)
	if err != nil {
		return nil, fmt.Errorf("insert profile: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *ProfileStore) GetByID(id int64) (*model.Profile, error) {
	row := s.db.QueryRow(`SELECT `+profileCols+` FROM profiles WHERE id = ?`, id)
	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// GetOrCreate returns the family's profile with the given name, creating it
// on first login.
func (s *ProfileStore) GetOrCreate(familyID int64, name string) (*model.Profile, error) {
	row := s.db.QueryRow(`SELECT `+profileCols+` FROM profiles WHERE family_id = ? AND name = ? COLLATE NOCASE`, familyID, name)
	p, err := scanProfile(row)
	if err == nil {
		return p, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("get profile by name: %w", err)
	}
	return s.Create(familyID, name)
}

func (s *ProfileStore) ListByFamily(familyID int64) ([]model.Profile, error) {
	rows, err := s.db.Query(`SELECT `+profileCols+` FROM profiles WHERE family_id = ? ORDER BY name COLLATE NOCASE, id`, familyID)
	if err != nil {
		return nil, fmt.Errorf("query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []model.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}
