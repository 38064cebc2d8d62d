package store

import (
	"database/sql"
	"fmt"

	"github.com/skoefer/famhub/internal/model"
)

type NoteStore struct {
	db *sql.DB
}

func NewNoteStore(db *sql.DB) *NoteStore {
	return &NoteStore{db: db}
}

const noteCols = `id, family_id, title, body, author_id, pinned, created_at, updated_at`

func scanNote(scanner interface{ Scan(...any) error }) (*model.Note, error) {
	var n model.Note
	var authorID sql.NullInt64
	var pinned int

	err := scanner.Scan(&n.ID, &n.FamilyID, &n.Title, &n.Body, &authorID, &pinned, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}

	n.Pinned = pinned != 0
	if authorID.Valid {
		n.AuthorID = &authorID.Int64
	}
	return &n, nil
}

func (s *NoteStore) Create(familyID int64, title, body string, authorID *int64, pinned bool) (*model.Note, error) {
	var aID sql.NullInt64
	if authorID != nil {
		aID = sql.NullInt64{Int64: *authorID, Valid: true}
	}
	var p int
	if pinned {
		p = 1
	}

	result, err := s.db.Exec(
		`INSERT INTO notes (family_id, title, body, author_id, pinned) VALUES (?, ?, ?, ?, ?)`,
		familyID, title, body, aID, p,
	)
	if err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *NoteStore) GetByID(id int64) (*model.Note, error) {
	row := s.db.QueryRow(`SELECT `+noteCols+` FROM notes WHERE id = ?`, id)
	n, err := scanNote(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}
	return n, nil
}

// ListByFamily returns notes pinned-first, newest first.
func (s *NoteStore) ListByFamily(familyID int64) ([]model.Note, error) {
	rows, err := s.db.Query(
		`SELECT `+noteCols+` FROM notes WHERE family_id = ? ORDER BY pinned DESC, created_at DESC, id DESC`,
		familyID,
	)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, *n)
	}
	return notes, rows.Err()
}

func (s *NoteStore) Update(id int64, title, body string, pinned bool) (*model.Note, error) {
	var p int
	if pinned {
		p = 1
	}
	_, err := s.db.Exec(
		`UPDATE notes SET title = ?, body = ?, pinned = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		title, body, p, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	return s.GetByID(id)
}

func (s *NoteStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}
