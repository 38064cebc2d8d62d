package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/skoefer/famhub/internal/model"
)

type TodoStore struct {
	db *sql.DB
}

func NewTodoStore(db *sql.DB) *TodoStore {
	return &TodoStore{db: db}
}

const todoCols = `id, family_id, task, description, is_done, due_at, assigned_to, done_by, done_at, created_at, updated_at`

func scanTodo(scanner interface{ Scan(...any) error }) (*model.Todo, error) {
	var t model.Todo
	var isDone int
	var dueAt sql.NullString
	var assignedTo, doneBy sql.NullInt64
	var doneAt sql.NullTime

	err := scanner.Scan(
		&t.ID, &t.FamilyID, &t.Task, &t.Description, &isDone,
		&dueAt, &assignedTo, &doneBy, &doneAt, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.IsDone = isDone != 0
	if dueAt.Valid {
		t.DueAt = &dueAt.String
	}
	if assignedTo.Valid {
		t.AssignedTo = &assignedTo.Int64
	}
	if doneBy.Valid {
		t.DoneBy = &doneBy.Int64
	}
	if doneAt.Valid {
		t.DoneAt = &doneAt.Time
	}
	return &t, nil
}

func (s *TodoStore) Create(familyID int64, task, description string, dueAt *string, assignedTo *int64) (*model.Todo, error) {
	var due sql.NullString
	if dueAt != nil {
		due = sql.NullString{String: *dueAt, Valid: true}
	}
	var assigned sql.NullInt64
	if assignedTo != nil {
		assigned = sql.NullInt64{Int64: *assignedTo, Valid: true}
	}

	result, err := s.db.Exec(
		`INSERT INTO todos (family_id, task, description, due_at, assigned_to) VALUES (?, ?, ?, ?, ?)`,
		familyID, task, description, due, assigned,
	)
	if err != nil {
		return nil, fmt.Errorf("insert todo: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *TodoStore) GetByID(id int64) (*model.Todo, error) {
	row := s.db.QueryRow(`SELECT `+todoCols+` FROM todos WHERE id = ?`, id)
	t, err := scanTodo(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get todo: %w", err)
	}
	return t, nil
}

// ListByFamily returns every todo of a household, open before done, newest
// first within each group.
func (s *TodoStore) ListByFamily(ctx context.Context, familyID int64) ([]model.Todo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+todoCols+` FROM todos
		 WHERE family_id = ?
		 ORDER BY is_done ASC, created_at DESC, id DESC`,
		familyID,
	)
	if err != nil {
		return nil, fmt.Errorf("query todos: %w", err)
	}
	defer rows.Close()

	var todos []model.Todo
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		todos = append(todos, *t)
	}
	return todos, rows.Err()
}

func (s *TodoStore) Update(id int64, task, description string, dueAt *string, assignedTo *int64) (*model.Todo, error) {
	var due sql.NullString
	if dueAt != nil {
		due = sql.NullString{String: *dueAt, Valid: true}
	}
	var assigned sql.NullInt64
	if assignedTo != nil {
		assigned = sql.NullInt64{Int64: *assignedTo, Valid: true}
	}

	_, err := s.db.Exec(
		`UPDATE todos
		 SET task = ?, description = ?, due_at = ?, assigned_to = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		task, description, due, assigned, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update todo: %w", err)
	}
	return s.GetByID(id)
}

// SetDone marks a todo done or open again. doneBy records who completed it
// and is cleared when reopening.
func (s *TodoStore) SetDone(id int64, done bool, doneBy *int64) (*model.Todo, error) {
	var by sql.NullInt64
	var at sql.NullTime
	var doneInt int
	if done {
		doneInt = 1
		at = sql.NullTime{Time: time.Now().UTC(), Valid: true}
		if doneBy != nil {
			by = sql.NullInt64{Int64: *doneBy, Valid: true}
		}
	}

	_, err := s.db.Exec(
		`UPDATE todos SET is_done = ?, done_by = ?, done_at = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		doneInt, by, at, id,
	)
	if err != nil {
		return nil, fmt.Errorf("set todo done: %w", err)
	}
	return s.GetByID(id)
}

func (s *TodoStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	return nil
}
