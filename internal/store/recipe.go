package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/skoefer/famhub/internal/model"
)

type RecipeStore struct {
	db *sql.DB
}

func NewRecipeStore(db *sql.DB) *RecipeStore {
	return &RecipeStore{db: db}
}

const recipeCols = `id, family_id, title, ingredients, steps, servings, created_by, created_at, updated_at`

func scanRecipe(scanner interface{ Scan(...any) error }) (*model.Recipe, error) {
	var r model.Recipe
	var createdBy sql.NullInt64

	err := scanner.Scan(&r.ID, &r.FamilyID, &r.Title, &r.Ingredients, &r.Steps, &r.Servings, &createdBy, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if createdBy.Valid {
		r.CreatedBy = &createdBy.Int64
	}
	return &r, nil
}

func (s *RecipeStore) Create(familyID int64, title, ingredients, steps string, servings int, createdBy *int64) (*model.Recipe, error) {
	var cb sql.NullInt64
	if createdBy != nil {
		cb = sql.NullInt64{Int64: *createdBy, Valid: true}
	}

	result, err := s.db.Exec(
		`INSERT INTO recipes (family_id, title, ingredients, steps, servings, created_by) VALUES (?, ?, ?, ?, ?, ?)`,
		familyID, title, ingredients, steps, servings, cb,
	)
	if err != nil {
		return nil, fmt.Errorf("insert recipe: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *RecipeStore) GetByID(id int64) (*model.Recipe, error) {
	row := s.db.QueryRow(`SELECT `+recipeCols+` FROM recipes WHERE id = ?`, id)
	r, err := scanRecipe(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return r, nil
}

// ListByFamily returns recipes alphabetically, optionally filtered by a
// case-insensitive substring of the title or ingredients.
func (s *RecipeStore) ListByFamily(familyID int64, search string) ([]model.Recipe, error) {
	query := `SELECT ` + recipeCols + ` FROM recipes WHERE family_id = ?`
	args := []any{familyID}

	if search = strings.TrimSpace(search); search != "" {
		query += ` AND (title LIKE ? COLLATE NOCASE OR ingredients LIKE ? COLLATE NOCASE)`
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern)
	}
	query += ` ORDER BY title COLLATE NOCASE, id`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recipes: %w", err)
	}
	defer rows.Close()

	var recipes []model.Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		recipes = append(recipes, *r)
	}
	return recipes, rows.Err()
}

func (s *RecipeStore) Update(id int64, title, ingredients, steps string, servings int) (*model.Recipe, error) {
	_, err := s.db.Exec(
		`UPDATE recipes SET title = ?, ingredients = ?, steps = ?, servings = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		title, ingredients, steps, servings, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update recipe: %w", err)
	}
	return s.GetByID(id)
}

func (s *RecipeStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	return nil
}
