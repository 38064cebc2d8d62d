package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/skoefer/famhub/internal/model"
)

type EventStore struct {
	db *sql.DB
}

func NewEventStore(db *sql.DB) *EventStore {
	return &EventStore{db: db}
}

const eventCols = `id, family_id, title, description, event_date, event_time, created_by, created_at, updated_at`

func scanEvent(scanner interface{ Scan(...any) error }) (*model.CalendarEvent, error) {
	var e model.CalendarEvent
	var eventTime sql.NullString
	var createdBy sql.NullInt64

	err := scanner.Scan(
		&e.ID, &e.FamilyID, &e.Title, &e.Description, &e.EventDate,
		&eventTime, &createdBy, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if eventTime.Valid {
		e.EventTime = &eventTime.String
	}
	if createdBy.Valid {
		e.CreatedBy = &createdBy.Int64
	}
	return &e, nil
}

func (s *EventStore) Create(familyID int64, title, description, eventDate string, eventTime *string, createdBy *int64) (*model.CalendarEvent, error) {
	var et sql.NullString
	if eventTime != nil {
		et = sql.NullString{String: *eventTime, Valid: true}
	}
	var cb sql.NullInt64
	if createdBy != nil {
		cb = sql.NullInt64{Int64: *createdBy, Valid: true}
	}

	result, err := s.db.Exec(
		`INSERT INTO calendar_events (family_id, title, description, event_date, event_time, created_by)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		familyID, title, description, eventDate, et, cb,
	)
	if err != nil {
		return nil, fmt.Errorf("insert calendar event: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *EventStore) GetByID(id int64) (*model.CalendarEvent, error) {
	row := s.db.QueryRow(`SELECT `+eventCols+` FROM calendar_events WHERE id = ?`, id)
	e, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get calendar event: %w", err)
	}
	return e, nil
}

// ListByFamily returns all events of one household ordered by date, dated
// entries first within a day. Date strings are returned as stored; the
// agenda layer decides what is parsable.
func (s *EventStore) ListByFamily(ctx context.Context, familyID int64) ([]model.CalendarEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+eventCols+` FROM calendar_events
		 WHERE family_id = ?
		 ORDER BY event_date ASC, event_time ASC, id ASC`,
		familyID,
	)
	if err != nil {
		return nil, fmt.Errorf("query calendar events: %w", err)
	}
	defer rows.Close()

	var events []model.CalendarEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan calendar event: %w", err)
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

func (s *EventStore) Update(id int64, title, description, eventDate string, eventTime *string) (*model.CalendarEvent, error) {
	var et sql.NullString
	if eventTime != nil {
		et = sql.NullString{String: *eventTime, Valid: true}
	}

	_, err := s.db.Exec(
		`UPDATE calendar_events
		 SET title = ?, description = ?, event_date = ?, event_time = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		title, description, eventDate, et, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update calendar event: %w", err)
	}
	return s.GetByID(id)
}

func (s *EventStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM calendar_events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete calendar event: %w", err)
	}
	return nil
}
