package store

import (
	"context"

	"github.com/skoefer/famhub/internal/model"
)

// CalendarSource bundles the three stores the calendar reads from behind
// the view layer's Source interface.
type CalendarSource struct {
	events   *EventStore
	todos    *TodoStore
	contacts *ContactStore
}

func NewCalendarSource(events *EventStore, todos *TodoStore, contacts *ContactStore) *CalendarSource {
	return &CalendarSource{events: events, todos: todos, contacts: contacts}
}

func (s *CalendarSource) ListEvents(ctx context.Context, familyID int64) ([]model.CalendarEvent, error) {
	return s.events.ListByFamily(ctx, familyID)
}

func (s *CalendarSource) ListTodos(ctx context.Context, familyID int64) ([]model.Todo, error) {
	return s.todos.ListByFamily(ctx, familyID)
}

func (s *CalendarSource) ListBirthdayContacts(ctx context.Context, familyID int64) ([]model.Contact, error) {
	return s.contacts.ListWithBirthdays(ctx, familyID)
}
