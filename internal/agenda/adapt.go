package agenda

import (
	"time"

	"github.com/skoefer/famhub/internal/model"
)

// The adapters turn raw records into Items. They are pure and total: a
// record that cannot be placed on the calendar (missing or malformed date
// fields) is dropped by returning ok=false, never an error. Views degrade
// to showing fewer items instead of failing outright.

// FromEvent adapts a calendar event. The event's date places it on the
// calendar; a parsable event_time refines the instant within that day.
func FromEvent(e *model.CalendarEvent) (Item, bool) {
	day, ok := parseDate(e.EventDate)
	if !ok {
		return Item{}, false
	}

	date := day
	hasTime := false
	if e.EventTime != nil {
		if tod, err := time.ParseInLocation(timeLayout, *e.EventTime, time.Local); err == nil {
			date = time.Date(day.Year(), day.Month(), day.Day(), tod.Hour(), tod.Minute(), 0, 0, time.Local)
			hasTime = true
		}
	}

	return Item{
		Kind:        KindEvent,
		ID:          e.ID,
		Title:       e.Title,
		Date:        date,
		HasTime:     hasTime,
		Description: e.Description,
		Event:       e,
	}, true
}

// FromTodo adapts a todo. Todos without a due timestamp have no temporal
// placement and are dropped.
func FromTodo(t *model.Todo) (Item, bool) {
	if t.DueAt == nil {
		return Item{}, false
	}
	due, ok := parseDateTime(*t.DueAt)
	if !ok {
		return Item{}, false
	}

	return Item{
		Kind:        KindTodo,
		ID:          t.ID,
		Title:       t.Task,
		Date:        due,
		HasTime:     !due.Equal(startOfDay(due)),
		Description: t.Description,
		Todo:        t,
	}, true
}

// FromContact adapts a contact into its birthday occurrence for the given
// target year. The target year is always explicit: agenda building resolves
// against the reference date's year, grid building against each cell's own
// year.
func FromContact(c *model.Contact, targetYear int) (Item, bool) {
	if c.Birthdate == nil {
		return Item{}, false
	}
	birth, ok := parseDate(*c.Birthdate)
	if !ok {
		return Item{}, false
	}

	return Item{
		Kind:    KindBirthday,
		ID:      c.ID,
		Title:   c.FullName(),
		Date:    BirthdayOccurrence(birth, targetYear),
		Contact: c,
	}, true
}
