package agenda

import (
	"time"

	"github.com/skoefer/famhub/internal/model"
)

// Kind discriminates the three record sources an Item can come from. The
// numeric order is the tie-break order within a day: events, then todos,
// then birthdays.
type Kind int

const (
	KindEvent Kind = iota
	KindTodo
	KindBirthday
)

func (k Kind) String() string {
	switch k {
	case KindEvent:
		return "event"
	case KindTodo:
		return "todo"
	case KindBirthday:
		return "birthday"
	}
	return "unknown"
}

// MarshalJSON encodes a Kind as its wire name.
func (k Kind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// ParseKind maps the wire name back to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "event":
		return KindEvent, true
	case "todo":
		return KindTodo, true
	case "birthday":
		return KindBirthday, true
	}
	return 0, false
}

// ViewMode selects which agenda items are shown.
type ViewMode string

const (
	ModeUpcoming ViewMode = "upcoming"
	ModeAll      ViewMode = "all"
	ModeCalendar ViewMode = "calendar"
)

// Item is the unified representation of an event, a due todo, or a
// birthday occurrence. It is derived on every build and never persisted.
//
// Date is a fully resolved local wall-clock instant: midnight when the
// source carries no time of day. For birthdays it is the occurrence date in
// the target year, never the literal birth year. Exactly one of Event,
// Todo, Contact is set, matching Kind.
type Item struct {
	Kind        Kind
	ID          int64
	Title       string
	Date        time.Time
	HasTime     bool
	Description string

	Event   *model.CalendarEvent
	Todo    *model.Todo
	Contact *model.Contact
}

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// parseDate parses a YYYY-MM-DD string into local midnight.
func parseDate(s string) (time.Time, bool) {
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// parseDateTime parses a due timestamp. Forms come from datetime inputs
// and API clients, so seconds and zone designators are both optional.
func parseDateTime(s string) (time.Time, bool) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		dateLayout,
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// startOfDay truncates t to local midnight.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// sameDay reports whether a and b fall on the same calendar date.
func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
