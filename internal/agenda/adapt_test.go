package agenda

import (
	"testing"
	"time"

	"github.com/skoefer/famhub/internal/model"
)

func strPtr(s string) *string { return &s }

func TestFromEvent(t *testing.T) {
	e := model.CalendarEvent{ID: 1, Title: "Dentist", Description: "checkup", EventDate: "2024-03-10"}

	item, ok := FromEvent(&e)
	if !ok {
		t.Fatal("expected event adapted")
	}
	if item.Kind != KindEvent {
		t.Errorf("kind = %v, want event", item.Kind)
	}
	want := time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local)
	if !item.Date.Equal(want) {
		t.Errorf("date = %v, want %v", item.Date, want)
	}
	if item.HasTime {
		t.Error("event without time should sort at midnight")
	}
	if item.Event != &e {
		t.Error("source ref should be the original record")
	}
}

func TestFromEventWithTime(t *testing.T) {
	e := model.CalendarEvent{ID: 1, Title: "Dentist", EventDate: "2024-03-10", EventTime: strPtr("14:30")}

	item, ok := FromEvent(&e)
	if !ok {
		t.Fatal("expected event adapted")
	}
	want := time.Date(2024, 3, 10, 14, 30, 0, 0, time.Local)
	if !item.Date.Equal(want) {
		t.Errorf("date = %v, want %v", item.Date, want)
	}
	if !item.HasTime {
		t.Error("HasTime should be set")
	}
}

func TestFromEventMalformedDateDropped(t *testing.T) {
	for _, date := range []string{"", "not-a-date", "2024-13-41", "10.03.2024"} {
		e := model.CalendarEvent{ID: 1, Title: "Bad", EventDate: date}
		if _, ok := FromEvent(&e); ok {
			t.Errorf("event with date %q should be dropped", date)
		}
	}
}

func TestFromEventMalformedTimeKeepsDate(t *testing.T) {
	e := model.CalendarEvent{ID: 1, Title: "Dentist", EventDate: "2024-03-10", EventTime: strPtr("half past two")}

	item, ok := FromEvent(&e)
	if !ok {
		t.Fatal("event with valid date should survive a bad time")
	}
	if item.HasTime {
		t.Error("unparsable time should leave the item at midnight")
	}
}

func TestFromTodoRoundTrip(t *testing.T) {
	tests := []struct {
		dueAt string
		want  time.Time
	}{
		{"2024-03-10T09:00:00", time.Date(2024, 3, 10, 9, 0, 0, 0, time.Local)},
		{"2024-03-10T09:00", time.Date(2024, 3, 10, 9, 0, 0, 0, time.Local)},
		{"2024-03-10", time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local)},
	}

	for _, tt := range tests {
		td := model.Todo{ID: 2, Task: "Pay rent", DueAt: strPtr(tt.dueAt)}
		item, ok := FromTodo(&td)
		if !ok {
			t.Fatalf("todo with due_at %q should be adapted", tt.dueAt)
		}
		if !item.Date.Equal(tt.want) {
			t.Errorf("due_at %q: date = %v, want %v", tt.dueAt, item.Date, tt.want)
		}
	}
}

func TestFromTodoWithoutDueDateDropped(t *testing.T) {
	td := model.Todo{ID: 2, Task: "Someday"}
	if _, ok := FromTodo(&td); ok {
		t.Error("todo without due_at should be dropped")
	}
}

func TestFromTodoMalformedDueDateDropped(t *testing.T) {
	td := model.Todo{ID: 2, Task: "Pay rent", DueAt: strPtr("tomorrow-ish")}
	if _, ok := FromTodo(&td); ok {
		t.Error("todo with malformed due_at should be dropped")
	}
}

func TestFromContact(t *testing.T) {
	c := model.Contact{ID: 3, FirstName: "Ana", LastName: "Silva", Birthdate: strPtr("1990-03-10")}

	item, ok := FromContact(&c, 2024)
	if !ok {
		t.Fatal("expected contact adapted")
	}
	if item.Title != "Ana Silva" {
		t.Errorf("title = %q, want %q", item.Title, "Ana Silva")
	}
	want := time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local)
	if !item.Date.Equal(want) {
		t.Errorf("date = %v, want %v (occurrence year, not birth year)", item.Date, want)
	}
}

func TestFromContactWithoutBirthdateDropped(t *testing.T) {
	c := model.Contact{ID: 3, FirstName: "Ana"}
	if _, ok := FromContact(&c, 2024); ok {
		t.Error("contact without birthdate should be dropped")
	}

	c.Birthdate = strPtr("March 10th 1990")
	if _, ok := FromContact(&c, 2024); ok {
		t.Error("contact with malformed birthdate should be dropped")
	}
}
