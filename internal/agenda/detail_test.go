package agenda

import (
	"testing"
	"time"

	"github.com/skoefer/famhub/internal/model"
)

func TestResolveDetailBirthday(t *testing.T) {
	c := model.Contact{
		ID: 1, FirstName: "Ana", LastName: "Silva",
		Birthdate: strPtr("1990-03-10"),
		Phone:     "+49 170 1234567",
		Email:     "ana@example.org",
	}
	item, ok := FromContact(&c, 2024)
	if !ok {
		t.Fatal("contact should adapt")
	}

	facts := ResolveDetail(item, time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local))
	if facts.Kind != KindBirthday {
		t.Errorf("kind = %v, want birthday", facts.Kind)
	}
	if facts.Age != 34 {
		t.Errorf("age = %d, want 34", facts.Age)
	}
	if facts.Phone != c.Phone || facts.Email != c.Email {
		t.Error("contact fields should pass through unchanged")
	}
	if facts.Birthdate != "1990-03-10" {
		t.Errorf("birthdate = %q, want raw value", facts.Birthdate)
	}
}

func TestResolveDetailTodoOverdue(t *testing.T) {
	td := model.Todo{ID: 2, Task: "Pay rent", DueAt: strPtr("2024-03-10T09:00:00")}
	item, ok := FromTodo(&td)
	if !ok {
		t.Fatal("todo should adapt")
	}

	before := time.Date(2024, 3, 10, 8, 0, 0, 0, time.Local)
	after := time.Date(2024, 3, 10, 10, 0, 0, 0, time.Local)

	if facts := ResolveDetail(item, before); facts.Overdue {
		t.Error("not yet due: overdue should be false")
	}
	if facts := ResolveDetail(item, after); !facts.Overdue {
		t.Error("past due and open: overdue should be true")
	}

	doneBy := int64(7)
	td.IsDone = true
	td.DoneBy = &doneBy
	item, _ = FromTodo(&td)
	facts := ResolveDetail(item, after)
	if facts.Overdue {
		t.Error("done todos are never overdue")
	}
	if !facts.Done {
		t.Error("done should pass through")
	}
	if facts.DoneBy == nil || *facts.DoneBy != 7 {
		t.Error("completer identity should pass through")
	}
}

func TestResolveDetailEvent(t *testing.T) {
	e := model.CalendarEvent{ID: 1, Title: "Dentist", Description: "checkup", EventDate: "2024-03-10", EventTime: strPtr("14:30")}
	item, ok := FromEvent(&e)
	if !ok {
		t.Fatal("event should adapt")
	}

	facts := ResolveDetail(item, time.Now())
	if facts.Title != "Dentist" || facts.Description != "checkup" || facts.Time != "14:30" {
		t.Errorf("event facts should be pass-through, got %+v", facts)
	}
	if facts.Overdue || facts.Age != 0 {
		t.Error("events carry no derived facts")
	}
}
