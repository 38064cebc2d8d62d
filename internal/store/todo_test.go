package store

import (
	"context"
	"testing"
)

func TestTodoCreateWithoutDueDate(t *testing.T) {
	db, familyID, _ := setupTestDB(t)
	s := NewTodoStore(db)

	todo, err := s.Create(familyID, "Someday", "", nil, nil)
	if err != nil {
		t.Fatalf("create todo: %v", err)
	}
	if todo.DueAt != nil {
		t.Errorf("due_at = %v, want nil", todo.DueAt)
	}
	if todo.IsDone {
		t.Error("new todo should be open")
	}
}

func TestTodoDueDateRoundTrip(t *testing.T) {
	db, familyID, profileID := setupTestDB(t)
	s := NewTodoStore(db)

	todo, err := s.Create(familyID, "Pay rent", "transfer", strPtr("2024-03-10T09:00:00"), &profileID)
	if err != nil {
		t.Fatalf("create todo: %v", err)
	}
	if todo.DueAt == nil || *todo.DueAt != "2024-03-10T09:00:00" {
		t.Errorf("due_at = %v, want exact stored value", todo.DueAt)
	}
	if todo.AssignedTo == nil || *todo.AssignedTo != profileID {
		t.Errorf("assigned_to = %v, want %d", todo.AssignedTo, profileID)
	}
}

func TestTodoSetDone(t *testing.T) {
	db, familyID, profileID := setupTestDB(t)
	s := NewTodoStore(db)

	todo, err := s.Create(familyID, "Pay rent", "", strPtr("2024-03-10T09:00:00"), nil)
	if err != nil {
		t.Fatalf("create todo: %v", err)
	}

	done, err := s.SetDone(todo.ID, true, &profileID)
	if err != nil {
		t.Fatalf("set done: %v", err)
	}
	if !done.IsDone {
		t.Error("todo should be done")
	}
	if done.DoneBy == nil || *done.DoneBy != profileID {
		t.Errorf("done_by = %v, want %d", done.DoneBy, profileID)
	}
	if done.DoneAt == nil {
		t.Error("done_at should be set")
	}

	reopened, err := s.SetDone(todo.ID, false, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.IsDone || reopened.DoneBy != nil || reopened.DoneAt != nil {
		t.Errorf("reopen should clear completion fields: %+v", reopened)
	}
}

func TestTodoListByFamilyOrdering(t *testing.T) {
	db, familyID, _ := setupTestDB(t)
	s := NewTodoStore(db)

	first, err := s.Create(familyID, "First", "", nil, nil)
	if err != nil {
		t.Fatalf("create todo: %v", err)
	}
	if _, err := s.Create(familyID, "Second", "", nil, nil); err != nil {
		t.Fatalf("create todo: %v", err)
	}
	if _, err := s.SetDone(first.ID, true, nil); err != nil {
		t.Fatalf("set done: %v", err)
	}

	todos, err := s.ListByFamily(context.Background(), familyID)
	if err != nil {
		t.Fatalf("list todos: %v", err)
	}
	if len(todos) != 2 {
		t.Fatalf("got %d todos, want 2", len(todos))
	}
	if todos[0].IsDone || !todos[1].IsDone {
		t.Error("open todos should come before done ones")
	}
}
