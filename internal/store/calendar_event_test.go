package store

import (
	"context"
	"testing"
)

func TestEventCreateAndGetByID(t *testing.T) {
	db, familyID, profileID := setupTestDB(t)
	s := NewEventStore(db)

	event, err := s.Create(familyID, "Dentist", "checkup", "2024-03-10", strPtr("14:30"), &profileID)
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	if event.Title != "Dentist" {
		t.Errorf("title = %q, want %q", event.Title, "Dentist")
	}
	if event.EventDate != "2024-03-10" {
		t.Errorf("event_date = %q, want %q", event.EventDate, "2024-03-10")
	}
	if event.EventTime == nil || *event.EventTime != "14:30" {
		t.Errorf("event_time = %v, want 14:30", event.EventTime)
	}
	if event.CreatedBy == nil || *event.CreatedBy != profileID {
		t.Errorf("created_by = %v, want %d", event.CreatedBy, profileID)
	}

	got, err := s.GetByID(event.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.Title != "Dentist" {
		t.Errorf("got title = %q, want %q", got.Title, "Dentist")
	}
}

func TestEventGetByIDNotFound(t *testing.T) {
	db, _, _ := setupTestDB(t)
	s := NewEventStore(db)

	got, err := s.GetByID(999)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got != nil {
		t.Error("expected nil for nonexistent event")
	}
}

func TestEventListByFamilyScoped(t *testing.T) {
	db, familyID, _ := setupTestDB(t)
	s := NewEventStore(db)

	other, err := NewFamilyStore(db).Create("Nachbarn", "hash")
	if err != nil {
		t.Fatalf("create other family: %v", err)
	}

	if _, err := s.Create(familyID, "Ours", "", "2024-03-10", nil, nil); err != nil {
		t.Fatalf("create event: %v", err)
	}
	if _, err := s.Create(other.ID, "Theirs", "", "2024-03-11", nil, nil); err != nil {
		t.Fatalf("create event: %v", err)
	}

	events, err := s.ListByFamily(context.Background(), familyID)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 1 || events[0].Title != "Ours" {
		t.Errorf("list leaked across families: %+v", events)
	}
}

func TestEventUpdateAndDelete(t *testing.T) {
	db, familyID, _ := setupTestDB(t)
	s := NewEventStore(db)

	event, err := s.Create(familyID, "Dentist", "", "2024-03-10", nil, nil)
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	updated, err := s.Update(event.ID, "Dentist (moved)", "new slot", "2024-03-12", strPtr("09:00"))
	if err != nil {
		t.Fatalf("update event: %v", err)
	}
	if updated.Title != "Dentist (moved)" || updated.EventDate != "2024-03-12" {
		t.Errorf("update not applied: %+v", updated)
	}
	if updated.EventTime == nil || *updated.EventTime != "09:00" {
		t.Errorf("event_time = %v, want 09:00", updated.EventTime)
	}

	if err := s.Delete(event.ID); err != nil {
		t.Fatalf("delete event: %v", err)
	}
	got, err := s.GetByID(event.ID)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if got != nil {
		t.Error("event should be gone after delete")
	}
}

func TestEventStoresRawDateStrings(t *testing.T) {
	db, familyID, _ := setupTestDB(t)
	s := NewEventStore(db)

	// Storage is glue: it keeps whatever was written. Filtering malformed
	// dates is the agenda layer's job.
	event, err := s.Create(familyID, "Odd", "", "not-a-date", nil, nil)
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	if event.EventDate != "not-a-date" {
		t.Errorf("event_date = %q, want raw value preserved", event.EventDate)
	}
}
