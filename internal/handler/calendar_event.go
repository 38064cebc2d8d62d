package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/skoefer/famhub/internal/auth"
	"github.com/skoefer/famhub/internal/model"
	"github.com/skoefer/famhub/internal/store"
	"github.com/skoefer/famhub/internal/websocket"
)

// notifyChange fans a record change out to the family's websocket clients
// and, for calendar-visible entities, refreshes the shared calendar snapshot.
func notifyChange(ctx context.Context, hub *websocket.Hub, calendar *CalendarHandler, familyID int64, entity, action string, id int64) {
	if hub != nil {
		hub.Broadcast(familyID, websocket.NewMessage(entity, action, id))
	}
	if calendar != nil {
		calendar.Invalidate(ctx, familyID)
	}
}

type CalendarEventHandler struct {
	eventStore *store.EventStore
	hub        *websocket.Hub
	calendar   *CalendarHandler
	logger     *slog.Logger
}

func NewCalendarEventHandler(es *store.EventStore, hub *websocket.Hub, calendar *CalendarHandler, logger *slog.Logger) *CalendarEventHandler {
	return &CalendarEventHandler{eventStore: es, hub: hub, calendar: calendar, logger: logger}
}

type eventRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	EventDate   string  `json:"event_date"`
	EventTime   *string `json:"event_time"`
}

func (h *CalendarEventHandler) parseAndValidate(r *http.Request, w http.ResponseWriter) (*eventRequest, bool) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return nil, false
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return nil, false
	}

	if !dateRegexp.MatchString(req.EventDate) {
		writeError(w, http.StatusBadRequest, "event_date must be YYYY-MM-DD format")
		return nil, false
	}

	if req.EventTime != nil && !timeRegexp.MatchString(*req.EventTime) {
		writeError(w, http.StatusBadRequest, "event_time must be HH:MM format")
		return nil, false
	}

	return &req, true
}

func (h *CalendarEventHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseAndValidate(r, w)
	if !ok {
		return
	}

	familyID := auth.FamilyID(r.Context())
	profileID := auth.ProfileID(r.Context())

	event, err := h.eventStore.Create(familyID, req.Title, req.Description, req.EventDate, req.EventTime, &profileID)
	if err != nil {
		h.logger.Error("create event", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create event")
		return
	}

	notifyChange(r.Context(), h.hub, h.calendar, familyID, "event", "created", event.ID)
	writeJSON(w, http.StatusCreated, event)
}

func (h *CalendarEventHandler) List(w http.ResponseWriter, r *http.Request) {
	familyID := auth.FamilyID(r.Context())

	events, err := h.eventStore.ListByFamily(r.Context(), familyID)
	if err != nil {
		h.logger.Error("list events", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list events")
		return
	}
	if events == nil {
		events = []model.CalendarEvent{}
	}

	writeJSON(w, http.StatusOK, events)
}

func (h *CalendarEventHandler) Get(w http.ResponseWriter, r *http.Request) {
	event, ok := h.ownedEvent(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (h *CalendarEventHandler) Update(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.ownedEvent(w, r)
	if !ok {
		return
	}

	req, ok := h.parseAndValidate(r, w)
	if !ok {
		return
	}

	event, err := h.eventStore.Update(existing.ID, req.Title, req.Description, req.EventDate, req.EventTime)
	if err != nil {
		h.logger.Error("update event", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update event")
		return
	}

	notifyChange(r.Context(), h.hub, h.calendar, event.FamilyID, "event", "updated", event.ID)
	writeJSON(w, http.StatusOK, event)
}

func (h *CalendarEventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.ownedEvent(w, r)
	if !ok {
		return
	}

	if err := h.eventStore.Delete(existing.ID); err != nil {
		h.logger.Error("delete event", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete event")
		return
	}

	notifyChange(r.Context(), h.hub, h.calendar, existing.FamilyID, "event", "deleted", existing.ID)
	w.WriteHeader(http.StatusNoContent)
}

// ownedEvent loads the event named by the id path param and checks it
// belongs to the caller's family. Records of other households read as not
// found.
func (h *CalendarEventHandler) ownedEvent(w http.ResponseWriter, r *http.Request) (*model.CalendarEvent, bool) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return nil, false
	}

	event, err := h.eventStore.GetByID(id)
	if err != nil {
		h.logger.Error("get event", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get event")
		return nil, false
	}
	if event == nil || event.FamilyID != auth.FamilyID(r.Context()) {
		writeError(w, http.StatusNotFound, "event not found")
		return nil, false
	}

	return event, true
}
