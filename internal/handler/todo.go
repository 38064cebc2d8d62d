package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/skoefer/famhub/internal/auth"
	"github.com/skoefer/famhub/internal/model"
	"github.com/skoefer/famhub/internal/store"
	"github.com/skoefer/famhub/internal/websocket"
)

type TodoHandler struct {
	todoStore *store.TodoStore
	hub       *websocket.Hub
	calendar  *CalendarHandler
	logger    *slog.Logger
}

func NewTodoHandler(ts *store.TodoStore, hub *websocket.Hub, calendar *CalendarHandler, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{todoStore: ts, hub: hub, calendar: calendar, logger: logger}
}

type todoRequest struct {
	Task        string  `json:"task"`
	Description string  `json:"description"`
	DueAt       *string `json:"due_at"`
	AssignedTo  *int64  `json:"assigned_to"`
}

func (h *TodoHandler) parseAndValidate(r *http.Request, w http.ResponseWriter) (*todoRequest, bool) {
	var req todoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return nil, false
	}

	req.Task = strings.TrimSpace(req.Task)
	if req.Task == "" {
		writeError(w, http.StatusBadRequest, "task is required")
		return nil, false
	}

	// Due timestamps stay raw strings; parsing happens when the agenda is
	// built. Only an empty string is normalized away here.
	if req.DueAt != nil && strings.TrimSpace(*req.DueAt) == "" {
		req.DueAt = nil
	}

	return &req, true
}

func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseAndValidate(r, w)
	if !ok {
		return
	}

	familyID := auth.FamilyID(r.Context())

	todo, err := h.todoStore.Create(familyID, req.Task, req.Description, req.DueAt, req.AssignedTo)
	if err != nil {
		h.logger.Error("create todo", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create todo")
		return
	}

	notifyChange(r.Context(), h.hub, h.calendar, familyID, "todo", "created", todo.ID)
	writeJSON(w, http.StatusCreated, todo)
}

func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	familyID := auth.FamilyID(r.Context())

	todos, err := h.todoStore.ListByFamily(r.Context(), familyID)
	if err != nil {
		h.logger.Error("list todos", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list todos")
		return
	}
	if todos == nil {
		todos = []model.Todo{}
	}

	writeJSON(w, http.StatusOK, todos)
}

func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	todo, ok := h.ownedTodo(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.ownedTodo(w, r)
	if !ok {
		return
	}

	req, ok := h.parseAndValidate(r, w)
	if !ok {
		return
	}

	todo, err := h.todoStore.Update(existing.ID, req.Task, req.Description, req.DueAt, req.AssignedTo)
	if err != nil {
		h.logger.Error("update todo", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update todo")
		return
	}

	notifyChange(r.Context(), h.hub, h.calendar, todo.FamilyID, "todo", "updated", todo.ID)
	writeJSON(w, http.StatusOK, todo)
}

// SetDone toggles completion. Completing records who checked it off;
// un-completing clears that.
func (h *TodoHandler) SetDone(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.ownedTodo(w, r)
	if !ok {
		return
	}

	var req struct {
		Done bool `json:"done"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	var doneBy *int64
	if req.Done {
		profileID := auth.ProfileID(r.Context())
		doneBy = &profileID
	}

	todo, err := h.todoStore.SetDone(existing.ID, req.Done, doneBy)
	if err != nil {
		h.logger.Error("set todo done", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update todo")
		return
	}

	notifyChange(r.Context(), h.hub, h.calendar, todo.FamilyID, "todo", "updated", todo.ID)
	writeJSON(w, http.StatusOK, todo)
}

func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.ownedTodo(w, r)
	if !ok {
		return
	}

	if err := h.todoStore.Delete(existing.ID); err != nil {
		h.logger.Error("delete todo", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete todo")
		return
	}

	notifyChange(r.Context(), h.hub, h.calendar, existing.FamilyID, "todo", "deleted", existing.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *TodoHandler) ownedTodo(w http.ResponseWriter, r *http.Request) (*model.Todo, bool) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return nil, false
	}

	todo, err := h.todoStore.GetByID(id)
	if err != nil {
		h.logger.Error("get todo", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get todo")
		return nil, false
	}
	if todo == nil || todo.FamilyID != auth.FamilyID(r.Context()) {
		writeError(w, http.StatusNotFound, "todo not found")
		return nil, false
	}

	return todo, true
}
