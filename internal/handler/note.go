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

type NoteHandler struct {
	noteStore *store.NoteStore
	hub       *websocket.Hub
	logger    *slog.Logger
}

func NewNoteHandler(ns *store.NoteStore, hub *websocket.Hub, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{noteStore: ns, hub: hub, logger: logger}
}

type noteRequest struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Pinned bool   `json:"pinned"`
}

func (h *NoteHandler) parseAndValidate(r *http.Request, w http.ResponseWriter) (*noteRequest, bool) {
	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return nil, false
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" && strings.TrimSpace(req.Body) == "" {
		writeError(w, http.StatusBadRequest, "a title or body is required")
		return nil, false
	}

	return &req, true
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseAndValidate(r, w)
	if !ok {
		return
	}

	familyID := auth.FamilyID(r.Context())
	profileID := auth.ProfileID(r.Context())

	note, err := h.noteStore.Create(familyID, req.Title, req.Body, &profileID, req.Pinned)
	if err != nil {
		h.logger.Error("create note", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create note")
		return
	}

	notifyChange(r.Context(), h.hub, nil, familyID, "note", "created", note.ID)
	writeJSON(w, http.StatusCreated, note)
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	familyID := auth.FamilyID(r.Context())

	notes, err := h.noteStore.ListByFamily(familyID)
	if err != nil {
		h.logger.Error("list notes", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list notes")
		return
	}
	if notes == nil {
		notes = []model.Note{}
	}

	writeJSON(w, http.StatusOK, notes)
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.ownedNote(w, r)
	if !ok {
		return
	}

	req, ok := h.parseAndValidate(r, w)
	if !ok {
		return
	}

	note, err := h.noteStore.Update(existing.ID, req.Title, req.Body, req.Pinned)
	if err != nil {
		h.logger.Error("update note", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update note")
		return
	}

	notifyChange(r.Context(), h.hub, nil, note.FamilyID, "note", "updated", note.ID)
	writeJSON(w, http.StatusOK, note)
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.ownedNote(w, r)
	if !ok {
		return
	}

	if err := h.noteStore.Delete(existing.ID); err != nil {
		h.logger.Error("delete note", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete note")
		return
	}

	notifyChange(r.Context(), h.hub, nil, existing.FamilyID, "note", "deleted", existing.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *NoteHandler) ownedNote(w http.ResponseWriter, r *http.Request) (*model.Note, bool) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return nil, false
	}

	note, err := h.noteStore.GetByID(id)
	if err != nil {
		h.logger.Error("get note", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get note")
		return nil, false
	}
	if note == nil || note.FamilyID != auth.FamilyID(r.Context()) {
		writeError(w, http.StatusNotFound, "note not found")
		return nil, false
	}

	return note, true
}
