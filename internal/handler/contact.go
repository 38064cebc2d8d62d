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

type ContactHandler struct {
	contactStore *store.ContactStore
	hub          *websocket.Hub
	calendar     *CalendarHandler
	logger       *slog.Logger
}

func NewContactHandler(cs *store.ContactStore, hub *websocket.Hub, calendar *CalendarHandler, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{contactStore: cs, hub: hub, calendar: calendar, logger: logger}
}

type contactRequest struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Birthdate *string `json:"birthdate"`
	Phone     string  `json:"phone"`
	Email     string  `json:"email"`
}

func (h *ContactHandler) parseAndValidate(r *http.Request, w http.ResponseWriter) (*contactRequest, bool) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return nil, false
	}

	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	if req.FirstName == "" {
		writeError(w, http.StatusBadRequest, "first_name is required")
		return nil, false
	}

	if req.Birthdate != nil {
		if strings.TrimSpace(*req.Birthdate) == "" {
			req.Birthdate = nil
		} else if !dateRegexp.MatchString(*req.Birthdate) {
			writeError(w, http.StatusBadRequest, "birthdate must be YYYY-MM-DD format")
			return nil, false
		}
	}

	return &req, true
}

func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseAndValidate(r, w)
	if !ok {
		return
	}

	familyID := auth.FamilyID(r.Context())

	contact, err := h.contactStore.Create(familyID, req.FirstName, req.LastName, req.Birthdate, req.Phone, req.Email)
	if err != nil {
		h.logger.Error("create contact", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create contact")
		return
	}

	notifyChange(r.Context(), h.hub, h.calendar, familyID, "contact", "created", contact.ID)
	writeJSON(w, http.StatusCreated, contact)
}

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	familyID := auth.FamilyID(r.Context())

	contacts, err := h.contactStore.ListByFamily(r.Context(), familyID)
	if err != nil {
		h.logger.Error("list contacts", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list contacts")
		return
	}
	if contacts == nil {
		contacts = []model.Contact{}
	}

	writeJSON(w, http.StatusOK, contacts)
}

func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	contact, ok := h.ownedContact(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, contact)
}

func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.ownedContact(w, r)
	if !ok {
		return
	}

	req, ok := h.parseAndValidate(r, w)
	if !ok {
		return
	}

	contact, err := h.contactStore.Update(existing.ID, req.FirstName, req.LastName, req.Birthdate, req.Phone, req.Email)
	if err != nil {
		h.logger.Error("update contact", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update contact")
		return
	}

	notifyChange(r.Context(), h.hub, h.calendar, contact.FamilyID, "contact", "updated", contact.ID)
	writeJSON(w, http.StatusOK, contact)
}

func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.ownedContact(w, r)
	if !ok {
		return
	}

	if err := h.contactStore.Delete(existing.ID); err != nil {
		h.logger.Error("delete contact", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete contact")
		return
	}

	notifyChange(r.Context(), h.hub, h.calendar, existing.FamilyID, "contact", "deleted", existing.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *ContactHandler) ownedContact(w http.ResponseWriter, r *http.Request) (*model.Contact, bool) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return nil, false
	}

	contact, err := h.contactStore.GetByID(id)
	if err != nil {
		h.logger.Error("get contact", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get contact")
		return nil, false
	}
	if contact == nil || contact.FamilyID != auth.FamilyID(r.Context()) {
		writeError(w, http.StatusNotFound, "contact not found")
		return nil, false
	}

	return contact, true
}
