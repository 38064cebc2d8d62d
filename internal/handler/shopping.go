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

type ShoppingHandler struct {
	shoppingStore *store.ShoppingStore
	hub           *websocket.Hub
	logger        *slog.Logger
}

func NewShoppingHandler(ss *store.ShoppingStore, hub *websocket.Hub, logger *slog.Logger) *ShoppingHandler {
	return &ShoppingHandler{shoppingStore: ss, hub: hub, logger: logger}
}

func (h *ShoppingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Quantity string `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	familyID := auth.FamilyID(r.Context())

	item, err := h.shoppingStore.Create(familyID, req.Name, req.Quantity)
	if err != nil {
		h.logger.Error("create shopping item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	notifyChange(r.Context(), h.hub, nil, familyID, "shopping", "created", item.ID)
	writeJSON(w, http.StatusCreated, item)
}

func (h *ShoppingHandler) List(w http.ResponseWriter, r *http.Request) {
	familyID := auth.FamilyID(r.Context())

	items, err := h.shoppingStore.ListByFamily(familyID)
	if err != nil {
		h.logger.Error("list shopping items", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	if items == nil {
		items = []model.ShoppingItem{}
	}

	writeJSON(w, http.StatusOK, items)
}

// SetChecked ticks an item off the list or puts it back.
func (h *ShoppingHandler) SetChecked(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.ownedItem(w, r)
	if !ok {
		return
	}

	var req struct {
		Checked bool `json:"checked"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	var checkedBy *int64
	if req.Checked {
		profileID := auth.ProfileID(r.Context())
		checkedBy = &profileID
	}

	item, err := h.shoppingStore.SetChecked(existing.ID, req.Checked, checkedBy)
	if err != nil {
		h.logger.Error("check shopping item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update item")
		return
	}

	notifyChange(r.Context(), h.hub, nil, item.FamilyID, "shopping", "updated", item.ID)
	writeJSON(w, http.StatusOK, item)
}

// ClearChecked removes every checked item from the family's list.
func (h *ShoppingHandler) ClearChecked(w http.ResponseWriter, r *http.Request) {
	familyID := auth.FamilyID(r.Context())

	removed, err := h.shoppingStore.ClearChecked(familyID)
	if err != nil {
		h.logger.Error("clear shopping items", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to clear items")
		return
	}

	notifyChange(r.Context(), h.hub, nil, familyID, "shopping", "deleted", 0)
	writeJSON(w, http.StatusOK, map[string]int64{"removed": removed})
}

func (h *ShoppingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.ownedItem(w, r)
	if !ok {
		return
	}

	if err := h.shoppingStore.Delete(existing.ID); err != nil {
		h.logger.Error("delete shopping item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}

	notifyChange(r.Context(), h.hub, nil, existing.FamilyID, "shopping", "deleted", existing.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *ShoppingHandler) ownedItem(w http.ResponseWriter, r *http.Request) (*model.ShoppingItem, bool) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return nil, false
	}

	item, err := h.shoppingStore.GetByID(id)
	if err != nil {
		h.logger.Error("get shopping item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get item")
		return nil, false
	}
	if item == nil || item.FamilyID != auth.FamilyID(r.Context()) {
		writeError(w, http.StatusNotFound, "item not found")
		return nil, false
	}

	return item, true
}
