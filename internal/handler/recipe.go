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

type RecipeHandler struct {
	recipeStore *store.RecipeStore
	hub         *websocket.Hub
	logger      *slog.Logger
}

func NewRecipeHandler(rs *store.RecipeStore, hub *websocket.Hub, logger *slog.Logger) *RecipeHandler {
	return &RecipeHandler{recipeStore: rs, hub: hub, logger: logger}
}

type recipeRequest struct {
	Title       string `json:"title"`
	Ingredients string `json:"ingredients"`
	Steps       string `json:"steps"`
	Servings    int    `json:"servings"`
}

func (h *RecipeHandler) parseAndValidate(r *http.Request, w http.ResponseWriter) (*recipeRequest, bool) {
	var req recipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return nil, false
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return nil, false
	}
	if req.Servings < 0 {
		writeError(w, http.StatusBadRequest, "servings must not be negative")
		return nil, false
	}

	return &req, true
}

func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseAndValidate(r, w)
	if !ok {
		return
	}

	familyID := auth.FamilyID(r.Context())
	profileID := auth.ProfileID(r.Context())

	recipe, err := h.recipeStore.Create(familyID, req.Title, req.Ingredients, req.Steps, req.Servings, &profileID)
	if err != nil {
		h.logger.Error("create recipe", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create recipe")
		return
	}

	notifyChange(r.Context(), h.hub, nil, familyID, "recipe", "created", recipe.ID)
	writeJSON(w, http.StatusCreated, recipe)
}

// List returns the family's recipes, filtered by the optional q query
// parameter matching titles and ingredients.
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	familyID := auth.FamilyID(r.Context())
	search := strings.TrimSpace(r.URL.Query().Get("q"))

	recipes, err := h.recipeStore.ListByFamily(familyID, search)
	if err != nil {
		h.logger.Error("list recipes", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list recipes")
		return
	}
	if recipes == nil {
		recipes = []model.Recipe{}
	}

	writeJSON(w, http.StatusOK, recipes)
}

func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	recipe, ok := h.ownedRecipe(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, recipe)
}

func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.ownedRecipe(w, r)
	if !ok {
		return
	}

	req, ok := h.parseAndValidate(r, w)
	if !ok {
		return
	}

	recipe, err := h.recipeStore.Update(existing.ID, req.Title, req.Ingredients, req.Steps, req.Servings)
	if err != nil {
		h.logger.Error("update recipe", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update recipe")
		return
	}

	notifyChange(r.Context(), h.hub, nil, recipe.FamilyID, "recipe", "updated", recipe.ID)
	writeJSON(w, http.StatusOK, recipe)
}

func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.ownedRecipe(w, r)
	if !ok {
		return
	}

	if err := h.recipeStore.Delete(existing.ID); err != nil {
		h.logger.Error("delete recipe", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete recipe")
		return
	}

	notifyChange(r.Context(), h.hub, nil, existing.FamilyID, "recipe", "deleted", existing.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *RecipeHandler) ownedRecipe(w http.ResponseWriter, r *http.Request) (*model.Recipe, bool) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return nil, false
	}

	recipe, err := h.recipeStore.GetByID(id)
	if err != nil {
		h.logger.Error("get recipe", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get recipe")
		return nil, false
	}
	if recipe == nil || recipe.FamilyID != auth.FamilyID(r.Context()) {
		writeError(w, http.StatusNotFound, "recipe not found")
		return nil, false
	}

	return recipe, true
}
