package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/skoefer/famhub/internal/auth"
	"github.com/skoefer/famhub/internal/model"
	"github.com/skoefer/famhub/internal/store"
)

const minJoinCodeLength = 6

type AuthHandler struct {
	familyStore  *store.FamilyStore
	profileStore *store.ProfileStore
	sessionStore *store.SessionStore
	logger       *slog.Logger
}

func NewAuthHandler(fs *store.FamilyStore, ps *store.ProfileStore, ss *store.SessionStore, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		familyStore:  fs,
		profileStore: ps,
		sessionStore: ss,
		logger:       logger,
	}
}

type registerRequest struct {
	FamilyName  string `json:"family_name"`
	JoinCode    string `json:"join_code"`
	ProfileName string `json:"profile_name"`
}

type loginRequest struct {
	FamilyName  string `json:"family_name"`
	JoinCode    string `json:"join_code"`
	ProfileName string `json:"profile_name"`
}

type sessionResponse struct {
	Token     string         `json:"token"`
	ExpiresAt string         `json:"expires_at"`
	Family    *model.Family  `json:"family"`
	Profile   *model.Profile `json:"profile"`
}

// Register creates a family with a bcrypt-hashed join code, the first
// profile, and an initial session.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.FamilyName = strings.TrimSpace(req.FamilyName)
	req.ProfileName = strings.TrimSpace(req.ProfileName)

	if req.FamilyName == "" {
		writeError(w, http.StatusBadRequest, "family_name is required")
		return
	}
	if req.ProfileName == "" {
		writeError(w, http.StatusBadRequest, "profile_name is required")
		return
	}
	if len(req.JoinCode) < minJoinCodeLength {
		writeError(w, http.StatusBadRequest, "join_code must be at least 6 characters")
		return
	}

	existing, err := h.familyStore.GetByName(req.FamilyName)
	if err != nil {
		h.logger.Error("register lookup", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to register")
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "a family with that name already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.JoinCode), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to register")
		return
	}

	family, err := h.familyStore.Create(req.FamilyName, string(hash))
	if err != nil {
		h.logger.Error("register create family", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to register")
		return
	}

	profile, err := h.profileStore.Create(family.ID, req.ProfileName)
	if err != nil {
		h.logger.Error("register create profile", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to register")
		return
	}

	session, err := h.sessionStore.Create(profile.ID, family.ID)
	if err != nil {
		h.logger.Error("register create session", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to register")
		return
	}

	h.logger.Info("family registered", "family_id", family.ID)
	writeJSON(w, http.StatusCreated, sessionResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt.Format(time.RFC3339),
		Family:    family,
		Profile:   profile,
	})
}

// Login verifies the family join code and opens a session for the named
// profile, creating the profile on first use.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.FamilyName = strings.TrimSpace(req.FamilyName)
	req.ProfileName = strings.TrimSpace(req.ProfileName)

	if req.FamilyName == "" || req.ProfileName == "" || req.JoinCode == "" {
		writeError(w, http.StatusBadRequest, "family_name, join_code and profile_name are required")
		return
	}

	family, err := h.familyStore.GetByName(req.FamilyName)
	if err != nil {
		h.logger.Error("login lookup", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to log in")
		return
	}
	// Same error for unknown family and wrong code, to avoid enumeration
	if family == nil {
		writeError(w, http.StatusUnauthorized, "incorrect family name or join code")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(family.JoinCodeHash), []byte(req.JoinCode)); err != nil {
		writeError(w, http.StatusUnauthorized, "incorrect family name or join code")
		return
	}

	profile, err := h.profileStore.GetOrCreate(family.ID, req.ProfileName)
	if err != nil {
		h.logger.Error("login profile", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to log in")
		return
	}

	session, err := h.sessionStore.Create(profile.ID, family.ID)
	if err != nil {
		h.logger.Error("login session", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to log in")
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt.Format(time.RFC3339),
		Family:    family,
		Profile:   profile,
	})
}

// Profiles lists the profiles of the caller's family.
func (h *AuthHandler) Profiles(w http.ResponseWriter, r *http.Request) {
	familyID := auth.FamilyID(r.Context())

	profiles, err := h.profileStore.ListByFamily(familyID)
	if err != nil {
		h.logger.Error("list profiles", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list profiles")
		return
	}
	if profiles == nil {
		profiles = []model.Profile{}
	}

	writeJSON(w, http.StatusOK, profiles)
}

// Logout deletes the session named by the bearer token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if token == "" {
		writeError(w, http.StatusBadRequest, "missing token")
		return
	}

	if err := h.sessionStore.Delete(token); err != nil {
		h.logger.Error("logout", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to log out")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
