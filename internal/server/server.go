package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/skoefer/famhub/internal/agenda"
	"github.com/skoefer/famhub/internal/handler"
	"github.com/skoefer/famhub/internal/middleware"
	"github.com/skoefer/famhub/internal/store"
	ws "github.com/skoefer/famhub/internal/websocket"
)

const loginRateLimit = 10

type Server struct {
	db           *sql.DB
	hub          *ws.Hub
	authH        *handler.AuthHandler
	calendarH    *handler.CalendarHandler
	eventH       *handler.CalendarEventHandler
	todoH        *handler.TodoHandler
	contactH     *handler.ContactHandler
	noteH        *handler.NoteHandler
	shoppingH    *handler.ShoppingHandler
	recipeH      *handler.RecipeHandler
	sessionStore *store.SessionStore
	rateLimiter  *middleware.RateLimiter
	logger       *slog.Logger
}

func New(db *sql.DB, weekStart agenda.WeekStart, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	familyStore := store.NewFamilyStore(db)
	profileStore := store.NewProfileStore(db)
	sessionStore := store.NewSessionStore(db)
	eventStore := store.NewEventStore(db)
	todoStore := store.NewTodoStore(db)
	contactStore := store.NewContactStore(db)
	noteStore := store.NewNoteStore(db)
	shoppingStore := store.NewShoppingStore(db)
	recipeStore := store.NewRecipeStore(db)

	source := store.NewCalendarSource(eventStore, todoStore, contactStore)
	calendarH := handler.NewCalendarHandler(source, weekStart, logger.With("component", "calendar"))

	return &Server{
		db:           db,
		hub:          hub,
		authH:        handler.NewAuthHandler(familyStore, profileStore, sessionStore, logger.With("component", "auth")),
		calendarH:    calendarH,
		eventH:       handler.NewCalendarEventHandler(eventStore, hub, calendarH, logger.With("component", "event")),
		todoH:        handler.NewTodoHandler(todoStore, hub, calendarH, logger.With("component", "todo")),
		contactH:     handler.NewContactHandler(contactStore, hub, calendarH, logger.With("component", "contact")),
		noteH:        handler.NewNoteHandler(noteStore, hub, logger.With("component", "note")),
		shoppingH:    handler.NewShoppingHandler(shoppingStore, hub, logger.With("component", "shopping")),
		recipeH:      handler.NewRecipeHandler(recipeStore, hub, logger.With("component", "recipe")),
		sessionStore: sessionStore,
		rateLimiter:  middleware.NewRateLimiter(),
		logger:       logger,
	}
}

// SessionStore returns the session store for cleanup tasks.
func (s *Server) SessionStore() *store.SessionStore {
	return s.sessionStore
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	requestLogger := middleware.RequestLogger(s.logger.With("component", "http"))
	rateLimited := middleware.RateLimit(s.rateLimiter, loginRateLimit, time.Minute)

	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.Handle("POST /api/register", requestLogger(rateLimited(http.HandlerFunc(s.authH.Register))))
	outerMux.Handle("POST /api/login", requestLogger(rateLimited(http.HandlerFunc(s.authH.Login))))
	outerMux.Handle("GET /health", requestLogger(http.HandlerFunc(s.healthHandler)))

	// Protected routes. The request logger sits inside RequireAuth so the
	// log line carries the family.
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.sessionStore)
	outerMux.Handle("/", authMiddleware(requestLogger(protectedMux)))

	return outerMux
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/logout", s.authH.Logout)
	mux.HandleFunc("GET /api/profiles", s.authH.Profiles)

	// Calendar view routes
	mux.HandleFunc("GET /api/calendar", s.calendarH.State)
	mux.HandleFunc("POST /api/calendar/refresh", s.calendarH.Refresh)
	mux.HandleFunc("POST /api/calendar/mode", s.calendarH.SetMode)
	mux.HandleFunc("POST /api/calendar/navigate", s.calendarH.Navigate)
	mux.HandleFunc("POST /api/calendar/select", s.calendarH.Select)
	mux.HandleFunc("POST /api/calendar/form", s.calendarH.OpenForm)
	mux.HandleFunc("POST /api/calendar/close", s.calendarH.Close)

	// Calendar event routes
	mux.HandleFunc("POST /api/events", s.eventH.Create)
	mux.HandleFunc("GET /api/events", s.eventH.List)
	mux.HandleFunc("GET /api/events/{id}", s.eventH.Get)
	mux.HandleFunc("PUT /api/events/{id}", s.eventH.Update)
	mux.HandleFunc("DELETE /api/events/{id}", s.eventH.Delete)

	// Todo routes
	mux.HandleFunc("POST /api/todos", s.todoH.Create)
	mux.HandleFunc("GET /api/todos", s.todoH.List)
	mux.HandleFunc("GET /api/todos/{id}", s.todoH.Get)
	mux.HandleFunc("PUT /api/todos/{id}", s.todoH.Update)
	mux.HandleFunc("DELETE /api/todos/{id}", s.todoH.Delete)
	mux.HandleFunc("POST /api/todos/{id}/done", s.todoH.SetDone)

	// Contact routes
	mux.HandleFunc("POST /api/contacts", s.contactH.Create)
	mux.HandleFunc("GET /api/contacts", s.contactH.List)
	mux.HandleFunc("GET /api/contacts/{id}", s.contactH.Get)
	mux.HandleFunc("PUT /api/contacts/{id}", s.contactH.Update)
	mux.HandleFunc("DELETE /api/contacts/{id}", s.contactH.Delete)

	// Note routes
	mux.HandleFunc("POST /api/notes", s.noteH.Create)
	mux.HandleFunc("GET /api/notes", s.noteH.List)
	mux.HandleFunc("PUT /api/notes/{id}", s.noteH.Update)
	mux.HandleFunc("DELETE /api/notes/{id}", s.noteH.Delete)

	// Shopping list routes
	mux.HandleFunc("POST /api/shopping", s.shoppingH.Create)
	mux.HandleFunc("GET /api/shopping", s.shoppingH.List)
	mux.HandleFunc("POST /api/shopping/{id}/check", s.shoppingH.SetChecked)
	mux.HandleFunc("POST /api/shopping/clear-checked", s.shoppingH.ClearChecked)
	mux.HandleFunc("DELETE /api/shopping/{id}", s.shoppingH.Delete)

	// Recipe routes
	mux.HandleFunc("POST /api/recipes", s.recipeH.Create)
	mux.HandleFunc("GET /api/recipes", s.recipeH.List)
	mux.HandleFunc("GET /api/recipes/{id}", s.recipeH.Get)
	mux.HandleFunc("PUT /api/recipes/{id}", s.recipeH.Update)
	mux.HandleFunc("DELETE /api/recipes/{id}", s.recipeH.Delete)

	// WebSocket
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.logger.With("component", "websocket")))
}
