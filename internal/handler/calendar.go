package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/skoefer/famhub/internal/agenda"
	"github.com/skoefer/famhub/internal/auth"
	"github.com/skoefer/famhub/internal/view"
)

// CalendarHandler exposes the shared household calendar: the agenda listing,
// the month grid, the detail view and the event form state. One controller
// is kept per family so every device of a household sees the same screen,
// matching the wall-display model.
type CalendarHandler struct {
	source    view.Source
	weekStart agenda.WeekStart
	logger    *slog.Logger

	mu          sync.Mutex
	controllers map[int64]*view.Controller
}

func NewCalendarHandler(source view.Source, weekStart agenda.WeekStart, logger *slog.Logger) *CalendarHandler {
	return &CalendarHandler{
		source:      source,
		weekStart:   weekStart,
		logger:      logger,
		controllers: make(map[int64]*view.Controller),
	}
}

func (h *CalendarHandler) controller(familyID int64) *view.Controller {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.controllers[familyID]
	if !ok {
		c = view.NewController(h.source, familyID, h.weekStart, h.logger)
		h.controllers[familyID] = c
	}
	return c
}

// Invalidate refreshes a family's snapshot after a record changed. Mutating
// handlers call this so the next state read is current even before clients
// react to the websocket notification.
func (h *CalendarHandler) Invalidate(ctx context.Context, familyID int64) {
	h.mu.Lock()
	c, ok := h.controllers[familyID]
	h.mu.Unlock()
	if !ok {
		return
	}
	if err := c.Refresh(ctx); err != nil {
		// Logged by the controller; the stale snapshot keeps serving.
		return
	}
}

type itemJSON struct {
	Kind        agenda.Kind `json:"kind"`
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Date        time.Time   `json:"date"`
	HasTime     bool        `json:"has_time"`
	Description string      `json:"description,omitempty"`
}

func toItemJSON(item agenda.Item) itemJSON {
	return itemJSON{
		Kind:        item.Kind,
		ID:          item.ID,
		Title:       item.Title,
		Date:        item.Date,
		HasTime:     item.HasTime,
		Description: item.Description,
	}
}

type dayGroupJSON struct {
	Key   string     `json:"key"`
	Date  string     `json:"date"`
	Items []itemJSON `json:"items"`
}

type gridCellJSON struct {
	Date    string     `json:"date"`
	InMonth bool       `json:"in_month"`
	Items   []itemJSON `json:"items"`
	More    int        `json:"more"`
}

type formJSON struct {
	Editing bool   `json:"editing"`
	EventID int64  `json:"event_id,omitempty"`
	Date    string `json:"date,omitempty"`
}

type calendarStateJSON struct {
	Screen    string              `json:"screen"`
	Mode      agenda.ViewMode     `json:"mode"`
	Month     string              `json:"month"`
	WeekStart string              `json:"week_start"`
	Status    view.Status         `json:"status"`
	Agenda    []dayGroupJSON      `json:"agenda,omitempty"`
	Grid      []gridCellJSON      `json:"grid,omitempty"`
	Detail    *agenda.DetailFacts `json:"detail,omitempty"`
	Form      *formJSON           `json:"form,omitempty"`
}

// cellPreviewSize caps items per rendered grid cell; the rest becomes a
// "+K more" count.
const cellPreviewSize = 3

// State returns the full calendar state for the caller's family, refreshing
// the snapshot first if it has never loaded.
func (h *CalendarHandler) State(w http.ResponseWriter, r *http.Request) {
	c := h.controller(auth.FamilyID(r.Context()))

	if !c.Status().Loaded {
		c.Refresh(r.Context())
	}

	writeJSON(w, http.StatusOK, h.stateJSON(c))
}

// Refresh forces a refetch of the family snapshot.
func (h *CalendarHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	c := h.controller(auth.FamilyID(r.Context()))
	c.Refresh(r.Context())
	writeJSON(w, http.StatusOK, h.stateJSON(c))
}

func (h *CalendarHandler) stateJSON(c *view.Controller) calendarStateJSON {
	state := calendarStateJSON{
		Screen:    c.Screen().String(),
		Mode:      c.Mode(),
		Month:     c.Month().Format("2006-01"),
		WeekStart: c.WeekStart().String(),
		Status:    c.Status(),
	}

	switch c.Screen() {
	case view.ScreenGrid:
		for _, day := range c.Grid() {
			preview, more := day.Preview(cellPreviewSize)
			cell := gridCellJSON{
				Date:    day.Date.Format("2006-01-02"),
				InMonth: day.InMonth,
				Items:   make([]itemJSON, 0, len(preview)),
				More:    more,
			}
			for _, item := range preview {
				cell.Items = append(cell.Items, toItemJSON(item))
			}
			state.Grid = append(state.Grid, cell)
		}
	case view.ScreenDetail:
		state.Detail = c.Detail()
	case view.ScreenForm:
		if form := c.Form(); form != nil {
			f := &formJSON{Editing: form.Edit != nil}
			if form.Edit != nil {
				f.EventID = form.Edit.ID
				f.Date = form.Edit.EventDate
			} else if form.NewDate != nil {
				f.Date = form.NewDate.Format("2006-01-02")
			}
			state.Form = f
		}
	default:
		for _, group := range agenda.GroupByDay(c.Agenda()) {
			g := dayGroupJSON{
				Key:   group.Key,
				Date:  group.Date.Format("2006-01-02"),
				Items: make([]itemJSON, 0, len(group.Items)),
			}
			for _, item := range group.Items {
				g.Items = append(g.Items, toItemJSON(item))
			}
			state.Agenda = append(state.Agenda, g)
		}
	}

	return state
}

// SetMode switches between the upcoming, all and calendar views.
func (h *CalendarHandler) SetMode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode string `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	mode := agenda.ViewMode(req.Mode)
	switch mode {
	case agenda.ModeUpcoming, agenda.ModeAll, agenda.ModeCalendar:
	default:
		writeError(w, http.StatusBadRequest, "mode must be upcoming, all or calendar")
		return
	}

	c := h.controller(auth.FamilyID(r.Context()))
	c.SetViewMode(mode)
	writeJSON(w, http.StatusOK, h.stateJSON(c))
}

// Navigate moves the grid month by a delta or jumps to a YYYY-MM month.
func (h *CalendarHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Delta int    `json:"delta"`
		Month string `json:"month"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	c := h.controller(auth.FamilyID(r.Context()))

	if req.Month != "" {
		t, err := time.ParseInLocation("2006-01", req.Month, time.Local)
		if err != nil {
			writeError(w, http.StatusBadRequest, "month must be YYYY-MM format")
			return
		}
		c.SetMonth(t)
	} else {
		c.NavigateMonth(req.Delta)
	}

	writeJSON(w, http.StatusOK, h.stateJSON(c))
}

// Select opens the detail view (todos, birthdays) or the edit form (events)
// for the item named by kind and id.
func (h *CalendarHandler) Select(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Kind string `json:"kind"`
		ID   int64  `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	kind, ok := agenda.ParseKind(req.Kind)
	if !ok {
		writeError(w, http.StatusBadRequest, "kind must be event, todo or birthday")
		return
	}

	c := h.controller(auth.FamilyID(r.Context()))
	item, found := c.FindItem(kind, req.ID)
	if !found {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}

	c.SelectItem(item)
	writeJSON(w, http.StatusOK, h.stateJSON(c))
}

// OpenForm opens a blank event form, optionally prefilled with a date.
func (h *CalendarHandler) OpenForm(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	var date *time.Time
	if req.Date != "" {
		t, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD format")
			return
		}
		date = &t
	}

	c := h.controller(auth.FamilyID(r.Context()))
	c.OpenEventForm(date)
	writeJSON(w, http.StatusOK, h.stateJSON(c))
}

// Close dismisses the form or detail view and returns to the screen it was
// opened from. A submitted form triggers a snapshot refresh.
func (h *CalendarHandler) Close(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Submitted bool `json:"submitted"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	c := h.controller(auth.FamilyID(r.Context()))
	c.CloseForm(r.Context(), req.Submitted)
	writeJSON(w, http.StatusOK, h.stateJSON(c))
}
