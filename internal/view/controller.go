package view

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/skoefer/famhub/internal/agenda"
	"github.com/skoefer/famhub/internal/model"
)

// Source is the storage collaborator: the three family-scoped read
// collections the calendar is built from.
type Source interface {
	ListEvents(ctx context.Context, familyID int64) ([]model.CalendarEvent, error)
	ListTodos(ctx context.Context, familyID int64) ([]model.Todo, error)
	ListBirthdayContacts(ctx context.Context, familyID int64) ([]model.Contact, error)
}

// Screen is the controller's UI state.
type Screen int

const (
	ScreenListing Screen = iota
	ScreenGrid
	ScreenDetail
	ScreenForm
)

func (s Screen) String() string {
	switch s {
	case ScreenListing:
		return "listing"
	case ScreenGrid:
		return "grid"
	case ScreenDetail:
		return "detail"
	case ScreenForm:
		return "form"
	}
	return "unknown"
}

// EventForm describes an open event form: editing an existing event, or
// creating a new one with an optional prefilled date.
type EventForm struct {
	Edit    *model.CalendarEvent
	NewDate *time.Time
}

// Status reports snapshot freshness. After a failed refresh the previous
// snapshot is kept and marked stale rather than cleared.
type Status struct {
	Loaded      bool      `json:"loaded"`
	Stale       bool      `json:"stale"`
	LastRefresh time.Time `json:"last_refresh"`
}

// Controller holds the raw snapshots and view state for one household and
// rebuilds agenda, grid and detail projections from them on demand. The
// builds themselves are pure; the controller owns the only mutable state.
type Controller struct {
	source Source
	logger *slog.Logger
	now    func() time.Time

	mu         sync.Mutex
	familyID   int64
	generation uint64
	events     []model.CalendarEvent
	todos      []model.Todo
	contacts   []model.Contact
	status     Status

	mode      agenda.ViewMode
	month     time.Time
	weekStart agenda.WeekStart
	screen    Screen
	prev      Screen
	selected  *agenda.Item
	form      *EventForm
}

// NewController creates a controller for the given family. The month starts
// at the current month and the mode at upcoming.
func NewController(source Source, familyID int64, weekStart agenda.WeekStart, logger *slog.Logger) *Controller {
	c := &Controller{
		source:    source,
		logger:    logger,
		now:       time.Now,
		familyID:  familyID,
		mode:      agenda.ModeUpcoming,
		weekStart: weekStart,
		screen:    ScreenListing,
	}
	c.month = monthOf(c.now())
	return c
}

func monthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.Local)
}

// SetFamily switches the controller to a different household. The snapshot
// is cleared and the generation bumped so that any in-flight fetch for the
// old family commits nothing.
func (c *Controller) SetFamily(familyID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if familyID == c.familyID {
		return
	}
	c.familyID = familyID
	c.generation++
	c.events, c.todos, c.contacts = nil, nil, nil
	c.status = Status{}
	c.selected = nil
	c.form = nil
}

// Refresh fetches the three collections concurrently and replaces the
// snapshot all-or-nothing: if any fetch fails, the error is logged and the
// prior snapshot is retained, marked stale. A fetch that finishes after the
// family changed underneath it is discarded.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	gen := c.generation
	familyID := c.familyID
	c.mu.Unlock()

	var (
		events   []model.CalendarEvent
		todos    []model.Todo
		contacts []model.Contact
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		events, err = c.source.ListEvents(ctx, familyID)
		return err
	})
	g.Go(func() error {
		var err error
		todos, err = c.source.ListTodos(ctx, familyID)
		return err
	})
	g.Go(func() error {
		var err error
		contacts, err = c.source.ListBirthdayContacts(ctx, familyID)
		return err
	})
	err := g.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		c.logger.Debug("discarding superseded fetch", "family_id", familyID)
		return nil
	}

	if err != nil {
		c.logger.Error("calendar refresh failed", "family_id", familyID, "error", err)
		c.status.Stale = c.status.Loaded
		return err
	}

	c.events, c.todos, c.contacts = events, todos, contacts
	c.status = Status{Loaded: true, Stale: false, LastRefresh: c.now()}
	return nil
}

// SetViewMode switches the listing filter, or to the grid for ModeCalendar.
// Changing mode never refetches; the next build reuses the snapshot.
func (c *Controller) SetViewMode(mode agenda.ViewMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = mode
	if mode == agenda.ModeCalendar {
		c.screen = ScreenGrid
	} else {
		c.screen = ScreenListing
	}
}

// NavigateMonth moves the grid's reference month by delta months.
func (c *Controller) NavigateMonth(delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.month = c.month.AddDate(0, delta, 0)
}

// SetMonth jumps the grid to the month containing t.
func (c *Controller) SetMonth(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.month = monthOf(t)
}

// SelectItem opens the detail view for todos and birthdays; selecting an
// event opens the event form in edit mode instead.
func (c *Controller) SelectItem(item agenda.Item) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if item.Kind == agenda.KindEvent {
		c.openFormLocked(&EventForm{Edit: item.Event})
		return
	}
	if c.screen != ScreenDetail {
		c.prev = c.screen
	}
	c.selected = &item
	c.screen = ScreenDetail
}

// OpenEventForm opens the form for a new event, optionally prefilled with a
// date (e.g. the tapped grid cell).
func (c *Controller) OpenEventForm(date *time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.openFormLocked(&EventForm{NewDate: date})
}

func (c *Controller) openFormLocked(form *EventForm) {
	if c.screen != ScreenForm {
		c.prev = c.screen
	}
	c.form = form
	c.selected = nil
	c.screen = ScreenForm
}

// CloseForm returns to the screen the form (or detail view) was opened
// from. When the form was submitted the persisted change lives in storage,
// so the snapshot is refreshed before rebuilding.
func (c *Controller) CloseForm(ctx context.Context, submitted bool) {
	c.mu.Lock()
	c.form = nil
	c.selected = nil
	c.screen = c.prev
	c.mu.Unlock()

	if submitted {
		if err := c.Refresh(ctx); err != nil {
			// Already logged; the stale snapshot keeps rendering.
			return
		}
	}
}

// Agenda rebuilds the flat agenda from the current snapshot.
func (c *Controller) Agenda() []agenda.Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return agenda.BuildAgenda(c.events, c.todos, c.contacts, c.mode, c.now())
}

// Grid rebuilds the 42-cell month grid from the current snapshot.
func (c *Controller) Grid() []agenda.Day {
	c.mu.Lock()
	defer c.mu.Unlock()
	return agenda.BuildMonthGrid(c.month, c.weekStart, c.events, c.todos, c.contacts)
}

// Detail resolves display facts for the selected item, or nil when nothing
// is selected.
func (c *Controller) Detail() *agenda.DetailFacts {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == nil {
		return nil
	}
	facts := agenda.ResolveDetail(*c.selected, c.now())
	return &facts
}

// FindItem locates an item of the given kind and id in the current
// projection so a client can select by reference.
func (c *Controller) FindItem(kind agenda.Kind, id int64) (agenda.Item, bool) {
	c.mu.Lock()
	items := agenda.BuildAgenda(c.events, c.todos, c.contacts, agenda.ModeAll, c.now())
	days := agenda.BuildMonthGrid(c.month, c.weekStart, c.events, c.todos, c.contacts)
	c.mu.Unlock()

	// The displayed grid first: its birthday occurrences carry the cell
	// year, which may differ from the current one.
	for _, day := range days {
		for _, item := range day.Items {
			if item.Kind == kind && item.ID == id {
				return item, true
			}
		}
	}
	for _, item := range items {
		if item.Kind == kind && item.ID == id {
			return item, true
		}
	}
	return agenda.Item{}, false
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *Controller) Screen() Screen {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.screen
}

func (c *Controller) Mode() agenda.ViewMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *Controller) Month() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.month
}

func (c *Controller) WeekStart() agenda.WeekStart {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.weekStart
}

func (c *Controller) Form() *EventForm {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}
