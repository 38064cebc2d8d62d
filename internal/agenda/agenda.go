package agenda

import (
	"sort"

	"time"

	"github.com/skoefer/famhub/internal/model"
)

// BuildAgenda merges events, due todos and birthday occurrences into one
// chronological list. Birthdays resolve against referenceNow's year. Mode
// ModeUpcoming keeps only items on or after referenceNow's day; ModeAll
// (and ModeCalendar, which normally goes through BuildMonthGrid instead)
// keeps everything.
//
// The result is a pure projection: identical inputs produce an identical
// sequence. Items sort by calendar day, then by source kind within a day
// (events, todos, birthdays), then by time of day within a kind. The
// within-day kind order is an observable contract relied on by day previews.
func BuildAgenda(events []model.CalendarEvent, todos []model.Todo, contacts []model.Contact, mode ViewMode, referenceNow time.Time) []Item {
	items := make([]Item, 0, len(events)+len(todos)+len(contacts))

	for i := range events {
		if item, ok := FromEvent(&events[i]); ok {
			items = append(items, item)
		}
	}
	for i := range todos {
		if item, ok := FromTodo(&todos[i]); ok {
			items = append(items, item)
		}
	}
	targetYear := referenceNow.Year()
	for i := range contacts {
		if item, ok := FromContact(&contacts[i], targetYear); ok {
			items = append(items, item)
		}
	}

	if mode == ModeUpcoming {
		today := startOfDay(referenceNow)
		kept := items[:0]
		for _, item := range items {
			if !item.Date.Before(today) {
				kept = append(kept, item)
			}
		}
		items = kept
	}

	sortItems(items)
	return items
}

// sortItems orders items by day, kind, then instant. The sort is stable,
// so records of the same kind at the same instant keep input order.
func sortItems(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		ad, bd := startOfDay(a.Date), startOfDay(b.Date)
		if !ad.Equal(bd) {
			return ad.Before(bd)
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.Date.Before(b.Date)
	})
}

// DayGroup is a run of consecutive same-day items from a sorted agenda,
// with a display key. Grouping is a presentation aid; it never reorders
// items within a day.
type DayGroup struct {
	Key   string
	Date  time.Time
	Items []Item
}

// DayKey formats the grouping key for a date. The rendering layer may
// localize instead; the key only has to be stable per calendar day.
func DayKey(date time.Time) string {
	return date.Format("Mon, 02 Jan 2006")
}

// GroupByDay splits a sorted agenda into per-day groups.
func GroupByDay(items []Item) []DayGroup {
	var groups []DayGroup
	for _, item := range items {
		day := startOfDay(item.Date)
		if n := len(groups); n > 0 && groups[n-1].Date.Equal(day) {
			groups[n-1].Items = append(groups[n-1].Items, item)
			continue
		}
		groups = append(groups, DayGroup{Key: DayKey(day), Date: day, Items: []Item{item}})
	}
	return groups
}
