package agenda

import (
	"time"

	"github.com/skoefer/famhub/internal/model"
)

// WeekStart is the first weekday of a grid row. Both conventions are in
// household use, so the builder takes it as an explicit parameter.
type WeekStart int

const (
	WeekStartSunday WeekStart = iota
	WeekStartMonday
)

// ParseWeekStart maps a config string to a WeekStart, defaulting to Monday.
func ParseWeekStart(s string) WeekStart {
	if s == "sunday" {
		return WeekStartSunday
	}
	return WeekStartMonday
}

func (w WeekStart) String() string {
	if w == WeekStartSunday {
		return "sunday"
	}
	return "monday"
}

// GridSize is the fixed cell count of a month grid: six whole weeks.
const GridSize = 42

// Day is one grid cell: a calendar date, whether it belongs to the target
// month, and its items in agenda order.
type Day struct {
	Date    time.Time
	InMonth bool
	Items   []Item
}

// Preview returns the first n items and the count left over, for "+K more"
// cell rendering. The full list stays on the Day; capping is the renderer's
// choice, not the builder's.
func (d Day) Preview(n int) ([]Item, int) {
	if n >= len(d.Items) {
		return d.Items, 0
	}
	return d.Items[:n], len(d.Items) - n
}

// BuildMonthGrid lays out the month containing reference as 42 consecutive
// days: the target month padded with adjacent-month days to whole weeks.
// Events and todos bucket by exact calendar date; a contact's birthday
// lands on its month/day match in every displayed year, resolved against
// the cell's own year. Per-day item order matches BuildAgenda.
func BuildMonthGrid(reference time.Time, weekStart WeekStart, events []model.CalendarEvent, todos []model.Todo, contacts []model.Contact) []Day {
	first := time.Date(reference.Year(), reference.Month(), 1, 0, 0, 0, 0, time.Local)
	start := first.AddDate(0, 0, -weekdayOffset(first.Weekday(), weekStart))

	// Dated items bucket by day key; birthdays re-resolve per cell year.
	buckets := make(map[string][]Item)
	for i := range events {
		if item, ok := FromEvent(&events[i]); ok {
			key := item.Date.Format(dateLayout)
			buckets[key] = append(buckets[key], item)
		}
	}
	for i := range todos {
		if item, ok := FromTodo(&todos[i]); ok {
			key := item.Date.Format(dateLayout)
			buckets[key] = append(buckets[key], item)
		}
	}

	days := make([]Day, 0, GridSize)
	for i := 0; i < GridSize; i++ {
		date := start.AddDate(0, 0, i)

		items := append([]Item(nil), buckets[date.Format(dateLayout)]...)
		for j := range contacts {
			item, ok := FromContact(&contacts[j], date.Year())
			if ok && sameDay(item.Date, date) {
				items = append(items, item)
			}
		}
		sortItems(items)

		days = append(days, Day{
			Date:    date,
			InMonth: date.Month() == reference.Month() && date.Year() == reference.Year(),
			Items:   items,
		})
	}
	return days
}

// weekdayOffset counts days back from wd to the start of its week.
func weekdayOffset(wd time.Weekday, weekStart WeekStart) int {
	offset := int(wd)
	if weekStart == WeekStartMonday {
		offset = int(wd) - int(time.Monday)
		if offset < 0 {
			offset += 7
		}
	}
	return offset
}
