package agenda

import "time"

// DetailFacts carries the per-type derived facts for one selected item.
// Everything is computed from the item and the asOf instant; nothing is
// fetched or cached.
type DetailFacts struct {
	Kind        Kind      `json:"kind"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	HasTime     bool      `json:"has_time"`
	Description string    `json:"description,omitempty"`

	// Birthday facts.
	Age       int    `json:"age,omitempty"`
	Birthdate string `json:"birthdate,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`

	// Todo facts.
	Done       bool   `json:"done,omitempty"`
	Overdue    bool   `json:"overdue,omitempty"`
	AssignedTo *int64 `json:"assigned_to,omitempty"`
	DoneBy     *int64 `json:"done_by,omitempty"`

	// Event facts.
	Time string `json:"time,omitempty"`
}

// ResolveDetail computes display facts for a selected item as of the given
// instant. The age of a birthday comes from the item's resolved occurrence
// year, so a birthday selected on a past or future grid shows the age
// turned in that year.
func ResolveDetail(item Item, asOf time.Time) DetailFacts {
	facts := DetailFacts{
		Kind:        item.Kind,
		Title:       item.Title,
		Date:        item.Date,
		HasTime:     item.HasTime,
		Description: item.Description,
	}

	switch item.Kind {
	case KindBirthday:
		c := item.Contact
		if c.Birthdate != nil {
			facts.Birthdate = *c.Birthdate
			if birth, ok := parseDate(*c.Birthdate); ok {
				facts.Age = Age(birth, item.Date.Year())
			}
		}
		facts.Phone = c.Phone
		facts.Email = c.Email

	case KindTodo:
		t := item.Todo
		facts.Done = t.IsDone
		facts.Overdue = item.Date.Before(asOf) && !t.IsDone
		facts.AssignedTo = t.AssignedTo
		facts.DoneBy = t.DoneBy

	case KindEvent:
		if item.Event.EventTime != nil {
			facts.Time = *item.Event.EventTime
		}
	}

	return facts
}
