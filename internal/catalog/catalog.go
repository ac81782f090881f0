// Package catalog holds the fest's static event list and the point values
// attached to each placement.
package catalog

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/ubuntu-fest/leaderboard-api/internal/domain"
)

// All returns a copy of every catalog event in display order.
func All() []domain.Event {
	out := make([]domain.Event, len(events))
	copy(out, events)
	return out
}

func ByID(id string) (domain.Event, bool) {
	for _, e := range events {
		if e.ID == id {
			return e, true
		}
	}
	return domain.Event{}, false
}

// Categories lists distinct categories in first-seen order.
func Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range events {
		if !seen[e.Category] {
			seen[e.Category] = true
			out = append(out, e.Category)
		}
	}
	return out
}

// Filter narrows the catalog. Zero values match everything.
type Filter struct {
	Type     domain.EventType
	Day      int
	Category string
	Search   string
}

func (f Filter) matches(e domain.Event, fold cases.Caser, needle string) bool {
	if f.Type != "" && e.Type != f.Type {
		return false
	}
	if f.Day != 0 && e.Day != f.Day {
		return false
	}
	if f.Category != "" && !strings.EqualFold(e.Category, f.Category) {
		return false
	}
	if needle == "" {
		return true
	}
	return strings.Contains(fold.String(e.ThemedName), needle) ||
		strings.Contains(fold.String(e.DisplayName), needle) ||
		strings.Contains(fold.String(e.Category), needle)
}

func Find(f Filter) []domain.Event {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(f.Search))

	out := make([]domain.Event, 0, len(events))
	for _, e := range events {
		if f.matches(e, fold, needle) {
			out = append(out, e)
		}
	}
	return out
}

type Summary struct {
	Total  int                      `json:"total"`
	ByType map[domain.EventType]int `json:"by_type"`
	ByDay  map[int]int              `json:"by_day"`
}

func Summarize() Summary {
	s := Summary{
		Total:  len(events),
		ByType: make(map[domain.EventType]int, len(domain.EventTypes)),
		ByDay:  make(map[int]int, 2),
	}
	for _, t := range domain.EventTypes {
		s.ByType[t] = 0
	}
	for _, e := range events {
		s.ByType[e.Type]++
		s.ByDay[e.Day]++
	}
	return s
}
