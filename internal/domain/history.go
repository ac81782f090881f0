package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

type HistoryType string

const (
	HistoryAll       HistoryType = "all"
	HistoryAddition  HistoryType = "addition"
	HistoryDeduction HistoryType = "deduction"
)

type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
)

type HistoryFilter struct {
	Type   HistoryType
	Search string
	Order  SortOrder
}

func ParseHistoryType(s string) (HistoryType, error) {
	switch t := HistoryType(s); t {
	case "":
		return HistoryAll, nil
	case HistoryAll, HistoryAddition, HistoryDeduction:
		return t, nil
	default:
		return "", fmt.Errorf("invalid history type %q", s)
	}
}

func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(s); o {
	case "":
		return SortNewest, nil
	case SortNewest, SortOldest:
		return o, nil
	default:
		return "", fmt.Errorf("invalid sort order %q", s)
	}
}

type HistoryEntry struct {
	Participation
	CollegeName string `json:"college_name"`
	IsDeduction bool   `json:"is_deduction"`
}

type HistoryStats struct {
	Total          int `json:"total"`
	Additions      int `json:"additions"`
	Deductions     int `json:"deductions"`
	PointsAdded    int `json:"points_added"`
	PointsDeducted int `json:"points_deducted"`
}

// BuildHistory joins participations with college names and applies filter.
// Rows whose college is unknown keep an empty name rather than being dropped.
func BuildHistory(colleges []College, participations []Participation, filter HistoryFilter) []HistoryEntry {
	names := make(map[uuid.UUID]string, len(colleges))
	for _, c := range colleges {
		names[c.ID] = c.Name
	}

	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(filter.Search))

	entries := make([]HistoryEntry, 0, len(participations))
	for _, p := range participations {
		entry := HistoryEntry{
			Participation: p,
			CollegeName:   names[p.CollegeID],
			IsDeduction:   p.IsDeduction(),
		}

		if filter.Type == HistoryAddition && entry.IsDeduction {
			continue
		}
		if filter.Type == HistoryDeduction && !entry.IsDeduction {
			continue
		}

		if needle != "" &&
			!strings.Contains(fold.String(entry.CollegeName), needle) &&
			!strings.Contains(fold.String(entry.EventName), needle) &&
			!strings.Contains(fold.String(string(entry.Position)), needle) {
			continue
		}

		entries = append(entries, entry)
	}

	order := filter.Order
	if order == "" {
		order = SortNewest
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if order == SortOldest {
			return entries[i].Timestamp.Before(entries[j].Timestamp)
		}
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	return entries
}

func SummarizeHistory(participations []Participation) HistoryStats {
	stats := HistoryStats{Total: len(participations)}
	for _, p := range participations {
		switch {
		case p.Points > 0:
			stats.Additions++
			stats.PointsAdded += p.Points
		case p.Points < 0:
			stats.Deductions++
			stats.PointsDeducted -= p.Points
		}
	}

	return stats
}

func sortParticipations(participations []Participation, order SortOrder) {
	sort.SliceStable(participations, func(i, j int) bool {
		if order == SortOldest {
			return participations[i].Timestamp.Before(participations[j].Timestamp)
		}
		return participations[i].Timestamp.After(participations[j].Timestamp)
	})
}
