package domain

import (
	"errors"
	"fmt"
)

type EventType string

const (
	EventTypeFlagship EventType = "Flagship"
	EventTypeLarge    EventType = "Large"
	EventTypeSmall    EventType = "Small"
)

var EventTypes = []EventType{EventTypeFlagship, EventTypeLarge, EventTypeSmall}

type Position string

const (
	PositionParticipant Position = "participant"
	PositionFirst       Position = "1st"
	PositionSecond      Position = "2nd"
	PositionThird       Position = "3rd"
)

var ErrInvalidPosition = errors.New("invalid position")

func ParsePosition(s string) (Position, error) {
	switch p := Position(s); p {
	case PositionParticipant, PositionFirst, PositionSecond, PositionThird:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPosition, s)
	}
}

type WinnerPoints struct {
	First  int `json:"1st"`
	Second int `json:"2nd"`
	Third  int `json:"3rd"`
}

type Event struct {
	ID          string    `json:"id"`
	ThemedName  string    `json:"themed_event_name"`
	DisplayName string    `json:"event"`
	Type        EventType `json:"event_type"`
	Category    string    `json:"category"`
	Day         int       `json:"day"`
	// Solo and Group are the entry values for each format; nil when the
	// event does not run in that format.
	Solo                *int         `json:"solo,omitempty"`
	Group               *int         `json:"group,omitempty"`
	ParticipationPoints int          `json:"participation_points"`
	WinnerPoints        WinnerPoints `json:"winner_points"`
}

// PointsFor is the award preview rule: a participant award is worth the
// per-participant value times the headcount, a podium award is the fixed
// placement value.
func (e Event) PointsFor(position Position, headcount int) int {
	switch position {
	case PositionFirst:
		return e.WinnerPoints.First
	case PositionSecond:
		return e.WinnerPoints.Second
	case PositionThird:
		return e.WinnerPoints.Third
	case PositionParticipant:
		if headcount < 1 {
			headcount = 1
		}
		return e.ParticipationPoints * headcount
	default:
		return 0
	}
}
