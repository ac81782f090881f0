package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	deductionKeyPrefix = "deduction_"
	customKeyPrefix    = "custom_"

	CustomAwardLabel = "Custom Points Award"
)

// Participation is one ledger fact. EventID is either a catalog event id or a
// synthetic key for custom awards and deductions.
type Participation struct {
	ID        uuid.UUID `json:"id"`
	CollegeID uuid.UUID `json:"college_id"`
	EventID   string    `json:"event_id"`
	EventName string    `json:"event_name"`
	Position  Position  `json:"position"`
	Points    int       `json:"points"`
	Timestamp time.Time `json:"timestamp"`
}

func (p Participation) IsDeduction() bool {
	return p.Points < 0
}

func DeductionEventKey(actionKey string) string {
	return deductionKeyPrefix + actionKey
}

func CustomEventKey(actionKey string) string {
	return customKeyPrefix + actionKey
}

func DeductionLabel(reason string) string {
	return "Points Deduction: " + strings.TrimSpace(reason)
}

// SortParticipations orders the ledger newest first.
func SortParticipations(participations []Participation) {
	sortParticipations(participations, SortNewest)
}
