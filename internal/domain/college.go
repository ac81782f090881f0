package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

type College struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	TotalPoints int       `json:"total_points"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SortLeaderboard orders colleges by total points, highest first. Ties go to
// the college registered first, then to the lowest id, so repeated sorts of the
// same set always agree.
func SortLeaderboard(colleges []College) {
	sort.SliceStable(colleges, func(i, j int) bool {
		a, b := colleges[i], colleges[j]
		if a.TotalPoints != b.TotalPoints {
			return a.TotalPoints > b.TotalPoints
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID.String() < b.ID.String()
	})
}

type CollegeRemoval struct {
	College        College `json:"college"`
	Participations int64   `json:"participations"`
}
