package response

import (
	"github.com/ubuntu-fest/leaderboard-api/internal/catalog"
	"github.com/ubuntu-fest/leaderboard-api/internal/domain"
)

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type LeaderboardEntry struct {
	Rank int `json:"rank"`
	domain.College
}

// Leaderboard numbers an already sorted college list from 1.
func Leaderboard(colleges []domain.College) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(colleges))
	for i, c := range colleges {
		entries = append(entries, LeaderboardEntry{Rank: i + 1, College: c})
	}
	return entries
}

type CollegeDetail struct {
	domain.College
	Participations []domain.Participation `json:"participations"`
}

type CollegeRemoved struct {
	Message string `json:"message"`
	domain.CollegeRemoval
}

type History struct {
	Entries []domain.HistoryEntry `json:"entries"`
	Stats   domain.HistoryStats   `json:"stats"`
}

type Events struct {
	Events     []domain.Event `json:"events"`
	Categories []string       `json:"categories"`
}

type EventStats = catalog.Summary

type Synced struct {
	Colleges       int `json:"colleges"`
	Participations int `json:"participations"`
}
