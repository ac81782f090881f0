package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ubuntu-fest/leaderboard-api/internal/domain"
)

func TestByID_PlacementPoints(t *testing.T) {
	tests := []struct {
		eventID  string
		position domain.Position
		want     int
	}{
		{"f1", domain.PositionFirst, 1000},
		{"f1", domain.PositionSecond, 850},
		{"f1", domain.PositionThird, 700},
		{"f1", domain.PositionParticipant, 250},
		{"l1", domain.PositionFirst, 800},
		{"s1", domain.PositionThird, 200},
	}

	for _, tc := range tests {
		t.Run(tc.eventID+"/"+string(tc.position), func(t *testing.T) {
			e, ok := ByID(tc.eventID)
			require.True(t, ok)
			assert.Equal(t, tc.want, e.PointsFor(tc.position, 1))
		})
	}

	_, ok := ByID("nope")
	assert.False(t, ok)
}

func TestAll_ReturnsCopy(t *testing.T) {
	all := All()
	require.Len(t, all, 29)

	all[0].ThemedName = "mutated"
	e, ok := ByID(all[0].ID)
	require.True(t, ok)
	assert.NotEqual(t, "mutated", e.ThemedName)
}

func TestAll_IDsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, e := range All() {
		assert.False(t, seen[e.ID], "duplicate id %s", e.ID)
		seen[e.ID] = true
	}
}

func TestFind(t *testing.T) {
	flagship := Find(Filter{Type: domain.EventTypeFlagship})
	assert.Len(t, flagship, 9)
	for _, e := range flagship {
		assert.Equal(t, domain.EventTypeFlagship, e.Type)
	}

	bgmi := Find(Filter{Search: "bgmi"})
	require.Len(t, bgmi, 1)
	assert.Equal(t, "f1", bgmi[0].ID)

	for _, e := range Find(Filter{Day: 2}) {
		assert.Equal(t, 2, e.Day)
	}

	assert.Len(t, Find(Filter{}), 29)
}

func TestSummarize(t *testing.T) {
	s := Summarize()
	assert.Equal(t, 29, s.Total)
	assert.Equal(t, 9, s.ByType[domain.EventTypeFlagship])
	assert.Equal(t, 11, s.ByType[domain.EventTypeLarge])
	assert.Equal(t, 9, s.ByType[domain.EventTypeSmall])
	assert.Equal(t, s.Total, s.ByDay[1]+s.ByDay[2])
}

func TestCategories(t *testing.T) {
	cats := Categories()
	assert.NotEmpty(t, cats)
	assert.Equal(t, "Online Games", cats[0])
}
