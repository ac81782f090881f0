package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func historyFixture() ([]College, []Participation) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	alpha := College{ID: uuid.New(), Name: "Alpha Institute"}
	beta := College{ID: uuid.New(), Name: "Beta College"}

	return []College{alpha, beta}, []Participation{
		{ID: uuid.New(), CollegeID: alpha.ID, EventID: "f1", EventName: "BGMI", Position: PositionFirst, Points: 1000, Timestamp: base},
		{ID: uuid.New(), CollegeID: beta.ID, EventID: "s1", EventName: "One Frame Drama", Position: PositionParticipant, Points: 50, Timestamp: base.Add(time.Minute)},
		{ID: uuid.New(), CollegeID: alpha.ID, EventID: DeductionEventKey("x"), EventName: DeductionLabel("late"), Position: PositionParticipant, Points: -300, Timestamp: base.Add(2 * time.Minute)},
	}
}

func TestBuildHistory_FilterByType(t *testing.T) {
	colleges, participations := historyFixture()

	deductions := BuildHistory(colleges, participations, HistoryFilter{Type: HistoryDeduction})
	require.Len(t, deductions, 1)
	assert.Equal(t, "Alpha Institute", deductions[0].CollegeName)
	assert.True(t, deductions[0].IsDeduction)

	additions := BuildHistory(colleges, participations, HistoryFilter{Type: HistoryAddition})
	assert.Len(t, additions, 2)

	assert.Len(t, BuildHistory(colleges, participations, HistoryFilter{Type: HistoryAll}), 3)
}

func TestBuildHistory_SearchIsCaseInsensitive(t *testing.T) {
	colleges, participations := historyFixture()

	tests := []struct {
		search string
		want   int
	}{
		{"BETA", 1},
		{"bgmi", 1},
		{"PARTICIPANT", 2},
		{"deduction", 1},
		{"nothing", 0},
	}

	for _, tc := range tests {
		t.Run(tc.search, func(t *testing.T) {
			got := BuildHistory(colleges, participations, HistoryFilter{Search: tc.search})
			assert.Len(t, got, tc.want)
		})
	}
}

func TestBuildHistory_Order(t *testing.T) {
	colleges, participations := historyFixture()

	newest := BuildHistory(colleges, participations, HistoryFilter{})
	require.Len(t, newest, 3)
	assert.Equal(t, -300, newest[0].Points)

	oldest := BuildHistory(colleges, participations, HistoryFilter{Order: SortOldest})
	assert.Equal(t, "f1", oldest[0].EventID)
}

func TestSummarizeHistory(t *testing.T) {
	_, participations := historyFixture()

	stats := SummarizeHistory(participations)
	assert.Equal(t, HistoryStats{
		Total:          3,
		Additions:      2,
		Deductions:     1,
		PointsAdded:    1050,
		PointsDeducted: 300,
	}, stats)
}

func TestParseHistoryParams(t *testing.T) {
	ht, err := ParseHistoryType("")
	require.NoError(t, err)
	assert.Equal(t, HistoryAll, ht)

	_, err = ParseHistoryType("refund")
	assert.Error(t, err)

	o, err := ParseSortOrder("oldest")
	require.NoError(t, err)
	assert.Equal(t, SortOldest, o)
}

func TestPointsFor(t *testing.T) {
	e := Event{ParticipationPoints: 150, WinnerPoints: WinnerPoints{First: 800, Second: 600, Third: 400}}

	assert.Equal(t, 800, e.PointsFor(PositionFirst, 3))
	assert.Equal(t, 150, e.PointsFor(PositionParticipant, 0))
	assert.Equal(t, 450, e.PointsFor(PositionParticipant, 3))
	assert.Equal(t, 0, e.PointsFor(Position("4th"), 1))
}

func TestSortLeaderboard_TieBreak(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	colleges := []College{
		{ID: uuid.New(), Name: "late", TotalPoints: 100, CreatedAt: base.Add(time.Hour)},
		{ID: uuid.New(), Name: "top", TotalPoints: 900, CreatedAt: base.Add(2 * time.Hour)},
		{ID: uuid.New(), Name: "early", TotalPoints: 100, CreatedAt: base},
	}

	SortLeaderboard(colleges)
	assert.Equal(t, []string{"top", "early", "late"}, []string{colleges[0].Name, colleges[1].Name, colleges[2].Name})
}
