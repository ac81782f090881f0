package v1

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ubuntu-fest/leaderboard-api/internal/api/handler/v1/response"
	"github.com/ubuntu-fest/leaderboard-api/internal/domain"
	"github.com/ubuntu-fest/leaderboard-api/internal/service"
)

type mockScoreboard struct {
	mock.Mock
}

func (m *mockScoreboard) Leaderboard() []domain.College {
	return m.Called().Get(0).([]domain.College)
}

func (m *mockScoreboard) Colleges() []domain.College {
	return m.Called().Get(0).([]domain.College)
}

func (m *mockScoreboard) College(id uuid.UUID) (domain.College, []domain.Participation, error) {
	args := m.Called(id)
	return args.Get(0).(domain.College), args.Get(1).([]domain.Participation), args.Error(2)
}

func (m *mockScoreboard) Participations() []domain.Participation {
	return m.Called().Get(0).([]domain.Participation)
}

func (m *mockScoreboard) AddCollege(ctx context.Context, name string) (domain.College, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(domain.College), args.Error(1)
}

func (m *mockScoreboard) RemoveCollege(ctx context.Context, id uuid.UUID) (domain.CollegeRemoval, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.CollegeRemoval), args.Error(1)
}

func (m *mockScoreboard) AwardFromCatalog(ctx context.Context, collegeID uuid.UUID, eventID string, position domain.Position, headcount int) (domain.Participation, error) {
	args := m.Called(ctx, collegeID, eventID, position, headcount)
	return args.Get(0).(domain.Participation), args.Error(1)
}

func (m *mockScoreboard) AwardCustom(ctx context.Context, collegeID uuid.UUID, points int, actionKey string) (domain.Participation, error) {
	args := m.Called(ctx, collegeID, points, actionKey)
	return args.Get(0).(domain.Participation), args.Error(1)
}

func (m *mockScoreboard) Deduct(ctx context.Context, cmd service.DeductCommand) (domain.Participation, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(domain.Participation), args.Error(1)
}

func (m *mockScoreboard) RemoveParticipation(ctx context.Context, collegeID uuid.UUID, eventKey string) (domain.Participation, error) {
	args := m.Called(ctx, collegeID, eventKey)
	return args.Get(0).(domain.Participation), args.Error(1)
}

func (m *mockScoreboard) History(filter domain.HistoryFilter) []domain.HistoryEntry {
	return m.Called(filter).Get(0).([]domain.HistoryEntry)
}

func (m *mockScoreboard) HistoryStats() domain.HistoryStats {
	return m.Called().Get(0).(domain.HistoryStats)
}

func (m *mockScoreboard) Stats() domain.DashboardStats {
	return m.Called().Get(0).(domain.DashboardStats)
}

func (m *mockScoreboard) FetchColleges(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func newScoreboardRouter(svc ScoreboardService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	h := NewScoreboardHandler(svc)
	r.GET("/leaderboard", h.HandleGetLeaderboard)
	r.GET("/colleges/:collegeID", h.HandleGetCollege)
	r.POST("/colleges", h.HandleCreateCollege)
	r.DELETE("/colleges/:collegeID", h.HandleDeleteCollege)
	r.POST("/colleges/:collegeID/awards", h.HandleAwardPoints)
	r.POST("/colleges/:collegeID/deductions", h.HandleDeductPoints)
	r.DELETE("/colleges/:collegeID/participations/:eventID", h.HandleDeleteParticipation)
	r.GET("/history", h.HandleGetHistory)
	r.POST("/sync", h.HandleSync)

	return r
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleGetLeaderboard_Ranks(t *testing.T) {
	svc := new(mockScoreboard)
	svc.On("Leaderboard").Return([]domain.College{
		{ID: uuid.New(), Name: "Top", TotalPoints: 900},
		{ID: uuid.New(), Name: "Next", TotalPoints: 400},
	})

	w := do(newScoreboardRouter(svc), http.MethodGet, "/leaderboard", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got []response.LeaderboardEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Rank)
	assert.Equal(t, "Top", got[0].Name)
	assert.Equal(t, 2, got[1].Rank)
}

func TestHandleCreateCollege(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		svcErr  error
		call    bool
		want    int
		wantMsg string
	}{
		{name: "created", body: `{"name":"  Alpha  "}`, call: true, want: http.StatusCreated},
		{name: "duplicate", body: `{"name":"Alpha"}`, svcErr: fmt.Errorf("s.repo.CreateCollege -> %w", service.ErrCollegeExists), call: true, want: http.StatusConflict},
		{name: "blank", body: `{"name":"   "}`, want: http.StatusBadRequest},
		{name: "malformed", body: `{"name":`, want: http.StatusBadRequest},
		{name: "store down", body: `{"name":"Alpha"}`, svcErr: errors.New("dial tcp: refused"), call: true, want: http.StatusInternalServerError, wantMsg: "failed, please try again"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(mockScoreboard)
			if tc.call {
				svc.On("AddCollege", mock.Anything, "Alpha").Return(domain.College{ID: uuid.New(), Name: "Alpha"}, tc.svcErr)
			}

			w := do(newScoreboardRouter(svc), http.MethodPost, "/colleges", tc.body)
			assert.Equal(t, tc.want, w.Code)
			if tc.wantMsg != "" {
				var e response.Err
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
				assert.Equal(t, tc.wantMsg, e.Message)
				assert.NotContains(t, w.Body.String(), "refused")
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleAwardPoints(t *testing.T) {
	collegeID := uuid.New()
	target := "/colleges/" + collegeID.String() + "/awards"

	t.Run("catalog placement", func(t *testing.T) {
		svc := new(mockScoreboard)
		svc.On("AwardFromCatalog", mock.Anything, collegeID, "f1", domain.PositionFirst, 0).
			Return(domain.Participation{CollegeID: collegeID, EventID: "f1", Points: 1000}, nil)

		w := do(newScoreboardRouter(svc), http.MethodPost, target, `{"event_id":"f1","position":"1st"}`)
		assert.Equal(t, http.StatusCreated, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("custom", func(t *testing.T) {
		svc := new(mockScoreboard)
		svc.On("AwardCustom", mock.Anything, collegeID, 75, "bonus-1").
			Return(domain.Participation{EventID: "custom_bonus-1", Points: 75}, nil)

		w := do(newScoreboardRouter(svc), http.MethodPost, target, `{"position":"custom","points":75,"action_id":"bonus-1"}`)
		assert.Equal(t, http.StatusCreated, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("unknown college", func(t *testing.T) {
		svc := new(mockScoreboard)
		svc.On("AwardFromCatalog", mock.Anything, collegeID, "f1", domain.PositionParticipant, 3).
			Return(domain.Participation{}, fmt.Errorf("s.repo.FindCollegeByID -> %w", service.ErrCollegeNotFound))

		w := do(newScoreboardRouter(svc), http.MethodPost, target, `{"event_id":"f1","position":"participant","participants":3}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("bad college id", func(t *testing.T) {
		w := do(newScoreboardRouter(new(mockScoreboard)), http.MethodPost, "/colleges/abc/awards", `{"event_id":"f1","position":"1st"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleDeductPoints(t *testing.T) {
	collegeID := uuid.New()
	target := "/colleges/" + collegeID.String() + "/deductions"

	t.Run("insufficient points", func(t *testing.T) {
		svc := new(mockScoreboard)
		svc.On("Deduct", mock.Anything, service.DeductCommand{CollegeID: collegeID, Points: 1500, Reason: "cheating"}).
			Return(domain.Participation{}, service.ErrInsufficientPoints)

		w := do(newScoreboardRouter(svc), http.MethodPost, target, `{"points":1500,"reason":"cheating"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var e response.Err
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
		assert.Equal(t, service.ErrInsufficientPoints.Error(), e.Error)
	})

	t.Run("recorded", func(t *testing.T) {
		svc := new(mockScoreboard)
		svc.On("Deduct", mock.Anything, service.DeductCommand{CollegeID: collegeID, Points: 300, Reason: "late", ActionKey: "a1"}).
			Return(domain.Participation{Points: -300, Timestamp: time.Now()}, nil)

		w := do(newScoreboardRouter(svc), http.MethodPost, target, `{"points":300,"reason":" late ","action_id":"a1"}`)
		assert.Equal(t, http.StatusCreated, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("missing reason", func(t *testing.T) {
		w := do(newScoreboardRouter(new(mockScoreboard)), http.MethodPost, target, `{"points":300}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleDeleteCollege(t *testing.T) {
	collegeID := uuid.New()
	svc := new(mockScoreboard)
	svc.On("RemoveCollege", mock.Anything, collegeID).Return(domain.CollegeRemoval{
		College:        domain.College{ID: collegeID, Name: "Alpha"},
		Participations: 3,
	}, nil)

	w := do(newScoreboardRouter(svc), http.MethodDelete, "/colleges/"+collegeID.String(), "")
	require.Equal(t, http.StatusOK, w.Code)

	var got response.CollegeRemoved
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(3), got.Participations)
	assert.Contains(t, got.Message, "3 participation record(s)")
}

func TestHandleDeleteParticipation_NotFound(t *testing.T) {
	collegeID := uuid.New()
	svc := new(mockScoreboard)
	svc.On("RemoveParticipation", mock.Anything, collegeID, "f1").
		Return(domain.Participation{}, service.ErrParticipationNotFound)

	w := do(newScoreboardRouter(svc), http.MethodDelete, "/colleges/"+collegeID.String()+"/participations/f1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleGetHistory(t *testing.T) {
	svc := new(mockScoreboard)
	svc.On("History", domain.HistoryFilter{Type: domain.HistoryDeduction, Search: "alpha", Order: domain.SortOldest}).
		Return([]domain.HistoryEntry{{CollegeName: "Alpha", IsDeduction: true}})
	svc.On("HistoryStats").Return(domain.HistoryStats{Total: 1, Deductions: 1})

	r := newScoreboardRouter(svc)

	w := do(r, http.MethodGet, "/history?type=deduction&search=alpha&order=oldest", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got response.History
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.Entries, 1)
	assert.Equal(t, 1, got.Stats.Deductions)

	w = do(r, http.MethodGet, "/history?type=refund", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleSync(t *testing.T) {
	svc := new(mockScoreboard)
	svc.On("FetchColleges", mock.Anything).Return(nil)
	svc.On("Colleges").Return([]domain.College{{}, {}})
	svc.On("Participations").Return([]domain.Participation{{}})

	w := do(newScoreboardRouter(svc), http.MethodPost, "/sync", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got response.Synced
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, response.Synced{Colleges: 2, Participations: 1}, got)
}
