package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ubuntu-fest/leaderboard-api/internal/config"
	"github.com/ubuntu-fest/leaderboard-api/internal/domain"
	"github.com/ubuntu-fest/leaderboard-api/internal/service"
	"github.com/ubuntu-fest/leaderboard-api/internal/store"
)

type stubLedger struct{}

func (stubLedger) CreateCollege(_ context.Context, name string) (domain.College, error) {
	now := time.Now()
	return domain.College{ID: uuid.New(), Name: name, CreatedAt: now, UpdatedAt: now}, nil
}
func (stubLedger) FindColleges(context.Context) ([]domain.College, error) { return nil, nil }
func (stubLedger) FindCollegeByID(context.Context, uuid.UUID) (domain.College, error) {
	return domain.College{}, service.ErrCollegeNotFound
}
func (stubLedger) DeleteCollege(context.Context, uuid.UUID) error { return nil }
func (stubLedger) FindParticipations(context.Context) ([]domain.Participation, error) {
	return nil, nil
}
func (stubLedger) CountParticipations(context.Context, uuid.UUID) (int64, error) { return 0, nil }
func (stubLedger) UpsertParticipation(_ context.Context, p domain.Participation, _ bool) (domain.Participation, error) {
	return p, nil
}
func (stubLedger) DeleteParticipation(context.Context, uuid.UUID, string) (domain.Participation, error) {
	return domain.Participation{}, service.ErrParticipationNotFound
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	conf := &config.AppConfig{
		API: &config.APIConfig{
			Port:               "8080",
			BaseURL:            "localhost:8080",
			AllowedCORSDomains: []string{"http://localhost:3000"},
			JWTSigningKey:      "test-key",
			JWTTTL:             time.Hour,
		},
		Gin: &config.GinConfig{Mode: gin.TestMode},
		Auth: &config.AuthConfig{Accounts: []config.Account{
			{Email: "admin@fest.local", Password: "admin-pass", Role: domain.RoleAdmin},
			{Email: "viewer@fest.local", Password: "viewer-pass", Role: domain.RoleUser},
		}},
		Ledger: &config.LedgerConfig{},
	}

	scoreboard := service.NewScoreboard(stubLedger{}, store.New(), service.ScoreboardOptions{})
	s, err := NewServerWithScoreboard(conf, scoreboard)
	require.NoError(t, err)
	return s
}

func serve(s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, s *Server, email, password string) string {
	t.Helper()

	rec := serve(s, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestServer_Healthcheck(t *testing.T) {
	s := newTestServer(t)

	rec := serve(s, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_RoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/v1/leaderboard", "/api/v1/events", "/api/v1/history"} {
		rec := serve(s, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestServer_WrongPassword(t *testing.T) {
	s := newTestServer(t)

	rec := serve(s, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "admin@fest.local", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServer_ViewerCannotMutate(t *testing.T) {
	s := newTestServer(t)
	token := login(t, s, "viewer@fest.local", "viewer-pass")

	rec := serve(s, http.MethodGet, "/api/v1/leaderboard", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(s, http.MethodPost, "/api/v1/colleges", token, map[string]string{"name": "Alpha"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestServer_AdminAddsCollegeToLeaderboard(t *testing.T) {
	s := newTestServer(t)
	token := login(t, s, "admin@fest.local", "admin-pass")

	rec := serve(s, http.MethodPost, "/api/v1/colleges", token, map[string]string{"name": "  Alpha College "})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	leaderboard := s.Scoreboard.Leaderboard()
	require.Len(t, leaderboard, 1)
	assert.Equal(t, "Alpha College", leaderboard[0].Name)
}
