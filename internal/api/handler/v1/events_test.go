package v1

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ubuntu-fest/leaderboard-api/internal/api/handler/v1/response"
	"github.com/ubuntu-fest/leaderboard-api/internal/catalog"
	"github.com/ubuntu-fest/leaderboard-api/internal/domain"
)

type catalogEvents struct{}

func (catalogEvents) Events(f catalog.Filter) []domain.Event { return catalog.Find(f) }

func newEventRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	h := NewEventHandler(catalogEvents{})
	r.GET("/events", h.HandleGetEvents)
	r.GET("/events/stats", h.HandleGetEventStats)

	return r
}

func TestHandleGetEvents(t *testing.T) {
	r := newEventRouter()

	w := do(r, http.MethodGet, "/events?type=Small&day=1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got response.Events
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.NotEmpty(t, got.Events)
	for _, e := range got.Events {
		assert.Equal(t, domain.EventTypeSmall, e.Type)
		assert.Equal(t, 1, e.Day)
	}
	assert.NotEmpty(t, got.Categories)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/events?type=Huge", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/events?day=3", "").Code)
}

func TestHandleGetEventStats(t *testing.T) {
	w := do(newEventRouter(), http.MethodGet, "/events/stats", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got catalog.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 29, got.Total)
}

func TestHandleHealthcheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", HandleHealthcheck)

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/", "").Code)
}
