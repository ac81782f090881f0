package v1

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ubuntu-fest/leaderboard-api/internal/api/handler/v1/response"
	"github.com/ubuntu-fest/leaderboard-api/internal/catalog"
	"github.com/ubuntu-fest/leaderboard-api/internal/domain"
)

type EventService interface {
	Events(filter catalog.Filter) []domain.Event
}

type EventHandler struct {
	svc EventService
}

func NewEventHandler(svc EventService) *EventHandler {
	return &EventHandler{
		svc: svc,
	}
}

// HandleGetEvents godoc
// @Summary      List fest events
// @Tags         events
// @Produce      json
// @Param        type      query     string  false  "Flagship, Large or Small"
// @Param        day       query     int     false  "1 or 2"
// @Param        category  query     string  false  "category name"
// @Param        search    query     string  false  "themed name, event or category"
// @Success      200  {object}  response.Events
// @Failure      400  {object}  response.Err
// @Router       /events [get]
// @Security     BearerAuth
func (h *EventHandler) HandleGetEvents(ctx *gin.Context) {
	filter := catalog.Filter{
		Category: ctx.Query("category"),
		Search:   ctx.Query("search"),
	}

	if t := ctx.Query("type"); t != "" {
		eventType, ok := parseEventType(t)
		if !ok {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid event type %q", t)))
			return
		}
		filter.Type = eventType
	}

	if d := ctx.Query("day"); d != "" {
		day, err := strconv.Atoi(d)
		if err != nil || day < 1 || day > 2 {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid day %q", d)))
			return
		}
		filter.Day = day
	}

	ctx.JSON(http.StatusOK, response.Events{
		Events:     h.svc.Events(filter),
		Categories: catalog.Categories(),
	})
}

// HandleGetEventStats godoc
// @Summary      Event counts per type and day
// @Tags         events
// @Produce      json
// @Success      200  {object}  response.EventStats
// @Router       /events/stats [get]
// @Security     BearerAuth
func (h *EventHandler) HandleGetEventStats(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, catalog.Summarize())
}

func parseEventType(s string) (domain.EventType, bool) {
	for _, t := range domain.EventTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}
