package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ubuntu-fest/leaderboard-api/internal/api/handler/v1/request"
	"github.com/ubuntu-fest/leaderboard-api/internal/api/handler/v1/response"
	"github.com/ubuntu-fest/leaderboard-api/internal/domain"
	"github.com/ubuntu-fest/leaderboard-api/internal/service"
)

type ScoreboardService interface {
	Leaderboard() []domain.College
	Colleges() []domain.College
	College(id uuid.UUID) (domain.College, []domain.Participation, error)
	Participations() []domain.Participation
	AddCollege(ctx context.Context, name string) (domain.College, error)
	RemoveCollege(ctx context.Context, id uuid.UUID) (domain.CollegeRemoval, error)
	AwardFromCatalog(ctx context.Context, collegeID uuid.UUID, eventID string, position domain.Position, headcount int) (domain.Participation, error)
	AwardCustom(ctx context.Context, collegeID uuid.UUID, points int, actionKey string) (domain.Participation, error)
	Deduct(ctx context.Context, cmd service.DeductCommand) (domain.Participation, error)
	RemoveParticipation(ctx context.Context, collegeID uuid.UUID, eventKey string) (domain.Participation, error)
	History(filter domain.HistoryFilter) []domain.HistoryEntry
	HistoryStats() domain.HistoryStats
	Stats() domain.DashboardStats
	FetchColleges(ctx context.Context) error
}

type ScoreboardHandler struct {
	svc ScoreboardService
}

func NewScoreboardHandler(svc ScoreboardService) *ScoreboardHandler {
	return &ScoreboardHandler{
		svc: svc,
	}
}

// HandleGetLeaderboard godoc
// @Summary      Get the leaderboard
// @Description  Colleges ranked by total points. Ties go to the college registered first.
// @Tags         leaderboard
// @Produce      json
// @Success      200  {array}   response.LeaderboardEntry
// @Failure      401  {object}  response.Err
// @Router       /leaderboard [get]
// @Security     BearerAuth
func (h *ScoreboardHandler) HandleGetLeaderboard(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, response.Leaderboard(h.svc.Leaderboard()))
}

// HandleGetColleges godoc
// @Summary      List colleges
// @Tags         colleges
// @Produce      json
// @Success      200  {array}   domain.College
// @Failure      401  {object}  response.Err
// @Router       /colleges [get]
// @Security     BearerAuth
func (h *ScoreboardHandler) HandleGetColleges(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.svc.Colleges())
}

// HandleGetCollege godoc
// @Summary      Get a college with its participations
// @Tags         colleges
// @Produce      json
// @Param        collegeID  path      string  true  "College ID"
// @Success      200  {object}  response.CollegeDetail
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /colleges/{collegeID} [get]
// @Security     BearerAuth
func (h *ScoreboardHandler) HandleGetCollege(ctx *gin.Context) {
	collegeID, ok := collegeIDParam(ctx)
	if !ok {
		return
	}

	college, participations, err := h.svc.College(collegeID)
	if err != nil {
		renderScoreboardErr(ctx, fmt.Errorf("HandleGetCollege -> h.svc.College -> %w", err), collegeID)
		return
	}

	ctx.JSON(http.StatusOK, response.CollegeDetail{
		College:        college,
		Participations: participations,
	})
}

// HandleCreateCollege godoc
// @Summary      Register a college
// @Tags         colleges
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateCollegeRequest  true  "request body"
// @Success      201  {object}  domain.College
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /colleges [post]
// @Security     BearerAuth
func (h *ScoreboardHandler) HandleCreateCollege(ctx *gin.Context) {
	var req request.CreateCollegeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	college, err := h.svc.AddCollege(ctx.Request.Context(), req.Name)
	if err != nil {
		renderScoreboardErr(ctx, fmt.Errorf("HandleCreateCollege -> h.svc.AddCollege -> %w", err), req.Name)
		return
	}

	ctx.JSON(http.StatusCreated, college)
}

// HandleDeleteCollege godoc
// @Summary      Remove a college and all of its participations
// @Tags         colleges
// @Produce      json
// @Param        collegeID  path      string  true  "College ID"
// @Success      200  {object}  response.CollegeRemoved
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /colleges/{collegeID} [delete]
// @Security     BearerAuth
func (h *ScoreboardHandler) HandleDeleteCollege(ctx *gin.Context) {
	collegeID, ok := collegeIDParam(ctx)
	if !ok {
		return
	}

	removal, err := h.svc.RemoveCollege(ctx.Request.Context(), collegeID)
	if err != nil {
		renderScoreboardErr(ctx, fmt.Errorf("HandleDeleteCollege -> h.svc.RemoveCollege -> %w", err), collegeID)
		return
	}

	ctx.JSON(http.StatusOK, response.CollegeRemoved{
		Message:        fmt.Sprintf("%s removed along with %d participation record(s)", removal.College.Name, removal.Participations),
		CollegeRemoval: removal,
	})
}

// HandleAwardPoints godoc
// @Summary      Award points to a college
// @Description  Catalog awards replace any earlier placement of the college in the same event. Use position "custom" with points for a free-form award.
// @Tags         points
// @Accept       json
// @Produce      json
// @Param        collegeID  path      string                      true  "College ID"
// @Param        request    body      request.AwardPointsRequest  true  "request body"
// @Success      201  {object}  domain.Participation
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /colleges/{collegeID}/awards [post]
// @Security     BearerAuth
func (h *ScoreboardHandler) HandleAwardPoints(ctx *gin.Context) {
	collegeID, ok := collegeIDParam(ctx)
	if !ok {
		return
	}

	var req request.AwardPointsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var (
		p   domain.Participation
		err error
	)
	if req.IsCustom() {
		p, err = h.svc.AwardCustom(ctx.Request.Context(), collegeID, req.Points, req.ActionID)
	} else {
		p, err = h.svc.AwardFromCatalog(ctx.Request.Context(), collegeID, req.EventID, domain.Position(req.Position), req.Participants)
	}
	if err != nil {
		renderScoreboardErr(ctx, fmt.Errorf("HandleAwardPoints -> %w", err), collegeID)
		return
	}

	ctx.JSON(http.StatusCreated, p)
}

// HandleDeductPoints godoc
// @Summary      Deduct points from a college
// @Tags         points
// @Accept       json
// @Produce      json
// @Param        collegeID  path      string                       true  "College ID"
// @Param        request    body      request.DeductPointsRequest  true  "request body"
// @Success      201  {object}  domain.Participation
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /colleges/{collegeID}/deductions [post]
// @Security     BearerAuth
func (h *ScoreboardHandler) HandleDeductPoints(ctx *gin.Context) {
	collegeID, ok := collegeIDParam(ctx)
	if !ok {
		return
	}

	var req request.DeductPointsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	p, err := h.svc.Deduct(ctx.Request.Context(), service.DeductCommand{
		CollegeID: collegeID,
		Points:    req.Points,
		Reason:    req.Reason,
		ActionKey: req.ActionID,
	})
	if err != nil {
		renderScoreboardErr(ctx, fmt.Errorf("HandleDeductPoints -> h.svc.Deduct -> %w", err), collegeID)
		return
	}

	ctx.JSON(http.StatusCreated, p)
}

// HandleDeleteParticipation godoc
// @Summary      Remove one participation record
// @Tags         points
// @Produce      json
// @Param        collegeID  path  string  true  "College ID"
// @Param        eventID    path  string  true  "Event key"
// @Success      200  {object}  domain.Participation
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /colleges/{collegeID}/participations/{eventID} [delete]
// @Security     BearerAuth
func (h *ScoreboardHandler) HandleDeleteParticipation(ctx *gin.Context) {
	collegeID, ok := collegeIDParam(ctx)
	if !ok {
		return
	}
	eventID := ctx.Param("eventID")

	p, err := h.svc.RemoveParticipation(ctx.Request.Context(), collegeID, eventID)
	if err != nil {
		renderScoreboardErr(ctx, fmt.Errorf("HandleDeleteParticipation -> h.svc.RemoveParticipation -> %w", err), eventID)
		return
	}

	ctx.JSON(http.StatusOK, p)
}

// HandleGetHistory godoc
// @Summary      Points history
// @Tags         history
// @Produce      json
// @Param        type    query     string  false  "all, addition or deduction"
// @Param        search  query     string  false  "college, event or position"
// @Param        order   query     string  false  "newest or oldest"
// @Success      200  {object}  response.History
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Router       /history [get]
// @Security     BearerAuth
func (h *ScoreboardHandler) HandleGetHistory(ctx *gin.Context) {
	historyType, err := domain.ParseHistoryType(ctx.Query("type"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	order, err := domain.ParseSortOrder(ctx.Query("order"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	ctx.JSON(http.StatusOK, response.History{
		Entries: h.svc.History(domain.HistoryFilter{
			Type:   historyType,
			Search: ctx.Query("search"),
			Order:  order,
		}),
		Stats: h.svc.HistoryStats(),
	})
}

// HandleGetStats godoc
// @Summary      Dashboard totals
// @Tags         stats
// @Produce      json
// @Success      200  {object}  domain.DashboardStats
// @Failure      403  {object}  response.Err
// @Router       /stats [get]
// @Security     BearerAuth
func (h *ScoreboardHandler) HandleGetStats(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.svc.Stats())
}

// HandleSync godoc
// @Summary      Reload colleges and participations from the database
// @Tags         stats
// @Produce      json
// @Success      200  {object}  response.Synced
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /sync [post]
// @Security     BearerAuth
func (h *ScoreboardHandler) HandleSync(ctx *gin.Context) {
	if err := h.svc.FetchColleges(ctx.Request.Context()); err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("HandleSync -> h.svc.FetchColleges -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, response.Synced{
		Colleges:       len(h.svc.Colleges()),
		Participations: len(h.svc.Participations()),
	})
}

func collegeIDParam(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("collegeID"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid college ID: %w", err)))
		return uuid.Nil, false
	}
	return id, true
}

func renderScoreboardErr(ctx *gin.Context, err error, key any) {
	switch {
	case errors.Is(err, service.ErrCollegeNotFound):
		response.RenderErr(ctx, response.ErrNotFound("college", "ID", key))
	case errors.Is(err, service.ErrParticipationNotFound):
		response.RenderErr(ctx, response.ErrNotFound("participation", "event", key))
	case errors.Is(err, service.ErrEventNotFound):
		response.RenderErr(ctx, response.ErrNotFound("event", "ID", key))
	case errors.Is(err, service.ErrCollegeExists):
		response.RenderErr(ctx, response.ErrConflict(service.ErrCollegeExists))
	case errors.Is(err, service.ErrInsufficientPoints),
		errors.Is(err, service.ErrInvalidPoints),
		errors.Is(err, service.ErrMissingReason),
		errors.Is(err, service.ErrInvalidCollegeName),
		errors.Is(err, service.ErrInvalidEvent),
		errors.Is(err, domain.ErrInvalidPosition):
		response.RenderErr(ctx, response.ErrBadRequest(unwrapSentinel(err)))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}

// unwrapSentinel hides the call chain from the client message.
func unwrapSentinel(err error) error {
	for _, sentinel := range []error{
		service.ErrInsufficientPoints,
		service.ErrInvalidPoints,
		service.ErrMissingReason,
		service.ErrInvalidCollegeName,
		service.ErrInvalidEvent,
		domain.ErrInvalidPosition,
	} {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}
	return err
}
