package request

import (
	"errors"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/ubuntu-fest/leaderboard-api/internal/domain"
)

// PositionCustom selects a free-form award instead of a catalog placement.
const PositionCustom = "custom"

var (
	actionIDExp = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

	errEventRequired  = errors.New("event_id is required unless position is custom")
	errPointsRequired = errors.New("points are required for a custom award")
)

type CreateCollegeRequest struct {
	Name string `json:"name" binding:"required"`
}

func (req *CreateCollegeRequest) Validate() error {
	req.Name = strings.TrimSpace(req.Name)

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 120)),
	)
}

type AwardPointsRequest struct {
	EventID      string `json:"event_id"`
	Position     string `json:"position" binding:"required"`
	Participants int    `json:"participants"`
	Points       int    `json:"points"`
	ActionID     string `json:"action_id"`
}

func (req *AwardPointsRequest) IsCustom() bool {
	return req.Position == PositionCustom
}

func (req *AwardPointsRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Position, validation.Required, validation.In(
			PositionCustom,
			string(domain.PositionParticipant),
			string(domain.PositionFirst),
			string(domain.PositionSecond),
			string(domain.PositionThird),
		)),
		validation.Field(&req.Participants, validation.Min(0), validation.Max(500)),
		validation.Field(&req.Points, validation.Min(0)),
		validation.Field(&req.ActionID, validation.Match(actionIDExp)),
	)
	if err != nil {
		return err
	}

	if req.IsCustom() {
		if req.Points <= 0 {
			return errPointsRequired
		}
		return nil
	}

	if strings.TrimSpace(req.EventID) == "" {
		return errEventRequired
	}

	return nil
}

type DeductPointsRequest struct {
	Points   int    `json:"points" binding:"required"`
	Reason   string `json:"reason" binding:"required"`
	ActionID string `json:"action_id"`
}

func (req *DeductPointsRequest) Validate() error {
	req.Reason = strings.TrimSpace(req.Reason)

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Points, validation.Required, validation.Min(1)),
		validation.Field(&req.Reason, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.ActionID, validation.Match(actionIDExp)),
	)
}
