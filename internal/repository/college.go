package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ubuntu-fest/leaderboard-api/internal/domain"
	"github.com/ubuntu-fest/leaderboard-api/internal/repository/dao"
)

var (
	ErrCollegeExists         = dao.ErrCollegeExists
	ErrCollegeNotFound       = dao.ErrCollegeNotFound
	ErrParticipationNotFound = dao.ErrParticipationNotFound
	ErrInsufficientPoints    = dao.ErrInsufficientPoints
)

type CollegeDAO interface {
	Insert(ctx context.Context, college dao.College) (dao.College, error)
	FindAll(ctx context.Context) ([]dao.College, error)
	FindByID(ctx context.Context, id uuid.UUID) (dao.College, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ParticipationDAO interface {
	Upsert(ctx context.Context, p dao.Participation) (dao.Participation, error)
	UpsertGuarded(ctx context.Context, p dao.Participation) (dao.Participation, error)
	FindAll(ctx context.Context) ([]dao.Participation, error)
	CountByCollegeID(ctx context.Context, collegeID uuid.UUID) (int64, error)
	Delete(ctx context.Context, collegeID uuid.UUID, eventID string) (dao.Participation, error)
}

// LedgerRepository is the persistent side of the scoreboard: colleges and
// the participation rows that make up their totals.
type LedgerRepository struct {
	colleges       CollegeDAO
	participations ParticipationDAO
}

func NewLedgerRepository(colleges CollegeDAO, participations ParticipationDAO) *LedgerRepository {
	return &LedgerRepository{
		colleges:       colleges,
		participations: participations,
	}
}

func (r *LedgerRepository) CreateCollege(ctx context.Context, name string) (domain.College, error) {
	college, err := r.colleges.Insert(ctx, dao.College{Name: name})
	if err != nil {
		return domain.College{}, fmt.Errorf("r.colleges.Insert -> %w", err)
	}

	return r.collegeToDomain(college), nil
}

func (r *LedgerRepository) FindColleges(ctx context.Context) ([]domain.College, error) {
	colleges, err := r.colleges.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.colleges.FindAll -> %w", err)
	}

	result := make([]domain.College, 0, len(colleges))
	for _, c := range colleges {
		result = append(result, r.collegeToDomain(c))
	}

	return result, nil
}

func (r *LedgerRepository) FindCollegeByID(ctx context.Context, id uuid.UUID) (domain.College, error) {
	college, err := r.colleges.FindByID(ctx, id)
	if err != nil {
		return domain.College{}, fmt.Errorf("r.colleges.FindByID -> %w", err)
	}

	return r.collegeToDomain(college), nil
}

func (r *LedgerRepository) DeleteCollege(ctx context.Context, id uuid.UUID) error {
	if err := r.colleges.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.colleges.Delete -> %w", err)
	}

	return nil
}

func (r *LedgerRepository) FindParticipations(ctx context.Context) ([]domain.Participation, error) {
	participations, err := r.participations.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.participations.FindAll -> %w", err)
	}

	return r.participationsToDomain(participations), nil
}

func (r *LedgerRepository) CountParticipations(ctx context.Context, collegeID uuid.UUID) (int64, error) {
	count, err := r.participations.CountByCollegeID(ctx, collegeID)
	if err != nil {
		return 0, fmt.Errorf("r.participations.CountByCollegeID -> %w", err)
	}

	return count, nil
}

// UpsertParticipation writes p keyed by (college, event). With guard set the
// store itself refuses a write that would leave the college negative.
func (r *LedgerRepository) UpsertParticipation(ctx context.Context, p domain.Participation, guard bool) (domain.Participation, error) {
	row := r.participationToDao(p)

	if guard {
		stored, err := r.participations.UpsertGuarded(ctx, row)
		if err != nil {
			return domain.Participation{}, fmt.Errorf("r.participations.UpsertGuarded -> %w", err)
		}
		return r.participationToDomain(stored), nil
	}

	stored, err := r.participations.Upsert(ctx, row)
	if err != nil {
		return domain.Participation{}, fmt.Errorf("r.participations.Upsert -> %w", err)
	}

	return r.participationToDomain(stored), nil
}

func (r *LedgerRepository) DeleteParticipation(ctx context.Context, collegeID uuid.UUID, eventID string) (domain.Participation, error) {
	deleted, err := r.participations.Delete(ctx, collegeID, eventID)
	if err != nil {
		return domain.Participation{}, fmt.Errorf("r.participations.Delete -> %w", err)
	}

	return r.participationToDomain(deleted), nil
}

func (r *LedgerRepository) collegeToDomain(c dao.College) domain.College {
	return domain.College{
		ID:          c.ID,
		Name:        c.Name,
		TotalPoints: c.TotalPoints,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (r *LedgerRepository) participationToDao(p domain.Participation) dao.Participation {
	return dao.Participation{
		ID:        p.ID,
		CollegeID: p.CollegeID,
		EventID:   p.EventID,
		EventName: p.EventName,
		Position:  string(p.Position),
		Points:    p.Points,
		Timestamp: p.Timestamp,
	}
}

func (r *LedgerRepository) participationToDomain(p dao.Participation) domain.Participation {
	return domain.Participation{
		ID:        p.ID,
		CollegeID: p.CollegeID,
		EventID:   p.EventID,
		EventName: p.EventName,
		Position:  domain.Position(p.Position),
		Points:    p.Points,
		Timestamp: p.Timestamp,
	}
}

func (r *LedgerRepository) participationsToDomain(rows []dao.Participation) []domain.Participation {
	result := make([]domain.Participation, 0, len(rows))
	for _, p := range rows {
		result = append(result, r.participationToDomain(p))
	}
	return result
}
