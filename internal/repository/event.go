package repository

import (
	"context"
	"fmt"

	"gorm.io/datatypes"

	"github.com/ubuntu-fest/leaderboard-api/internal/domain"
	"github.com/ubuntu-fest/leaderboard-api/internal/repository/dao"
)

type EventDAO interface {
	Seed(ctx context.Context, events []dao.Event) error
	FindAll(ctx context.Context) ([]dao.Event, error)
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) SeedEvents(ctx context.Context, events []domain.Event) error {
	rows := make([]dao.Event, 0, len(events))
	for _, e := range events {
		rows = append(rows, r.domainToDao(e))
	}

	if err := r.dao.Seed(ctx, rows); err != nil {
		return fmt.Errorf("r.dao.Seed -> %w", err)
	}

	return nil
}

func (r *EventRepository) FindEvents(ctx context.Context) ([]domain.Event, error) {
	rows, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	events := make([]domain.Event, 0, len(rows))
	for _, e := range rows {
		events = append(events, r.daoToDomain(e))
	}

	return events, nil
}

func (r *EventRepository) domainToDao(e domain.Event) dao.Event {
	return dao.Event{
		ID:                  e.ID,
		ThemedEventName:     e.ThemedName,
		Name:                e.DisplayName,
		EventType:           string(e.Type),
		Category:            e.Category,
		Day:                 e.Day,
		Solo:                e.Solo,
		Group:               e.Group,
		ParticipationPoints: e.ParticipationPoints,
		WinnerPoints: datatypes.NewJSONType(dao.WinnerPoints{
			First:  e.WinnerPoints.First,
			Second: e.WinnerPoints.Second,
			Third:  e.WinnerPoints.Third,
		}),
	}
}

func (r *EventRepository) daoToDomain(e dao.Event) domain.Event {
	winners := e.WinnerPoints.Data()

	return domain.Event{
		ID:                  e.ID,
		ThemedName:          e.ThemedEventName,
		DisplayName:         e.Name,
		Type:                domain.EventType(e.EventType),
		Category:            e.Category,
		Day:                 e.Day,
		Solo:                e.Solo,
		Group:               e.Group,
		ParticipationPoints: e.ParticipationPoints,
		WinnerPoints: domain.WinnerPoints{
			First:  winners.First,
			Second: winners.Second,
			Third:  winners.Third,
		},
	}
}
