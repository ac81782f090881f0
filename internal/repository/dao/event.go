package dao

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WinnerPoints struct {
	First  int `json:"1st"`
	Second int `json:"2nd"`
	Third  int `json:"3rd"`
}

type Event struct {
	ID string `gorm:"primaryKey"`

	ThemedEventName     string `gorm:"not null"`
	Name                string `gorm:"column:event;not null"`
	EventType           string `gorm:"not null;check:chk_events_event_type,event_type IN ('Flagship','Large','Small')"`
	Category            string `gorm:"not null"`
	Day                 int    `gorm:"not null;check:chk_events_day,day IN (1,2)"`
	Solo                *int
	Group               *int `gorm:"column:group_entry"`
	ParticipationPoints int  `gorm:"not null"`

	WinnerPoints datatypes.JSONType[WinnerPoints] `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

// Seed writes the catalog. Existing rows are refreshed so the table always
// mirrors the compiled-in catalog.
func (d *EventDAO) Seed(ctx context.Context, events []Event) error {
	if len(events) == 0 {
		return nil
	}

	return d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"themed_event_name", "event", "event_type", "category", "day",
			"solo", "group_entry", "participation_points", "winner_points",
		}),
	}).Create(&events).Error
}

func (d *EventDAO) FindAll(ctx context.Context) ([]Event, error) {
	var events []Event

	result := d.db.WithContext(ctx).Order("day ASC").Order("id ASC").Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}
