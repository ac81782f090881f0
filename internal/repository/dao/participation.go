package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrParticipationNotFound = errors.New("participation not found")
	ErrInsufficientPoints    = errors.New("insufficient points")
)

type Participation struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	CollegeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uni_participations_college_event,priority:1"`
	EventID   string    `gorm:"not null;uniqueIndex:uni_participations_college_event,priority:2"`
	EventName string    `gorm:"not null"`
	Position  string    `gorm:"not null;check:chk_participations_position,position IN ('participant','1st','2nd','3rd')"`
	Points    int       `gorm:"not null"`
	Timestamp time.Time `gorm:"not null;index"`
}

type ParticipationDAO struct {
	db *gorm.DB
}

func NewParticipationDAO(db *gorm.DB) *ParticipationDAO {
	return &ParticipationDAO{
		db: db,
	}
}

// Upsert inserts p or, when the college already has a row for p.EventID,
// replaces that row's label, position, points and timestamp. The stored row is
// returned, so a replaced row keeps its original id.
func (d *ParticipationDAO) Upsert(ctx context.Context, p Participation) (Participation, error) {
	var stored Participation

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		stored, err = upsertParticipation(tx, p)
		return err
	})
	if err != nil {
		return Participation{}, err
	}

	return stored, nil
}

// UpsertGuarded is Upsert with the college row locked and its balance
// re-checked inside the transaction: the write fails with
// ErrInsufficientPoints when it would leave the college below zero.
func (d *ParticipationDAO) UpsertGuarded(ctx context.Context, p Participation) (Participation, error) {
	var stored Participation

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var college College
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&college, "id = ?", p.CollegeID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCollegeNotFound
			}
			return err
		}

		balance := college.TotalPoints + p.Points

		var existing Participation
		err = tx.Where("college_id = ? AND event_id = ?", p.CollegeID, p.EventID).First(&existing).Error
		switch {
		case err == nil:
			balance -= existing.Points
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		if balance < 0 {
			return ErrInsufficientPoints
		}

		stored, err = upsertParticipation(tx, p)
		return err
	})
	if err != nil {
		return Participation{}, err
	}

	return stored, nil
}

func upsertParticipation(tx *gorm.DB, p Participation) (Participation, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	result := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "college_id"}, {Name: "event_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"event_name", "position", "points", "timestamp"}),
	}).Create(&p)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return Participation{}, ErrCollegeNotFound
		}
		return Participation{}, result.Error
	}

	var stored Participation
	if err := tx.Where("college_id = ? AND event_id = ?", p.CollegeID, p.EventID).First(&stored).Error; err != nil {
		return Participation{}, err
	}

	return stored, nil
}

func (d *ParticipationDAO) FindAll(ctx context.Context) ([]Participation, error) {
	var participations []Participation

	result := d.db.WithContext(ctx).Order("timestamp DESC").Find(&participations)
	if result.Error != nil {
		return nil, result.Error
	}

	return participations, nil
}

func (d *ParticipationDAO) CountByCollegeID(ctx context.Context, collegeID uuid.UUID) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Participation{}).Where("college_id = ?", collegeID).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

// Delete removes the row keyed by (collegeID, eventID) and returns it.
func (d *ParticipationDAO) Delete(ctx context.Context, collegeID uuid.UUID, eventID string) (Participation, error) {
	var deleted []Participation

	result := d.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("college_id = ? AND event_id = ?", collegeID, eventID).
		Delete(&deleted)
	if result.Error != nil {
		return Participation{}, result.Error
	}
	if result.RowsAffected == 0 || len(deleted) == 0 {
		return Participation{}, ErrParticipationNotFound
	}

	return deleted[0], nil
}
