package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const collegeNameConstraint = "uni_colleges_name"

var (
	ErrCollegeExists   = errors.New("college already exists")
	ErrCollegeNotFound = errors.New("college not found")
)

type College struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	Name        string `gorm:"uniqueIndex:uni_colleges_name;not null"`
	TotalPoints int    `gorm:"not null;default:0"`

	Participations []Participation `gorm:"foreignKey:CollegeID;constraint:OnDelete:CASCADE"`

	// Timestamps come from the database clock, the same clock the total
	// trigger stamps updated_at with.
	CreatedAt time.Time `gorm:"not null;default:now();autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"not null;default:now();autoUpdateTime:false"`
}

type CollegeDAO struct {
	db *gorm.DB
}

func NewCollegeDAO(db *gorm.DB) *CollegeDAO {
	return &CollegeDAO{
		db: db,
	}
}

// Insert creates a college with a zero total and returns the stored row.
// TotalPoints and the timestamps on the argument are ignored.
func (d *CollegeDAO) Insert(ctx context.Context, college College) (College, error) {
	if college.ID == uuid.Nil {
		college.ID = uuid.New()
	}
	college.TotalPoints = 0
	college.CreatedAt = time.Time{}
	college.UpdatedAt = time.Time{}

	result := d.db.WithContext(ctx).Omit("Participations").Create(&college)
	if result.Error != nil {
		if isUniqueViolation(result.Error, collegeNameConstraint) {
			return College{}, ErrCollegeExists
		}

		return College{}, result.Error
	}

	return d.FindByID(ctx, college.ID)
}

func (d *CollegeDAO) FindAll(ctx context.Context) ([]College, error) {
	var colleges []College

	result := d.db.WithContext(ctx).
		Order("total_points DESC").
		Order("created_at ASC").
		Order("id ASC").
		Find(&colleges)
	if result.Error != nil {
		return nil, result.Error
	}

	return colleges, nil
}

func (d *CollegeDAO) FindByID(ctx context.Context, id uuid.UUID) (College, error) {
	var college College

	result := d.db.WithContext(ctx).First(&college, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return College{}, ErrCollegeNotFound
		}

		return College{}, result.Error
	}

	return college, nil
}

// Delete removes the college; its participations go with it through the
// ON DELETE CASCADE foreign key.
func (d *CollegeDAO) Delete(ctx context.Context, id uuid.UUID) error {
	result := d.db.WithContext(ctx).Delete(&College{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCollegeNotFound
	}

	return nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == pgerrcode.UniqueViolation &&
		(pgErr.ConstraintName == constraint || constraint == "")
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation
}
