package dao

import (
	"fmt"

	"gorm.io/gorm"
)

const (
	CollegesChannel       = "colleges_changes"
	ParticipationsChannel = "participations_changes"
)

// totalPointsSQL keeps colleges.total_points equal to the sum of the college's
// participation points. It runs after every row change on participations.
var totalPointsSQL = []string{
	`CREATE OR REPLACE FUNCTION recompute_college_total_points() RETURNS trigger AS $$
BEGIN
	IF TG_OP = 'INSERT' OR TG_OP = 'UPDATE' THEN
		UPDATE colleges
		SET total_points = (SELECT COALESCE(SUM(points), 0) FROM participations WHERE college_id = NEW.college_id),
			updated_at = now()
		WHERE id = NEW.college_id;
	END IF;

	IF TG_OP = 'DELETE' THEN
		UPDATE colleges
		SET total_points = (SELECT COALESCE(SUM(points), 0) FROM participations WHERE college_id = OLD.college_id),
			updated_at = now()
		WHERE id = OLD.college_id;
	ELSIF TG_OP = 'UPDATE' THEN
		IF OLD.college_id <> NEW.college_id THEN
			UPDATE colleges
			SET total_points = (SELECT COALESCE(SUM(points), 0) FROM participations WHERE college_id = OLD.college_id),
				updated_at = now()
			WHERE id = OLD.college_id;
		END IF;
	END IF;

	RETURN NULL;
END;
$$ LANGUAGE plpgsql`,
	`DROP TRIGGER IF EXISTS participations_recompute_total ON participations`,
	`CREATE TRIGGER participations_recompute_total
	AFTER INSERT OR UPDATE OR DELETE ON participations
	FOR EACH ROW EXECUTE FUNCTION recompute_college_total_points()`,
}

// notifySQL publishes every row change on colleges and participations to the
// <table>_changes channel as {"table", "type", "new", "old"}.
var notifySQL = []string{
	`CREATE OR REPLACE FUNCTION notify_row_change() RETURNS trigger AS $$
DECLARE
	payload json;
BEGIN
	payload := json_build_object(
		'table', TG_TABLE_NAME,
		'type', TG_OP,
		'new', CASE WHEN TG_OP = 'DELETE' THEN NULL ELSE row_to_json(NEW) END,
		'old', CASE WHEN TG_OP = 'INSERT' THEN NULL ELSE row_to_json(OLD) END
	);
	PERFORM pg_notify(TG_TABLE_NAME || '_changes', payload::text);
	RETURN NULL;
END;
$$ LANGUAGE plpgsql`,
	`DROP TRIGGER IF EXISTS colleges_notify ON colleges`,
	`CREATE TRIGGER colleges_notify
	AFTER INSERT OR UPDATE OR DELETE ON colleges
	FOR EACH ROW EXECUTE FUNCTION notify_row_change()`,
	`DROP TRIGGER IF EXISTS participations_notify ON participations`,
	`CREATE TRIGGER participations_notify
	AFTER INSERT OR UPDATE OR DELETE ON participations
	FOR EACH ROW EXECUTE FUNCTION notify_row_change()`,
}

func InitTables(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&College{},
		&Participation{},
		&Event{},
	); err != nil {
		return fmt.Errorf("db.AutoMigrate -> %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, stmt := range append(totalPointsSQL, notifySQL...) {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("tx.Exec -> %w", err)
			}
		}
		return nil
	})
}
