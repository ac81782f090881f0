package domain

type ChangeTable string

const (
	TableColleges       ChangeTable = "colleges"
	TableParticipations ChangeTable = "participations"
)

type ChangeType string

const (
	ChangeInsert ChangeType = "INSERT"
	ChangeUpdate ChangeType = "UPDATE"
	ChangeDelete ChangeType = "DELETE"
	// ChangeResync means notifications may have been missed and the
	// receiver should reload everything.
	ChangeResync ChangeType = "RESYNC"
)

// Change is one row-level notification. For deletes the row carries the old
// values; only its primary key is relied upon.
type Change struct {
	Table         ChangeTable
	Type          ChangeType
	College       *College
	Participation *Participation
}
