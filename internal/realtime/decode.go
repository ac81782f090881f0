// Package realtime turns Postgres row-change notifications into
// domain.Change values.
package realtime

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ubuntu-fest/leaderboard-api/internal/domain"
)

var ErrUnknownChange = errors.New("unknown change")

type payload struct {
	Table string          `json:"table"`
	Type  string          `json:"type"`
	New   json.RawMessage `json:"new"`
	Old   json.RawMessage `json:"old"`
}

// row picks the record that identifies the change: the new row for inserts
// and updates, the old one for deletes.
func (p payload) row() json.RawMessage {
	if domain.ChangeType(p.Type) == domain.ChangeDelete {
		return p.Old
	}
	return p.New
}

func DecodeChange(data []byte) (domain.Change, error) {
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return domain.Change{}, fmt.Errorf("json.Unmarshal -> %w", err)
	}

	change := domain.Change{
		Table: domain.ChangeTable(p.Table),
		Type:  domain.ChangeType(p.Type),
	}

	switch change.Type {
	case domain.ChangeInsert, domain.ChangeUpdate, domain.ChangeDelete:
	default:
		return domain.Change{}, fmt.Errorf("%w: type %q", ErrUnknownChange, p.Type)
	}

	row := p.row()
	if len(row) == 0 || string(row) == "null" {
		return domain.Change{}, fmt.Errorf("%w: %s %s without row", ErrUnknownChange, p.Table, p.Type)
	}

	switch change.Table {
	case domain.TableColleges:
		var c domain.College
		if err := json.Unmarshal(row, &c); err != nil {
			return domain.Change{}, fmt.Errorf("json.Unmarshal college -> %w", err)
		}
		change.College = &c
	case domain.TableParticipations:
		var pt domain.Participation
		if err := json.Unmarshal(row, &pt); err != nil {
			return domain.Change{}, fmt.Errorf("json.Unmarshal participation -> %w", err)
		}
		change.Participation = &pt
	default:
		return domain.Change{}, fmt.Errorf("%w: table %q", ErrUnknownChange, p.Table)
	}

	return change, nil
}
