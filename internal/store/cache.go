// Package store keeps the process-local view of the ledger. Writes are
// idempotent merges keyed by primary key so the same change can arrive from
// a local mutation and from a database notification without doubling up.
package store

import (
	"sync"

	"github.com/google/uuid"

	"github.com/ubuntu-fest/leaderboard-api/internal/domain"
)

type participationKey struct {
	collegeID uuid.UUID
	eventID   string
}

type Cache struct {
	mu sync.RWMutex

	colleges       map[uuid.UUID]domain.College
	participations map[uuid.UUID]domain.Participation
	byKey          map[participationKey]uuid.UUID
}

func New() *Cache {
	return &Cache{
		colleges:       make(map[uuid.UUID]domain.College),
		participations: make(map[uuid.UUID]domain.Participation),
		byKey:          make(map[participationKey]uuid.UUID),
	}
}

// Replace swaps the whole view for a fresh load.
func (c *Cache) Replace(colleges []domain.College, participations []domain.Participation) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.colleges = make(map[uuid.UUID]domain.College, len(colleges))
	for _, college := range colleges {
		c.colleges[college.ID] = college
	}

	c.participations = make(map[uuid.UUID]domain.Participation, len(participations))
	c.byKey = make(map[participationKey]uuid.UUID, len(participations))
	for _, p := range participations {
		c.putParticipation(p)
	}
}

// Colleges returns the leaderboard order.
func (c *Cache) Colleges() []domain.College {
	c.mu.RLock()
	out := make([]domain.College, 0, len(c.colleges))
	for _, college := range c.colleges {
		out = append(out, college)
	}
	c.mu.RUnlock()

	domain.SortLeaderboard(out)
	return out
}

func (c *Cache) College(id uuid.UUID) (domain.College, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	college, ok := c.colleges[id]
	return college, ok
}

func (c *Cache) CollegeByName(name string) (domain.College, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, college := range c.colleges {
		if college.Name == name {
			return college, true
		}
	}
	return domain.College{}, false
}

// Participations returns every ledger row, newest first.
func (c *Cache) Participations() []domain.Participation {
	c.mu.RLock()
	out := make([]domain.Participation, 0, len(c.participations))
	for _, p := range c.participations {
		out = append(out, p)
	}
	c.mu.RUnlock()

	domain.SortParticipations(out)
	return out
}

func (c *Cache) ParticipationsOf(collegeID uuid.UUID) []domain.Participation {
	c.mu.RLock()
	var out []domain.Participation
	for _, p := range c.participations {
		if p.CollegeID == collegeID {
			out = append(out, p)
		}
	}
	c.mu.RUnlock()

	domain.SortParticipations(out)
	return out
}

func (c *Cache) Participation(collegeID uuid.UUID, eventID string) (domain.Participation, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	id, ok := c.byKey[participationKey{collegeID, eventID}]
	if !ok {
		return domain.Participation{}, false
	}
	return c.participations[id], true
}

// PutCollege inserts or replaces a college. A row older than the cached one
// is ignored so a late notification cannot roll a total back.
func (c *Cache) PutCollege(college domain.College) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if current, ok := c.colleges[college.ID]; ok && college.UpdatedAt.Before(current.UpdatedAt) {
		return false
	}
	c.colleges[college.ID] = college
	return true
}

// DeleteCollege drops the college and every participation it owned.
func (c *Cache) DeleteCollege(id uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.colleges[id]
	delete(c.colleges, id)

	for pid, p := range c.participations {
		if p.CollegeID == id {
			c.deleteParticipation(pid)
		}
	}
	return ok
}

func (c *Cache) PutParticipation(p domain.Participation) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.putParticipation(p)
}

func (c *Cache) DeleteParticipation(id uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.deleteParticipation(id)
}

func (c *Cache) DeleteParticipationByKey(collegeID uuid.UUID, eventID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	id, ok := c.byKey[participationKey{collegeID, eventID}]
	if !ok {
		return false
	}
	return c.deleteParticipation(id)
}

// putParticipation must be called with mu held. A row sharing the
// (college, event) key of another row under a different id replaces it.
func (c *Cache) putParticipation(p domain.Participation) {
	key := participationKey{p.CollegeID, p.EventID}

	if prev, ok := c.participations[p.ID]; ok {
		delete(c.byKey, participationKey{prev.CollegeID, prev.EventID})
	}
	if other, ok := c.byKey[key]; ok && other != p.ID {
		delete(c.participations, other)
	}

	c.participations[p.ID] = p
	c.byKey[key] = p.ID
}

func (c *Cache) deleteParticipation(id uuid.UUID) bool {
	p, ok := c.participations[id]
	if !ok {
		return false
	}
	delete(c.participations, id)
	if c.byKey[participationKey{p.CollegeID, p.EventID}] == id {
		delete(c.byKey, participationKey{p.CollegeID, p.EventID})
	}
	return true
}
