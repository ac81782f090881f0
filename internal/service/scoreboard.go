package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ubuntu-fest/leaderboard-api/internal/catalog"
	"github.com/ubuntu-fest/leaderboard-api/internal/domain"
	"github.com/ubuntu-fest/leaderboard-api/internal/repository"
	"github.com/ubuntu-fest/leaderboard-api/internal/store"
)

var (
	ErrCollegeExists         = repository.ErrCollegeExists
	ErrCollegeNotFound       = repository.ErrCollegeNotFound
	ErrParticipationNotFound = repository.ErrParticipationNotFound
	ErrInsufficientPoints    = repository.ErrInsufficientPoints
	ErrEventNotFound         = errors.New("event not found")
	ErrInvalidCollegeName    = errors.New("college name is required")
	ErrInvalidPoints         = errors.New("points must be greater than zero")
	ErrMissingReason         = errors.New("a reason is required for deductions")
	ErrInvalidEvent          = errors.New("event key and label are required")
)

type LedgerRepository interface {
	CreateCollege(ctx context.Context, name string) (domain.College, error)
	FindColleges(ctx context.Context) ([]domain.College, error)
	FindCollegeByID(ctx context.Context, id uuid.UUID) (domain.College, error)
	DeleteCollege(ctx context.Context, id uuid.UUID) error
	FindParticipations(ctx context.Context) ([]domain.Participation, error)
	CountParticipations(ctx context.Context, collegeID uuid.UUID) (int64, error)
	UpsertParticipation(ctx context.Context, p domain.Participation, guard bool) (domain.Participation, error)
	DeleteParticipation(ctx context.Context, collegeID uuid.UUID, eventID string) (domain.Participation, error)
}

// ChangeSource is satisfied by *realtime.Subscription.
type ChangeSource interface {
	Changes() <-chan domain.Change
}

type AwardCommand struct {
	CollegeID  uuid.UUID
	EventKey   string
	EventLabel string
	Position   domain.Position
	Points     int
}

type DeductCommand struct {
	CollegeID uuid.UUID
	Points    int
	Reason    string
	// ActionKey identifies one logical deduction so a retried request
	// lands on the same row. Minted when empty.
	ActionKey string
}

type ScoreboardOptions struct {
	StrictDeductions bool
}

// Scoreboard owns the cached view of the ledger and every write to it.
// Totals are never computed here; after each write the college is re-read
// so the cache carries the value the database trigger produced.
type Scoreboard struct {
	repo   LedgerRepository
	cache  *store.Cache
	strict bool
	now    func() time.Time

	observersMu sync.RWMutex
	observers   []func()
}

func NewScoreboard(repo LedgerRepository, cache *store.Cache, opts ScoreboardOptions) *Scoreboard {
	return &Scoreboard{
		repo:   repo,
		cache:  cache,
		strict: opts.StrictDeductions,
		now:    time.Now,
	}
}

// OnChange registers fn to run after every change applied to the cache.
func (s *Scoreboard) OnChange(fn func()) {
	s.observersMu.Lock()
	defer s.observersMu.Unlock()

	s.observers = append(s.observers, fn)
}

func (s *Scoreboard) notify() {
	s.observersMu.RLock()
	observers := make([]func(), len(s.observers))
	copy(observers, s.observers)
	s.observersMu.RUnlock()

	for _, fn := range observers {
		fn()
	}
}

func (s *Scoreboard) FetchColleges(ctx context.Context) error {
	colleges, err := s.repo.FindColleges(ctx)
	if err != nil {
		return fmt.Errorf("s.repo.FindColleges -> %w", err)
	}

	participations, err := s.repo.FindParticipations(ctx)
	if err != nil {
		return fmt.Errorf("s.repo.FindParticipations -> %w", err)
	}

	s.cache.Replace(colleges, participations)
	s.notify()

	return nil
}

func (s *Scoreboard) AddCollege(ctx context.Context, name string) (domain.College, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.College{}, ErrInvalidCollegeName
	}
	if _, ok := s.cache.CollegeByName(name); ok {
		return domain.College{}, ErrCollegeExists
	}

	college, err := s.repo.CreateCollege(ctx, name)
	if err != nil {
		return domain.College{}, fmt.Errorf("s.repo.CreateCollege -> %w", err)
	}

	s.cache.PutCollege(college)
	s.notify()

	return college, nil
}

// RemoveCollege deletes the college and, through the cascade, its
// participations. The returned count is taken before the delete.
func (s *Scoreboard) RemoveCollege(ctx context.Context, id uuid.UUID) (domain.CollegeRemoval, error) {
	college, err := s.college(ctx, id)
	if err != nil {
		return domain.CollegeRemoval{}, err
	}

	count, err := s.repo.CountParticipations(ctx, id)
	if err != nil {
		return domain.CollegeRemoval{}, fmt.Errorf("s.repo.CountParticipations -> %w", err)
	}

	if err := s.repo.DeleteCollege(ctx, id); err != nil {
		return domain.CollegeRemoval{}, fmt.Errorf("s.repo.DeleteCollege -> %w", err)
	}

	s.cache.DeleteCollege(id)
	s.notify()

	return domain.CollegeRemoval{College: college, Participations: count}, nil
}

func (s *Scoreboard) Award(ctx context.Context, cmd AwardCommand) (domain.Participation, error) {
	if cmd.Points <= 0 {
		return domain.Participation{}, ErrInvalidPoints
	}
	if strings.TrimSpace(cmd.EventKey) == "" || strings.TrimSpace(cmd.EventLabel) == "" {
		return domain.Participation{}, ErrInvalidEvent
	}
	if _, err := domain.ParsePosition(string(cmd.Position)); err != nil {
		return domain.Participation{}, err
	}

	if _, err := s.college(ctx, cmd.CollegeID); err != nil {
		return domain.Participation{}, err
	}

	return s.write(ctx, domain.Participation{
		CollegeID: cmd.CollegeID,
		EventID:   cmd.EventKey,
		EventName: cmd.EventLabel,
		Position:  cmd.Position,
		Points:    cmd.Points,
	}, false)
}

// AwardFromCatalog awards a catalog event. Participant awards are worth the
// per-participant value times headcount.
func (s *Scoreboard) AwardFromCatalog(ctx context.Context, collegeID uuid.UUID, eventID string, position domain.Position, headcount int) (domain.Participation, error) {
	event, ok := catalog.ByID(eventID)
	if !ok {
		return domain.Participation{}, ErrEventNotFound
	}

	return s.Award(ctx, AwardCommand{
		CollegeID:  collegeID,
		EventKey:   event.ID,
		EventLabel: event.ThemedName,
		Position:   position,
		Points:     event.PointsFor(position, headcount),
	})
}

func (s *Scoreboard) AwardCustom(ctx context.Context, collegeID uuid.UUID, points int, actionKey string) (domain.Participation, error) {
	if actionKey == "" {
		actionKey = uuid.NewString()
	}

	return s.Award(ctx, AwardCommand{
		CollegeID:  collegeID,
		EventKey:   domain.CustomEventKey(actionKey),
		EventLabel: domain.CustomAwardLabel,
		Position:   domain.PositionParticipant,
		Points:     points,
	})
}

// Deduct records a negative participation. The balance check reads the
// cache; with strict deductions enabled the store repeats it under a row
// lock.
func (s *Scoreboard) Deduct(ctx context.Context, cmd DeductCommand) (domain.Participation, error) {
	if cmd.Points <= 0 {
		return domain.Participation{}, ErrInvalidPoints
	}
	reason := strings.TrimSpace(cmd.Reason)
	if reason == "" {
		return domain.Participation{}, ErrMissingReason
	}

	college, err := s.college(ctx, cmd.CollegeID)
	if err != nil {
		return domain.Participation{}, err
	}

	key := cmd.ActionKey
	if key == "" {
		key = uuid.NewString()
	}
	eventKey := domain.DeductionEventKey(key)

	// A retried deduction replaces its own row, so that row's points are
	// still available to it.
	available := college.TotalPoints
	if existing, ok := s.cache.Participation(cmd.CollegeID, eventKey); ok {
		available -= existing.Points
	}
	if cmd.Points > available {
		return domain.Participation{}, ErrInsufficientPoints
	}

	return s.write(ctx, domain.Participation{
		CollegeID: cmd.CollegeID,
		EventID:   eventKey,
		EventName: domain.DeductionLabel(reason),
		Position:  domain.PositionParticipant,
		Points:    -cmd.Points,
	}, s.strict)
}

func (s *Scoreboard) RemoveParticipation(ctx context.Context, collegeID uuid.UUID, eventKey string) (domain.Participation, error) {
	deleted, err := s.repo.DeleteParticipation(ctx, collegeID, eventKey)
	if err != nil {
		return domain.Participation{}, fmt.Errorf("s.repo.DeleteParticipation -> %w", err)
	}

	s.cache.DeleteParticipationByKey(collegeID, eventKey)
	s.refreshCollege(ctx, collegeID)
	s.notify()

	return deleted, nil
}

func (s *Scoreboard) write(ctx context.Context, p domain.Participation, guard bool) (domain.Participation, error) {
	p.Timestamp = s.now().UTC()

	stored, err := s.repo.UpsertParticipation(ctx, p, guard)
	if err != nil {
		return domain.Participation{}, fmt.Errorf("s.repo.UpsertParticipation -> %w", err)
	}

	s.cache.PutParticipation(stored)
	s.refreshCollege(ctx, p.CollegeID)
	s.notify()

	return stored, nil
}

// refreshCollege pulls the trigger-maintained total after a write. A failure
// here is logged only: the write itself succeeded and the next fetch or
// notification corrects the cache.
func (s *Scoreboard) refreshCollege(ctx context.Context, id uuid.UUID) {
	college, err := s.repo.FindCollegeByID(ctx, id)
	if err != nil {
		zap.L().Warn("scoreboard: refresh college failed",
			zap.String("college_id", id.String()), zap.Error(err))
		return
	}
	s.cache.PutCollege(college)
}

func (s *Scoreboard) college(ctx context.Context, id uuid.UUID) (domain.College, error) {
	if college, ok := s.cache.College(id); ok {
		return college, nil
	}

	college, err := s.repo.FindCollegeByID(ctx, id)
	if err != nil {
		return domain.College{}, fmt.Errorf("s.repo.FindCollegeByID -> %w", err)
	}
	s.cache.PutCollege(college)

	return college, nil
}

func (s *Scoreboard) Leaderboard() []domain.College {
	return s.cache.Colleges()
}

func (s *Scoreboard) Colleges() []domain.College {
	return s.cache.Colleges()
}

func (s *Scoreboard) College(id uuid.UUID) (domain.College, []domain.Participation, error) {
	college, ok := s.cache.College(id)
	if !ok {
		return domain.College{}, nil, ErrCollegeNotFound
	}

	return college, s.cache.ParticipationsOf(id), nil
}

func (s *Scoreboard) Participations() []domain.Participation {
	return s.cache.Participations()
}

func (s *Scoreboard) History(filter domain.HistoryFilter) []domain.HistoryEntry {
	return domain.BuildHistory(s.cache.Colleges(), s.cache.Participations(), filter)
}

func (s *Scoreboard) HistoryStats() domain.HistoryStats {
	return domain.SummarizeHistory(s.cache.Participations())
}

func (s *Scoreboard) Events(filter catalog.Filter) []domain.Event {
	return catalog.Find(filter)
}

func (s *Scoreboard) Stats() domain.DashboardStats {
	colleges := s.cache.Colleges()
	summary := catalog.Summarize()

	stats := domain.DashboardStats{
		TotalEvents:         summary.Total,
		TotalColleges:       len(colleges),
		TotalParticipations: len(s.cache.Participations()),
		EventsByType:        summary.ByType,
	}
	for _, c := range colleges {
		stats.TotalPointsAwarded += c.TotalPoints
	}

	return stats
}

// Sync applies changes from src until it closes or ctx is done. Participation
// changes that arrive back to back, such as a college's cascade delete, share
// one refetch taken once the buffered changes are drained.
func (s *Scoreboard) Sync(ctx context.Context, src ChangeSource) {
	changes := src.Changes()
	pending := false
	for {
		if pending && len(changes) == 0 {
			s.refetch(ctx)
			pending = false
		}

		select {
		case <-ctx.Done():
			return
		case change, ok := <-changes:
			if !ok {
				if pending {
					s.refetch(ctx)
				}
				return
			}
			if change.Type == domain.ChangeResync {
				pending = false
			}
			if s.merge(ctx, change) {
				pending = true
			}
		}
	}
}

// Apply merges one change into the cache. Applying the same change twice
// leaves the cache as applying it once.
func (s *Scoreboard) Apply(ctx context.Context, change domain.Change) {
	if s.merge(ctx, change) {
		s.refetch(ctx)
	}
}

// merge reports whether the change needs a full refetch to settle totals.
func (s *Scoreboard) merge(ctx context.Context, change domain.Change) bool {
	switch {
	case change.Type == domain.ChangeResync:
		if err := s.FetchColleges(ctx); err != nil {
			zap.L().Error("scoreboard: resync failed", zap.Error(err))
		}
		return false

	case change.Table == domain.TableColleges && change.College != nil:
		if change.Type == domain.ChangeDelete {
			s.cache.DeleteCollege(change.College.ID)
		} else {
			s.cache.PutCollege(*change.College)
		}
		s.notify()
		return false

	case change.Table == domain.TableParticipations && change.Participation != nil:
		if change.Type == domain.ChangeDelete {
			s.cache.DeleteParticipation(change.Participation.ID)
		} else {
			s.cache.PutParticipation(*change.Participation)
		}
		return true

	default:
		zap.L().Warn("scoreboard: ignoring change",
			zap.String("table", string(change.Table)), zap.String("type", string(change.Type)))
		return false
	}
}

func (s *Scoreboard) refetch(ctx context.Context) {
	if err := s.FetchColleges(ctx); err != nil {
		zap.L().Error("scoreboard: refetch after participation change failed", zap.Error(err))
		s.notify()
	}
}
