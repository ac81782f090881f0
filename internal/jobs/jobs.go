package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

type Fetcher interface {
	FetchColleges(ctx context.Context) error
}

type Uploader interface {
	Upload(ctx context.Context) (string, error)
}

// Runner owns the background schedule: a periodic full reload of the ledger
// and, when configured, periodic snapshot uploads.
type Runner struct {
	scheduler gocron.Scheduler
	timeout   time.Duration
}

func NewRunner() (*Runner, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("gocron.NewScheduler -> %w", err)
	}

	return &Runner{
		scheduler: s,
		timeout:   30 * time.Second,
	}, nil
}

func (r *Runner) ScheduleRefresh(every time.Duration, f Fetcher) error {
	return r.schedule("refresh-colleges", every, func(ctx context.Context) error {
		return f.FetchColleges(ctx)
	})
}

func (r *Runner) ScheduleArchive(every time.Duration, u Uploader) error {
	return r.schedule("archive-snapshot", every, func(ctx context.Context) error {
		_, err := u.Upload(ctx)
		return err
	})
}

func (r *Runner) schedule(name string, every time.Duration, fn func(ctx context.Context) error) error {
	if every <= 0 {
		return fmt.Errorf("job %s: interval must be positive, got %s", name, every)
	}

	_, err := r.scheduler.NewJob(
		gocron.DurationJob(every),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
			defer cancel()

			if err := fn(ctx); err != nil {
				zap.L().Error("job failed", zap.String("job", name), zap.Error(err))
			}
		}),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("r.scheduler.NewJob %s -> %w", name, err)
	}

	return nil
}

func (r *Runner) Start() {
	r.scheduler.Start()
}

func (r *Runner) Shutdown() error {
	return r.scheduler.Shutdown()
}
