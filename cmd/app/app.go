package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ubuntu-fest/leaderboard-api/internal/api"
	"github.com/ubuntu-fest/leaderboard-api/internal/archive"
	"github.com/ubuntu-fest/leaderboard-api/internal/catalog"
	"github.com/ubuntu-fest/leaderboard-api/internal/config"
	"github.com/ubuntu-fest/leaderboard-api/internal/db"
	"github.com/ubuntu-fest/leaderboard-api/internal/jobs"
	"github.com/ubuntu-fest/leaderboard-api/internal/logger"
	"github.com/ubuntu-fest/leaderboard-api/internal/realtime"
	"github.com/ubuntu-fest/leaderboard-api/internal/repository"
	"github.com/ubuntu-fest/leaderboard-api/internal/repository/dao"
)

const shutdownTimeout = 10 * time.Second

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}
	if err = logger.SetLevel(conf.API.LogLevel); err != nil {
		return fmt.Errorf("failed to set log level -> %w", err)
	}
	conf.Watch(func(next *config.AppConfig) {
		if err := logger.SetLevel(next.API.LogLevel); err != nil {
			zap.L().Warn("keeping previous log level", zap.Error(err))
		}
	})

	dsn := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dsn != "" {
		postgresDB, err = db.OpenPostgresWithURL(dsn)
	} else {
		dsn = conf.Postgres.DSN()
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	if err = dao.InitTables(postgresDB); err != nil {
		return fmt.Errorf("failed to initialize tables -> %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = seedEvents(ctx, postgresDB); err != nil {
		return fmt.Errorf("failed to seed events -> %w", err)
	}

	s, err := api.NewServer(conf, postgresDB)
	if err != nil {
		return fmt.Errorf("failed to initialize server -> %w", err)
	}

	// The listener resyncs on connect, so a failed first load is not fatal.
	if err = s.Scoreboard.FetchColleges(ctx); err != nil {
		zap.L().Warn("initial fetch failed", zap.Error(err))
	}

	go s.Hub.Run(ctx)

	sub := realtime.NewListener(dsn, conf.Sync.ReconnectMaxInterval).Subscribe(ctx)
	defer sub.Close()
	go s.Scoreboard.Sync(ctx, sub)

	runner, err := startJobs(ctx, conf, s)
	if err != nil {
		return fmt.Errorf("failed to schedule jobs -> %w", err)
	}
	defer func() {
		if err := runner.Shutdown(); err != nil {
			zap.L().Warn("jobs shutdown", zap.Error(err))
		}
	}()

	srv := &http.Server{
		Addr:              ":" + s.Config.API.Port,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		zap.L().Info(fmt.Sprintf("starting server at %v", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err = <-serveErr:
		if err != nil {
			return fmt.Errorf("failed to start the server -> %w", err)
		}
	case <-ctx.Done():
	}

	zap.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down the server -> %w", err)
	}

	return nil
}

func seedEvents(ctx context.Context, postgresDB *gorm.DB) error {
	repo := repository.NewEventRepository(dao.NewEventDAO(postgresDB))
	if err := repo.SeedEvents(ctx, catalog.All()); err != nil {
		return err
	}

	events, err := repo.FindEvents(ctx)
	if err != nil {
		return err
	}
	zap.L().Info("event catalog seeded", zap.Int("events", len(events)))

	return nil
}

func startJobs(ctx context.Context, conf *config.AppConfig, s *api.Server) (*jobs.Runner, error) {
	runner, err := jobs.NewRunner()
	if err != nil {
		return nil, err
	}

	if err = runner.ScheduleRefresh(conf.Sync.RefreshInterval, s.Scoreboard); err != nil {
		return nil, err
	}

	if conf.Archive.Enabled {
		client, err := archive.NewS3Client(ctx, conf.Archive)
		if err != nil {
			return nil, err
		}
		archiver := archive.NewArchiver(client, s.Scoreboard, conf.Archive)
		if err = runner.ScheduleArchive(conf.Archive.Interval, archiver); err != nil {
			return nil, err
		}
	}

	runner.Start()

	return runner, nil
}
