package realtime

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/ubuntu-fest/leaderboard-api/internal/domain"
	"github.com/ubuntu-fest/leaderboard-api/internal/repository/dao"
)

const (
	defaultInitialInterval = 500 * time.Millisecond
	changesBuffer          = 64
)

// NotificationConn is the part of *pgx.Conn the listener needs.
type NotificationConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	WaitForNotification(ctx context.Context) (*pgconn.Notification, error)
	Close(ctx context.Context) error
}

type ConnectFunc func(ctx context.Context) (NotificationConn, error)

type Listener struct {
	connect         ConnectFunc
	channels        []string
	initialInterval time.Duration
	maxInterval     time.Duration
}

func NewListener(dsn string, reconnectMaxInterval time.Duration) *Listener {
	return newListener(func(ctx context.Context) (NotificationConn, error) {
		return pgx.Connect(ctx, dsn)
	}, reconnectMaxInterval)
}

func newListener(connect ConnectFunc, reconnectMaxInterval time.Duration) *Listener {
	initial := defaultInitialInterval
	if reconnectMaxInterval > 0 && reconnectMaxInterval < initial {
		initial = reconnectMaxInterval
	}

	return &Listener{
		connect:         connect,
		channels:        []string{dao.CollegesChannel, dao.ParticipationsChannel},
		initialInterval: initial,
		maxInterval:     reconnectMaxInterval,
	}
}

// Subscribe starts listening in the background. The subscription emits a
// domain.ChangeResync every time a connection is (re)established, since
// notifications sent while disconnected are lost.
func (l *Listener) Subscribe(ctx context.Context) *Subscription {
	ctx, cancel := context.WithCancel(ctx)

	s := &Subscription{
		listener: l,
		changes:  make(chan domain.Change, changesBuffer),
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	go s.run(ctx)

	return s
}

type Subscription struct {
	listener *Listener
	changes  chan domain.Change
	cancel   context.CancelFunc
	done     chan struct{}
	once     sync.Once
}

// Changes is closed once the subscription stops.
func (s *Subscription) Changes() <-chan domain.Change {
	return s.changes
}

func (s *Subscription) Close() {
	s.once.Do(func() {
		s.cancel()
		<-s.done
	})
}

func (s *Subscription) run(ctx context.Context) {
	defer close(s.done)
	defer close(s.changes)

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.listener.initialInterval
	b.MaxElapsedTime = 0
	if s.listener.maxInterval > 0 {
		b.MaxInterval = s.listener.maxInterval
	}

	for {
		conn, err := s.dial(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			wait := b.NextBackOff()
			zap.L().Warn("realtime: connect failed", zap.Error(err), zap.Duration("retry_in", wait))
			if !sleep(ctx, wait) {
				return
			}
			continue
		}
		b.Reset()
		zap.L().Info("realtime: listening", zap.Strings("channels", s.listener.channels))

		if !s.emit(ctx, domain.Change{Type: domain.ChangeResync}) {
			_ = conn.Close(context.Background())
			return
		}

		err = s.receive(ctx, conn)
		_ = conn.Close(context.Background())
		if ctx.Err() != nil {
			return
		}
		zap.L().Warn("realtime: connection lost", zap.Error(err))
	}
}

func (s *Subscription) dial(ctx context.Context) (NotificationConn, error) {
	conn, err := s.listener.connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.listener.connect -> %w", err)
	}

	for _, ch := range s.listener.channels {
		if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{ch}.Sanitize()); err != nil {
			_ = conn.Close(context.Background())
			return nil, fmt.Errorf("conn.Exec LISTEN %s -> %w", ch, err)
		}
	}

	return conn, nil
}

func (s *Subscription) receive(ctx context.Context, conn NotificationConn) error {
	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("conn.WaitForNotification -> %w", err)
		}

		change, err := DecodeChange([]byte(n.Payload))
		if err != nil {
			zap.L().Warn("realtime: dropping notification",
				zap.String("channel", n.Channel), zap.Error(err))
			continue
		}

		if !s.emit(ctx, change) {
			return ctx.Err()
		}
	}
}

func (s *Subscription) emit(ctx context.Context, change domain.Change) bool {
	select {
	case s.changes <- change:
		return true
	case <-ctx.Done():
		return false
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
