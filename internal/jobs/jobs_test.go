package jobs

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingFetcher struct {
	calls atomic.Int32
}

func (f *countingFetcher) FetchColleges(context.Context) error {
	f.calls.Add(1)
	return nil
}

func TestRunner_ScheduleRefresh(t *testing.T) {
	r, err := NewRunner()
	require.NoError(t, err)

	f := &countingFetcher{}
	require.NoError(t, r.ScheduleRefresh(20*time.Millisecond, f))

	r.Start()
	assert.Eventually(t, func() bool { return f.calls.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, r.Shutdown())
}

func TestRunner_RejectsNonPositiveInterval(t *testing.T) {
	r, err := NewRunner()
	require.NoError(t, err)
	r.Start()
	defer func() { _ = r.Shutdown() }()

	assert.Error(t, r.ScheduleRefresh(0, &countingFetcher{}))
}
