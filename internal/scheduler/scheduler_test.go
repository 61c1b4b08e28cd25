package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gauravcr7rm/equal-weighted-stock-index/utils"
)

func TestTaskWithRecover_PanicDoesNotEscape(t *testing.T) {
	s := New()

	task := s.taskWithRecover(func(ctx context.Context) error {
		panic("boom")
	}, "panicking job")

	assert.NotPanics(t, func() { task(context.Background()) })
}

func TestTaskWithRecover_ErrorDoesNotEscape(t *testing.T) {
	s := New()

	task := s.taskWithRecover(func(ctx context.Context) error {
		return errors.New("job error")
	}, "failing job")

	assert.NotPanics(t, func() { task(context.Background()) })
}

func TestTaskWithRecover_FreshRequestIDPerRun(t *testing.T) {
	s := New()

	ids := make([]string, 0, 2)
	task := s.taskWithRecover(func(ctx context.Context) error {
		ids = append(ids, utils.GetRequestIDFromCtx(ctx))
		return nil
	}, "traced job")

	task(context.Background())
	task(context.Background())

	require.Len(t, ids, 2)
	assert.NotEmpty(t, ids[0])
	assert.NotEmpty(t, ids[1])
	assert.NotEqual(t, ids[0], ids[1])
}

func TestNewCrontabJob_InvalidCrontabPanics(t *testing.T) {
	s := New()

	assert.Panics(t, func() {
		s.NewCrontabJob("broken job", func(ctx context.Context) error { return nil }, "not a crontab", false)
	})
}

func TestScheduler_StartImmediatelyRunsJob(t *testing.T) {
	s := New()

	ran := make(chan struct{})
	s.NewIntervalJob("immediate job", func(ctx context.Context) error {
		close(ran)
		return nil
	}, time.Hour, true)

	s.Start()
	defer s.Stop()

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}
}
