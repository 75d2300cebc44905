package framework

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition timeout")
}

func TestLoopDrainsUntilIdle(t *testing.T) {
	var pumps, budget int32
	atomic.StoreInt32(&budget, 5)

	loop := NewLoop()
	loop.Interval = time.Hour // only TriggerNext may wake it
	loop.AddPumper(PumpFunc(func() bool {
		n := atomic.AddInt32(&pumps, 1)
		return n <= atomic.LoadInt32(&budget)
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- loop.Run(ctx)
	}()

	// The first drain pumps through the budget plus one idle probe.
	waitFor(t, func() bool { return atomic.LoadInt32(&pumps) >= 6 })

	// Idle now; a wakeup runs exactly one more drain round.
	before := atomic.LoadInt32(&pumps)
	atomic.StoreInt32(&budget, before)
	loop.TriggerNext()
	waitFor(t, func() bool { return atomic.LoadInt32(&pumps) > before })

	cancel()
	select {
	case err := <-done:
		require.Equal(t, context.Canceled, err)
	case <-time.After(time.Second):
		t.Fatal("loop did not stop")
	}
}

func TestErrorList(t *testing.T) {
	errs := ErrorList{}.Append(nil, context.DeadlineExceeded, nil)
	require.Len(t, errs, 1)
	require.Error(t, errs.Err())
	require.Nil(t, ErrorList{}.Err())
}
