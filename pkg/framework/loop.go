package framework

import (
	"context"
	"time"
)

// Loop drives Pumpers cooperatively: every iteration pumps all of
// them repeatedly until none reports progress, then sleeps until the
// next tick or an explicit TriggerNext.
type Loop struct {
	Interval time.Duration

	pumpers []Pumper
	runners []Runnable

	wakeUpCh chan struct{}
}

// DefaultInterval is the idle poll interval.
const DefaultInterval = time.Millisecond

// NewLoop creates a Loop.
func NewLoop() *Loop {
	return &Loop{
		Interval: DefaultInterval,
		wakeUpCh: make(chan struct{}, 1),
	}
}

// AddPumper registers pumpers with the loop. Pumpers that also
// implement Runnable run in the background for the life of the loop.
func (l *Loop) AddPumper(pumpers ...Pumper) *Loop {
	l.pumpers = append(l.pumpers, pumpers...)
	for _, p := range pumpers {
		if runner, ok := p.(Runnable); ok {
			l.runners = append(l.runners, runner)
		}
	}
	return l
}

// AddRunnable adds Runnable implementations.
func (l *Loop) AddRunnable(runnables ...Runnable) *Loop {
	l.runners = append(l.runners, runnables...)
	return l
}

// Run implements Runnable.
func (l *Loop) Run(ctx context.Context) error {
	runner := NewRunnerWith(ctx)
	runner.Go(l.runners...)
	defer runner.Wait()

	interval := l.Interval
	if interval == 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		l.drain()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		case <-l.wakeUpCh:
		}
	}
}

// TriggerNext schedules an immediate iteration. Safe to call from
// any goroutine.
func (l *Loop) TriggerNext() {
	select {
	case l.wakeUpCh <- struct{}{}:
	default:
	}
}

func (l *Loop) drain() {
	for {
		worked := false
		for _, p := range l.pumpers {
			if p.Pump() {
				worked = true
			}
		}
		if !worked {
			return
		}
	}
}
