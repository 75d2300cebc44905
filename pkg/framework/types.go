// Package framework provides the cooperative runtime: background
// runners and the poll loop that drives bridge pump cycles.
package framework

import (
	"context"
)

// Named is an abstraction for things with a name.
type Named interface {
	Name() string
}

// Runnable defines a generic interface for background runners.
type Runnable interface {
	Run(context.Context) error
}

// Pumper advances bounded, non-blocking work by one step. Pump
// reports whether any work was done, letting the loop drain a burst
// before going back to sleep.
type Pumper interface {
	Pump() bool
}

// PumpFunc is the func form of Pumper.
type PumpFunc func() bool

// Pump implements Pumper.
func (f PumpFunc) Pump() bool {
	return f()
}
