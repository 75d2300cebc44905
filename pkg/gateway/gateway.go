// Package gateway publishes a bridge's application side over MQTT.
package gateway

import (
	"context"
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/bridge.go/pkg/bridge"
	"github.com/robotalks/bridge.go/pkg/transport/mqtt"
)

// PubSub is the messaging surface the gateway needs.
type PubSub interface {
	Sub(topic string, handler mqtt.Handler)
	Pub(topic string, payload []byte)
}

// ReadChunk is the most bytes drained from the bridge per pump.
const ReadChunk = 256

// PendingLimit bounds the transmit backlog held outside the bridge,
// so a flooding publisher cannot grow memory without bound.
const PendingLimit = 64 * 1024

// Gateway exposes a bridge over MQTT topics: payloads published to
// <name>/tx are queued for transmission, received bytes go out on
// <name>/rx, and statistics snapshots on <name>/stats.
//
// Incoming publications land on the MQTT client's goroutine; they
// are staged in a backlog and fed to the bridge from Pump, keeping
// the bridge single-owner.
type Gateway struct {
	Bridge *bridge.Bridge
	Queue  PubSub
	Name   string

	// StatsInterval is how often a statistics snapshot is
	// published. Zero disables snapshots.
	StatsInterval time.Duration

	pending   []byte
	pendLock  sync.Mutex
	lastStats time.Time
}

// New creates a Gateway.
func New(b *bridge.Bridge, q PubSub, name string) *Gateway {
	return &Gateway{
		Bridge:        b,
		Queue:         q,
		Name:          name,
		StatsInterval: 10 * time.Second,
	}
}

// Pump implements Pumper. It feeds staged application payloads into
// the bridge and publishes drained receive bytes.
func (g *Gateway) Pump() bool {
	worked := false

	g.pendLock.Lock()
	if len(g.pending) > 0 {
		if n := g.Bridge.Send(g.pending); n > 0 {
			g.pending = g.pending[n:]
			worked = true
		}
	}
	g.pendLock.Unlock()

	if out := g.Bridge.Receive(ReadChunk); len(out) > 0 {
		g.Queue.Pub(g.Name+"/rx", out)
		worked = true
	}

	if g.StatsInterval > 0 && time.Since(g.lastStats) >= g.StatsInterval {
		g.lastStats = time.Now()
		g.Queue.Pub(g.Name+"/stats", []byte(g.Bridge.Stats().String()))
	}
	return worked
}

// Run implements Runnable. It subscribes the application topics and
// holds them until the context is canceled.
func (g *Gateway) Run(ctx context.Context) error {
	g.Queue.Sub(g.Name+"/tx", g.handleTx)
	<-ctx.Done()
	return ctx.Err()
}

func (g *Gateway) handleTx(_ string, payload []byte) {
	g.pendLock.Lock()
	if len(g.pending)+len(payload) > PendingLimit {
		glog.Warningf("tx backlog full, dropping %d bytes", len(payload))
	} else {
		g.pending = append(g.pending, payload...)
	}
	g.pendLock.Unlock()
}
