// Package stream adapts byte streams to the bridge transport.
package stream

import (
	"context"
	"io"

	"github.com/golang/glog"

	fx "github.com/robotalks/bridge.go/pkg/framework"
)

// QueueDepth is the per-direction queue size between the Try
// operations and the stream goroutines.
const QueueDepth = 256

// Transport adapts an io.ReadWriteCloser (serial device, socket,
// websocket connection) to the bridge's non-blocking byte transport.
// A reader and a writer goroutine move bytes between the stream and
// bounded queues; the Try operations never block.
type Transport struct {
	stream io.ReadWriteCloser
	recvCh chan byte
	sendCh chan byte
}

// New creates a Transport over the stream. Run must be started for
// bytes to move.
func New(s io.ReadWriteCloser) *Transport {
	return &Transport{
		stream: s,
		recvCh: make(chan byte, QueueDepth),
		sendCh: make(chan byte, QueueDepth),
	}
}

// TryRecvByte returns one received byte if available.
func (t *Transport) TryRecvByte() (byte, bool) {
	select {
	case b := <-t.recvCh:
		return b, true
	default:
		return 0, false
	}
}

// TrySendByte queues one byte for the writer goroutine. A full queue
// refuses the byte.
func (t *Transport) TrySendByte(b byte) bool {
	select {
	case t.sendCh <- b:
		return true
	default:
		return false
	}
}

// Run implements Runnable. It drives the stream until the context is
// canceled or the stream fails; cancellation closes the stream to
// unblock a pending read.
func (t *Transport) Run(ctx context.Context) error {
	go t.writeLoop(ctx)
	return fx.RunWithContextCloser(ctx, t.stream, func() error {
		return t.readLoop(ctx)
	})
}

func (t *Transport) readLoop(ctx context.Context) error {
	buf := make([]byte, 1)
	for {
		n, err := t.stream.Read(buf)
		if err != nil {
			return err
		}
		if n == 0 {
			continue
		}
		select {
		case t.recvCh <- buf[0]:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (t *Transport) writeLoop(ctx context.Context) {
	buf := make([]byte, 1)
	for {
		select {
		case <-ctx.Done():
			return
		case b := <-t.sendCh:
			buf[0] = b
			if _, err := t.stream.Write(buf); err != nil {
				glog.Warningf("stream write: %v", err)
				return
			}
		}
	}
}
