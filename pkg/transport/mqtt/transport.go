package mqtt

import (
	"context"
)

// RecvQueueDepth bounds inbound bytes waiting for the pump.
const RecvQueueDepth = 4096

// Transport carries the bridge's byte link over a pair of MQTT
// topics: payloads arriving on the sub topic are split into single
// bytes, outbound bytes are published to the pub topic.
type Transport struct {
	Queue    *Queue
	SubTopic string
	PubTopic string

	recvCh chan byte
}

// NewTransport creates a Transport on the queue with the given
// topics, relative to the queue prefix.
func NewTransport(q *Queue, sub, pub string) *Transport {
	return &Transport{
		Queue:    q,
		SubTopic: sub,
		PubTopic: pub,
		recvCh:   make(chan byte, RecvQueueDepth),
	}
}

// TryRecvByte returns one inbound byte if available.
func (t *Transport) TryRecvByte() (byte, bool) {
	select {
	case b := <-t.recvCh:
		return b, true
	default:
		return 0, false
	}
}

// TrySendByte publishes one byte, best effort.
func (t *Transport) TrySendByte(b byte) bool {
	t.Queue.Pub(t.PubTopic, []byte{b})
	return true
}

// Run implements Runnable. It keeps the subscription alive until the
// context is canceled.
func (t *Transport) Run(ctx context.Context) error {
	t.Queue.Sub(t.SubTopic, t.handleMsg)
	<-ctx.Done()
	return ctx.Err()
}

func (t *Transport) handleMsg(_ string, payload []byte) {
	for _, b := range payload {
		select {
		case t.recvCh <- b:
		default:
			// Queue full; drop the rest like a UART overrun.
			return
		}
	}
}
