// Package transport provides byte transports for the bridge.
package transport

// Endpoint is one side of an in-memory transport pair. It implements
// the bridge's Transport interface.
type Endpoint struct {
	recv <-chan byte
	send chan<- byte
}

// Pair creates two connected endpoints with bounded queues in each
// direction, so backpressure behaves like a real link.
func Pair(depth int) (*Endpoint, *Endpoint) {
	ab := make(chan byte, depth)
	ba := make(chan byte, depth)
	return &Endpoint{recv: ba, send: ab}, &Endpoint{recv: ab, send: ba}
}

// TryRecvByte returns one byte if available.
func (e *Endpoint) TryRecvByte() (byte, bool) {
	select {
	case b := <-e.recv:
		return b, true
	default:
		return 0, false
	}
}

// TrySendByte reports whether the byte was accepted; a full link
// queue refuses it.
func (e *Endpoint) TrySendByte(b byte) bool {
	select {
	case e.send <- b:
		return true
	default:
		return false
	}
}

// EchoPump returns a pump step sending every byte received on e
// straight back. A byte refused by a full return queue is held and
// retried on the next step, never dropped.
func EchoPump(e *Endpoint) func() bool {
	var held byte
	var holding bool
	return func() bool {
		if !holding {
			b, ok := e.TryRecvByte()
			if !ok {
				return false
			}
			held, holding = b, true
		}
		if e.TrySendByte(held) {
			holding = false
			return true
		}
		return false
	}
}
