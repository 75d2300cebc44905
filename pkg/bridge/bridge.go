package bridge

// Transport is the non-blocking byte link the bridge pumps. The
// hardware or network side implements it; every call moves at most
// one byte and returns immediately.
type Transport interface {
	// TryRecvByte returns one byte if available.
	TryRecvByte() (byte, bool)
	// TrySendByte reports whether the byte was accepted for
	// transmission.
	TrySendByte(byte) bool
}

// Bridge moves bytes between a Transport and an application through
// a pair of fixed buffers, pausing the remote sender with in-band
// XON/XOFF when the receive side falls behind.
type Bridge struct {
	transport Transport
	rx        *Ring
	tx        *Ring
	flow      *FlowController

	txBytes uint32
	rxBytes uint32
	errors  uint32
}

// New creates a Bridge with DefaultCapacity buffers.
func New(t Transport) *Bridge {
	b, _ := NewWithCapacity(t, DefaultCapacity)
	return b
}

// NewWithCapacity creates a Bridge with the given buffer capacity in
// each direction.
func NewWithCapacity(t Transport, capacity int) (*Bridge, error) {
	rx, err := NewRing(capacity)
	if err != nil {
		return nil, err
	}
	tx, err := NewRing(capacity)
	if err != nil {
		return nil, err
	}
	return &Bridge{
		transport: t,
		rx:        rx,
		tx:        tx,
		flow:      NewFlowController(capacity),
	}, nil
}

// Send enqueues bytes for transmission in order, stopping at the
// first full-buffer rejection, and returns the number enqueued.
// Partial success is normal; the caller retries the rest later.
func (b *Bridge) Send(p []byte) int {
	for i, c := range p {
		if b.tx.Put(c) != nil {
			return i
		}
	}
	return len(p)
}

// Receive pops up to max received bytes in FIFO order. It never
// blocks; fewer bytes are returned if the buffer empties first.
func (b *Bridge) Receive(max int) []byte {
	n := b.rx.Len()
	if n > max {
		n = max
	}
	if n <= 0 {
		return nil
	}
	out := make([]byte, n)
	for i := range out {
		out[i], _ = b.rx.Get()
	}
	return out
}

// Pump advances the bridge by one bounded step: at most one inbound
// byte, at most one outbound byte, and one flow control evaluation.
// It reports whether any byte moved, so a poll loop can keep pumping
// through a burst and sleep when idle.
func (b *Bridge) Pump() bool {
	worked := false

	if c, ok := b.transport.TryRecvByte(); ok {
		if b.flow.Classify(c) {
			// Control symbols end the cycle; they never reach
			// the receive buffer.
			return true
		}
		worked = true
		if b.rx.Put(c) != nil {
			b.errors++
		} else {
			b.rxBytes++
		}
	}

	if !b.flow.TxBlocked() {
		if c, err := b.tx.Peek(); err == nil {
			if b.transport.TrySendByte(c) {
				b.tx.Get()
				b.txBytes++
				worked = true
			}
		}
	}

	if sym, ok := b.flow.Evaluate(b.rx.Len()); ok {
		b.transport.TrySendByte(sym)
	}
	return worked
}

// Available returns the number of received bytes ready to read.
func (b *Bridge) Available() int {
	return b.rx.Len()
}

// TxSpace returns the free space in the transmit buffer.
func (b *Bridge) TxSpace() int {
	return b.tx.Free()
}

// TxPending returns the number of bytes queued for transmission.
func (b *Bridge) TxPending() int {
	return b.tx.Len()
}

// SetFlowControl toggles XON/XOFF processing. Disabling immediately
// resumes transmission and lets 0x11/0x13 through as payload.
func (b *Bridge) SetFlowControl(enabled bool) {
	b.flow.SetEnabled(enabled)
}

// FlowControlEnabled reports whether XON/XOFF processing is active.
func (b *Bridge) FlowControlEnabled() bool {
	return b.flow.Enabled()
}

// Stats returns a snapshot of the bridge counters.
func (b *Bridge) Stats() Stats {
	return Stats{
		TxBytes:     b.txBytes,
		RxBytes:     b.rxBytes,
		Errors:      b.errors,
		RxAvailable: uint32(b.rx.Len()),
		TxSpace:     uint32(b.tx.Free()),
		TxDropped:   b.tx.Overflow(),
	}
}

// Reset empties both buffers and zeroes every counter, including the
// buffers' overflow counters and any paused state. Flow control
// enablement is left unchanged.
func (b *Bridge) Reset() {
	b.rx.Reset()
	b.tx.Reset()
	b.flow.Reset()
	b.txBytes, b.rxBytes, b.errors = 0, 0, 0
}
