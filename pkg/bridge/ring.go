package bridge

// DefaultCapacity is the per-direction buffer capacity used by New.
const DefaultCapacity = 2048

// Ring is a fixed-capacity circular byte buffer. A full buffer
// rejects bytes and counts them instead of growing.
type Ring struct {
	data     []byte
	head     int // next write position
	tail     int // next read position
	count    int
	overflow uint32
}

// NewRing creates a Ring with the given capacity.
func NewRing(capacity int) (*Ring, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &Ring{data: make([]byte, capacity)}, nil
}

// Put stores one byte. A full buffer rejects the byte with
// ErrBufferFull and counts the rejection.
func (r *Ring) Put(b byte) error {
	if r.count == len(r.data) {
		r.overflow++
		return ErrBufferFull
	}
	r.data[r.head] = b
	r.head = (r.head + 1) % len(r.data)
	r.count++
	return nil
}

// Get removes and returns the oldest byte.
func (r *Ring) Get() (byte, error) {
	if r.count == 0 {
		return 0, ErrBufferEmpty
	}
	b := r.data[r.tail]
	r.tail = (r.tail + 1) % len(r.data)
	r.count--
	return b, nil
}

// Peek returns the oldest byte without removing it.
func (r *Ring) Peek() (byte, error) {
	if r.count == 0 {
		return 0, ErrBufferEmpty
	}
	return r.data[r.tail], nil
}

// Len returns the number of buffered bytes.
func (r *Ring) Len() int {
	return r.count
}

// Free returns the remaining space.
func (r *Ring) Free() int {
	return len(r.data) - r.count
}

// Cap returns the total capacity.
func (r *Ring) Cap() int {
	return len(r.data)
}

// Overflow returns the number of bytes rejected since the last Reset.
func (r *Ring) Overflow() uint32 {
	return r.overflow
}

// Clear drops all buffered bytes. The overflow counter is kept so
// rejected bytes stay attributable to the current session.
func (r *Ring) Clear() {
	r.head, r.tail, r.count = 0, 0, 0
}

// Reset drops all buffered bytes and zeroes the overflow counter.
func (r *Ring) Reset() {
	r.Clear()
	r.overflow = 0
}
