package bridge

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRingInvalidCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1} {
		_, err := NewRing(capacity)
		require.Equal(t, ErrInvalidCapacity, err)
	}
}

func TestRingFIFOOrder(t *testing.T) {
	r, err := NewRing(4)
	require.NoError(t, err)

	// Interleave puts and gets so head and tail wrap several times.
	var got []byte
	next := byte(0)
	for round := 0; round < 5; round++ {
		for i := 0; i < 3; i++ {
			require.NoError(t, r.Put(next))
			next++
		}
		for i := 0; i < 3; i++ {
			b, err := r.Get()
			require.NoError(t, err)
			got = append(got, b)
		}
	}
	for i, b := range got {
		require.Equal(t, byte(i), b)
	}
}

func TestRingFullRejectsAndCounts(t *testing.T) {
	r, err := NewRing(3)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, r.Put(byte(i)))
	}
	require.Equal(t, ErrBufferFull, r.Put(0xaa))
	require.Equal(t, uint32(1), r.Overflow())
	require.Equal(t, 3, r.Len())

	// The rejected byte must not have displaced anything.
	b, err := r.Get()
	require.NoError(t, err)
	require.Equal(t, byte(0), b)
}

func TestRingEmptyGetLeavesStateUnchanged(t *testing.T) {
	r, err := NewRing(2)
	require.NoError(t, err)

	_, err = r.Get()
	require.Equal(t, ErrBufferEmpty, err)
	require.Equal(t, 0, r.Len())
	require.Equal(t, uint32(0), r.Overflow())

	require.NoError(t, r.Put(0x42))
	b, err := r.Get()
	require.NoError(t, err)
	require.Equal(t, byte(0x42), b)
}

func TestRingOccupancyInvariant(t *testing.T) {
	r, err := NewRing(5)
	require.NoError(t, err)

	check := func() {
		require.True(t, r.Len() >= 0)
		require.True(t, r.Len() <= r.Cap())
		require.Equal(t, r.Cap(), r.Len()+r.Free())
	}

	// A fixed mixed sequence, including rejected puts and failed gets.
	ops := []byte{'p', 'p', 'g', 'p', 'p', 'p', 'p', 'p', 'g', 'g', 'g', 'g', 'g', 'p'}
	for _, op := range ops {
		if op == 'p' {
			r.Put(0x55)
		} else {
			r.Get()
		}
		check()
	}
}

func TestRingPeek(t *testing.T) {
	r, err := NewRing(2)
	require.NoError(t, err)

	_, err = r.Peek()
	require.Equal(t, ErrBufferEmpty, err)

	require.NoError(t, r.Put(1))
	require.NoError(t, r.Put(2))
	b, err := r.Peek()
	require.NoError(t, err)
	require.Equal(t, byte(1), b)
	require.Equal(t, 2, r.Len())
}

func TestRingClearKeepsOverflow(t *testing.T) {
	r, err := NewRing(1)
	require.NoError(t, err)

	require.NoError(t, r.Put(1))
	require.Error(t, r.Put(2))
	r.Clear()
	require.Equal(t, 0, r.Len())
	require.Equal(t, uint32(1), r.Overflow())

	r.Reset()
	require.Equal(t, uint32(0), r.Overflow())
}
