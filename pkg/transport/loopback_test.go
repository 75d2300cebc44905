package transport

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPair(t *testing.T) {
	a, b := Pair(2)

	_, ok := b.TryRecvByte()
	require.False(t, ok)

	require.True(t, a.TrySendByte(1))
	require.True(t, a.TrySendByte(2))
	require.False(t, a.TrySendByte(3)) // queue full

	for _, want := range []byte{1, 2} {
		got, ok := b.TryRecvByte()
		require.True(t, ok)
		require.Equal(t, want, got)
	}
	_, ok = b.TryRecvByte()
	require.False(t, ok)

	// The reverse direction is independent.
	require.True(t, b.TrySendByte(9))
	got, ok := a.TryRecvByte()
	require.True(t, ok)
	require.Equal(t, byte(9), got)
}

func TestEchoPumpHoldsRefusedByte(t *testing.T) {
	local, remote := Pair(1)
	echo := EchoPump(remote)

	require.True(t, remote.TrySendByte(0xFF)) // return queue now full
	require.True(t, local.TrySendByte('A'))

	// The echo step pops 'A' but cannot send it back yet.
	require.False(t, echo())

	got, ok := local.TryRecvByte()
	require.True(t, ok)
	require.Equal(t, byte(0xFF), got)

	// Retried on the next step, not lost.
	require.True(t, echo())
	got, ok = local.TryRecvByte()
	require.True(t, ok)
	require.Equal(t, byte('A'), got)
}
