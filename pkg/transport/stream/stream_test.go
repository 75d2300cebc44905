package stream

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func recvByte(t *testing.T, tr *Transport) byte {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if b, ok := tr.TryRecvByte(); ok {
			return b
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("receive timeout")
	return 0
}

func TestTransportOverPipe(t *testing.T) {
	c1, c2 := net.Pipe()
	t1, t2 := New(c1), New(c2)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 2)
	go func() { errCh <- t1.Run(ctx) }()
	go func() { errCh <- t2.Run(ctx) }()

	require.True(t, t1.TrySendByte('a'))
	require.True(t, t1.TrySendByte('b'))
	require.Equal(t, byte('a'), recvByte(t, t2))
	require.Equal(t, byte('b'), recvByte(t, t2))

	require.True(t, t2.TrySendByte('c'))
	require.Equal(t, byte('c'), recvByte(t, t1))

	cancel()
	for i := 0; i < 2; i++ {
		select {
		case err := <-errCh:
			require.Equal(t, context.Canceled, err)
		case <-time.After(time.Second):
			t.Fatal("run did not stop")
		}
	}
}

func TestTransportStopsOnStreamClose(t *testing.T) {
	c1, c2 := net.Pipe()
	tr := New(c1)

	errCh := make(chan error, 1)
	go func() { errCh <- tr.Run(context.Background()) }()

	c2.Close()
	select {
	case err := <-errCh:
		require.Error(t, err)
	case <-time.After(time.Second):
		t.Fatal("run did not stop")
	}
}
