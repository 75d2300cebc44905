package gateway

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/bridge.go/pkg/bridge"
	"github.com/robotalks/bridge.go/pkg/transport"
	"github.com/robotalks/bridge.go/pkg/transport/mqtt"
)

type fakePubSub struct {
	handlers map[string]mqtt.Handler
	pubs     map[string][][]byte
}

func newFakePubSub() *fakePubSub {
	return &fakePubSub{
		handlers: make(map[string]mqtt.Handler),
		pubs:     make(map[string][][]byte),
	}
}

func (f *fakePubSub) Sub(topic string, handler mqtt.Handler) {
	f.handlers[topic] = handler
}

func (f *fakePubSub) Pub(topic string, payload []byte) {
	f.pubs[topic] = append(f.pubs[topic], append([]byte(nil), payload...))
}

func (f *fakePubSub) publish(topic string, payload []byte) {
	f.handlers[topic](topic, payload)
}

func newTestGateway(t *testing.T, capacity int) (*Gateway, *fakePubSub, *transport.Endpoint) {
	local, remote := transport.Pair(capacity)
	b, err := bridge.NewWithCapacity(local, capacity)
	require.NoError(t, err)
	b.SetFlowControl(false)

	ps := newFakePubSub()
	gw := New(b, ps, "uart0")
	gw.StatsInterval = 0
	gw.Queue.Sub(gw.Name+"/tx", gw.handleTx)
	return gw, ps, remote
}

func TestGatewayTxBacklogDrains(t *testing.T) {
	gw, ps, remote := newTestGateway(t, 4)

	// 10 bytes against a 4-byte transmit buffer: the backlog
	// drains as bridge pumps free up space.
	ps.publish("uart0/tx", []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9})

	var got []byte
	for i := 0; i < 100 && len(got) < 10; i++ {
		gw.Pump()
		gw.Bridge.Pump()
		if b, ok := remote.TryRecvByte(); ok {
			got = append(got, b)
		}
	}
	require.Equal(t, []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
	require.Equal(t, uint32(10), gw.Bridge.Stats().TxBytes)
}

func TestGatewayPublishesReceivedBytes(t *testing.T) {
	gw, ps, remote := newTestGateway(t, 8)

	for _, b := range []byte("hello") {
		require.True(t, remote.TrySendByte(b))
	}
	for gw.Bridge.Pump() {
	}
	require.True(t, gw.Pump())

	require.Len(t, ps.pubs["uart0/rx"], 1)
	require.Equal(t, []byte("hello"), ps.pubs["uart0/rx"][0])
	require.False(t, gw.Pump())
}

func TestGatewayBacklogLimit(t *testing.T) {
	gw, ps, _ := newTestGateway(t, 4)

	big := make([]byte, PendingLimit)
	ps.publish("uart0/tx", big)
	ps.publish("uart0/tx", []byte{1}) // over the limit, dropped

	gw.pendLock.Lock()
	pending := len(gw.pending)
	gw.pendLock.Unlock()
	require.Equal(t, PendingLimit, pending)
}

func TestGatewayStatsSnapshot(t *testing.T) {
	gw, ps, _ := newTestGateway(t, 8)
	gw.StatsInterval = time.Nanosecond

	gw.Pump()
	require.Len(t, ps.pubs["uart0/stats"], 1)
	require.Contains(t, string(ps.pubs["uart0/stats"][0]), "Bytes Transmitted: 0")
}
