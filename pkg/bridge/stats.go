package bridge

import (
	"bytes"
	"fmt"
)

// Stats is a read-only snapshot of the bridge counters. Each field is
// consistent as of the snapshot; no guarantee is made across fields.
type Stats struct {
	TxBytes     uint32
	RxBytes     uint32
	Errors      uint32 // receive buffer overflows
	RxAvailable uint32
	TxSpace     uint32
	TxDropped   uint32 // transmit buffer overflows
}

// String renders the statistics block for console display.
func (s Stats) String() string {
	var w bytes.Buffer
	fmt.Fprintf(&w, "Bytes Transmitted: %d\n", s.TxBytes)
	fmt.Fprintf(&w, "Bytes Received: %d\n", s.RxBytes)
	fmt.Fprintf(&w, "Error Count: %d\n", s.Errors)
	fmt.Fprintf(&w, "TX Dropped: %d\n", s.TxDropped)
	fmt.Fprintf(&w, "RX Data Available: %d bytes\n", s.RxAvailable)
	fmt.Fprintf(&w, "TX Space Available: %d bytes", s.TxSpace)
	return w.String()
}
