// Package bridge provides the buffering and flow control engine
// between a byte transport and an application.
package bridge

// The bridge owns one fixed circular buffer per direction and pumps
// at most one byte each way per cycle, so worst-case latency per call
// stays bounded regardless of how often the poll loop runs.
//
// Flow control is in-band XON/XOFF with hysteresis: the remote sender
// is paused when the receive buffer passes 75% occupancy and resumed
// once it drains below 37.5%. While flow control is enabled, 0x11 and
// 0x13 are always control, never payload.
//
// All bridge state has a single logical owner. Send, Receive, Pump
// and the rest must be called from one goroutine (typically the poll
// loop); there is no locking inside this package.
