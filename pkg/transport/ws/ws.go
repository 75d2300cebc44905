// Package ws connects the bridge over websocket links.
package ws

import (
	"golang.org/x/net/websocket"

	"github.com/robotalks/bridge.go/pkg/transport/stream"
)

// Dial connects a websocket endpoint and returns a stream transport
// over the connection.
func Dial(url, origin string) (*stream.Transport, error) {
	if origin == "" {
		origin = "http://localhost/"
	}
	conn, err := websocket.Dial(url, "", origin)
	if err != nil {
		return nil, err
	}
	return stream.New(conn), nil
}
