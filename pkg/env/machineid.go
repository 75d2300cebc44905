// Package env exposes host environment helpers.
package env

import (
	"os"

	"github.com/denisbrodbeck/machineid"
)

// ClientID derives a stable identifier for this host, used as the
// default MQTT client ID. It falls back to the hostname when the
// machine ID is unavailable.
func ClientID(app string) string {
	if id, err := machineid.ProtectedID(app); err == nil && len(id) >= 12 {
		return app + "-" + id[:12]
	}
	if host, err := os.Hostname(); err == nil {
		return app + "-" + host
	}
	return app
}
