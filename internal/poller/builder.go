// internal/poller/builder.go
package poller

import (
	"github.com/goburrow/modbus"

	pmodbus "github.com/tamzrod/modpoll/internal/poller/modbus"
)

// Build constructs a Poller on top of a transport-library client.
// The caller owns the connection behind mb; the poller never opens or closes it.
func Build(cfg Config, mb modbus.Client) (*Poller, error) {
	return New(cfg, pmodbus.New(mb))
}
