// internal/backend/context.go
package backend

import (
	stdlog "log"
	"time"

	"github.com/goburrow/modbus"
)

// Context is a configured but unopened Modbus connection.
// Exactly one of the handlers is set, matching Kind.
type Context struct {
	kind Kind
	rtu  *modbus.RTUClientHandler
	tcp  *modbus.TCPClientHandler
}

func (c *Context) Kind() Kind { return c.kind }

// RTU returns the serial handler, nil for TCP contexts.
func (c *Context) RTU() *modbus.RTUClientHandler { return c.rtu }

// TCP returns the network handler, nil for RTU contexts.
func (c *Context) TCP() *modbus.TCPClientHandler { return c.tcp }

// SetSlave sets the unit id put on every request.
func (c *Context) SetSlave(id byte) {
	switch c.kind {
	case KindRTU:
		c.rtu.SlaveId = id
	case KindTCP:
		c.tcp.SlaveId = id
	}
}

// SetTimeout sets the per-request response timeout.
func (c *Context) SetTimeout(d time.Duration) {
	switch c.kind {
	case KindRTU:
		c.rtu.Timeout = d
	case KindTCP:
		c.tcp.Timeout = d
	}
}

// Timeout returns the per-request response timeout.
func (c *Context) Timeout() time.Duration {
	if c.kind == KindRTU {
		return c.rtu.Timeout
	}
	return c.tcp.Timeout
}

// SetLogger enables frame tracing in the transport library.
func (c *Context) SetLogger(l *stdlog.Logger) {
	switch c.kind {
	case KindRTU:
		c.rtu.Logger = l
	case KindTCP:
		c.tcp.Logger = l
	}
}

// Connect opens the serial line or dials the remote server.
func (c *Context) Connect() error {
	if c.kind == KindRTU {
		return c.rtu.Connect()
	}
	return c.tcp.Connect()
}

// Close releases whatever Connect opened. Closing an unopened context is a no-op.
func (c *Context) Close() error {
	if c.kind == KindRTU {
		return c.rtu.Close()
	}
	return c.tcp.Close()
}

// Address returns the serial device or host:port the context targets.
func (c *Context) Address() string {
	if c.kind == KindRTU {
		return c.rtu.Address
	}
	return c.tcp.Address
}
