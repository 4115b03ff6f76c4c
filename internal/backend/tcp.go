// internal/backend/tcp.go
package backend

import (
	"fmt"
	"net"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/goburrow/modbus"
)

// TCP is the network backend.
// In listen mode it owns the single accepted client connection.
type TCP struct {
	ip   string
	port int

	client net.Conn // nil = unset

	destroyed bool
}

var _ Backend = (*TCP)(nil)

// NewTCP returns a TCP backend bound to 0.0.0.0:502 with no client.
func NewTCP() *TCP {
	return &TCP{
		ip:   "0.0.0.0",
		port: 502,
	}
}

func (t *TCP) Kind() Kind { return KindTCP }

func (t *TCP) String() string {
	return "tcp " + t.addr()
}

// IP returns the bind/target address.
func (t *TCP) IP() string { return t.ip }

// Port returns the configured port. It may be out of range until CreateContext checks it.
func (t *TCP) Port() int { return t.port }

// Conn returns the accepted client connection, nil if none.
func (t *TCP) Conn() net.Conn { return t.client }

func (t *TCP) addr() string {
	return net.JoinHostPort(t.ip, strconv.Itoa(t.port))
}

func (t *TCP) SetParam(code byte, value string) error {
	if t.destroyed {
		return ErrDestroyed
	}

	switch code {
	case 'p':
		port, ok := ParseInt(value)
		if !ok {
			return &ParamError{Kind: KindTCP, Code: code, Value: value, Err: ErrInvalidValue, What: "Port"}
		}
		t.port = port

	default:
		return &ParamError{Kind: KindTCP, Code: code, Value: value, Err: ErrUnknownParam}
	}

	return nil
}

func (t *TCP) SetAddress(addr string) error {
	if t.destroyed {
		return ErrDestroyed
	}
	if err := checkAddress(addr); err != nil {
		return fmt.Errorf("tcp ip: %w", err)
	}
	t.ip = addr
	return nil
}

func (t *TCP) CreateContext() (*Context, error) {
	if t.destroyed {
		return nil, ErrDestroyed
	}
	if t.port < 0 || t.port > 65535 {
		return nil, fmt.Errorf("%w: tcp: port %d out of range 0-65535", ErrTransport, t.port)
	}

	h := modbus.NewTCPClientHandler(t.addr())
	return &Context{kind: KindTCP, tcp: h}, nil
}

// Listen binds the context address and blocks until exactly one client connects.
// The listening socket is closed once the client is accepted.
func (t *TCP) Listen(ctx *Context) error {
	if t.destroyed {
		return ErrDestroyed
	}
	if ctx == nil || ctx.kind != KindTCP {
		return fmt.Errorf("%w: tcp: context is not a tcp context", ErrTransport)
	}
	if t.client != nil {
		return fmt.Errorf("%w: tcp: client %s already connected", ErrTransport, t.client.RemoteAddr())
	}

	ln, err := net.Listen("tcp", ctx.tcp.Address)
	if err != nil {
		return fmt.Errorf("%w: tcp: listen %s: %v", ErrTransport, ctx.tcp.Address, err)
	}
	defer ln.Close()

	log.Info("waiting for connection", "addr", ln.Addr().String())

	conn, err := ln.Accept()
	if err != nil {
		return fmt.Errorf("%w: tcp: accept on %s: %v", ErrTransport, ln.Addr(), err)
	}

	t.client = conn
	log.Info("client connected", "peer", conn.RemoteAddr().String())
	return nil
}

// Client talks over the accepted connection when there is one,
// otherwise over the handler's own dialed connection.
func (t *TCP) Client(ctx *Context) (modbus.Client, error) {
	if t.destroyed {
		return nil, ErrDestroyed
	}
	if ctx == nil || ctx.kind != KindTCP {
		return nil, fmt.Errorf("%w: tcp: context is not a tcp context", ErrTransport)
	}
	if t.client != nil {
		return modbus.NewClient2(ctx.tcp, &peerTransporter{
			conn:    t.client,
			timeout: ctx.tcp.Timeout,
			logger:  ctx.tcp.Logger,
		}), nil
	}
	return modbus.NewClient(ctx.tcp), nil
}

// CloseConn closes the accepted client, if any. A second call is a no-op.
func (t *TCP) CloseConn() error {
	if t.client == nil {
		return nil
	}
	err := t.client.Close()
	t.client = nil
	return err
}

func (t *TCP) Destroy() {
	if t.destroyed {
		return
	}
	_ = t.CloseConn()
	t.destroyed = true
}
