// internal/backend/rtu.go
package backend

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/goburrow/modbus"
)

// Parity codes as understood by the serial layer.
const (
	ParityNone = "N"
	ParityEven = "E"
	ParityOdd  = "O"
)

// RTU is the serial-line backend.
type RTU struct {
	device   string
	baud     int
	dataBits int
	stopBits int
	parity   string

	destroyed bool
}

var _ Backend = (*RTU)(nil)

// NewRTU returns an RTU backend with 9600 8E1 defaults and no device.
func NewRTU() *RTU {
	return &RTU{
		baud:     9600,
		dataBits: 8,
		stopBits: 1,
		parity:   ParityEven,
	}
}

func (r *RTU) Kind() Kind { return KindRTU }

func (r *RTU) String() string {
	return fmt.Sprintf("rtu %s %d %d%s%d", r.device, r.baud, r.dataBits, r.parity, r.stopBits)
}

// Device returns the serial device path.
func (r *RTU) Device() string { return r.device }

// Baud returns the configured baud rate.
func (r *RTU) Baud() int { return r.baud }

// DataBits returns the configured data bits.
func (r *RTU) DataBits() int { return r.dataBits }

// StopBits returns the configured stop bits.
func (r *RTU) StopBits() int { return r.stopBits }

// Parity returns the parity code (N, E or O).
func (r *RTU) Parity() string { return r.parity }

func (r *RTU) SetParam(code byte, value string) error {
	if r.destroyed {
		return ErrDestroyed
	}

	switch code {
	case 'b':
		baud, ok := ParseInt(value)
		if !ok || baud <= 0 {
			return r.invalid(code, value, "Baudrate")
		}
		r.baud = baud

	case 'd':
		db, ok := ParseInt(value)
		if !ok || (db != 7 && db != 8) {
			return r.invalid(code, value, "Data bits")
		}
		r.dataBits = db

	case 's':
		sb, ok := ParseInt(value)
		if !ok || (sb != 1 && sb != 2) {
			return r.invalid(code, value, "Stop bits")
		}
		r.stopBits = sb

	case 'p':
		switch value {
		case "none":
			r.parity = ParityNone
		case "even":
			r.parity = ParityEven
		case "odd":
			r.parity = ParityOdd
		default:
			return r.invalid(code, value, "Parity")
		}

	default:
		return &ParamError{Kind: KindRTU, Code: code, Value: value, Err: ErrUnknownParam}
	}

	return nil
}

func (r *RTU) invalid(code byte, value, what string) error {
	return &ParamError{Kind: KindRTU, Code: code, Value: value, Err: ErrInvalidValue, What: what}
}

func (r *RTU) SetAddress(addr string) error {
	if r.destroyed {
		return ErrDestroyed
	}
	if err := checkAddress(addr); err != nil {
		return fmt.Errorf("rtu device: %w", err)
	}
	r.device = addr
	return nil
}

func (r *RTU) CreateContext() (*Context, error) {
	if r.destroyed {
		return nil, ErrDestroyed
	}
	if r.device == "" {
		return nil, fmt.Errorf("%w: rtu: serial device not set", ErrTransport)
	}

	h := modbus.NewRTUClientHandler(r.device)
	h.BaudRate = r.baud
	h.DataBits = r.dataBits
	h.StopBits = r.stopBits
	h.Parity = r.parity

	return &Context{kind: KindRTU, rtu: h}, nil
}

// Listen opens the serial line. There is nothing to accept on a serial bus.
func (r *RTU) Listen(ctx *Context) error {
	if r.destroyed {
		return ErrDestroyed
	}
	if ctx == nil || ctx.kind != KindRTU {
		return fmt.Errorf("%w: rtu: context is not an rtu context", ErrTransport)
	}

	log.Info("Connecting ...", "device", r.device)
	if err := ctx.Connect(); err != nil {
		return fmt.Errorf("%w: rtu: open %s: %v", ErrTransport, r.device, err)
	}
	return nil
}

func (r *RTU) Client(ctx *Context) (modbus.Client, error) {
	if r.destroyed {
		return nil, ErrDestroyed
	}
	if ctx == nil || ctx.kind != KindRTU {
		return nil, fmt.Errorf("%w: rtu: context is not an rtu context", ErrTransport)
	}
	return modbus.NewClient(ctx.rtu), nil
}

// CloseConn is a no-op: the serial line belongs to the context.
func (r *RTU) CloseConn() error {
	return nil
}

func (r *RTU) Destroy() {
	r.destroyed = true
}
