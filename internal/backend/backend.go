// internal/backend/backend.go
package backend

import (
	"errors"
	"fmt"

	"github.com/goburrow/modbus"
)

// Kind identifies the transport variant of a Backend.
type Kind string

const (
	KindRTU Kind = "rtu"
	KindTCP Kind = "tcp"
)

// maxAddressLen bounds the device path / IP string.
const maxAddressLen = 31

var (
	// ErrUnknownParam is returned for an option code the active variant does not define.
	ErrUnknownParam = errors.New("unknown parameter")
	// ErrInvalidValue is returned when a value fails to parse or violates a domain constraint.
	ErrInvalidValue = errors.New("invalid value")
	// ErrTransport marks failures at the transport library boundary.
	ErrTransport = errors.New("transport error")
	// ErrDestroyed is returned by every operation after Destroy.
	ErrDestroyed = errors.New("backend destroyed")
)

// Backend configures, establishes and tears down one Modbus connection.
//
// Typical use:
//
//	b := NewTCP()
//	_ = b.SetParam('p', "1502")
//	ctx, _ := b.CreateContext()
//	_ = b.Listen(ctx) // blocks until one client connects
//	defer b.Destroy()
type Backend interface {
	Kind() Kind

	// SetParam updates exactly one field from an option code and its raw value.
	// On error the backend is left unchanged.
	SetParam(code byte, value string) error

	// SetAddress sets the positional target: device path (RTU) or IP/host (TCP).
	SetAddress(addr string) error

	// CreateContext builds an unopened connection context.
	CreateContext() (*Context, error)

	// Listen establishes the connection. TCP blocks until one client connects.
	Listen(ctx *Context) error

	// Client returns a Modbus client over whatever link Listen or Connect established.
	// ctx must come from this backend's kind.
	Client(ctx *Context) (modbus.Client, error)

	// CloseConn releases the connection recorded by Listen. Safe to repeat.
	CloseConn() error

	// Destroy releases the backend. Later calls fail with ErrDestroyed.
	Destroy()

	String() string
}

// Param is one option-code/value pair destined for SetParam.
type Param struct {
	Code  byte
	Value string
}

// ParamError reports a rejected SetParam call.
type ParamError struct {
	Kind  Kind
	Code  byte
	Value string
	Err   error // ErrUnknownParam or ErrInvalidValue
	What  string
}

func (e *ParamError) Error() string {
	if errors.Is(e.Err, ErrUnknownParam) {
		return fmt.Sprintf("unknown %s param (%c: %s)", e.Kind, e.Code, e.Value)
	}
	return fmt.Sprintf("%s incorrect (%c: %s)", e.What, e.Code, e.Value)
}

func (e *ParamError) Unwrap() error { return e.Err }

// ParseKind maps the -m value onto a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindRTU, KindTCP:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unrecognized connection type %s", s)
	}
}

// New returns a default-initialized backend of the given kind.
func New(kind Kind) (Backend, error) {
	switch kind {
	case KindRTU:
		return NewRTU(), nil
	case KindTCP:
		return NewTCP(), nil
	default:
		return nil, fmt.Errorf("unrecognized connection type %s", kind)
	}
}

// Apply feeds params to b in order and returns every rejection.
// A rejected param does not stop the remaining ones.
func Apply(b Backend, params []Param) []error {
	var errs []error
	for _, p := range params {
		if err := b.SetParam(p.Code, p.Value); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func checkAddress(addr string) error {
	if addr == "" {
		return fmt.Errorf("%w: empty address", ErrInvalidValue)
	}
	if len(addr) > maxAddressLen {
		return fmt.Errorf("%w: address %q longer than %d bytes", ErrInvalidValue, addr, maxAddressLen)
	}
	return nil
}
