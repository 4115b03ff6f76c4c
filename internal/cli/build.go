// internal/cli/build.go
package cli

import (
	"fmt"
	"time"

	"github.com/tamzrod/modpoll/internal/backend"
	"github.com/tamzrod/modpoll/internal/config"
	"github.com/tamzrod/modpoll/internal/poller"
)

// Session holds the per-request settings applied to a connection context.
type Session struct {
	Slave   byte
	Timeout time.Duration
}

// Kind resolves the connection type: -m wins over the profile.
func Kind(o *Options, profile *config.Config) (backend.Kind, error) {
	if o.Mode != "" {
		return o.Mode, nil
	}
	if profile != nil && profile.Mode != "" {
		return backend.ParseKind(profile.Mode)
	}
	if len(o.Params) > 0 {
		return "", ErrNoMode
	}
	return "", ErrNoBackend
}

// BuildBackend creates the backend and applies profile params, then command-line params.
//
// rejected lists every SetParam failure; callers report all of them and stop.
// err is a failure that prevented building the backend at all.
// A non-nil backend must be destroyed by the caller even when rejected is non-empty.
func BuildBackend(o *Options, profile *config.Config) (b backend.Backend, rejected []error, err error) {
	kind, err := Kind(o, profile)
	if err != nil {
		return nil, nil, err
	}

	b, err = backend.New(kind)
	if err != nil {
		return nil, nil, err
	}

	var params []backend.Param
	if profile != nil {
		params = append(params, profile.Params(kind)...)
	}
	params = append(params, o.Params...)
	rejected = backend.Apply(b, params)

	target := o.Target
	if target == "" && profile != nil {
		target = profile.Device
	}

	switch {
	case target != "":
		if err := b.SetAddress(target); err != nil {
			return b, rejected, err
		}
	case kind == backend.KindTCP && o.Listen:
		// bind to the default address
	default:
		return b, rejected, ErrNoTarget
	}

	return b, rejected, nil
}

// BuildSession merges slave id and timeout: command line over profile over defaults.
func BuildSession(o *Options, profile *config.Config) (Session, error) {
	slave := o.Slave
	if !o.IsSet("slave") && profile != nil && profile.Slave != nil {
		slave = *profile.Slave
	}
	if slave < 0 || slave > 255 {
		return Session{}, fmt.Errorf("Slave address (%d) out of range 0-255", slave)
	}

	timeoutMs := o.TimeoutMs
	if !o.IsSet("timeout") && profile != nil && profile.TimeoutMs != nil {
		timeoutMs = *profile.TimeoutMs
	}
	if timeoutMs <= 0 {
		return Session{}, fmt.Errorf("Timeout (%d) must be > 0", timeoutMs)
	}

	return Session{
		Slave:   byte(slave),
		Timeout: time.Duration(timeoutMs) * time.Millisecond,
	}, nil
}

// BuildRequest turns the function, address, quantity and write data into one request.
func BuildRequest(o *Options) (poller.Request, error) {
	if o.FC < 0 || o.FC > 0xFF || !poller.FunctionCode(o.FC).Supported() {
		return poller.Request{}, ErrFunction
	}
	fc := poller.FunctionCode(o.FC)

	start := o.Start
	if o.ZeroBased {
		start--
	}
	if start < 0 || start > 0xFFFF {
		return poller.Request{}, fmt.Errorf("Start address (%d) out of range 0-65535", start)
	}

	rq := poller.Request{FC: fc, Address: uint16(start)}

	if !fc.IsWrite() {
		if len(o.Data) > 0 {
			return poller.Request{}, fmt.Errorf("%s takes no write data, got %d item(s)", fc, len(o.Data))
		}
		if o.Quantity <= 0 || o.Quantity > 0xFFFF {
			return poller.Request{}, fmt.Errorf("Quantity to read (%d) out of range 1-65535", o.Quantity)
		}
		rq.Quantity = uint16(o.Quantity)
		return rq, nil
	}

	// writes: the quantity is the number of data items
	if len(o.Data) == 0 {
		return poller.Request{}, fmt.Errorf("%s needs write data", fc)
	}
	if (fc == poller.WriteSingleCoil || fc == poller.WriteSingleRegister) && len(o.Data) != 1 {
		return poller.Request{}, fmt.Errorf("%s takes exactly one data item, got %d", fc, len(o.Data))
	}
	if len(o.Data) > 0xFFFF {
		return poller.Request{}, fmt.Errorf("too many data items (%d)", len(o.Data))
	}

	for _, s := range o.Data {
		v, ok := backend.ParseInt(s)
		if !ok {
			return poller.Request{}, fmt.Errorf("Write data (%s) is not integer", s)
		}
		if fc.IsBits() {
			rq.Bits = append(rq.Bits, v != 0)
			continue
		}
		if v < 0 || v > 0xFFFF {
			return poller.Request{}, fmt.Errorf("Write data (%s) out of range 0-65535", s)
		}
		rq.Registers = append(rq.Registers, uint16(v))
	}
	rq.Quantity = uint16(len(o.Data))
	return rq, nil
}

// PollConfig wraps rq with the repeat settings.
func PollConfig(o *Options, rq poller.Request) poller.Config {
	return poller.Config{
		Request:  rq,
		Interval: time.Duration(o.IntervalMs) * time.Millisecond,
		Count:    o.Repeat,
	}
}
