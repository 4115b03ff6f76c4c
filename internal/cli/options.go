// internal/cli/options.go
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/tamzrod/modpoll/internal/backend"
)

// Version is printed by -v.
const Version = "1.0.0"

// Options is the parsed command line.
// Nothing here has touched a backend yet.
type Options struct {
	Debug     bool
	Listen    bool
	ListPorts bool
	Help      bool
	Version   bool

	Mode backend.Kind // "" = not given

	Slave     int
	Quantity  int
	Start     int
	FC        int
	TimeoutMs int
	ZeroBased bool

	IntervalMs int
	Repeat     int

	ConfigPath string

	// Params holds backend option codes in command-line order.
	Params []backend.Param

	Target string   // <serialport|host>
	Data   []string // write data after the target

	set map[string]bool
}

// IsSet reports whether the flag with the given long name appeared on the command line.
func (o *Options) IsSet(name string) bool { return o.set[name] }

// Defaults.
const (
	DefaultSlave      = 1
	DefaultQuantity   = 1
	DefaultStart      = 100
	DefaultTimeoutMs  = 1000
	DefaultIntervalMs = 1000
	DefaultRepeat     = 1
)

// ---- pflag.Value types ----

// intValue accepts the hex-then-decimal grammar of backend.ParseInt.
type intValue struct {
	p    *int
	what string
}

func (v *intValue) String() string {
	if v.p == nil {
		return ""
	}
	return fmt.Sprint(*v.p)
}

func (v *intValue) Set(s string) error {
	n, ok := backend.ParseInt(s)
	if !ok {
		return fmt.Errorf("%s (%s) is not integer", v.what, s)
	}
	*v.p = n
	return nil
}

func (v *intValue) Type() string { return "int" }

type modeValue struct {
	p *backend.Kind
}

func (v *modeValue) String() string {
	if v.p == nil {
		return ""
	}
	return string(*v.p)
}

func (v *modeValue) Set(s string) error {
	if *v.p != "" {
		return fmt.Errorf("connection type already set to %s", *v.p)
	}
	k, err := backend.ParseKind(s)
	if err != nil {
		return err
	}
	*v.p = k
	return nil
}

func (v *modeValue) Type() string { return "rtu|tcp" }

// paramValue records a backend option; it is validated later by the backend.
type paramValue struct {
	code byte
	dst  *[]backend.Param
}

func (v *paramValue) String() string { return "" }

func (v *paramValue) Set(s string) error {
	*v.dst = append(*v.dst, backend.Param{Code: v.code, Value: s})
	return nil
}

func (v *paramValue) Type() string { return "string" }

// ---- parsing ----

func newFlagSet(o *Options) *pflag.FlagSet {
	fs := pflag.NewFlagSet("modpoll", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.SetInterspersed(true)

	fs.BoolVar(&o.Debug, "debug", false, "debug logging")
	fs.BoolVar(&o.Listen, "listen", false, "wait for one client before polling")
	fs.BoolVar(&o.ListPorts, "list-ports", false, "list serial ports and exit")
	fs.BoolVarP(&o.Help, "help", "h", false, "help")
	fs.BoolVarP(&o.Version, "version", "v", false, "version")
	fs.BoolVarP(&o.ZeroBased, "one-based", "0", false, "start reference is 1-based")

	fs.VarP(&modeValue{p: &o.Mode}, "mode", "m", "connection type")

	fs.VarP(&intValue{p: &o.Slave, what: "Slave address"}, "slave", "a", "slave address")
	fs.VarP(&intValue{p: &o.Quantity, what: "Quantity to read/write"}, "count", "c", "quantity")
	fs.VarP(&intValue{p: &o.Start, what: "Start address"}, "start", "r", "start address")
	fs.VarP(&intValue{p: &o.FC, what: "Function code"}, "type", "t", "function code")
	fs.VarP(&intValue{p: &o.TimeoutMs, what: "Timeout"}, "timeout", "o", "timeout in ms")
	fs.Var(&intValue{p: &o.IntervalMs, what: "Poll interval"}, "interval", "poll interval in ms")
	fs.Var(&intValue{p: &o.Repeat, what: "Repeat count"}, "repeat", "number of polls")

	fs.StringVar(&o.ConfigPath, "config", "", "YAML connection profile")

	// 'p' is parity for rtu and port for tcp; the backend routes it
	fs.VarP(&paramValue{code: 'b', dst: &o.Params}, "baud", "b", "rtu baud rate")
	fs.VarP(&paramValue{code: 'd', dst: &o.Params}, "data-bits", "d", "rtu data bits")
	fs.VarP(&paramValue{code: 's', dst: &o.Params}, "stop-bits", "s", "rtu stop bits")
	fs.VarP(&paramValue{code: 'p', dst: &o.Params}, "port", "p", "tcp port or rtu parity")
	fs.Var(&paramValue{code: 'p', dst: &o.Params}, "parity", "rtu parity")

	return fs
}

// Parse parses args (without the program name).
// Options may appear before or after positional arguments; "--" ends them.
func Parse(args []string) (*Options, error) {
	o := &Options{
		Slave:      DefaultSlave,
		Quantity:   DefaultQuantity,
		Start:      DefaultStart,
		FC:         -1,
		TimeoutMs:  DefaultTimeoutMs,
		IntervalMs: DefaultIntervalMs,
		Repeat:     DefaultRepeat,
		set:        map[string]bool{},
	}
	fs := newFlagSet(o)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *pflag.Flag) { o.set[f.Name] = true })

	if rest := fs.Args(); len(rest) > 0 {
		o.Target = rest[0]
		o.Data = rest[1:]
	}
	return o, nil
}

// ---- diagnostics ----

var (
	// ErrNoMode is returned when backend options are given without a connection type.
	ErrNoMode = errors.New("Connect type (-m switch) has to be set!")
	// ErrNoBackend is returned when no connection type is known at all.
	ErrNoBackend = errors.New("You have not specify modbus backend.")
	// ErrNoTarget is returned when neither the command line nor the profile names a device or host.
	ErrNoTarget = errors.New("missing <serialport|host> argument")
	// ErrFunction is returned for a missing or unsupported -t value.
	ErrFunction = errors.New("No correct function type chose")
)
