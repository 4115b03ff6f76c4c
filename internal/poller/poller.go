// internal/poller/poller.go
package poller

import (
	"errors"
	"fmt"
	"time"
)

// Client abstracts the Modbus operations the poller dispatches to.
// The poller depends on geometry only.
type Client interface {
	ReadCoils(addr, qty uint16) ([]bool, error)              // FC 1
	ReadDiscreteInputs(addr, qty uint16) ([]bool, error)     // FC 2
	ReadHoldingRegisters(addr, qty uint16) ([]uint16, error) // FC 3
	ReadInputRegisters(addr, qty uint16) ([]uint16, error)   // FC 4
	WriteSingleCoil(addr uint16, on bool) error              // FC 5
	WriteSingleRegister(addr, value uint16) error            // FC 6
	WriteMultipleCoils(addr uint16, bits []bool) error       // FC 15
	WriteMultipleRegisters(addr uint16, regs []uint16) error // FC 16
}

// Config is the minimal runtime config the poller needs.
type Config struct {
	Request  Request
	Interval time.Duration // delay between cycles when Count != 1
	Count    int           // number of cycles, 0 = until cancelled
}

// Poller is a dumb, clock-driven requester.
type Poller struct {
	cfg    Config
	client Client
	seq    int
}

// New creates a poller with immutable config.
func New(cfg Config, client Client) (*Poller, error) {
	if client == nil {
		return nil, errors.New("poller: client required")
	}
	if err := validateRequest(cfg.Request); err != nil {
		return nil, err
	}
	if cfg.Count < 0 {
		return nil, errors.New("poller: count must be >= 0")
	}
	if cfg.Count != 1 && cfg.Interval <= 0 {
		return nil, errors.New("poller: interval must be > 0 when repeating")
	}
	return &Poller{cfg: cfg, client: client}, nil
}

func validateRequest(r Request) error {
	if !r.FC.Supported() {
		return fmt.Errorf("poller: unsupported function code 0x%02X", uint8(r.FC))
	}
	if r.Quantity == 0 {
		return errors.New("poller: quantity must be > 0")
	}

	switch r.FC {
	case WriteSingleCoil:
		if len(r.Bits) != 1 {
			return errors.New("poller: write single coil takes exactly one value")
		}
	case WriteSingleRegister:
		if len(r.Registers) != 1 {
			return errors.New("poller: write single register takes exactly one value")
		}
	case WriteMultipleCoils:
		if len(r.Bits) != int(r.Quantity) {
			return fmt.Errorf("poller: %d coil values for quantity %d", len(r.Bits), r.Quantity)
		}
	case WriteMultipleRegisters:
		if len(r.Registers) != int(r.Quantity) {
			return fmt.Errorf("poller: %d register values for quantity %d", len(r.Registers), r.Quantity)
		}
	}
	return nil
}

// PollOnce performs exactly one request.
func (p *Poller) PollOnce() PollResult {
	p.seq++
	rq := p.cfg.Request

	res := PollResult{
		Seq:      p.seq,
		At:       time.Now(),
		FC:       rq.FC,
		Address:  rq.Address,
		Quantity: rq.Quantity,
	}

	switch rq.FC {
	case ReadCoils:
		res.Bits, res.Err = p.client.ReadCoils(rq.Address, rq.Quantity)

	case ReadDiscreteInputs:
		res.Bits, res.Err = p.client.ReadDiscreteInputs(rq.Address, rq.Quantity)

	case ReadHoldingRegisters:
		res.Registers, res.Err = p.client.ReadHoldingRegisters(rq.Address, rq.Quantity)

	case ReadInputRegisters:
		res.Registers, res.Err = p.client.ReadInputRegisters(rq.Address, rq.Quantity)

	case WriteSingleCoil:
		res.Err = p.client.WriteSingleCoil(rq.Address, rq.Bits[0])

	case WriteSingleRegister:
		res.Err = p.client.WriteSingleRegister(rq.Address, rq.Registers[0])

	case WriteMultipleCoils:
		res.Err = p.client.WriteMultipleCoils(rq.Address, rq.Bits)

	case WriteMultipleRegisters:
		res.Err = p.client.WriteMultipleRegisters(rq.Address, rq.Registers)

	default:
		res.Err = errors.New("poller: unsupported function code")
	}

	// Never hand out partial data with an error.
	if res.Err != nil {
		res.Bits = nil
		res.Registers = nil
	}
	return res
}
