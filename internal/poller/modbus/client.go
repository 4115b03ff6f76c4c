// internal/poller/modbus/client.go
package modbus

import (
	"fmt"

	"github.com/goburrow/modbus"
)

const (
	coilOn  uint16 = 0xFF00
	coilOff uint16 = 0x0000
)

// Client implements poller.Client on top of a goburrow client.
// This adapter is geometry-only: it packs requests and unpacks raw responses.
type Client struct {
	mb modbus.Client
}

// New wraps an already configured goburrow client.
func New(mb modbus.Client) *Client {
	return &Client{mb: mb}
}

// ---- reads ----

func (c *Client) ReadCoils(addr, qty uint16) ([]bool, error) {
	raw, err := c.mb.ReadCoils(addr, qty)
	if err != nil {
		return nil, err
	}
	return unpackBits(raw, int(qty))
}

func (c *Client) ReadDiscreteInputs(addr, qty uint16) ([]bool, error) {
	raw, err := c.mb.ReadDiscreteInputs(addr, qty)
	if err != nil {
		return nil, err
	}
	return unpackBits(raw, int(qty))
}

func (c *Client) ReadHoldingRegisters(addr, qty uint16) ([]uint16, error) {
	raw, err := c.mb.ReadHoldingRegisters(addr, qty)
	if err != nil {
		return nil, err
	}
	return unpackRegisters(raw, int(qty))
}

func (c *Client) ReadInputRegisters(addr, qty uint16) ([]uint16, error) {
	raw, err := c.mb.ReadInputRegisters(addr, qty)
	if err != nil {
		return nil, err
	}
	return unpackRegisters(raw, int(qty))
}

// ---- writes ----

func (c *Client) WriteSingleCoil(addr uint16, on bool) error {
	v := coilOff
	if on {
		v = coilOn
	}
	_, err := c.mb.WriteSingleCoil(addr, v)
	return err
}

func (c *Client) WriteSingleRegister(addr, value uint16) error {
	_, err := c.mb.WriteSingleRegister(addr, value)
	return err
}

func (c *Client) WriteMultipleCoils(addr uint16, bits []bool) error {
	_, err := c.mb.WriteMultipleCoils(addr, uint16(len(bits)), packBits(bits))
	return err
}

func (c *Client) WriteMultipleRegisters(addr uint16, regs []uint16) error {
	_, err := c.mb.WriteMultipleRegisters(addr, uint16(len(regs)), packRegisters(regs))
	return err
}

// ---- helpers (pure geometry) ----

func unpackBits(data []byte, count int) ([]bool, error) {
	if len(data)*8 < count {
		return nil, fmt.Errorf("modbus: %d bytes cannot hold %d bits", len(data), count)
	}
	out := make([]bool, count)
	for i := 0; i < count; i++ {
		out[i] = data[i/8]&(1<<uint(i%8)) != 0
	}
	return out, nil
}

func unpackRegisters(data []byte, count int) ([]uint16, error) {
	if len(data) != count*2 {
		return nil, fmt.Errorf("modbus: got %d bytes for %d registers", len(data), count)
	}
	out := make([]uint16, count)
	for i := 0; i < count; i++ {
		out[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return out, nil
}

func packBits(bits []bool) []byte {
	n := (len(bits) + 7) / 8
	out := make([]byte, n)
	for i, v := range bits {
		if v {
			out[i/8] |= 1 << uint(i%8)
		}
	}
	return out
}

func packRegisters(regs []uint16) []byte {
	out := make([]byte, len(regs)*2)
	for i, r := range regs {
		out[2*i] = byte(r >> 8)
		out[2*i+1] = byte(r)
	}
	return out
}
