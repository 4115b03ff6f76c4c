// internal/poller/types.go
package poller

import (
	"fmt"
	"time"
)

// FunctionCode is a Modbus function selected with -t.
type FunctionCode uint8

const (
	ReadCoils              FunctionCode = 0x01
	ReadDiscreteInputs     FunctionCode = 0x02
	ReadHoldingRegisters   FunctionCode = 0x03
	ReadInputRegisters     FunctionCode = 0x04
	WriteSingleCoil        FunctionCode = 0x05
	WriteSingleRegister    FunctionCode = 0x06
	WriteMultipleCoils     FunctionCode = 0x0F
	WriteMultipleRegisters FunctionCode = 0x10
)

// Supported reports whether fc is one of the functions the tool dispatches.
func (fc FunctionCode) Supported() bool {
	switch fc {
	case ReadCoils, ReadDiscreteInputs, ReadHoldingRegisters, ReadInputRegisters,
		WriteSingleCoil, WriteSingleRegister, WriteMultipleCoils, WriteMultipleRegisters:
		return true
	}
	return false
}

// IsWrite reports whether fc takes its data from the command line.
func (fc FunctionCode) IsWrite() bool {
	switch fc {
	case WriteSingleCoil, WriteSingleRegister, WriteMultipleCoils, WriteMultipleRegisters:
		return true
	}
	return false
}

// IsBits reports whether fc moves coils / discrete inputs rather than registers.
func (fc FunctionCode) IsBits() bool {
	switch fc {
	case ReadCoils, ReadDiscreteInputs, WriteSingleCoil, WriteMultipleCoils:
		return true
	}
	return false
}

func (fc FunctionCode) String() string {
	switch fc {
	case ReadCoils:
		return "Read Coils"
	case ReadDiscreteInputs:
		return "Read Discrete Inputs"
	case ReadHoldingRegisters:
		return "Read Holding Registers"
	case ReadInputRegisters:
		return "Read Input Registers"
	case WriteSingleCoil:
		return "Write Single Coil"
	case WriteSingleRegister:
		return "Write Single Register"
	case WriteMultipleCoils:
		return "Write Multiple Coils"
	case WriteMultipleRegisters:
		return "Write Multiple Registers"
	}
	return fmt.Sprintf("function 0x%02X", uint8(fc))
}

// Request describes one Modbus operation.
// Geometry only: no semantics.
type Request struct {
	FC       FunctionCode
	Address  uint16
	Quantity uint16

	// Write payload. Exactly one is used depending on FC.
	Bits      []bool   // FC 5, 15
	Registers []uint16 // FC 6, 16
}

// PollResult is the outcome of one poll cycle.
type PollResult struct {
	Seq int
	At  time.Time

	FC       FunctionCode
	Address  uint16
	Quantity uint16

	// Read data. Exactly one of these is used depending on FC.
	Bits      []bool   // FC 1, 2
	Registers []uint16 // FC 3, 4

	Err error // non-nil means the poll cycle failed
}
