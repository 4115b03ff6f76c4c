// internal/backend/peer.go
package backend

import (
	"encoding/binary"
	"fmt"
	"io"
	stdlog "log"
	"net"
	"time"
)

const (
	mbapHeaderLen = 7
	maxMBAPLength = 254 // unit id + PDU
)

// peerTransporter sends TCP ADUs over an accepted client connection.
// It satisfies modbus.Transporter; encoding and verification stay with the handler.
type peerTransporter struct {
	conn    net.Conn
	timeout time.Duration
	logger  *stdlog.Logger
}

func (p *peerTransporter) Send(aduRequest []byte) ([]byte, error) {
	if p.timeout > 0 {
		if err := p.conn.SetDeadline(time.Now().Add(p.timeout)); err != nil {
			return nil, err
		}
		defer p.conn.SetDeadline(time.Time{})
	}

	p.logf("modbus: sending % x", aduRequest)
	if _, err := p.conn.Write(aduRequest); err != nil {
		return nil, err
	}

	var header [mbapHeaderLen]byte
	if _, err := io.ReadFull(p.conn, header[:]); err != nil {
		return nil, err
	}

	// Length counts the unit id already read as part of the header.
	length := int(binary.BigEndian.Uint16(header[4:6]))
	if length < 2 || length > maxMBAPLength {
		return nil, fmt.Errorf("modbus: length in response header '%v' must be between 2 and %v", length, maxMBAPLength)
	}

	adu := make([]byte, mbapHeaderLen+length-1)
	copy(adu, header[:])
	if _, err := io.ReadFull(p.conn, adu[mbapHeaderLen:]); err != nil {
		return nil, err
	}

	p.logf("modbus: received % x", adu)
	return adu, nil
}

func (p *peerTransporter) logf(format string, v ...interface{}) {
	if p.logger != nil {
		p.logger.Printf(format, v...)
	}
}
