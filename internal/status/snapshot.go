// internal/status/snapshot.go
package status

import (
	"errors"
	"time"

	"github.com/goburrow/modbus"
)

// Snapshot is the poll-health state of one device across repeated polls.
// The run loop owns it; nothing here is safe for concurrent use.
type Snapshot struct {
	Health        uint16
	LastErrorCode uint16

	Polls    int
	Failures int

	// ErrorSince is when the current error streak started, zero while healthy.
	ErrorSince time.Time
}

// Update folds one poll outcome into s.
// It reports whether Health or LastErrorCode changed, so callers log
// transitions once instead of once per poll.
func (s *Snapshot) Update(at time.Time, err error) bool {
	s.Polls++

	if err == nil {
		changed := s.Health != HealthOK || s.LastErrorCode != CodeNone
		s.Health = HealthOK
		s.LastErrorCode = CodeNone
		s.ErrorSince = time.Time{}
		return changed
	}

	s.Failures++
	code := ErrorCode(err)

	changed := false
	if s.Health != HealthError {
		s.Health = HealthError
		s.ErrorSince = at
		changed = true
	}
	if s.LastErrorCode != code {
		s.LastErrorCode = code
		changed = true
	}
	return changed
}

// InError returns how long the current error streak has lasted at now.
func (s *Snapshot) InError(now time.Time) time.Duration {
	if s.Health != HealthError || s.ErrorSince.IsZero() {
		return 0
	}
	return now.Sub(s.ErrorSince)
}

// ErrorCode extracts a best-effort uint16 code from an error.
// Modbus exceptions yield their exception code; other errors exposing a
// code accessor yield that code; everything else is CodeGeneric.
func ErrorCode(err error) uint16 {
	if err == nil {
		return CodeNone
	}

	var mbErr *modbus.ModbusError
	if errors.As(err, &mbErr) {
		return uint16(mbErr.ExceptionCode)
	}

	type coderA interface{ Code() uint16 }
	type coderB interface{ ErrorCode() uint16 }

	var a coderA
	if errors.As(err, &a) {
		return a.Code()
	}
	var b coderB
	if errors.As(err, &b) {
		return b.ErrorCode()
	}

	return CodeGeneric
}
