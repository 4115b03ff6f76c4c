// internal/status/status_test.go
package status

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/goburrow/modbus"
	"github.com/stretchr/testify/require"
)

type codedErr struct{ code uint16 }

func (e codedErr) Error() string { return "coded" }
func (e codedErr) Code() uint16  { return e.code }

type deviceErr struct{ code uint16 }

func (e *deviceErr) Error() string     { return "device" }
func (e *deviceErr) ErrorCode() uint16 { return e.code }

func TestErrorCode(t *testing.T) {
	require.Equal(t, CodeNone, ErrorCode(nil))
	require.Equal(t, CodeGeneric, ErrorCode(errors.New("timeout")))

	exc := &modbus.ModbusError{FunctionCode: 0x83, ExceptionCode: 2}
	require.Equal(t, uint16(2), ErrorCode(exc))
	require.Equal(t, uint16(2), ErrorCode(fmt.Errorf("poll: %w", exc)))

	require.Equal(t, uint16(42), ErrorCode(codedErr{code: 42}))
	require.Equal(t, uint16(9), ErrorCode(fmt.Errorf("read: %w", &deviceErr{code: 9})))
}

func TestSnapshot_TransitionsReportedOnce(t *testing.T) {
	var s Snapshot
	t0 := time.Unix(1000, 0)
	require.Equal(t, HealthUnknown, s.Health)

	require.True(t, s.Update(t0, nil))
	require.False(t, s.Update(t0.Add(time.Second), nil))
	require.Equal(t, HealthOK, s.Health)

	fail := errors.New("no response")
	require.True(t, s.Update(t0.Add(2*time.Second), fail))
	require.False(t, s.Update(t0.Add(3*time.Second), fail))
	require.Equal(t, HealthError, s.Health)
	require.Equal(t, CodeGeneric, s.LastErrorCode)
	require.Equal(t, time.Second, s.InError(t0.Add(3*time.Second)))

	// same streak, different code
	exc := &modbus.ModbusError{FunctionCode: 0x83, ExceptionCode: 4}
	require.True(t, s.Update(t0.Add(4*time.Second), exc))
	require.Equal(t, uint16(4), s.LastErrorCode)
	require.Equal(t, t0.Add(2*time.Second), s.ErrorSince)

	require.True(t, s.Update(t0.Add(5*time.Second), nil))
	require.Equal(t, CodeNone, s.LastErrorCode)
	require.True(t, s.ErrorSince.IsZero())
	require.Zero(t, s.InError(t0.Add(6*time.Second)))

	require.Equal(t, 6, s.Polls)
	require.Equal(t, 3, s.Failures)
}

func TestSnapshot_FirstPollFailing(t *testing.T) {
	var s Snapshot
	require.True(t, s.Update(time.Now(), errors.New("x")))
	require.Equal(t, HealthError, s.Health)
	require.Equal(t, 1, s.Failures)
}

func TestEncode(t *testing.T) {
	now := time.Unix(50, 0)

	ok := Snapshot{Health: HealthOK, Polls: 3}
	require.Equal(t, []any{"health", "ok", "polls", 3, "failures", 0}, Encode(ok, now))

	bad := Snapshot{Health: HealthError, LastErrorCode: 2, Polls: 4, Failures: 1, ErrorSince: time.Unix(48, 0)}
	require.Equal(t, []any{
		"health", "error", "polls", 4, "failures", 1,
		"code", uint16(2), "in_error", 2 * time.Second,
	}, Encode(bad, now))

	require.Equal(t, "unknown", HealthName(HealthUnknown))
}
