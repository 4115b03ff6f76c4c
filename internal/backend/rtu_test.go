// internal/backend/rtu_test.go
package backend

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewRTU_Defaults(t *testing.T) {
	r := NewRTU()

	require.Equal(t, "", r.Device())
	require.Equal(t, 9600, r.Baud())
	require.Equal(t, 8, r.DataBits())
	require.Equal(t, 1, r.StopBits())
	require.Equal(t, ParityEven, r.Parity())
}

func TestRTU_DataBits(t *testing.T) {
	r := NewRTU()

	require.NoError(t, r.SetParam('d', "7"))
	require.Equal(t, 7, r.DataBits())

	require.NoError(t, r.SetParam('d', "8"))
	require.Equal(t, 8, r.DataBits())

	for _, bad := range []string{"5", "6", "9", "0", "-8", "eight", ""} {
		err := r.SetParam('d', bad)
		require.ErrorIs(t, err, ErrInvalidValue, "value %q", bad)
		require.Equal(t, 8, r.DataBits(), "value %q changed data bits", bad)
	}
}

func TestRTU_StopBits(t *testing.T) {
	r := NewRTU()

	require.NoError(t, r.SetParam('s', "2"))
	require.Equal(t, 2, r.StopBits())

	require.ErrorIs(t, r.SetParam('s', "3"), ErrInvalidValue)
	require.ErrorIs(t, r.SetParam('s', "0"), ErrInvalidValue)
	require.Equal(t, 2, r.StopBits())
}

func TestRTU_Baud(t *testing.T) {
	r := NewRTU()

	require.NoError(t, r.SetParam('b', "0x4b00"))
	require.Equal(t, 19200, r.Baud())

	require.NoError(t, r.SetParam('b', "115200"))
	require.Equal(t, 115200, r.Baud())

	require.ErrorIs(t, r.SetParam('b', "fast"), ErrInvalidValue)
	require.ErrorIs(t, r.SetParam('b', "0"), ErrInvalidValue)
	require.Equal(t, 115200, r.Baud())
}

func TestRTU_Parity(t *testing.T) {
	r := NewRTU()

	cases := map[string]string{
		"none": ParityNone,
		"even": ParityEven,
		"odd":  ParityOdd,
	}
	for in, want := range cases {
		require.NoError(t, r.SetParam('p', in))
		require.Equal(t, want, r.Parity())
	}

	for _, bad := range []string{"NONE", "Odd", "n", "mark", "", "1"} {
		require.ErrorIs(t, r.SetParam('p', bad), ErrInvalidValue, "value %q", bad)
	}
	require.Equal(t, ParityOdd, r.Parity())
}

func TestRTU_UnknownCode(t *testing.T) {
	r := NewRTU()
	require.ErrorIs(t, r.SetParam('x', "1"), ErrUnknownParam)
	require.ErrorIs(t, r.SetParam('a', "1"), ErrUnknownParam)
}

func TestRTU_SetAddress(t *testing.T) {
	r := NewRTU()

	require.NoError(t, r.SetAddress("/dev/ttyUSB0"))
	require.Equal(t, "/dev/ttyUSB0", r.Device())

	require.ErrorIs(t, r.SetAddress(""), ErrInvalidValue)
	require.ErrorIs(t, r.SetAddress("/dev/"+strings.Repeat("x", 40)), ErrInvalidValue)
	require.Equal(t, "/dev/ttyUSB0", r.Device())
}

// 19200 baud, 7 data bits, 2 stop bits, odd parity end to end.
func TestRTU_CreateContextCarriesSettings(t *testing.T) {
	r := NewRTU()
	require.NoError(t, r.SetAddress("/dev/ttyS1"))
	require.NoError(t, r.SetParam('b', "19200"))
	require.NoError(t, r.SetParam('d', "7"))
	require.NoError(t, r.SetParam('s', "2"))
	require.NoError(t, r.SetParam('p', "odd"))

	ctx, err := r.CreateContext()
	require.NoError(t, err)
	require.Equal(t, KindRTU, ctx.Kind())
	require.Nil(t, ctx.TCP())

	h := ctx.RTU()
	require.Equal(t, "/dev/ttyS1", h.Address)
	require.Equal(t, 19200, h.BaudRate)
	require.Equal(t, 7, h.DataBits)
	require.Equal(t, 2, h.StopBits)
	require.Equal(t, "O", h.Parity)
}

func TestRTU_CreateContextWithoutDevice(t *testing.T) {
	_, err := NewRTU().CreateContext()
	require.ErrorIs(t, err, ErrTransport)
}

func TestRTU_ListenOnMissingDeviceFails(t *testing.T) {
	r := NewRTU()
	require.NoError(t, r.SetAddress("/dev/modpoll-missing-0"))

	ctx, err := r.CreateContext()
	require.NoError(t, err)

	err = r.Listen(ctx)
	require.ErrorIs(t, err, ErrTransport)

	// close is a no-op for serial lines
	require.NoError(t, r.CloseConn())
	require.NoError(t, r.CloseConn())
}

func TestRTU_ContextSettersReachHandler(t *testing.T) {
	r := NewRTU()
	require.NoError(t, r.SetAddress("/dev/ttyS0"))

	ctx, err := r.CreateContext()
	require.NoError(t, err)

	ctx.SetSlave(17)
	ctx.SetTimeout(250 * time.Millisecond)

	require.Equal(t, byte(17), ctx.RTU().SlaveId)
	require.Equal(t, 250*time.Millisecond, ctx.RTU().Timeout)
	require.Equal(t, ctx.Timeout(), ctx.RTU().Timeout)
	require.Equal(t, "/dev/ttyS0", ctx.Address())
}

func TestRTU_ClientRejectsForeignContext(t *testing.T) {
	tcpCtx, err := NewTCP().CreateContext()
	require.NoError(t, err)

	r := NewRTU()
	_, err = r.Client(tcpCtx)
	require.ErrorIs(t, err, ErrTransport)

	require.NoError(t, r.SetAddress("/dev/ttyS0"))
	ctx, err := r.CreateContext()
	require.NoError(t, err)

	client, err := r.Client(ctx)
	require.NoError(t, err)
	require.NotNil(t, client)
}

func TestRTU_Destroy(t *testing.T) {
	r := NewRTU()
	r.Destroy()
	r.Destroy()

	require.ErrorIs(t, r.SetParam('b', "9600"), ErrDestroyed)
	require.ErrorIs(t, r.SetAddress("/dev/ttyS0"), ErrDestroyed)

	_, err := r.CreateContext()
	require.ErrorIs(t, err, ErrDestroyed)
}
