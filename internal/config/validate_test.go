// internal/config/validate_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tamzrod/modpoll/internal/backend"
)

// helper to build an int pointer quickly
func intp(v int) *int { return &v }

// ---- tests ----

func TestLoad_RTUProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "line.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
mode: rtu
device: /dev/ttyUSB0
slave: 3
timeout_ms: 500
rtu:
  baud: 19200
  data_bits: 7
  stop_bits: 2
  parity: odd
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, Validate(cfg))
	Normalize(cfg)

	require.Equal(t, "rtu", cfg.Mode)
	require.Equal(t, "/dev/ttyUSB0", cfg.Device)
	require.Equal(t, 3, *cfg.Slave)
	require.Equal(t, 500, *cfg.TimeoutMs)

	require.Equal(t, []backend.Param{
		{Code: 'b', Value: "19200"},
		{Code: 'd', Value: "7"},
		{Code: 's', Value: "2"},
		{Code: 'p', Value: "odd"},
	}, cfg.Params(backend.KindRTU))

	// nothing from the rtu section leaks into a tcp backend
	require.Empty(t, cfg.Params(backend.KindTCP))
}

func TestParse_TCPPortKeepsHexLiteral(t *testing.T) {
	cfg, err := Parse([]byte("mode: tcp\ntcp:\n  port: \"0x5de\"\n"))
	require.NoError(t, err)
	require.NoError(t, Validate(cfg))

	require.Equal(t, []backend.Param{{Code: 'p', Value: "0x5de"}}, cfg.Params(backend.KindTCP))
}

func TestParse_EmptyDocument(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	require.Equal(t, &Config{}, cfg)
}

func TestParse_UnknownKeyRejected(t *testing.T) {
	_, err := Parse([]byte("mode: tcp\nbaud: 9600\n"))
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestValidate_Mode(t *testing.T) {
	require.NoError(t, Validate(&Config{}))
	require.NoError(t, Validate(&Config{Mode: "RTU"}))
	require.NoError(t, Validate(&Config{Mode: "tcp"}))
	require.Error(t, Validate(&Config{Mode: "ascii"}))
}

func TestValidate_SectionMustMatchMode(t *testing.T) {
	require.Error(t, Validate(&Config{Mode: "rtu", TCP: TCPConfig{Port: "1502"}}))
	require.Error(t, Validate(&Config{Mode: "tcp", RTU: RTUConfig{Baud: "9600"}}))

	// without a mode both sections may be present; the command line picks one
	require.NoError(t, Validate(&Config{
		RTU: RTUConfig{Baud: "9600"},
		TCP: TCPConfig{Port: "1502"},
	}))
}

func TestValidate_SessionRanges(t *testing.T) {
	require.NoError(t, Validate(&Config{Slave: intp(247), TimeoutMs: intp(1)}))
	require.Error(t, Validate(&Config{Slave: intp(256)}))
	require.Error(t, Validate(&Config{Slave: intp(-1)}))
	require.Error(t, Validate(&Config{TimeoutMs: intp(0)}))
}

func TestValidate_Parity(t *testing.T) {
	require.NoError(t, Validate(&Config{RTU: RTUConfig{Parity: "Even"}}))
	require.Error(t, Validate(&Config{RTU: RTUConfig{Parity: "mark"}}))
}

func TestValidate_DoesNotMutate(t *testing.T) {
	cfg := &Config{Mode: " TCP ", RTU: RTUConfig{}, TCP: TCPConfig{Port: " 1502 "}}
	require.NoError(t, Validate(cfg))
	require.Equal(t, " TCP ", cfg.Mode)

	Normalize(cfg)
	require.Equal(t, "tcp", cfg.Mode)
	require.Equal(t, "1502", cfg.TCP.Port)
}
