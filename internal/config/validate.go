// internal/config/validate.go
package config

import (
	"fmt"
	"strings"
)

// Validate checks profile correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
// Option values themselves are validated by the backend when applied.
func Validate(cfg *Config) error {
	if cfg == nil {
		return nil
	}

	// ------------------------------------------------------------
	// CONNECTION TYPE
	// ------------------------------------------------------------

	mode := strings.ToLower(strings.TrimSpace(cfg.Mode))
	switch mode {
	case "", "rtu", "tcp":
	default:
		return fmt.Errorf("config: mode %q must be rtu or tcp", cfg.Mode)
	}

	hasRTU := cfg.RTU != (RTUConfig{})
	hasTCP := cfg.TCP != (TCPConfig{})

	if mode == "rtu" && hasTCP {
		return fmt.Errorf("config: tcp section set but mode is rtu")
	}
	if mode == "tcp" && hasRTU {
		return fmt.Errorf("config: rtu section set but mode is tcp")
	}

	// ------------------------------------------------------------
	// SESSION
	// ------------------------------------------------------------

	if cfg.Slave != nil && (*cfg.Slave < 0 || *cfg.Slave > 255) {
		return fmt.Errorf("config: slave %d out of range 0-255", *cfg.Slave)
	}

	if cfg.TimeoutMs != nil && *cfg.TimeoutMs <= 0 {
		return fmt.Errorf("config: timeout_ms must be > 0, got %d", *cfg.TimeoutMs)
	}

	// ------------------------------------------------------------
	// RTU ENUMS
	// ------------------------------------------------------------

	if p := cfg.RTU.Parity; p != "" {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "none", "even", "odd":
		default:
			return fmt.Errorf("config: rtu.parity %q must be none, even or odd", p)
		}
	}

	return nil
}
