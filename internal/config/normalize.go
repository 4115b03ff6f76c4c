// internal/config/normalize.go
package config

import "strings"

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	cfg.Mode = strings.ToLower(strings.TrimSpace(cfg.Mode))
	cfg.Device = strings.TrimSpace(cfg.Device)

	cfg.RTU.Baud = strings.TrimSpace(cfg.RTU.Baud)
	cfg.RTU.DataBits = strings.TrimSpace(cfg.RTU.DataBits)
	cfg.RTU.StopBits = strings.TrimSpace(cfg.RTU.StopBits)

	// backend only knows the lowercase parity literals
	cfg.RTU.Parity = strings.ToLower(strings.TrimSpace(cfg.RTU.Parity))

	cfg.TCP.Port = strings.TrimSpace(cfg.TCP.Port)
}
