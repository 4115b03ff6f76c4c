// internal/status/encode.go
package status

import "time"

// HealthName returns the log label for a health code.
func HealthName(h uint16) string {
	switch h {
	case HealthOK:
		return "ok"
	case HealthError:
		return "error"
	default:
		return "unknown"
	}
}

// Encode flattens a Snapshot into key/value pairs for structured logging.
// No IO. No side effects.
func Encode(s Snapshot, now time.Time) []any {
	kv := []any{
		"health", HealthName(s.Health),
		"polls", s.Polls,
		"failures", s.Failures,
	}
	if s.Health == HealthError {
		kv = append(kv,
			"code", s.LastErrorCode,
			"in_error", s.InError(now).Truncate(time.Millisecond),
		)
	}
	return kv
}
