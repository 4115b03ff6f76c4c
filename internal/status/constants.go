// internal/status/constants.go
package status

// Poll health codes.
// Values are stable; they appear in log output.

// ---- HEALTH CODES ----

// HealthUnknown represents the state before the first poll completes.
const HealthUnknown uint16 = 0

// HealthOK represents a device that answered the last poll.
const HealthOK uint16 = 1

// HealthError represents a device whose last poll failed.
const HealthError uint16 = 2

// ---- ERROR CODES ----

// CodeNone is the last error code while healthy.
const CodeNone uint16 = 0

// CodeGeneric is reported for failures that carry no Modbus exception code
// (timeouts, broken links, framing errors).
const CodeGeneric uint16 = 1
