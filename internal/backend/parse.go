// internal/backend/parse.go
package backend

import (
	"strconv"
	"strings"
)

// ParseInt parses a numeric option token.
// Hex ("0x" followed by hex digits) is tried first, then signed decimal.
// No range checks are applied.
func ParseInt(text string) (int, bool) {
	if digits, ok := strings.CutPrefix(text, "0x"); ok && isHex(digits) {
		if v, err := strconv.ParseInt(digits, 16, 0); err == nil {
			return int(v), true
		}
	}

	v, err := strconv.ParseInt(text, 10, 0)
	if err != nil {
		return 0, false
	}
	return int(v), true
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
