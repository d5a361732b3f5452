package domain

import (
	"strconv"
	"strings"
)

// ParseDecimal parses an upstream decimal-string field. Missing or malformed
// values yield 0 so one bad record cannot abort a whole derivation pass.
func ParseDecimal(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
