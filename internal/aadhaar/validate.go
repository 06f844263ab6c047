package aadhaar

import "strings"

// IsValidNumber reports whether s is a well-formed Aadhaar number:
// exactly 12 ASCII digits once internal spaces are removed. It checks
// format only, not the Verhoeff checksum.
func IsValidNumber(s string) bool {
	s = strings.ReplaceAll(s, " ", "")
	if len(s) != 12 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
