package domain

import "strings"

const passwordSymbols = `!@#$%^&*(),.?":{}|<>`

// ValidPassword enforces the platform password policy: 8-16 characters,
// at least one uppercase letter and at least one symbol from the fixed set.
func ValidPassword(pw string) bool {
	if len(pw) < 8 || len(pw) > 16 {
		return false
	}
	var upper, symbol bool
	for _, r := range pw {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	return upper && symbol
}
