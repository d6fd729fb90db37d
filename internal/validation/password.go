package validation

// MinPasswordLength is the only password rule: no complexity requirements.
const MinPasswordLength = 6

// ValidatePassword reports whether s is at least MinPasswordLength bytes long.
func ValidatePassword(s string) bool {
	return len(s) >= MinPasswordLength
}
