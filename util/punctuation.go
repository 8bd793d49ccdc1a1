package util

// IsPeriod reports whether s consists solely of one or more full stops.
func IsPeriod(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r != '.' {
			return false
		}
	}
	return true
}
