package lead

import "strings"

// CleanPhone strips formatting characters from a phone number, keeping
// digits and a single leading +. Returns "" when nothing usable remains.
func CleanPhone(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	var b strings.Builder
	for i, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}

	out := b.String()
	if out == "+" {
		return ""
	}
	return out
}

// CleanEmail lowercases and trims an email address. It does not validate:
// a value without @ is returned as-is and callers treat it as unusable.
func CleanEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
