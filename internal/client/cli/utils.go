package cli

import "strings"

// maskEmail hides most of the local part of an address for display on the
// verification screen, e.g. "alice@example.org" -> "al***@example.org".
func maskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return email
	}
	local, domain := email[:at], email[at+1:]
	if len(local) <= 2 {
		return email
	}
	return local[:2] + strings.Repeat("*", len(local)-2) + "@" + domain
}
