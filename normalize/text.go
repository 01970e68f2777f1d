package normalize

import (
	"fmt"
	"strings"
)

// Trim returns s without surrounding whitespace
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// TrimOrNil trims string values and turns empty strings into nil. Non-string
// values pass through untouched.
func TrimOrNil(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return s
}

// Seconds renders an uptime in seconds the way uptime(1) users expect:
// "3 days", "1 day", "2:05 hours", "1 minute", "45 minutes".
func Seconds(n uint64) string {
	minutes := (n / 60) % 60
	hours := (n / 3600) % 24
	days := n / 86400

	switch {
	case days >= 2:
		return fmt.Sprintf("%d days", days)
	case days == 1:
		return "1 day"
	case hours >= 1:
		return fmt.Sprintf("%d:%02d hours", hours, minutes)
	case minutes == 1:
		return "1 minute"
	default:
		return fmt.Sprintf("%d minutes", minutes)
	}
}
