package unify

import "fmt"

// FormatPlaytime renders minutes as "45m", "2h 5m" or "3d 4h".
// Minutes are dropped once the duration reaches a full day.
func FormatPlaytime(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}

	hours := minutes / 60
	rest := minutes % 60
	if hours < 24 {
		if rest > 0 {
			return fmt.Sprintf("%dh %dm", hours, rest)
		}
		return fmt.Sprintf("%dh", hours)
	}

	days := hours / 24
	hours %= 24
	if hours > 0 {
		return fmt.Sprintf("%dd %dh", days, hours)
	}
	return fmt.Sprintf("%dd", days)
}
