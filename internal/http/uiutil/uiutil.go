package uiutil

import (
	"strings"
	"time"
)

// FriendlyDateTimeLayout is the long timestamp format used in page bodies.
const FriendlyDateTimeLayout = "Jan 2, 2006 3:04 PM"

// ClockLayout is the top bar clock format.
const ClockLayout = "03:04 PM"

// FormatFriendlyDateTime returns a consistent, user-friendly local timestamp representation.
func FormatFriendlyDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(FriendlyDateTimeLayout)
}

// FormatClock renders t for the top bar, e.g. "03:04 PM".
func FormatClock(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(ClockLayout)
}

// TruncateWithEllipsis shortens text to the provided rune limit and appends an ellipsis when truncated.
func TruncateWithEllipsis(text string, limit int) string {
	if limit <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	if limit == 1 {
		return "…"
	}
	return strings.TrimSpace(string(runes[:limit-1])) + "…"
}
