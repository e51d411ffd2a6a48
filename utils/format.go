package utils

import (
	"time"

	"spotfix-admin/models"
)

// DefaultDateLayout matches the en-US short date, e.g. 3/14/2025.
const DefaultDateLayout = "1/2/2006"

// DescriptionPreviewLength is how much of a description the list table shows.
const DescriptionPreviewLength = 50

var statusColors = map[models.Status]string{
	models.Reported:   "#f97316", // orange-500
	models.InProgress: "#3b82f6", // blue-500
	models.Resolved:   "#22c55e", // green-500
}

const unknownStatusColor = "#6b7280" // gray-500

// StatusColor returns the badge background for a status. An empty status is
// treated as "unknown".
func StatusColor(status string) string {
	if color, ok := statusColors[models.NormalizeStatus(status)]; ok {
		return color
	}
	return unknownStatusColor
}

// StatusLabel is the badge text: the stored value, or "Unknown" when unset.
func StatusLabel(status string) string {
	if status == "" {
		return "Unknown"
	}
	return status
}

// FormatDate renders t as a short date in loc. Zero times render as "".
func FormatDate(t time.Time, layout string, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if layout == "" {
		layout = DefaultDateLayout
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(layout)
}

// Truncate shortens s to n runes followed by "...". Strings of n runes or
// fewer are returned unchanged.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
