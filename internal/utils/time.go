package utils

import (
	"strings"
	"time"
)

const layoutDate = "2006-01-02"

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// FormatDate formats time to YYYY-MM-DD in local timezone.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(layoutDate)
}

// Tomorrow returns tomorrow's date as YYYY-MM-DD, the minimum selectable
// booking date on the search form.
func Tomorrow() string {
	return FormatDate(time.Now().AddDate(0, 0, 1))
}
