package core

import (
	"regexp"
	"strings"
	"time"
)

var isoDatePrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// Day-first layouts used by pt-BR spreadsheets.
var dayFirstLayouts = []string{
	"02/01/2006",
	"02/01/2006 15:04",
	"02/01/2006 15:04:05",
	"2/1/2006",
	"2/1/2006 15:04:05",
	"02-01-2006",
	"02.01.2006",
	"02/01/06",
}

// ParseDate parses a date cell. Values starting with YYYY-MM-DD are read
// year-first; everything else is read day-first (DD/MM/YYYY). The second
// return value is false for blank or unparsable input.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if isoDatePrefix.MatchString(s) {
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return t, true
		}
		if t, err := time.Parse("2006-01-02", s[:10]); err == nil {
			return t, true
		}
		return time.Time{}, false
	}

	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
