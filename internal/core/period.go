package core

import (
	"fmt"
	"strings"
	"time"
)

// Period is a calendar month bucket formatted as "YYYY-MM".
type Period string

const periodLayout = "2006-01"

// ParsePeriod validates a "YYYY-MM" string.
func ParsePeriod(s string) (Period, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(periodLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid period %q: expected YYYY-MM", s)
	}
	return PeriodOf(t), nil
}

// ParsePeriods parses a comma separated list, skipping blank entries.
func ParsePeriods(s string) ([]Period, error) {
	var out []Period
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		p, err := ParsePeriod(part)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// PeriodOf returns the month bucket of t.
func PeriodOf(t time.Time) Period {
	return Period(fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month())))
}

func (p Period) String() string {
	return string(p)
}

// JoinPeriods renders periods as "2025-08, 2025-09".
func JoinPeriods(ps []Period) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = string(p)
	}
	return strings.Join(parts, ", ")
}
