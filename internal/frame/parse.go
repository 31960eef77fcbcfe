package frame

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ParseFloat parses a numeric cell, tolerating both "1.234,5" and "1,234.5"
// locales, percent suffixes and non-breaking spaces. It auto-detects the
// decimal separator per value: when both ',' and '.' appear, the rightmost
// one is the decimal mark.
func ParseFloat(s string) (float64, bool) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return 0, false
	}
	raw = strings.ReplaceAll(raw, "%", "")
	raw = strings.ReplaceAll(raw, " ", " ")
	raw = strings.TrimSpace(raw)

	dec := '.'
	cpos := strings.LastIndex(raw, ",")
	dpos := strings.LastIndex(raw, ".")
	switch {
	case cpos >= 0 && dpos >= 0:
		if cpos > dpos {
			dec = ','
		}
	case cpos >= 0:
		dec = ','
	}
	for _, sep := range []rune{',', '.', ' '} {
		if sep != dec {
			raw = strings.ReplaceAll(raw, string(sep), "")
		}
	}
	if dec != '.' {
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// FloatOrNaN is ParseFloat with NaN as the missing-value marker.
func FloatOrNaN(s string) float64 {
	if x, ok := ParseFloat(s); ok {
		return x
	}
	return math.NaN()
}

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"02-01-2006",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// ParseDate parses a date cell against the layouts seen in dosing-line
// exports. The time-of-day portion, if any, is discarded.
func ParseDate(s string) (time.Time, bool) {
	v := strings.TrimSpace(s)
	if v == "" {
		return time.Time{}, false
	}
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, v); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	// XLSX sheets store dates as day serials counted from 1899-12-30.
	if x, ok := ParseFloat(v); ok && x >= 20000 && x < 80000 {
		d := excelEpoch.AddDate(0, 0, int(x))
		return d, true
	}
	return time.Time{}, false
}

var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var clockLayouts = []string{"15:04:05", "15:04", "3:04:05 PM"}

// ParseClock parses a time-of-day cell ("07:33:12") into hour, minute and
// second components.
func ParseClock(s string) (h, m, sec int, ok bool) {
	v := strings.TrimSpace(s)
	if v == "" {
		return 0, 0, 0, false
	}
	for _, l := range clockLayouts {
		if t, err := time.Parse(l, v); err == nil {
			return t.Hour(), t.Minute(), t.Second(), true
		}
	}
	// XLSX time-of-day cells are day fractions.
	if x, ok := ParseFloat(v); ok && x >= 0 && x < 1 {
		secs := int(x*86400 + 0.5)
		return secs / 3600, (secs % 3600) / 60, secs % 60, true
	}
	return 0, 0, 0, false
}

var clockRe = regexp.MustCompile(`(\d{1,2}):(\d{2}):(\d{2})`)

// ExtractClock pulls an HH:MM:SS fragment out of a duration-shaped cell such
// as "0 days 07:33:12.500". Firmware that logs the end time as an elapsed
// duration produces these; the fragment is the wall-clock time of day.
func ExtractClock(s string) (string, bool) {
	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	if len(m[1]) == 1 {
		return "0" + m[1] + ":" + m[2] + ":" + m[3], true
	}
	return m[1] + ":" + m[2] + ":" + m[3], true
}
