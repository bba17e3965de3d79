// Package timeparse provides tolerant timestamp parsing for raw table
// values. Absence is a normal outcome: every entry point returns
// (time.Time, bool) rather than an error.
package timeparse

import (
	"strconv"
	"strings"
	"time"
)

// Order is a day/month field order preference for slash-separated dates.
type Order uint8

const (
	// OrderYMD is year-first (ISO); the default when samples are ambiguous.
	OrderYMD Order = iota
	// OrderDMY is day-first (DD/MM/YYYY).
	OrderDMY
	// OrderMDY is month-first (MM/DD/YYYY).
	OrderMDY
)

func (o Order) String() string {
	switch o {
	case OrderDMY:
		return "DMY"
	case OrderMDY:
		return "MDY"
	default:
		return "YMD"
	}
}

// Unambiguous layouts ordered by likelihood.
var commonLayouts = []string{
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.000",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	time.RFC3339,
	time.RFC3339Nano,
	"02 Jan 2006 15:04:05",
	"02 Jan 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

var dmyLayouts = []string{
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"02-01-2006 15:04:05",
	"02-01-2006",
	"02.01.2006",
}

var mdyLayouts = []string{
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"01-02-2006 15:04:05",
	"01-02-2006",
}

// Time-of-day layouts used when a separate time column is paired with a
// date column.
var clockLayouts = []string{
	"15:04:05.000",
	"15:04:05",
	"15:04",
	"3:04:05 PM",
	"3:04 PM",
	"3:04PM",
}

// Parse parses a raw scalar into an instant using the default YMD
// preference. It accepts ISO 8601 (fast byte path), common textual
// layouts, slash dates and Excel serial dates.
func Parse(s string) (time.Time, bool) {
	return ParseOrdered(s, OrderYMD)
}

// ParseOrdered parses with an explicit day/month order preference for
// ambiguous slash-separated dates.
func ParseOrdered(s string, order Order) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	// Fast path: ISO 8601 date prefix.
	if len(s) >= 10 && s[4] == '-' && s[7] == '-' {
		if t, ok := parseISO8601Fast(s); ok {
			return t, true
		}
	}

	// Excel serial date (numeric).
	if isNumeric(s) {
		return parseExcelSerial(s)
	}

	for _, layout := range commonLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	first, second := dmyLayouts, mdyLayouts
	if order == OrderMDY {
		first, second = mdyLayouts, dmyLayouts
	}
	for _, layout := range first {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range second {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// ParseClock parses a time-of-day value.
func ParseClock(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Combine merges the calendar part of date with a raw time-of-day value.
// Returns the date unchanged (implicit midnight preserved) when the time
// value does not parse.
func Combine(date time.Time, clock string) (time.Time, bool) {
	t, ok := ParseClock(clock)
	if !ok {
		return date, false
	}
	y, m, d := date.Date()
	combined := time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), date.Location())
	return combined, true
}

// parseISO8601Fast parses ISO 8601 using direct byte arithmetic.
func parseISO8601Fast(s string) (time.Time, bool) {
	year := parseInt4(s[0:4])
	month := parseInt2(s[5:7])
	day := parseInt2(s[8:10])

	if year < 0 || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}

	var hour, minute, second, nsec int
	loc := time.UTC

	if len(s) > 10 {
		if s[10] != 'T' && s[10] != ' ' {
			return time.Time{}, false
		}
		if len(s) < 19 {
			return time.Time{}, false
		}
		hour = parseInt2(s[11:13])
		minute = parseInt2(s[14:16])
		second = parseInt2(s[17:19])
		if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 60 {
			return time.Time{}, false
		}

		if len(s) > 19 && s[19] == '.' {
			fracEnd := 20
			for fracEnd < len(s) && s[fracEnd] >= '0' && s[fracEnd] <= '9' {
				fracEnd++
			}
			nsec = parseFraction(s[20:fracEnd])
		}

		for i := 19; i < len(s); i++ {
			if s[i] == 'Z' {
				loc = time.UTC
				break
			}
			if s[i] == '+' || s[i] == '-' {
				if i+3 <= len(s) {
					offsetHours := parseInt2(s[i+1 : min(i+3, len(s))])
					offsetMins := 0
					if i+6 <= len(s) && s[i+3] == ':' {
						offsetMins = parseInt2(s[i+4 : i+6])
					} else if i+5 <= len(s) {
						offsetMins = parseInt2(s[i+3 : i+5])
					}
					if offsetHours < 0 || offsetMins < 0 {
						return time.Time{}, false
					}
					offset := offsetHours*3600 + offsetMins*60
					if s[i] == '-' {
						offset = -offset
					}
					loc = time.FixedZone("", offset)
				}
				break
			}
		}
	}

	return time.Date(year, time.Month(month), day, hour, minute, second, nsec, loc), true
}

// parseExcelSerial parses an Excel-style serial date (days since
// 1899-12-30, fractional part is time of day). Values outside a sane
// calendar window are rejected so plain numeric ids do not parse as dates.
func parseExcelSerial(s string) (time.Time, bool) {
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return time.Time{}, false
	}
	// Roughly 1950..2100.
	if val < 18264 || val > 73050 {
		return time.Time{}, false
	}

	epoch := time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)
	days := int(val)
	fraction := val - float64(days)

	t := epoch.AddDate(0, 0, days)
	if fraction > 0 {
		t = t.Add(time.Duration(fraction * 24 * float64(time.Hour)))
	}
	return t, true
}

func parseInt4(s string) int {
	if len(s) != 4 {
		return -1
	}
	for i := 0; i < 4; i++ {
		if s[i] < '0' || s[i] > '9' {
			return -1
		}
	}
	return int(s[0]-'0')*1000 + int(s[1]-'0')*100 + int(s[2]-'0')*10 + int(s[3]-'0')
}

func parseInt2(s string) int {
	if len(s) != 2 || s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return -1
	}
	return int(s[0]-'0')*10 + int(s[1]-'0')
}

func parseFraction(s string) int {
	var result int64
	multiplier := int64(100000000)
	for i := 0; i < len(s) && i < 9; i++ {
		result += int64(s[i]-'0') * multiplier
		multiplier /= 10
	}
	return int(result)
}

func isNumeric(s string) bool {
	if len(s) == 0 {
		return false
	}
	dots := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= '0' && c <= '9' {
			continue
		}
		if c == '.' && dots == 0 {
			dots++
			continue
		}
		if c == '-' && i == 0 {
			continue
		}
		return false
	}
	return true
}
