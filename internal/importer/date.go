package importer

import (
	"regexp"
	"strconv"
	"time"
)

var (
	isoDateRe   = regexp.MustCompile(`^(\d{4})[/\-](\d{1,2})[/\-](\d{1,2})`)
	dmy4DateRe  = regexp.MustCompile(`^(\d{1,2})[/\-](\d{1,2})[/\-](\d{4})`)
	dmy2DateRe  = regexp.MustCompile(`^(\d{1,2})[/\-](\d{1,2})[/\-](\d{2})$`)
	fallbackFmt = []string{"2 Jan 2006", "02 Jan 2006", "2006-01-02T15:04:05", time.RFC3339}
)

// parseDate tries, in order: ISO YYYY-MM-DD, DD/MM/YYYY, DD/MM/YY
// (two-digit years are 2000+), then a few generic layouts. Returns
// ok=false instead of an error when nothing matches.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	if m := isoDateRe.FindStringSubmatch(s); m != nil {
		return buildDate(m[1], m[2], m[3])
	}
	if m := dmy4DateRe.FindStringSubmatch(s); m != nil {
		return buildDate(m[3], m[2], m[1])
	}
	if m := dmy2DateRe.FindStringSubmatch(s); m != nil {
		y, _ := strconv.Atoi(m[3])
		return buildDate(strconv.Itoa(2000+y), m[2], m[1])
	}

	for _, layout := range fallbackFmt {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func buildDate(year, month, day string) (time.Time, bool) {
	y, _ := strconv.Atoi(year)
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC), true
}
