package grammar

import (
	"strings"
	"time"
)

// TimeFormat is the RFC 1123 layout of HTTP-date, the only form used on output.
const TimeFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

var dateLayouts = []string{
	"Mon, 2 Jan 2006 15:04:05 GMT",
	"Mon, 2 Jan 2006 15:04:05 UTC",
	"Mon, 2 Jan 2006 15:04:05 UT",
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05",
	"2 Jan 2006 15:04:05 GMT",
	"2 Jan 2006 15:04:05",
	"Mon, 2 Jan 06 15:04:05 GMT",
	"Monday, 2-Jan-06 15:04:05 GMT", // RFC 850
	time.ANSIC,
}

// ParseDate parses an HTTP-date. Besides RFC 1123 it accepts RFC 850, asctime
// and a few lenient variants seen in the wild. Zone names other than GMT, UT and UTC
// are rejected, numeric offsets are applied. The result is in UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// FormatDate renders t in RFC 1123 form, always in GMT.
func FormatDate(t time.Time) string {
	return t.UTC().Format(TimeFormat)
}
