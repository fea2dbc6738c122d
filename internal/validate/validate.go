package validate

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/araddon/dateparse"
	"github.com/spf13/cast"
)

var (
	reEmail   = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID      = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reBarcode = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)
)

// MinQueryLen is the shortest query the search page will run.
const MinQueryLen = 3

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 100 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// NotificationEmail allows clearing the address; anything else must be valid.
func NotificationEmail(s string) (string, bool) {
	if strings.TrimSpace(s) == "" {
		return "", true
	}
	return Email(s)
}

// Q trims a search query and reports whether it is long enough to run.
func Q(s string) (string, bool) {
	s = clip(strings.TrimSpace(s), 50)
	return s, utf8.RuneCountInString(s) >= MinQueryLen
}

// ID validates a simple resource identifier (uuids included).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

func Barcode(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reBarcode.MatchString(s)
}

// Name validates a product name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > 120 {
		return "", false
	}
	return s, true
}

// Optional trims free text such as batch number or aisle.
func Optional(s string) string {
	return clip(strings.TrimSpace(s), 64)
}

// clip keeps at most n runes of s.
func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// Price parses a price, falling back to 0 when unparsable or negative.
func Price(s string) float64 {
	v, err := cast.ToFloat64E(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// ExpiryDate accepts "2024-01-31", RFC 3339 and the other layouts
// dateparse recognises. Dates without a zone are read in loc.
func ExpiryDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	t, err := dateparse.ParseIn(s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// NotifyDays reads the settings form value: unparsable means 30, and the
// result is clamped to 1-90.
func NotifyDays(s string) int {
	n, err := cast.ToIntE(strings.TrimSpace(s))
	if err != nil || n == 0 {
		n = 30
	}
	if n < 1 {
		return 1
	}
	if n > 90 {
		return 90
	}
	return n
}

// Checkbox treats the usual HTML form truthy values as true.
func Checkbox(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
