package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	LayoutDate     = "2006-01-02"
	layoutClock    = "15:04:05"
	layoutClockHM  = "15:04"
	layoutDateTime = "2006-01-02 15:04:05"
)

var (
	dateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	clockRe = regexp.MustCompile(`^\d{2}:\d{2}(:\d{2})?$`)
)

// ParseDate parses a strict YYYY-MM-DD calendar date in local timezone.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if !dateRe.MatchString(s) {
		return time.Time{}, fmt.Errorf("date %q is not YYYY-MM-DD", s)
	}
	return time.ParseInLocation(LayoutDate, s, time.Local)
}

// ParseClock parses HH:MM or HH:MM:SS and returns it normalized to HH:MM:SS.
func ParseClock(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !clockRe.MatchString(s) {
		return "", fmt.Errorf("time %q is not HH:MM[:SS]", s)
	}
	layout := layoutClock
	if len(s) == len(layoutClockHM) {
		layout = layoutClockHM
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return "", err
	}
	return t.Format(layoutClock), nil
}

// FormatDate formats time to YYYY-MM-DD in local timezone.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(LayoutDate)
}

// FormatDateTime formats time to "YYYY-MM-DD HH:MM:SS" in local timezone.
func FormatDateTime(t time.Time) string {
	return t.In(time.Local).Format(layoutDateTime)
}
