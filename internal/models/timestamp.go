package models

import (
	"errors"
	"strings"
	"time"
)

// StampLayout is the on-disk timestamp format: ISO-8601 without zone,
// interpreted in local time. Matches what the existing data carries.
const StampLayout = "2006-01-02T15:04:05"

var ErrBadStamp = errors.New("malformed timestamp")

func FormatStamp(t time.Time) string {
	return t.Format(StampLayout)
}

// ParseStamp accepts the canonical layout plus a couple of variants seen in
// old rows (fractional seconds, space separator). Empty or unparsable input
// is ErrBadStamp; callers decide what absent means for their field.
func ParseStamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrBadStamp
	}
	for _, layout := range []string{
		StampLayout,
		"2006-01-02T15:04:05.999999999",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04",
	} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrBadStamp
}
