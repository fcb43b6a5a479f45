// Package interval maps urgency to sensible notification granularities and
// parses the labels back. Pure policy, no I/O.
package interval

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalid = errors.New("invalid interval label")

const (
	minuteMin = 1
	hourMin   = 60
	dayMin    = 1440
	weekMin   = 10080
	monthMin  = 43200
	yearMin   = 525600
)

type band struct {
	within  time.Duration
	offered []time.Duration // monotonically coarser as urgency drops
}

// The offered values are a UX heuristic, not a correctness constraint; any
// monotonically-coarsening table would do.
var bands = []band{
	{time.Hour, mins(1, 5, 10, 15, 30)},
	{3 * time.Hour, mins(5, 10, 15, 30, 60)},
	{6 * time.Hour, mins(15, 30, 60, 120)},
	{24 * time.Hour, hours(1, 3, 6, 12)},
	{3 * 24 * time.Hour, hours(3, 6, 12, 24)},
	{7 * 24 * time.Hour, hours(6, 12, 24, 72)},
	{14 * 24 * time.Hour, hours(12, 24, 72, 168)},
	{30 * 24 * time.Hour, days(1, 3, 7, 14)},
	{90 * 24 * time.Hour, days(3, 7, 14, 30)},
	{180 * 24 * time.Hour, days(7, 14, 30, 60)},
	{365 * 24 * time.Hour, days(14, 30, 60, 90)},
}

var farOut = days(30, 60, 90, 365)

// Suggest returns interval choices suited to how much time remains before
// the due moment. A past-due task is treated as maximally urgent.
func Suggest(dueAt, now time.Time) []time.Duration {
	left := dueAt.Sub(now)
	for _, b := range bands {
		if left < b.within {
			return b.offered
		}
	}
	return farOut
}

var units = []struct {
	token   string
	minutes int64
}{
	// order matters: "min" must win over the "m" in "mo"
	{"min", minuteMin},
	{"hr", hourMin},
	{"day", dayMin},
	{"wk", weekMin},
	{"mo", monthMin},
	{"yr", yearMin},
}

// ParseLabel turns a human label back into a duration. "off" means
// disabled (zero). The unit is matched as a case-insensitive substring, so
// "15 mins" and "2 hrs" parse too.
func ParseLabel(text string) (time.Duration, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "off" {
		return 0, nil
	}
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return 0, ErrInvalid
	}
	n, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil || n <= 0 {
		return 0, ErrInvalid
	}
	for _, u := range units {
		if strings.Contains(fields[1], u.token) {
			return time.Duration(n*u.minutes) * time.Minute, nil
		}
	}
	return 0, ErrInvalid
}

// Label renders a duration the way ParseLabel expects it back.
func Label(d time.Duration) string {
	if d == 0 {
		return "off"
	}
	m := int64(d / time.Minute)
	switch {
	case m%dayMin == 0 && m >= dayMin:
		return fmt.Sprintf("%d day", m/dayMin)
	case m%hourMin == 0 && m >= hourMin:
		return fmt.Sprintf("%d hr", m/hourMin)
	default:
		return fmt.Sprintf("%d min", m)
	}
}

func mins(vs ...int64) []time.Duration  { return scale(vs, time.Minute) }
func hours(vs ...int64) []time.Duration { return scale(vs, time.Hour) }
func days(vs ...int64) []time.Duration  { return scale(vs, 24*time.Hour) }

func scale(vs []int64, unit time.Duration) []time.Duration {
	out := make([]time.Duration, len(vs))
	for i, v := range vs {
		out[i] = time.Duration(v) * unit
	}
	return out
}
