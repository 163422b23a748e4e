package agenda

import (
	"time"

	"myhealth-server/internal/i18n"
)

// DateLayout is the date format used in query strings and strip entries.
const DateLayout = "2006-01-02"

// Display window of the day view: 11 hours from 08:00.
const (
	windowStartHour = 8
	windowMinutes   = 11 * 60
)

// NoIndicator is returned when the "now" line is not drawn.
const NoIndicator = -1.0

// Day is one entry of the week strip.
type Day struct {
	Date     string `json:"dateStr"`
	DayName  string `json:"dayName"`
	DayNum   string `json:"dayNum"`
	IsActive bool   `json:"isActive"`
}

// WeekStrip returns seven days starting the day before target.
func WeekStrip(target time.Time, loc i18n.Locale) []Day {
	target = truncateDay(target)
	start := target.AddDate(0, 0, -1)
	days := make([]Day, 0, 7)
	for i := 0; i < 7; i++ {
		d := start.AddDate(0, 0, i)
		days = append(days, Day{
			Date:     d.Format(DateLayout),
			DayName:  i18n.DayAbbrev(loc, d.Weekday()),
			DayNum:   d.Format("02"),
			IsActive: sameDay(d, target),
		})
	}
	return days
}

// NowOffsetPercent positions now across the 08:00-19:00 window when target is
// today. Outside the window or on another day it returns NoIndicator.
func NowOffsetPercent(target, now time.Time) float64 {
	if !sameDay(target, now) {
		return NoIndicator
	}
	now = now.In(target.Location())
	minutes := now.Hour()*60 + now.Minute() - windowStartHour*60
	if minutes < 0 || minutes > windowMinutes {
		return NoIndicator
	}
	return float64(minutes) / windowMinutes * 100
}

// DayBounds returns [start of day, start of next day) for t in t's location.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := truncateDay(t)
	return start, start.AddDate(0, 0, 1)
}

// ParseDate reads a YYYY-MM-DD date in now's location, falling back to today
// on empty or malformed input.
func ParseDate(raw string, now time.Time) time.Time {
	if raw != "" {
		if d, err := time.ParseInLocation(DateLayout, raw, now.Location()); err == nil {
			return d
		}
	}
	return truncateDay(now)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}
