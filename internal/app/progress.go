package app

import (
	"math"
	"time"
)

const dayLayout = "2006-01-02"

// percentOf returns v as a rounded percentage of goal, or 0 when there is
// no goal.
func percentOf(v, goal float64) int {
	if goal <= 0 {
		return 0
	}
	return int(math.Round(v / goal * 100))
}

func parseDay(day string) (time.Time, error) {
	return time.ParseInLocation(dayLayout, day, time.Local)
}

func validDay(day string) bool {
	_, err := parseDay(day)
	return err == nil
}

// LocalDay formats t as a YYYY-MM-DD day in the server's local time zone.
func LocalDay(t time.Time) string {
	return t.In(time.Local).Format(dayLayout)
}
