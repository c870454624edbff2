// Package reltime renders publish dates as human relative ages ("3 hours
// ago") while compensating for feeds whose clock runs ahead of ours.
package reltime

import (
	"fmt"
	"math"
	"time"
)

// NoTimestamp is the sort timestamp for items without a usable publish date,
// so they always order after everything else.
const NoTimestamp = math.MinInt64

// Corrector accumulates the clock-skew compensation, in minutes, for one
// feed batch. It is created per normalization call and never shared.
type Corrector struct {
	minutes int64
}

// NewCorrector pre-scans the batch's publish dates. If the newest one is
// ahead of the local clock, the whole batch gets shifted by the smallest
// whole number of hours covering the gap.
func NewCorrector(now time.Time, published []time.Time) *Corrector {
	c := &Corrector{}
	var latest time.Time
	for _, t := range published {
		if t.After(latest) {
			latest = t
		}
	}
	if latest.IsZero() {
		return c
	}
	if ahead := latest.Sub(now); ahead > 0 {
		hours := int64(math.Ceil(ahead.Hours()))
		c.minutes = hours * 60
	}
	return c
}

// Minutes reports the accumulated correction.
func (c *Corrector) Minutes() int64 {
	return c.minutes
}

// Age returns the display age for one item plus its sort timestamp in
// milliseconds (publish date shifted by the accumulated correction).
//
// The working clock is adjusted by the gap between the item's reported zone
// offset and the local one, then by the accumulated correction. If the item
// is still in the future after that, the accumulator is topped up by exactly
// the remaining deficit so no item ever shows a negative age.
func (c *Corrector) Age(now, published time.Time) (string, int64) {
	_, pubOffset := published.Zone()
	_, localOffset := now.Zone()

	working := now.
		Add(time.Duration(pubOffset-localOffset) * time.Second).
		Add(time.Duration(c.minutes) * time.Minute)

	diff := working.Sub(published)
	if diff < 0 {
		deficit := int64(math.Ceil((-diff).Minutes()))
		c.minutes += deficit
		working = working.Add(time.Duration(deficit) * time.Minute)
		diff = working.Sub(published)
	}

	return phrase(diff), published.UnixMilli() + c.minutes*60_000
}

const (
	day   = 24 * time.Hour
	week  = 7 * day
	month = 30 * day
)

func phrase(d time.Duration) string {
	switch {
	case d < time.Minute:
		return plural(int64(d/time.Second), "second")
	case d < time.Hour:
		return plural(int64(d/time.Minute), "minute")
	case d < day:
		return plural(int64(d/time.Hour), "hour")
	case d < week:
		return plural(int64(d/day), "day")
	case d < 4*week:
		return plural(int64(d/week), "week")
	default:
		return plural(int64(d/month), "month")
	}
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
