package reltime

import (
	"strings"
	"testing"
	"time"
)

var base = time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)

func TestPhraseThresholds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		ago  time.Duration
		want string
	}{
		{0, "0 seconds ago"},
		{time.Second, "1 second ago"},
		{45 * time.Second, "45 seconds ago"},
		{time.Minute, "1 minute ago"},
		{10 * time.Minute, "10 minutes ago"},
		{59*time.Minute + 59*time.Second, "59 minutes ago"},
		{time.Hour, "1 hour ago"},
		{23 * time.Hour, "23 hours ago"},
		{24 * time.Hour, "1 day ago"},
		{48 * time.Hour, "2 days ago"},
		{6 * day, "6 days ago"},
		{7 * day, "1 week ago"},
		{20 * day, "2 weeks ago"},
		{28 * day, "0 months ago"},
		{30 * day, "1 month ago"},
		{95 * day, "3 months ago"},
	}

	for _, tc := range cases {
		c := NewCorrector(base, nil)
		got, _ := c.Age(base, base.Add(-tc.ago))
		if got != tc.want {
			t.Errorf("age for %v = %q, want %q", tc.ago, got, tc.want)
		}
	}
}

func TestCorrectorNoSkewForPastDates(t *testing.T) {
	t.Parallel()

	published := []time.Time{
		base.Add(-10 * time.Minute),
		base.Add(-2 * day),
	}
	c := NewCorrector(base, published)
	if c.Minutes() != 0 {
		t.Fatalf("expected no correction, got %d minutes", c.Minutes())
	}
}

func TestCorrectorSeedsWholeHoursForFutureDates(t *testing.T) {
	t.Parallel()

	cases := []struct {
		ahead time.Duration
		want  int64
	}{
		{5 * time.Minute, 60},
		{time.Hour, 60},
		{61 * time.Minute, 120},
		{3*time.Hour + 1*time.Second, 240},
	}

	for _, tc := range cases {
		c := NewCorrector(base, []time.Time{base.Add(tc.ahead)})
		if c.Minutes() != tc.want {
			t.Errorf("correction for %v ahead = %d minutes, want %d", tc.ahead, c.Minutes(), tc.want)
		}
	}
}

func TestAgeNeverNegative(t *testing.T) {
	t.Parallel()

	// The pre-scan only saw a modest skew, but one item is further ahead
	// than the estimate covers.
	c := NewCorrector(base, []time.Time{base.Add(30 * time.Minute)})
	if c.Minutes() != 60 {
		t.Fatalf("unexpected seed correction: %d", c.Minutes())
	}

	age, _ := c.Age(base, base.Add(90*time.Minute))
	if strings.Contains(age, "-") {
		t.Fatalf("negative age: %q", age)
	}
	// Deficit top-up: 90m ahead minus 60m seed leaves 30m, so the
	// accumulator grows to cover it.
	if c.Minutes() != 90 {
		t.Errorf("expected topped-up correction of 90 minutes, got %d", c.Minutes())
	}

	// Later items see the larger correction.
	age, _ = c.Age(base, base.Add(30*time.Minute))
	if age != "1 hour ago" {
		t.Errorf("age after top-up = %q, want %q", age, "1 hour ago")
	}
}

func TestAgeSortTimestampIncludesCorrection(t *testing.T) {
	t.Parallel()

	published := base.Add(10 * time.Minute)
	c := NewCorrector(base, []time.Time{published})

	_, ts := c.Age(base, published)
	want := published.UnixMilli() + 60*60_000
	if ts != want {
		t.Errorf("sort timestamp = %d, want %d", ts, want)
	}
}

func TestAgeAppliesZoneOffsetGap(t *testing.T) {
	t.Parallel()

	// Published 30 minutes before base, but reported in a zone two hours
	// east; the working clock shifts by the offset difference.
	zone := time.FixedZone("EET", 2*60*60)
	published := base.Add(-30 * time.Minute).In(zone)

	c := NewCorrector(base, nil)
	age, _ := c.Age(base, published)
	if age != "2 hours ago" {
		t.Errorf("age = %q, want %q", age, "2 hours ago")
	}
}
