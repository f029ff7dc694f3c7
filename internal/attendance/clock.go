package attendance

import "time"

// Clock derives the attendance calendar date and wall time in the canonical
// zone, so the "today" boundary and the late cutoff are identical across
// deployments regardless of server locale.
type Clock struct {
	loc    *time.Location
	cutoff string
	now    func() time.Time
}

func NewClock(tz, cutoff string) *Clock {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		// Minimal containers may ship without tzdata; WIB is a fixed offset.
		loc = time.FixedZone("WIB", 7*60*60)
	}
	return &Clock{loc: loc, cutoff: cutoff, now: time.Now}
}

// Today returns the current local calendar date (YYYY-MM-DD) and wall time
// (HH:MM:SS).
func (c *Clock) Today() (date, wall string) {
	t := c.now().In(c.loc)
	return t.Format("2006-01-02"), t.Format("15:04:05")
}

// Classify returns Terlambat iff the check-in wall time is strictly after the
// cutoff. Zero-padded 24h strings compare correctly byte-wise, same trick the
// stored columns rely on for ordering.
func (c *Clock) Classify(wall string) string {
	if wall > c.cutoff {
		return StatusLate
	}
	return StatusPresent
}
