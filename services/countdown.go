package services

import (
	"fmt"
	"time"

	"donorhub/models"
)

// CountdownLive is displayed once the target moment has been reached.
const CountdownLive = "Event is live!"

// Remaining splits the time until target into whole days, hours and minutes.
// Once target is reached all components are zero; the countdown never goes
// negative.
func Remaining(now, target time.Time) (days, hours, minutes int) {
	d := target.Sub(now)
	if d <= 0 {
		return 0, 0, 0
	}
	days = int(d / (24 * time.Hour))
	d -= time.Duration(days) * 24 * time.Hour
	hours = int(d / time.Hour)
	d -= time.Duration(hours) * time.Hour
	minutes = int(d / time.Minute)
	return days, hours, minutes
}

// FormatCountdown renders the remaining time the way the events page shows
// it, e.g. "2d 5h 30m left".
func FormatCountdown(now, target time.Time) string {
	if !target.After(now) {
		return CountdownLive
	}
	days, hours, minutes := Remaining(now, target)
	return fmt.Sprintf("%dd %dh %dm left", days, hours, minutes)
}

// Countdown derives the banner for the nearest catalog event. Nothing is
// cached: every call reads the clock, so the banner reaches the live state
// at the exact moment the event starts. The target is the head of the
// upcoming list; it stays live once started and rebinds when a catalog
// refresh prunes it.
type Countdown struct {
	catalog *Catalog
	now     func() time.Time
}

func NewCountdown(catalog *Catalog) *Countdown {
	return &Countdown{
		catalog: catalog,
		now:     time.Now,
	}
}

// Banner returns the current countdown text and the event it counts toward.
// Text is empty when no upcoming event exists, a valid terminal state.
func (c *Countdown) Banner() (string, *models.Event) {
	return c.BannerAt(c.now())
}

// BannerAt derives the banner for an explicit clock reading.
func (c *Countdown) BannerAt(now time.Time) (string, *models.Event) {
	next, ok := c.catalog.FirstEvent()
	if !ok {
		return "", nil
	}
	return FormatCountdown(now, next.Date), &next
}
