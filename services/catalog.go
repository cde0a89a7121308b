package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"donorhub/models"
	"donorhub/monitoring"
)

// Catalog holds the event lists fetched from the backend. Reads never block
// on the network: a failed refresh keeps the previous lists (stale but
// available) and only reports the error.
type Catalog struct {
	gw  Gateway
	log *zerolog.Logger
	now func() time.Time

	mu     sync.RWMutex
	events []models.Event // ascending by date
	past   []models.Event
}

func NewCatalog(gw Gateway, log *zerolog.Logger) *Catalog {
	return &Catalog{
		gw:  gw,
		log: log,
		now: time.Now,
	}
}

func sortEventsByDate(events []models.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
}

// RefreshEvents reloads the upcoming-event list. On failure the in-memory
// list is left unchanged.
func (c *Catalog) RefreshEvents(ctx context.Context) error {
	events, err := c.gw.ListEvents(ctx)
	if err != nil {
		monitoring.TrackViewRefresh("events", "error")
		c.log.Error().Err(err).Msg("failed to fetch events; keeping previous list")
		return err
	}
	sortEventsByDate(events)

	c.mu.Lock()
	c.events = events
	c.mu.Unlock()

	monitoring.TrackViewRefresh("events", "ok")
	return nil
}

// RefreshPast reloads the past-event pool. On failure the in-memory list is
// left unchanged.
func (c *Catalog) RefreshPast(ctx context.Context) error {
	past, err := c.gw.ListPastEvents(ctx)
	if err != nil {
		monitoring.TrackViewRefresh("past_events", "error")
		c.log.Error().Err(err).Msg("failed to fetch past events; keeping previous list")
		return err
	}
	sortEventsByDate(past)

	c.mu.Lock()
	c.past = past
	c.mu.Unlock()

	monitoring.TrackViewRefresh("past_events", "ok")
	return nil
}

// Refresh reloads both lists. Each list fails independently; the first
// error is returned.
func (c *Catalog) Refresh(ctx context.Context) error {
	errEvents := c.RefreshEvents(ctx)
	errPast := c.RefreshPast(ctx)
	if errEvents != nil {
		return errEvents
	}
	return errPast
}

// Events returns the current event list, ascending by date.
func (c *Catalog) Events() []models.Event {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Event, len(c.events))
	copy(out, c.events)
	return out
}

// PastEvents returns events whose date is strictly before now. The backend
// already filters its past pool, but "past" is recomputed here so the answer
// stays correct across a day boundary without a refetch.
func (c *Catalog) PastEvents() []models.Event {
	now := c.now()

	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Event, 0, len(c.past))
	for _, e := range c.past {
		if e.IsPast(now) {
			out = append(out, e)
		}
	}
	return out
}

// FirstEvent returns the head of the upcoming list. The backend prunes
// started events on refetch, so the head may be mid-event until the next
// refresh replaces it.
func (c *Catalog) FirstEvent() (models.Event, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.events) == 0 {
		return models.Event{}, false
	}
	return c.events[0], true
}

// NextEventAt returns the nearest event with date >= now. ok is false when
// no upcoming event exists, a valid terminal state.
func (c *Catalog) NextEventAt(now time.Time) (models.Event, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, e := range c.events {
		if !e.Date.Before(now) {
			return e, true
		}
	}
	return models.Event{}, false
}

func (c *Catalog) NextEvent() (models.Event, bool) {
	return c.NextEventAt(c.now())
}

// UpcomingCount returns the number of events with date >= now.
func (c *Catalog) UpcomingCount() int {
	now := c.now()

	c.mu.RLock()
	defer c.mu.RUnlock()
	count := 0
	for _, e := range c.events {
		if !e.Date.Before(now) {
			count++
		}
	}
	return count
}

// Count returns the total number of catalog events.
func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.events)
}

// Event looks an event up by id across the upcoming and past lists.
func (c *Catalog) Event(eventID int64) (models.Event, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, e := range c.events {
		if e.ID == eventID {
			return e, true
		}
	}
	for _, e := range c.past {
		if e.ID == eventID {
			return e, true
		}
	}
	return models.Event{}, false
}

// Cities returns the distinct event locations, sorted.
func (c *Catalog) Cities() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]bool)
	var cities []string
	for _, e := range c.events {
		if e.Location == "" || seen[e.Location] {
			continue
		}
		seen[e.Location] = true
		cities = append(cities, e.Location)
	}
	sort.Strings(cities)
	return cities
}

// Months returns the distinct month names of catalog events in
// chronological order, for the month filter dropdown.
func (c *Catalog) Months() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]bool)
	var months []string
	for _, e := range c.events {
		m := e.Date.Format("January")
		if seen[m] {
			continue
		}
		seen[m] = true
		months = append(months, m)
	}
	return months
}
