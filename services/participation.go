package services

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"donorhub/models"
	"donorhub/monitoring"
)

// Tracker holds the current user's joined-event set. IsJoined answers from
// the most recent successful load or join, never from a page-load snapshot.
type Tracker struct {
	gw  Gateway
	log *zerolog.Logger

	mu      sync.RWMutex
	records []models.Participation // ascending by event date
	joined  map[int64]models.Participation
}

func NewTracker(gw Gateway, log *zerolog.Logger) *Tracker {
	return &Tracker{
		gw:     gw,
		log:    log,
		joined: make(map[int64]models.Participation),
	}
}

// fetch loads the participation records for the token. An empty token is
// not an error: anonymous users simply have no joined events, and no
// network call is made.
func (t *Tracker) fetch(ctx context.Context, token string) ([]models.Participation, error) {
	if token == "" {
		return nil, nil
	}

	records, err := t.gw.ListJoinedEvents(ctx, token)
	if err != nil {
		monitoring.TrackViewRefresh("participation", "error")
		t.log.Error().Err(err).Msg("failed to fetch joined events; keeping previous set")
		return nil, err
	}
	monitoring.TrackViewRefresh("participation", "ok")
	return records, nil
}

// apply replaces the membership set with the fetched records.
func (t *Tracker) apply(records []models.Participation) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})

	joined := make(map[int64]models.Participation, len(records))
	for _, r := range records {
		joined[r.EventID] = r
	}

	t.mu.Lock()
	t.records = records
	t.joined = joined
	t.mu.Unlock()
}

// noteJoined inserts a record immediately after a successful join so that
// IsJoined reflects the join before any refetch completes.
func (t *Tracker) noteJoined(rec models.Participation) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.joined[rec.EventID]; ok {
		return
	}
	t.joined[rec.EventID] = rec
	t.records = append(t.records, rec)
	sort.SliceStable(t.records, func(i, j int) bool {
		return t.records[i].Date.Before(t.records[j].Date)
	})
}

// IsJoined reports whether the user has joined the event.
func (t *Tracker) IsJoined(eventID int64) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.joined[eventID]
	return ok
}

// Record returns the participation record for an event, if any.
func (t *Tracker) Record(eventID int64) (models.Participation, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	rec, ok := t.joined[eventID]
	return rec, ok
}

// Records returns the joined events, ascending by event date.
func (t *Tracker) Records() []models.Participation {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]models.Participation, len(t.records))
	copy(out, t.records)
	return out
}

// Count returns the number of joined events.
func (t *Tracker) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.records)
}
