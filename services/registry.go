package services

import (
	"sync"

	"github.com/rs/zerolog"

	"donorhub/models"
	"donorhub/monitoring"
)

// ViewRegistry maps session ids to their event views. A session gets one
// view for its whole lifetime; logout removes and closes it.
type ViewRegistry struct {
	catalog   *Catalog
	countdown *Countdown
	gw        Gateway
	host      ImageHost
	log       *zerolog.Logger

	mu    sync.Mutex
	views map[string]*EventView
}

func NewViewRegistry(catalog *Catalog, countdown *Countdown, gw Gateway, host ImageHost, log *zerolog.Logger) *ViewRegistry {
	return &ViewRegistry{
		catalog:   catalog,
		countdown: countdown,
		gw:        gw,
		host:      host,
		log:       log,
		views:     make(map[string]*EventView),
	}
}

// Attach returns the view for the session, creating it on first use.
func (r *ViewRegistry) Attach(session *models.Session) *EventView {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.views[session.ID]; ok {
		return v
	}
	v := NewEventView(r.catalog, r.countdown, r.gw, r.host, session, r.log)
	r.views[session.ID] = v
	monitoring.TrackSessionOpened()
	r.log.Debug().Str("session_id", session.ID).Msg("event view opened")
	return v
}

// Get returns the view for a session id if one exists.
func (r *ViewRegistry) Get(sessionID string) (*EventView, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.views[sessionID]
	return v, ok
}

// Remove closes and discards the session's view. Safe to call for unknown
// ids.
func (r *ViewRegistry) Remove(sessionID string) {
	r.mu.Lock()
	v, ok := r.views[sessionID]
	if ok {
		delete(r.views, sessionID)
	}
	r.mu.Unlock()

	if !ok {
		return
	}
	v.Close()
	monitoring.TrackSessionClosed()
	r.log.Debug().Str("session_id", sessionID).Msg("event view closed")
}

// CloseAll closes every view, for shutdown.
func (r *ViewRegistry) CloseAll() {
	r.mu.Lock()
	views := r.views
	r.views = make(map[string]*EventView)
	r.mu.Unlock()

	for _, v := range views {
		v.Close()
		monitoring.TrackSessionClosed()
	}
}

// Count returns the number of live views.
func (r *ViewRegistry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}
