package services

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// DefaultReminderHours is preselected when a reminder dialog opens.
const DefaultReminderHours = 24

// ValidReminderHours reports whether hours is one of the offered lead times.
func ValidReminderHours(hours int) bool {
	return hours == 1 || hours == 5 || hours == 24
}

// ReminderManager tracks per-event reminder selections in progress. A flow
// exists from Open until a successful Submit or a Cancel; a failed Submit
// keeps the flow (and its hours) so the user can retry.
type ReminderManager struct {
	gw  Gateway
	log *zerolog.Logger

	mu    sync.Mutex
	flows map[int64]int // eventID -> selected hours
}

func NewReminderManager(gw Gateway, log *zerolog.Logger) *ReminderManager {
	return &ReminderManager{
		gw:    gw,
		log:   log,
		flows: make(map[int64]int),
	}
}

// Open starts a reminder selection for the event with the default lead time.
// Reopening an event resets its selection to the default.
func (m *ReminderManager) Open(eventID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flows[eventID] = DefaultReminderHours
}

// SetHours updates the selection for an open flow.
func (m *ReminderManager) SetHours(eventID int64, hours int) error {
	if !ValidReminderHours(hours) {
		return ErrInvalidHours
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.flows[eventID]; !ok {
		return ErrNoReminderSelection
	}
	m.flows[eventID] = hours
	return nil
}

// Selection returns the hours selected for an open flow.
func (m *ReminderManager) Selection(eventID int64) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	hours, ok := m.flows[eventID]
	return hours, ok
}

// Cancel discards the flow without contacting the backend.
func (m *ReminderManager) Cancel(eventID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.flows, eventID)
}

// Submit sends the selection to the backend. The flow is cleared only on
// success; on failure it stays open unchanged and the error is returned for
// the user to act on.
func (m *ReminderManager) Submit(ctx context.Context, token string, eventID int64) error {
	m.mu.Lock()
	hours, ok := m.flows[eventID]
	m.mu.Unlock()
	if !ok {
		return ErrNoReminderSelection
	}

	if err := m.gw.SetReminder(ctx, token, eventID, hours); err != nil {
		m.log.Error().Err(err).Int64("event_id", eventID).Int("hours", hours).
			Msg("failed to set reminder")
		return err
	}

	m.mu.Lock()
	delete(m.flows, eventID)
	m.mu.Unlock()

	m.log.Info().Int64("event_id", eventID).Int("hours", hours).Msg("reminder set")
	return nil
}
