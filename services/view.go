package services

import (
	"context"
	"io"
	"sort"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"donorhub/models"
)

// Stats feeds the summary panel at the top of the events page.
type Stats struct {
	TotalEvents    int `json:"totalEvents"`
	UpcomingEvents int `json:"upcomingEvents"`
	JoinedEvents   int `json:"joinedEvents"`
	PastEvents     int `json:"pastEvents"`
}

// EventRow is one event as the page renders it, with the per-user flags
// resolved.
type EventRow struct {
	models.Event
	Joined       bool   `json:"joined"`
	CanUpload    bool   `json:"canUpload"`
	Countdown    string `json:"countdown,omitempty"`
	CalendarLink string `json:"calendarLink"`
}

// MonthSection is a "Month Year" group of rows.
type MonthSection struct {
	Label string     `json:"label"`
	Rows  []EventRow `json:"events"`
}

// Page is the full events-page view model for one render.
type Page struct {
	Banner        string                 `json:"banner,omitempty"`
	NextEvent     *models.Event          `json:"nextEvent,omitempty"`
	Groups        []MonthSection         `json:"groups"`
	MyUpcoming    []models.Participation `json:"myUpcoming"`
	MyPast        []models.Participation `json:"myPast"`
	PastNotJoined []EventRow             `json:"pastNotJoined"`
	Cities        []string               `json:"cities"`
	Months        []string               `json:"months"`
	Stats         Stats                  `json:"stats"`
	Authenticated bool                   `json:"authenticated"`
}

// EventView is the per-session view model. It snapshots the session at
// construction; the token never changes for the view's lifetime, and a
// logout closes the view rather than mutating it.
type EventView struct {
	catalog   *Catalog
	countdown *Countdown
	tracker   *Tracker
	reminders *ReminderManager
	gallery   *GalleryManager
	gw        Gateway
	log       *zerolog.Logger
	now       func() time.Time

	token  string
	userID int64

	// epoch guards against a slow participation fetch overwriting state
	// that a later Invalidate already cleared.
	epoch  atomic.Int64
	closed atomic.Bool
}

func NewEventView(catalog *Catalog, countdown *Countdown, gw Gateway, host ImageHost, session *models.Session, log *zerolog.Logger) *EventView {
	v := &EventView{
		catalog:   catalog,
		countdown: countdown,
		tracker:   NewTracker(gw, log),
		reminders: NewReminderManager(gw, log),
		gallery:   NewGalleryManager(gw, host, log),
		gw:        gw,
		log:       log,
		now:       time.Now,
	}
	if session != nil {
		v.token = session.Token
		v.userID = session.UserID
	}
	return v
}

func (v *EventView) Authenticated() bool {
	return v.token != ""
}

func (v *EventView) UserID() int64 {
	return v.userID
}

// Close marks the view unusable. Every subsequent operation fails with
// ErrViewClosed.
func (v *EventView) Close() {
	v.closed.Store(true)
	v.Invalidate()
}

// Invalidate bumps the epoch and clears the joined set. Any participation
// fetch started before the bump is discarded when it lands.
func (v *EventView) Invalidate() {
	v.epoch.Add(1)
	v.tracker.apply(nil)
}

func (v *EventView) guard() error {
	if v.closed.Load() {
		return ErrViewClosed
	}
	return nil
}

// RefreshParticipation refetches the joined set. A response belonging to an
// older epoch is dropped silently.
func (v *EventView) RefreshParticipation(ctx context.Context) error {
	if err := v.guard(); err != nil {
		return err
	}

	epoch := v.epoch.Load()
	records, err := v.tracker.fetch(ctx, v.token)
	if err != nil {
		return err
	}
	if v.epoch.Load() != epoch {
		v.log.Debug().Msg("dropping stale participation response")
		return nil
	}
	v.tracker.apply(records)
	return nil
}

// IsJoined reports whether the user has joined the event.
func (v *EventView) IsJoined(eventID int64) bool {
	return v.tracker.IsJoined(eventID)
}

// Join registers the user for an event with the given party size.
// Eligibility is checked locally first; a violation returns immediately
// without touching the network. After the backend acknowledges, the joined
// set is updated synchronously and both the catalog and the joined set are
// refetched; refetch failures leave the view stale but do not fail the join.
func (v *EventView) Join(ctx context.Context, eventID int64, members int) error {
	if err := v.guard(); err != nil {
		return err
	}
	if !v.Authenticated() {
		return ErrAuthRequired
	}
	if members < 1 {
		return ErrInvalidMembers
	}
	event, ok := v.catalog.Event(eventID)
	if !ok {
		return ErrEventUnknown
	}
	if v.tracker.IsJoined(eventID) {
		return ErrAlreadyJoined
	}

	if err := v.gw.JoinEvent(ctx, v.token, eventID, members); err != nil {
		v.log.Error().Err(err).Int64("event_id", eventID).Msg("join rejected")
		return err
	}

	v.tracker.noteJoined(models.Participation{
		EventID:  event.ID,
		Title:    event.Title,
		Date:     event.Date,
		Location: event.Location,
		Members:  members,
		Status:   event.Status,
		ImageURL: event.ImageURL,
	})
	v.log.Info().Int64("event_id", eventID).Int("members", members).Msg("joined event")

	if err := v.catalog.RefreshEvents(ctx); err != nil {
		v.log.Warn().Err(err).Msg("catalog refetch after join failed; showing stale list")
	}
	if err := v.RefreshParticipation(ctx); err != nil {
		v.log.Warn().Err(err).Msg("participation refetch after join failed")
	}
	return nil
}

// OpenReminder starts a reminder selection for a joined event.
func (v *EventView) OpenReminder(eventID int64) error {
	if err := v.guard(); err != nil {
		return err
	}
	if !v.Authenticated() {
		return ErrAuthRequired
	}
	if _, ok := v.catalog.Event(eventID); !ok {
		return ErrEventUnknown
	}
	if !v.tracker.IsJoined(eventID) {
		return ErrNotJoined
	}
	v.reminders.Open(eventID)
	return nil
}

func (v *EventView) SetReminderHours(eventID int64, hours int) error {
	if err := v.guard(); err != nil {
		return err
	}
	return v.reminders.SetHours(eventID, hours)
}

func (v *EventView) CancelReminder(eventID int64) {
	v.reminders.Cancel(eventID)
}

// SubmitReminder sends the open selection to the backend.
func (v *EventView) SubmitReminder(ctx context.Context, eventID int64) error {
	if err := v.guard(); err != nil {
		return err
	}
	if !v.Authenticated() {
		return ErrAuthRequired
	}
	return v.reminders.Submit(ctx, v.token, eventID)
}

// ReminderSelection exposes the hours of an open flow, for rendering the
// dialog.
func (v *EventView) ReminderSelection(eventID int64) (int, bool) {
	return v.reminders.Selection(eventID)
}

// galleryEligible enforces the upload preconditions in order: login, known
// event, event passed, user attended.
func (v *EventView) galleryEligible(eventID int64) error {
	if !v.Authenticated() {
		return ErrAuthRequired
	}
	event, ok := v.catalog.Event(eventID)
	if !ok {
		return ErrEventUnknown
	}
	if !event.IsPast(v.now()) {
		return ErrEventNotPast
	}
	if !v.tracker.IsJoined(eventID) {
		return ErrNotJoined
	}
	return nil
}

// UploadGalleryPhoto runs the two-phase upload for an eligible event and
// refetches the past pool so the new photo shows up.
func (v *EventView) UploadGalleryPhoto(ctx context.Context, eventID int64, filename string, file io.Reader) (string, error) {
	if err := v.guard(); err != nil {
		return "", err
	}
	if err := v.galleryEligible(eventID); err != nil {
		return "", err
	}

	url, err := v.gallery.UploadPhoto(ctx, v.token, eventID, filename, file)
	if err != nil {
		return "", err
	}
	if err := v.catalog.RefreshPast(ctx); err != nil {
		v.log.Warn().Err(err).Msg("past refetch after upload failed; showing stale gallery")
	}
	return url, nil
}

// DeleteGalleryPhoto removes a photo from an eligible event's gallery.
func (v *EventView) DeleteGalleryPhoto(ctx context.Context, eventID int64, photoURL string) error {
	if err := v.guard(); err != nil {
		return err
	}
	if err := v.galleryEligible(eventID); err != nil {
		return err
	}

	if err := v.gallery.DeletePhoto(ctx, v.token, eventID, photoURL); err != nil {
		return err
	}
	if err := v.catalog.RefreshPast(ctx); err != nil {
		v.log.Warn().Err(err).Msg("past refetch after delete failed; showing stale gallery")
	}
	return nil
}

// Stats computes the summary-panel numbers.
func (v *EventView) Stats() Stats {
	return Stats{
		TotalEvents:    v.catalog.Count(),
		UpcomingEvents: v.catalog.UpcomingCount(),
		JoinedEvents:   v.tracker.Count(),
		PastEvents:     len(v.catalog.PastEvents()),
	}
}

func (v *EventView) row(e models.Event, now time.Time) EventRow {
	joined := v.tracker.IsJoined(e.ID)
	return EventRow{
		Event:        e,
		Joined:       joined,
		CanUpload:    CanUpload(v.Authenticated(), e, joined, now),
		CalendarLink: GoogleCalendarLink(e),
	}
}

// Page assembles the whole events-page view model under the given filter.
func (v *EventView) Page(filter Filter) (Page, error) {
	if err := v.guard(); err != nil {
		return Page{}, err
	}
	now := v.now()

	var page Page
	page.Authenticated = v.Authenticated()
	page.Cities = v.catalog.Cities()
	page.Months = v.catalog.Months()
	page.Stats = v.Stats()

	banner, next := v.countdown.BannerAt(now)
	page.Banner = banner
	page.NextEvent = next

	filtered := FilterEvents(v.catalog.Events(), filter)
	for _, group := range GroupByMonth(filtered) {
		section := MonthSection{Label: group.Label}
		for _, e := range group.Events {
			row := v.row(e, now)
			if !e.Date.Before(now) {
				row.Countdown = FormatCountdown(now, e.Date)
			}
			section.Rows = append(section.Rows, row)
		}
		page.Groups = append(page.Groups, section)
	}

	page.MyUpcoming, page.MyPast = v.splitParticipation(now)

	past := v.catalog.PastEvents()
	for i := len(past) - 1; i >= 0; i-- {
		if v.tracker.IsJoined(past[i].ID) {
			continue
		}
		page.PastNotJoined = append(page.PastNotJoined, v.row(past[i], now))
	}

	return page, nil
}

// splitParticipation splits the joined events into upcoming (ascending) and
// past (most recent first).
func (v *EventView) splitParticipation(now time.Time) (upcoming, past []models.Participation) {
	for _, rec := range v.tracker.Records() {
		if rec.Date.Before(now) {
			past = append(past, rec)
		} else {
			upcoming = append(upcoming, rec)
		}
	}
	sort.SliceStable(past, func(i, j int) bool {
		return past[i].Date.After(past[j].Date)
	})
	return upcoming, past
}
