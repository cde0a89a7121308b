package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"donorhub/models"
	"donorhub/monitoring"
)

// eventDTO mirrors the backend's event payloads. Registrations carry the
// event identity as "eventId" while event listings use "id"; both are folded
// into a single normalized ID here so the aliasing never leaks past this
// package.
type eventDTO struct {
	ID           int64                 `json:"id"`
	EventID      int64                 `json:"eventId"`
	Title        string                `json:"title"`
	Location     string                `json:"location"`
	Date         string                `json:"date"`
	Type         string                `json:"type"`
	ImageURL     string                `json:"imageUrl"`
	Description  string                `json:"description"`
	Organizer    string                `json:"organizer"`
	Status       string                `json:"status"`
	Capacity     int                   `json:"capacity"`
	Participants int                   `json:"participants"`
	Members      int                   `json:"members"`
	Gallery      []models.GalleryPhoto `json:"gallery"`
}

func (d *eventDTO) normalizedID() int64 {
	if d.ID != 0 {
		return d.ID
	}
	return d.EventID
}

// The backend emits calendar dates as plain "2006-01-02" strings but some
// admin-edited records carry full timestamps.
var eventDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseEventDate(s string) (time.Time, error) {
	for _, layout := range eventDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized event date %q", s)
}

func (d *eventDTO) toEvent() (models.Event, error) {
	date, err := parseEventDate(d.Date)
	if err != nil {
		return models.Event{}, err
	}
	return models.Event{
		ID:           d.normalizedID(),
		Title:        d.Title,
		Location:     d.Location,
		Date:         date,
		Type:         d.Type,
		ImageURL:     d.ImageURL,
		Description:  d.Description,
		Organizer:    d.Organizer,
		Status:       d.Status,
		Capacity:     d.Capacity,
		Participants: d.Participants,
		Gallery:      d.Gallery,
	}, nil
}

func (d *eventDTO) toParticipation() (models.Participation, error) {
	date, err := parseEventDate(d.Date)
	if err != nil {
		return models.Participation{}, err
	}
	members := d.Members
	if members < 1 {
		members = 1
	}
	return models.Participation{
		EventID:  d.normalizedID(),
		Title:    d.Title,
		Date:     date,
		Location: d.Location,
		Members:  members,
		Status:   d.Status,
		ImageURL: d.ImageURL,
		Gallery:  d.Gallery,
	}, nil
}

func (c *Client) listEvents(ctx context.Context, op, path string) ([]models.Event, error) {
	var dtos []eventDTO
	if err := c.doJSON(ctx, op, http.MethodGet, path, "", nil, &dtos); err != nil {
		return nil, err
	}

	events := make([]models.Event, 0, len(dtos))
	for _, d := range dtos {
		e, err := d.toEvent()
		if err != nil {
			c.log.Warn().Err(err).Int64("eventId", d.normalizedID()).Msg("skipping event with bad date")
			continue
		}
		events = append(events, e)
	}
	return events, nil
}

// ListEvents returns the upcoming events published by the backend.
func (c *Client) ListEvents(ctx context.Context) ([]models.Event, error) {
	return c.listEvents(ctx, "listEvents", "/api/events")
}

// ListPastEvents returns events whose date has already passed.
func (c *Client) ListPastEvents(ctx context.Context) ([]models.Event, error) {
	return c.listEvents(ctx, "listPastEvents", "/api/events/past")
}

// ListJoinedEvents returns the current user's participation records.
func (c *Client) ListJoinedEvents(ctx context.Context, token string) ([]models.Participation, error) {
	var dtos []eventDTO
	if err := c.doJSON(ctx, "listJoinedEvents", http.MethodGet, "/api/user/events", token, nil, &dtos); err != nil {
		return nil, err
	}

	records := make([]models.Participation, 0, len(dtos))
	for _, d := range dtos {
		r, err := d.toParticipation()
		if err != nil {
			c.log.Warn().Err(err).Int64("eventId", d.normalizedID()).Msg("skipping registration with bad date")
			continue
		}
		records = append(records, r)
	}
	return records, nil
}

// JoinEvent registers the user for an event with the given member count.
func (c *Client) JoinEvent(ctx context.Context, token string, eventID int64, members int) error {
	body := map[string]int{"members": members}
	return c.doJSON(ctx, "joinEvent", http.MethodPost, fmt.Sprintf("/api/events/%d/join", eventID), token, body, nil)
}

// SetReminder schedules an out-of-band reminder for a joined event.
func (c *Client) SetReminder(ctx context.Context, token string, eventID int64, hoursBefore int) error {
	body := map[string]int{"hoursBefore": hoursBefore}
	return c.doJSON(ctx, "setReminder", http.MethodPost, fmt.Sprintf("/api/events/%d/reminder", eventID), token, body, nil)
}

// AddGalleryPhoto appends an already-hosted photo URL to an event's gallery.
func (c *Client) AddGalleryPhoto(ctx context.Context, token string, eventID int64, photoURL string) error {
	body := map[string]string{"url": photoURL}
	return c.doJSON(ctx, "addGalleryPhoto", http.MethodPost, fmt.Sprintf("/api/events/%d/gallery", eventID), token, body, nil)
}

// DeleteGalleryPhoto removes the matching photo URL from an event's gallery.
func (c *Client) DeleteGalleryPhoto(ctx context.Context, token string, eventID int64, photoURL string) error {
	body := map[string]string{"url": photoURL}
	return c.doJSON(ctx, "deleteGalleryPhoto", http.MethodDelete, fmt.Sprintf("/api/events/%d/gallery", eventID), token, body, nil)
}

// DownloadCertificate retrieves the attendance certificate PDF for a past
// joined event. The payload is returned as-is and never cached.
func (c *Client) DownloadCertificate(ctx context.Context, token string, eventID int64) ([]byte, error) {
	const op = "downloadCertificate"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(fmt.Sprintf("/api/events/%d/certificate", eventID)), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: http.NewReq: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		monitoring.TrackGatewayRequest(op, "transport_error", time.Since(start))
		return nil, fmt.Errorf("%s: http.Do: %w", op, err)
	}
	defer resp.Body.Close()
	monitoring.TrackGatewayRequest(op, strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return nil, c.decodeError(op, resp)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: io.ReadAll: %w", op, err)
	}
	return payload, nil
}
