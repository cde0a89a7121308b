package services

import (
	"net/url"
	"time"

	"donorhub/models"
)

const calendarTimeLayout = "20060102T150405Z"

// GoogleCalendarLink builds the "add to calendar" URL for an event. The
// event is blocked out for two hours starting at its date.
func GoogleCalendarLink(e models.Event) string {
	start := e.Date.UTC()
	end := start.Add(2 * time.Hour)

	q := url.Values{}
	q.Set("action", "TEMPLATE")
	q.Set("text", e.Title)
	q.Set("dates", start.Format(calendarTimeLayout)+"/"+end.Format(calendarTimeLayout))
	q.Set("details", e.Description)
	q.Set("location", e.Location)

	return "https://calendar.google.com/calendar/render?" + q.Encode()
}
