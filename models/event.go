package models

import (
	"time"
)

// GalleryPhoto is a single photo reference in an event gallery.
// The URL is opaque; it is produced by the external image host.
type GalleryPhoto struct {
	URL string `json:"url"`
}

type Event struct {
	ID           int64          `json:"id"`
	Title        string         `json:"title"`
	Location     string         `json:"location"`
	Date         time.Time      `json:"date"`
	Type         string         `json:"type"` // e.g. Community, Health, Education
	ImageURL     string         `json:"imageUrl"`
	Description  string         `json:"description"`
	Organizer    string         `json:"organizer,omitempty"`
	Status       string         `json:"status"`
	Capacity     int            `json:"capacity"` // 0 = unlimited
	Participants int            `json:"participants"`
	Gallery      []GalleryPhoto `json:"gallery"`
}

// IsPast reports whether the event date is strictly before now.
// Always recomputed at evaluation time, never stored.
func (e *Event) IsPast(now time.Time) bool {
	return e.Date.Before(now)
}
