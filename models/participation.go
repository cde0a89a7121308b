package models

import "time"

// Participation is one joined-event record for the current user.
// EventID is the normalized identity; the backend exposes it as "eventId"
// on registration payloads and "id" on event payloads, and the gateway
// folds both into this single field.
type Participation struct {
	EventID  int64          `json:"eventId"`
	Title    string         `json:"title"`
	Date     time.Time      `json:"date"`
	Location string         `json:"location"`
	Members  int            `json:"members"`
	Status   string         `json:"status"`
	ImageURL string         `json:"imageUrl"`
	Gallery  []GalleryPhoto `json:"gallery"`
}
