package services

import (
	"context"
	"errors"
	"io"

	"donorhub/models"
)

// Gateway is the slice of the backend REST API the event view consumes.
// Authenticated calls take the session's bearer token explicitly so the
// token stays immutable for the duration of each request.
type Gateway interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
	ListPastEvents(ctx context.Context) ([]models.Event, error)
	ListJoinedEvents(ctx context.Context, token string) ([]models.Participation, error)
	JoinEvent(ctx context.Context, token string, eventID int64, members int) error
	SetReminder(ctx context.Context, token string, eventID int64, hoursBefore int) error
	AddGalleryPhoto(ctx context.Context, token string, eventID int64, photoURL string) error
	DeleteGalleryPhoto(ctx context.Context, token string, eventID int64, photoURL string) error
	DownloadCertificate(ctx context.Context, token string, eventID int64) ([]byte, error)
}

// ImageHost uploads a file to the external image host and returns the
// hosted URL.
type ImageHost interface {
	Upload(ctx context.Context, filename string, file io.Reader) (string, error)
}

// Eligibility violations. These are detected locally, before any network
// call is made.
var (
	ErrAuthRequired        = errors.New("please login to continue")
	ErrNotJoined           = errors.New("you must join the event first")
	ErrAlreadyJoined       = errors.New("you already joined this event")
	ErrInvalidMembers      = errors.New("member count must be at least 1")
	ErrEventNotPast        = errors.New("photos can be added only after the event has passed")
	ErrEventUnknown        = errors.New("unknown event")
	ErrCertificateTooEarly = errors.New("certificates are available only for past events you attended")
	ErrNoReminderSelection = errors.New("no reminder selection in progress")
	ErrInvalidHours        = errors.New("reminder hours must be 1, 5 or 24")
	ErrViewClosed          = errors.New("view has been closed")
)
