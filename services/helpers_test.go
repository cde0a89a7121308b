package services

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"

	"donorhub/models"
)

func testLogger() *zerolog.Logger {
	log := zerolog.Nop()
	return &log
}

// fakeGateway implements Gateway with overridable behaviors, defaulting to
// empty successful replies.
type fakeGateway struct {
	listEvents       func(ctx context.Context) ([]models.Event, error)
	listPast         func(ctx context.Context) ([]models.Event, error)
	listJoined       func(ctx context.Context, token string) ([]models.Participation, error)
	joinEvent        func(ctx context.Context, token string, eventID int64, members int) error
	setReminder      func(ctx context.Context, token string, eventID int64, hours int) error
	addPhoto         func(ctx context.Context, token string, eventID int64, url string) error
	deletePhoto      func(ctx context.Context, token string, eventID int64, url string) error
	downloadCert     func(ctx context.Context, token string, eventID int64) ([]byte, error)
	joinCalls        int
	listJoinedCalls  int
	listEventsCalls  int
	setReminderCalls int
}

func (f *fakeGateway) ListEvents(ctx context.Context) ([]models.Event, error) {
	f.listEventsCalls++
	if f.listEvents != nil {
		return f.listEvents(ctx)
	}
	return nil, nil
}

func (f *fakeGateway) ListPastEvents(ctx context.Context) ([]models.Event, error) {
	if f.listPast != nil {
		return f.listPast(ctx)
	}
	return nil, nil
}

func (f *fakeGateway) ListJoinedEvents(ctx context.Context, token string) ([]models.Participation, error) {
	f.listJoinedCalls++
	if f.listJoined != nil {
		return f.listJoined(ctx, token)
	}
	return nil, nil
}

func (f *fakeGateway) JoinEvent(ctx context.Context, token string, eventID int64, members int) error {
	f.joinCalls++
	if f.joinEvent != nil {
		return f.joinEvent(ctx, token, eventID, members)
	}
	return nil
}

func (f *fakeGateway) SetReminder(ctx context.Context, token string, eventID int64, hours int) error {
	f.setReminderCalls++
	if f.setReminder != nil {
		return f.setReminder(ctx, token, eventID, hours)
	}
	return nil
}

func (f *fakeGateway) AddGalleryPhoto(ctx context.Context, token string, eventID int64, url string) error {
	if f.addPhoto != nil {
		return f.addPhoto(ctx, token, eventID, url)
	}
	return nil
}

func (f *fakeGateway) DeleteGalleryPhoto(ctx context.Context, token string, eventID int64, url string) error {
	if f.deletePhoto != nil {
		return f.deletePhoto(ctx, token, eventID, url)
	}
	return nil
}

func (f *fakeGateway) DownloadCertificate(ctx context.Context, token string, eventID int64) ([]byte, error) {
	if f.downloadCert != nil {
		return f.downloadCert(ctx, token, eventID)
	}
	return []byte("%PDF-1.4"), nil
}

// fakeHost implements ImageHost.
type fakeHost struct {
	upload func(ctx context.Context, filename string, file io.Reader) (string, error)
	calls  int
}

func (f *fakeHost) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	f.calls++
	if f.upload != nil {
		return f.upload(ctx, filename, file)
	}
	return "https://images.example/" + filename, nil
}

func eventAt(id int64, title string, date time.Time) models.Event {
	return models.Event{
		ID:       id,
		Title:    title,
		Location: "Vientiane",
		Date:     date,
		Type:     "community",
	}
}

func sessionWithToken(token string, userID int64) *models.Session {
	return &models.Session{ID: "sess-1", Token: token, UserID: userID}
}
