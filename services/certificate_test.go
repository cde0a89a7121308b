package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"donorhub/models"
)

func TestDownloadCertificate(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	pastEvent := eventAt(1, "Old Drive", now.Add(-72*time.Hour))
	futureEvent := eventAt(2, "Next Drive", now.Add(72*time.Hour))
	gw := &fakeGateway{}
	view := newTestView(t, gw, now, []models.Event{futureEvent}, []models.Event{pastEvent})

	view.tracker.apply([]models.Participation{
		{EventID: 1, Date: pastEvent.Date, Members: 1},
		{EventID: 2, Date: futureEvent.Date, Members: 1},
	})

	pdf, filename, err := view.DownloadCertificate(context.Background(), 1)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, "certificate-event-1.pdf", filename)

	_, _, err = view.DownloadCertificate(context.Background(), 2)
	assert.ErrorIs(t, err, ErrCertificateTooEarly, "future events have no certificate yet")

	_, _, err = view.DownloadCertificate(context.Background(), 99)
	assert.ErrorIs(t, err, ErrCertificateTooEarly, "events never joined have no certificate")
}

func TestDownloadCertificateRequiresLogin(t *testing.T) {
	gw := &fakeGateway{}
	catalog := NewCatalog(gw, testLogger())
	view := NewEventView(catalog, NewCountdown(catalog), gw, &fakeHost{}, nil, testLogger())

	_, _, err := view.DownloadCertificate(context.Background(), 1)

	assert.ErrorIs(t, err, ErrAuthRequired)
}
