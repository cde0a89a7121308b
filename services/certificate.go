package services

import (
	"context"
	"fmt"
)

// DownloadCertificate fetches the attendance certificate for a past event
// the user joined, returning the PDF bytes and the download filename.
func (v *EventView) DownloadCertificate(ctx context.Context, eventID int64) ([]byte, string, error) {
	if err := v.guard(); err != nil {
		return nil, "", err
	}
	if !v.Authenticated() {
		return nil, "", ErrAuthRequired
	}
	rec, ok := v.tracker.Record(eventID)
	if !ok {
		return nil, "", ErrCertificateTooEarly
	}
	if !rec.Date.Before(v.now()) {
		return nil, "", ErrCertificateTooEarly
	}

	pdf, err := v.gw.DownloadCertificate(ctx, v.token, eventID)
	if err != nil {
		v.log.Error().Err(err).Int64("event_id", eventID).Msg("certificate download failed")
		return nil, "", err
	}
	return pdf, fmt.Sprintf("certificate-event-%d.pdf", eventID), nil
}
