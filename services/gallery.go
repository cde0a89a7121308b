package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"donorhub/internal/gateway"
	"donorhub/models"
)

// CanUpload reports whether the gallery upload controls are available: the
// user is logged in, the event has passed, and the user attended it.
func CanUpload(authenticated bool, e models.Event, joined bool, now time.Time) bool {
	return authenticated && e.IsPast(now) && joined
}

// GalleryManager runs the two-phase gallery flow: the file goes to the
// external image host first, then the hosted URL is registered with the
// backend.
type GalleryManager struct {
	gw   Gateway
	host ImageHost
	log  *zerolog.Logger
}

func NewGalleryManager(gw Gateway, host ImageHost, log *zerolog.Logger) *GalleryManager {
	return &GalleryManager{gw: gw, host: host, log: log}
}

// UploadPhoto uploads the file and attaches the resulting URL to the event's
// gallery. When the host upload succeeds but the backend rejects the URL,
// the hosted file is orphaned; its URL is logged for cleanup and the backend
// error is returned.
func (g *GalleryManager) UploadPhoto(ctx context.Context, token string, eventID int64, filename string, file io.Reader) (string, error) {
	url, err := g.host.Upload(ctx, filename, file)
	if err != nil {
		g.log.Error().Err(err).Int64("event_id", eventID).Msg("image upload failed")
		return "", err
	}

	if err := g.gw.AddGalleryPhoto(ctx, token, eventID, url); err != nil {
		g.log.Error().Err(err).Int64("event_id", eventID).Str("orphaned_url", url).
			Msg("uploaded image could not be attached to gallery")
		return "", err
	}

	g.log.Info().Int64("event_id", eventID).Str("url", url).Msg("gallery photo added")
	return url, nil
}

// DeletePhoto removes a photo from the event's gallery. A backend 404 means
// the photo is already gone and counts as success.
func (g *GalleryManager) DeletePhoto(ctx context.Context, token string, eventID int64, photoURL string) error {
	err := g.gw.DeleteGalleryPhoto(ctx, token, eventID, photoURL)
	if err == nil {
		return nil
	}

	var gwErr *gateway.Error
	if errors.As(err, &gwErr) && gwErr.StatusCode == http.StatusNotFound {
		g.log.Debug().Int64("event_id", eventID).Str("url", photoURL).
			Msg("gallery photo already removed")
		return nil
	}

	g.log.Error().Err(err).Int64("event_id", eventID).Msg("failed to delete gallery photo")
	return err
}
