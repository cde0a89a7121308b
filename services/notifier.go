package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"donorhub/models"
)

// NotificationGateway is the slice of the backend API the feed uses.
type NotificationGateway interface {
	ListNotifications(ctx context.Context, token string, userID int64) ([]models.Notification, error)
	MarkNotificationsRead(ctx context.Context, token string, userID int64) error
}

// Notifier polls the backend notification feed and remembers which entries
// each user has already been shown, so repeated polls only surface new ones.
type Notifier struct {
	gw    NotificationGateway
	redis *redis.Client
	log   *zerolog.Logger
}

func NewNotifier(gw NotificationGateway, rdb *redis.Client, log *zerolog.Logger) *Notifier {
	return &Notifier{gw: gw, redis: rdb, log: log}
}

// seenSetTTL bounds the dedup set for users who never log out; the window
// is refreshed on every poll, so entries only age out of an idle account.
const seenSetTTL = 30 * 24 * time.Hour

func seenKey(userID int64) string {
	return fmt.Sprintf("notif:seen:%d", userID)
}

// Feed returns the user's full notification feed.
func (n *Notifier) Feed(ctx context.Context, token string, userID int64) ([]models.Notification, error) {
	if token == "" {
		return nil, ErrAuthRequired
	}

	feed, err := n.gw.ListNotifications(ctx, token, userID)
	if err != nil {
		n.log.Error().Err(err).Int64("user_id", userID).Msg("failed to fetch notifications")
		return nil, err
	}
	return feed, nil
}

// Fresh returns the notifications the user has not been shown yet and marks
// them as shown. When redis is unavailable the whole feed is returned
// rather than dropping entries.
func (n *Notifier) Fresh(ctx context.Context, token string, userID int64) ([]models.Notification, error) {
	feed, err := n.Feed(ctx, token, userID)
	if err != nil {
		return nil, err
	}
	if len(feed) == 0 {
		return nil, nil
	}

	key := seenKey(userID)
	fresh := make([]models.Notification, 0, len(feed))
	for _, notif := range feed {
		added, err := n.redis.SAdd(ctx, key, notif.ID).Result()
		if err != nil {
			n.log.Warn().Err(err).Int64("user_id", userID).
				Msg("notification dedup unavailable; returning full feed")
			return feed, nil
		}
		if added > 0 {
			fresh = append(fresh, notif)
		}
	}
	if err := n.redis.Expire(ctx, key, seenSetTTL).Err(); err != nil {
		n.log.Warn().Err(err).Int64("user_id", userID).Msg("failed to bound notification dedup set")
	}
	return fresh, nil
}

// MarkRead marks the user's whole feed as read on the backend.
func (n *Notifier) MarkRead(ctx context.Context, token string, userID int64) error {
	if token == "" {
		return ErrAuthRequired
	}
	if err := n.gw.MarkNotificationsRead(ctx, token, userID); err != nil {
		n.log.Error().Err(err).Int64("user_id", userID).Msg("failed to mark notifications read")
		return err
	}
	return nil
}

// Forget clears the user's shown-notification set, typically on logout.
func (n *Notifier) Forget(ctx context.Context, userID int64) {
	if err := n.redis.Del(ctx, seenKey(userID)).Err(); err != nil {
		n.log.Warn().Err(err).Int64("user_id", userID).Msg("failed to clear notification dedup set")
	}
}
