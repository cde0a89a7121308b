package gateway

import (
	"context"
	"fmt"
	"net/http"

	"donorhub/models"
)

// userNotificationDTO wraps the backend's per-user notification join record.
type userNotificationDTO struct {
	ID           int64 `json:"id"`
	Read         bool  `json:"read"`
	Notification struct {
		Message string `json:"message"`
	} `json:"notification"`
	Message string `json:"message"`
}

func (d *userNotificationDTO) toNotification() models.Notification {
	message := d.Notification.Message
	if message == "" {
		message = d.Message
	}
	return models.Notification{ID: d.ID, Message: message, Read: d.Read}
}

// ListNotifications returns the user's notification feed.
func (c *Client) ListNotifications(ctx context.Context, token string, userID int64) ([]models.Notification, error) {
	var dtos []userNotificationDTO
	if err := c.doJSON(ctx, "listNotifications", http.MethodGet, fmt.Sprintf("/api/notifications/%d", userID), token, nil, &dtos); err != nil {
		return nil, err
	}

	notifications := make([]models.Notification, 0, len(dtos))
	for _, d := range dtos {
		notifications = append(notifications, d.toNotification())
	}
	return notifications, nil
}

// MarkNotificationsRead marks the user's whole feed as read.
func (c *Client) MarkNotificationsRead(ctx context.Context, token string, userID int64) error {
	return c.doJSON(ctx, "markNotificationsRead", http.MethodPut, fmt.Sprintf("/api/notifications/%d/mark-read", userID), token, nil, nil)
}
