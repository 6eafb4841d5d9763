package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Notifications fetches the caller's feed, server-ordered newest first.
// The client never reorders. An empty feed is a successful result with an
// empty slice, distinct from any error return.
func (c *Client) Notifications(ctx context.Context, includeRead bool, limit int) ([]Notification, error) {
	query := url.Values{}
	query.Set("includeRead", strconv.FormatBool(includeRead))
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	out := []Notification{}
	if err := c.do(ctx, http.MethodGet, "/api/notifications/my-notifications?"+query.Encode(), nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// UnreadNotifications fetches only unread entries.
func (c *Client) UnreadNotifications(ctx context.Context) ([]Notification, error) {
	out := []Notification{}
	if err := c.do(ctx, http.MethodGet, "/api/notifications/unread", nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

type markReadRequest struct {
	NotificationIDs []string `json:"notificationIds"`
}

// MarkNotificationsRead marks the given entries read. Read state is
// authoritative server-side; the next fetch reflects it.
func (c *Client) MarkNotificationsRead(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return &ValidationError{Field: "notification ids", Reason: "must not be empty"}
	}
	return c.do(ctx, http.MethodPost, "/api/notifications/mark-read", markReadRequest{NotificationIDs: ids}, nil, true)
}
