package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ListUsers calls GET /users.
func (c *Client) ListUsers(ctx context.Context) ([]AdminUser, error) {
	var users []AdminUser
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser calls GET /users/{id}.
func (c *Client) GetUser(ctx context.Context, id string) (*AdminUser, error) {
	var user AdminUser
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser calls POST /users.
func (c *Client) CreateUser(ctx context.Context, user AdminUser) (*AdminUser, error) {
	var created AdminUser
	if err := c.do(ctx, http.MethodPost, "/users", user, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateUser calls PUT /users/{id}.
func (c *Client) UpdateUser(ctx context.Context, id string, user AdminUser) (*AdminUser, error) {
	var updated AdminUser
	if err := c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(id), user, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// SetUserActive calls PATCH /users/{id}/status.
func (c *Client) SetUserActive(ctx context.Context, id string, active bool) error {
	body := map[string]bool{"isActive": active}
	return c.do(ctx, http.MethodPatch, "/users/"+url.PathEscape(id)+"/status", body, nil)
}

// DeleteUser calls DELETE /users/{id}.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil)
}

// GetSettings calls GET /settings.
func (c *Client) GetSettings(ctx context.Context) (*Settings, error) {
	var settings Settings
	if err := c.do(ctx, http.MethodGet, "/settings", nil, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateSettings calls PUT /settings.
func (c *Client) UpdateSettings(ctx context.Context, settings Settings) (*Settings, error) {
	var updated Settings
	if err := c.do(ctx, http.MethodPut, "/settings", settings, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateProfileImage calls PUT /settings/about/profile-image with the new
// image reference.
func (c *Client) UpdateProfileImage(ctx context.Context, imageURL string) error {
	body := map[string]string{"profileImageUrl": imageURL}
	return c.do(ctx, http.MethodPut, "/settings/about/profile-image", body, nil)
}

// DeleteProfileImage calls DELETE /settings/about/profile-image.
func (c *Client) DeleteProfileImage(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/settings/about/profile-image", nil, nil)
}

// ContactMessageList is the paginated contact-message payload.
type ContactMessageList struct {
	Messages   []ContactMessage `json:"messages"`
	Pagination Pagination       `json:"pagination"`
}

// ListContactMessages calls GET /contact with page and limit.
func (c *Client) ListContactMessages(ctx context.Context, page, limit int) (*ContactMessageList, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var list ContactMessageList
	path := fmt.Sprintf("/contact?page=%d&limit=%d", page, limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetContactMessage calls GET /contact/{id}.
func (c *Client) GetContactMessage(ctx context.Context, id string) (*ContactMessage, error) {
	var msg ContactMessage
	if err := c.do(ctx, http.MethodGet, "/contact/"+url.PathEscape(id), nil, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// MarkContactMessageRead calls PUT /contact/{id}/read.
func (c *Client) MarkContactMessageRead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPut, "/contact/"+url.PathEscape(id)+"/read", nil, nil)
}

// DeleteContactMessage calls DELETE /contact/{id}.
func (c *Client) DeleteContactMessage(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/contact/"+url.PathEscape(id), nil, nil)
}

// UnreadMessageCount calls GET /contact/unread/count for the sidebar badge.
func (c *Client) UnreadMessageCount(ctx context.Context) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	if err := c.do(ctx, http.MethodGet, "/contact/unread/count", nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

// ListNotifications calls GET /notifications.
func (c *Client) ListNotifications(ctx context.Context) ([]Notification, error) {
	var notifications []Notification
	if err := c.do(ctx, http.MethodGet, "/notifications", nil, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkNotificationRead calls PUT /notifications/{id}/read.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPut, "/notifications/"+url.PathEscape(id)+"/read", nil, nil)
}

// MarkAllNotificationsRead calls PUT /notifications/read-all.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.do(ctx, http.MethodPut, "/notifications/read-all", nil, nil)
}

// ActivityLogList is the paginated activity-log payload.
type ActivityLogList struct {
	Entries    []ActivityLogEntry `json:"entries"`
	Pagination Pagination         `json:"pagination"`
}

// ListActivityLogs calls GET /activity-logs with page and limit.
func (c *Client) ListActivityLogs(ctx context.Context, page, limit int) (*ActivityLogList, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	var list ActivityLogList
	path := fmt.Sprintf("/activity-logs?page=%d&limit=%d", page, limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// ListImages calls GET /upload/images. Upload itself is multipart and
// lives outside this client.
func (c *Client) ListImages(ctx context.Context) ([]MediaItem, error) {
	var items []MediaItem
	if err := c.do(ctx, http.MethodGet, "/upload/images", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// DeleteImage calls DELETE /upload/image/{publicId}.
func (c *Client) DeleteImage(ctx context.Context, publicID string) error {
	return c.do(ctx, http.MethodDelete, "/upload/image/"+url.PathEscape(publicID), nil, nil)
}
