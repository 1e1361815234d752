package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// PostFilters narrows ListPosts results. Zero values mean no filter.
type PostFilters struct {
	Tag    string
	Status string
}

// PostList is the paginated posts payload.
type PostList struct {
	Posts      []Post     `json:"posts"`
	Pagination Pagination `json:"pagination"`
}

// ListPosts calls GET /posts with page, limit, and optional filters.
func (c *Client) ListPosts(ctx context.Context, page, limit int, filters PostFilters) (*PostList, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	q := url.Values{}
	q.Set("page", fmt.Sprint(page))
	q.Set("limit", fmt.Sprint(limit))
	if filters.Tag != "" {
		q.Set("tag", filters.Tag)
	}
	if filters.Status != "" {
		q.Set("status", filters.Status)
	}

	var list PostList
	if err := c.do(ctx, http.MethodGet, "/posts?"+q.Encode(), nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetPost calls GET /posts/{id}.
func (c *Client) GetPost(ctx context.Context, id string) (*Post, error) {
	var post Post
	if err := c.do(ctx, http.MethodGet, "/posts/"+url.PathEscape(id), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPostByPermalink calls GET /posts/by-permalink/{permalink}.
func (c *Client) GetPostByPermalink(ctx context.Context, permalink string) (*Post, error) {
	var post Post
	if err := c.do(ctx, http.MethodGet, "/posts/by-permalink/"+url.PathEscape(permalink), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// CreatePost calls POST /posts.
func (c *Client) CreatePost(ctx context.Context, post Post) (*Post, error) {
	var created Post
	if err := c.do(ctx, http.MethodPost, "/posts", post, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdatePost calls PUT /posts/{id}.
func (c *Client) UpdatePost(ctx context.Context, id string, post Post) (*Post, error) {
	var updated Post
	if err := c.do(ctx, http.MethodPut, "/posts/"+url.PathEscape(id), post, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeletePost calls DELETE /posts/{id}.
func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/posts/"+url.PathEscape(id), nil, nil)
}

// BatchUpdatePosts calls PUT /posts/batch, applying the same field updates
// to every listed post ID.
func (c *Client) BatchUpdatePosts(ctx context.Context, ids []string, update map[string]any) error {
	body := map[string]any{
		"ids":        ids,
		"updateData": update,
	}
	return c.do(ctx, http.MethodPut, "/posts/batch", body, nil)
}

// PostsCount calls GET /stats/posts/count for the dashboard counter.
func (c *Client) PostsCount(ctx context.Context) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	if err := c.do(ctx, http.MethodGet, "/stats/posts/count", nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}
