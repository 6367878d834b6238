// Package client is a Go client for the skillshare REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/SergeyParamoshkin/skillshare/internal/model"
)

type Client struct {
	http.Client
	Addr string
}

// APIError is returned for every non-2xx response.
type APIError struct {
	StatusCode int
	Status     string            `json:"status"`
	Detail     string            `json:"detail"`
	Fields     map[string]string `json:"fields"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Status, e.Detail)
}

func (c *Client) Ping() (string, error) {
	req, err := http.NewRequest("GET", c.Addr+"/ping", nil)
	if err != nil {
		return "", err
	}

	resp, err := c.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), err
}

func (c *Client) CreateUser(ctx context.Context, u *model.User) (*model.User, error) {
	out := &model.User{}
	return out, c.call(ctx, http.MethodPost, "/users", u, out)
}

func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var out struct {
		Users []model.User `json:"users"`
	}
	err := c.call(ctx, http.MethodGet, "/users", nil, &out)

	return out.Users, err
}

func (c *Client) GetUser(ctx context.Context, id string) (*model.User, error) {
	out := &model.User{}
	return out, c.call(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, out)
}

func (c *Client) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	out := &model.User{}
	return out, c.call(ctx, http.MethodGet, "/users/username/"+url.PathEscape(username), nil, out)
}

// UpdateUser addresses the user by identifier or username.
func (c *Client) UpdateUser(ctx context.Context, usernameOrID string, upd *model.UserUpdate) (*model.User, error) {
	out := &model.User{}
	return out, c.call(ctx, http.MethodPut, "/users/"+url.PathEscape(usernameOrID), upd, out)
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil)
}

func (c *Client) CreateArticle(ctx context.Context, a *model.Article) (*model.Article, error) {
	out := &model.Article{}
	return out, c.call(ctx, http.MethodPost, "/articles", a, out)
}

// ListArticles accepts "ASC", "DESC" or "" for the server default.
func (c *Client) ListArticles(ctx context.Context, sortBy string) ([]model.Article, error) {
	var out struct {
		Articles []model.Article `json:"articles"`
	}
	err := c.call(ctx, http.MethodGet, "/articles"+sortQuery(sortBy), nil, &out)

	return out.Articles, err
}

func (c *Client) GetArticle(ctx context.Context, id string) (*model.Article, error) {
	out := &model.Article{}
	return out, c.call(ctx, http.MethodGet, "/articles/"+url.PathEscape(id), nil, out)
}

func (c *Client) UpdateArticle(ctx context.Context, id string, upd *model.ArticleUpdate) (*model.Article, error) {
	out := &model.Article{}
	return out, c.call(ctx, http.MethodPut, "/articles/"+url.PathEscape(id), upd, out)
}

func (c *Client) DeleteArticle(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/articles/"+url.PathEscape(id), nil, nil)
}

func (c *Client) CreateReview(ctx context.Context, r *model.Review) (*model.Review, error) {
	out := &model.Review{}
	return out, c.call(ctx, http.MethodPost, "/reviews", r, out)
}

func (c *Client) ListReviews(ctx context.Context, sortBy string) ([]model.Review, error) {
	var out struct {
		Reviews []model.Review `json:"reviews"`
	}
	err := c.call(ctx, http.MethodGet, "/reviews"+sortQuery(sortBy), nil, &out)

	return out.Reviews, err
}

func (c *Client) GetReview(ctx context.Context, id string) (*model.Review, error) {
	out := &model.Review{}
	return out, c.call(ctx, http.MethodGet, "/reviews/"+url.PathEscape(id), nil, out)
}

func (c *Client) DeleteReview(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/reviews/"+url.PathEscape(id), nil, nil)
}

func sortQuery(sortBy string) string {
	if sortBy == "" {
		return ""
	}

	return "?sortby=" + url.QueryEscape(sortBy)
}

func (c *Client) call(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.Addr+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		// an undecodable body still yields the status code
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
