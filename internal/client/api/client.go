// Package api is a typed HTTP client for the erp JSON API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const defaultTimeout = 30 * time.Second

// Client talks to one erp server. It holds no credentials; callers pass the
// bearer token per call so the session cache stays the single owner of it.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for baseURL, e.g. "http://localhost:8000".
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// WithHTTPClient swaps the underlying transport, mainly for tests.
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	return &Client{baseURL: c.baseURL, httpClient: httpClient}
}

// BaseURL returns the server address the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *APIError       `json:"error"`
}

// do sends the request and decodes either the data envelope or, when raw is
// set, the body itself into result.
func (c *Client) do(ctx context.Context, req *http.Request, token string, result any, raw bool) error {
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req.WithContext(ctx))
	if err != nil {
		return errors.Wrap(err, "request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response body")
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp.StatusCode, body)
	}

	if result == nil || len(body) == 0 {
		return nil
	}
	if raw {
		return errors.Wrap(json.Unmarshal(body, result), "failed to decode response")
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return errors.Wrap(err, "failed to decode response")
	}

	return errors.Wrap(json.Unmarshal(env.Data, result), "failed to decode response data")
}

func decodeError(status int, body []byte) error {
	var env envelope
	if json.Unmarshal(body, &env) == nil && env.Error != nil && env.Error.Message != "" {
		env.Error.StatusCode = status
		return env.Error
	}

	return &APIError{
		StatusCode: status,
		Message:    strings.TrimSpace(string(body)),
	}
}

func (c *Client) jsonRequest(ctx context.Context, method, path, token string, body, result any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "failed to marshal request body")
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(ctx, req, token, result, false)
}

// Login posts an OAuth2 password form and returns the issued token.
func (c *Client) Login(ctx context.Context, username, password string) (*Token, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var token Token
	if err := c.do(ctx, req, "", &token, true); err != nil {
		return nil, err
	}

	return &token, nil
}

// Register creates an account. No token is required.
func (c *Client) Register(ctx context.Context, input *RegisterRequest) (*User, error) {
	var user User
	if err := c.jsonRequest(ctx, http.MethodPost, "/api/register", "", input, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// Me returns the principal the token belongs to.
func (c *Client) Me(ctx context.Context, token string) (*User, error) {
	var user User
	if err := c.jsonRequest(ctx, http.MethodGet, "/api/users/me", token, nil, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// UpdateMe changes the principal's email or password.
func (c *Client) UpdateMe(ctx context.Context, token string, input *UpdateProfileRequest) (*User, error) {
	var user User
	if err := c.jsonRequest(ctx, http.MethodPatch, "/api/users/me", token, input, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// ListItems returns one page of the caller's items.
func (c *Client) ListItems(ctx context.Context, token string, skip, limit int) ([]Item, error) {
	query := url.Values{}
	query.Set("skip", strconv.Itoa(skip))
	query.Set("limit", strconv.Itoa(limit))

	var items []Item
	if err := c.jsonRequest(ctx, http.MethodGet, "/api/items/?"+query.Encode(), token, nil, &items); err != nil {
		return nil, err
	}

	return items, nil
}

// CreateItem adds an item owned by the caller.
func (c *Client) CreateItem(ctx context.Context, token string, input *ItemInput) (*Item, error) {
	var item Item
	if err := c.jsonRequest(ctx, http.MethodPost, "/api/items/", token, input, &item); err != nil {
		return nil, err
	}

	return &item, nil
}

// GetItem fetches one item by ID.
func (c *Client) GetItem(ctx context.Context, token, id string) (*Item, error) {
	var item Item
	if err := c.jsonRequest(ctx, http.MethodGet, "/api/items/"+url.PathEscape(id), token, nil, &item); err != nil {
		return nil, err
	}

	return &item, nil
}

// UpdateItem sends a partial update; nil fields are left unchanged.
func (c *Client) UpdateItem(ctx context.Context, token, id string, patch *ItemPatch) (*Item, error) {
	var item Item
	if err := c.jsonRequest(ctx, http.MethodPut, "/api/items/"+url.PathEscape(id), token, patch, &item); err != nil {
		return nil, err
	}

	return &item, nil
}

// DeleteItem removes an item.
func (c *Client) DeleteItem(ctx context.Context, token, id string) error {
	return c.jsonRequest(ctx, http.MethodDelete, "/api/items/"+url.PathEscape(id), token, nil, nil)
}

// Health reports the server's health without authentication.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var health Health
	if err := c.jsonRequest(ctx, http.MethodGet, "/api/health", "", nil, &health); err != nil {
		return nil, err
	}

	return &health, nil
}
