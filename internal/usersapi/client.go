// Package usersapi is a client for reqres-style paginated user listings.
package usersapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

var ErrUnexpectedStatus = errors.New("unexpected status")

// User is a remote user record.
type User struct {
	ID        int    `json:"id" yaml:"id"`
	Email     string `json:"email" yaml:"email"`
	FirstName string `json:"first_name" yaml:"first_name"`
	LastName  string `json:"last_name" yaml:"last_name"`
	Avatar    string `json:"avatar" yaml:"avatar"`
}

// Page is one page of the listing.
type Page struct {
	Page       int    `json:"page"`
	PerPage    int    `json:"per_page"`
	Total      int    `json:"total"`
	TotalPages int    `json:"total_pages"`
	Data       []User `json:"data"`
}

// Options configures a Client.
type Options struct {
	Endpoint string
	APIKey   string
	// Timeout of zero leaves requests unbounded.
	Timeout    time.Duration
	HTTPClient *http.Client
}

type Client struct {
	endpoint *url.URL
	apiKey   string
	http     *http.Client
}

func New(opts Options) (*Client, error) {
	u, err := url.Parse(opts.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse endpoint %q: scheme must be http or https", opts.Endpoint)
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{endpoint: u, apiKey: opts.APIKey, http: hc}, nil
}

// ListUsers fetches one page. Non-2xx responses and undecodable bodies are
// errors.
func (c *Client) ListUsers(ctx context.Context, page int) (Page, error) {
	u := *c.endpoint
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Page{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("get users page %d: %w", page, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return Page{}, fmt.Errorf("get users page %d: %w: %s", page, ErrUnexpectedStatus, resp.Status)
	}

	var out Page
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Page{}, fmt.Errorf("decode users page %d: %w", page, err)
	}
	if out.Data == nil {
		return Page{}, fmt.Errorf("decode users page %d: missing data", page)
	}
	return out, nil
}
