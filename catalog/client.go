// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielhkuo/campusboard/models"
)

// ErrUnavailable wraps any failure to reach the remote catalog or a
// non-2xx status. The previous catalog view, if any, stays displayed.
var ErrUnavailable = errors.New("event catalog unavailable")

// Client talks to the remote catalog collaborator.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient constructs a Client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Fetch retrieves the full remote event list.
func (c *Client) Fetch(ctx context.Context) ([]models.Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/eventsdata", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, resp.Status)
	}

	var events []models.Event
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}
	return events, nil
}

// Submit posts a new event and returns it with the id the remote
// collaborator assigned.
func (c *Client) Submit(ctx context.Context, req models.SubmitEventRequest) (models.Event, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return models.Event{}, fmt.Errorf("%w: encode: %v", ErrUnavailable, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/eventsdata", bytes.NewReader(body))
	if err != nil {
		return models.Event{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return models.Event{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.Event{}, fmt.Errorf("%w: %s", ErrUnavailable, resp.Status)
	}

	var created models.Event
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return models.Event{}, fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}
	return created, nil
}
