// Package clist fetches upcoming contests across judges from the
// clist.by calendar API.
package clist

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultBaseURL is the clist.by v4 API root.
const DefaultBaseURL = "https://clist.by/api/v4"

// clist serves naive UTC datetimes without a zone suffix.
const timeLayout = "2006-01-02T15:04:05"

// Contest is one upcoming contest from any supported judge.
type Contest struct {
	Event    string
	URL      string
	Start    time.Time
	End      time.Time
	Duration time.Duration
	Resource string
}

// Client calls the clist.by API with ApiKey authentication.
type Client struct {
	baseURL    string
	username   string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a Client for the public clist.by API.
func NewClient(username, apiKey string, timeout time.Duration) *Client {
	return NewClientWithBaseURL(DefaultBaseURL, username, apiKey, timeout)
}

// NewClientWithBaseURL creates a Client against a custom API root.
func NewClientWithBaseURL(baseURL, username, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		username:   username,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Upcoming fetches the next contests across all judges, soonest first.
func (c *Client) Upcoming(ctx context.Context, limit int) ([]Contest, error) {
	if limit <= 0 {
		limit = 10
	}

	params := url.Values{}
	params.Set("upcoming", "true")
	params.Set("order_by", "start")
	params.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/contest/?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("ApiKey %s:%s", c.username, c.apiKey))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(data))
	}

	var payload struct {
		Objects []struct {
			Event    string `json:"event"`
			Href     string `json:"href"`
			Start    string `json:"start"`
			End      string `json:"end"`
			Duration int64  `json:"duration"`
			Resource string `json:"resource"`
		} `json:"objects"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	contests := make([]Contest, 0, len(payload.Objects))
	for _, obj := range payload.Objects {
		start, err := time.ParseInLocation(timeLayout, obj.Start, time.UTC)
		if err != nil {
			continue
		}
		end, _ := time.ParseInLocation(timeLayout, obj.End, time.UTC)
		contests = append(contests, Contest{
			Event:    obj.Event,
			URL:      obj.Href,
			Start:    start,
			End:      end,
			Duration: time.Duration(obj.Duration) * time.Second,
			Resource: obj.Resource,
		})
	}
	return contests, nil
}
