// Package codeforces implements a typed client for the Codeforces
// public read API. All data is fetched fresh per call; the service
// keeps no cache and does no retrying, matching the upstream contract
// of "reflects API data at fetch time".
package codeforces

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the public Codeforces API root.
const DefaultBaseURL = "https://codeforces.com/api"

// APIError is a FAILED response envelope from the Codeforces API.
type APIError struct {
	Comment string
}

func (e *APIError) Error() string {
	return "codeforces: " + e.Comment
}

// IsNotFound reports whether err is an API error for an unknown
// handle or contest.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	if !ok {
		return false
	}
	return strings.Contains(apiErr.Comment, "not found")
}

// Client calls the Codeforces public API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client against the public API.
func NewClient(timeout time.Duration) *Client {
	return NewClientWithBaseURL(DefaultBaseURL, timeout)
}

// NewClientWithBaseURL creates a Client against a custom API root.
func NewClientWithBaseURL(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// UserInfo fetches profile data for one or more handles.
func (c *Client) UserInfo(ctx context.Context, handles []string) ([]User, error) {
	if len(handles) == 0 {
		return nil, fmt.Errorf("no handles given")
	}
	params := url.Values{}
	params.Set("handles", strings.Join(handles, ";"))

	var users []User
	if err := c.call(ctx, "user.info", params, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UserStatus fetches the most recent submissions of a user. A count
// of 0 fetches the full history.
func (c *Client) UserStatus(ctx context.Context, handle string, count int) ([]Submission, error) {
	params := url.Values{}
	params.Set("handle", handle)
	if count > 0 {
		params.Set("from", "1")
		params.Set("count", strconv.Itoa(count))
	}

	var submissions []Submission
	if err := c.call(ctx, "user.status", params, &submissions); err != nil {
		return nil, err
	}
	return submissions, nil
}

// UserRating fetches the rated-contest history of a user, oldest first.
func (c *Client) UserRating(ctx context.Context, handle string) ([]RatingChange, error) {
	params := url.Values{}
	params.Set("handle", handle)

	var changes []RatingChange
	if err := c.call(ctx, "user.rating", params, &changes); err != nil {
		return nil, err
	}
	return changes, nil
}

// Problemset fetches the full public problemset.
func (c *Client) Problemset(ctx context.Context) (*Problemset, error) {
	var ps Problemset
	if err := c.call(ctx, "problemset.problems", url.Values{}, &ps); err != nil {
		return nil, err
	}
	return &ps, nil
}

// ContestList fetches all non-gym contests, upcoming ones included.
func (c *Client) ContestList(ctx context.Context) ([]Contest, error) {
	params := url.Values{}
	params.Set("gym", "false")

	var contests []Contest
	if err := c.call(ctx, "contest.list", params, &contests); err != nil {
		return nil, err
	}
	return contests, nil
}

// call performs one API request and decodes the {status, comment,
// result} envelope. The API signals errors both through non-2xx
// statuses and through status=FAILED with a 200, so the envelope is
// decoded first and the HTTP status only used as a fallback.
func (c *Client) call(ctx context.Context, method string, params url.Values, result any) error {
	endpoint := c.baseURL + "/" + method
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", method, err)
	}
	defer resp.Body.Close()

	var envelope struct {
		Status  string          `json:"status"`
		Comment string          `json:"comment"`
		Result  json.RawMessage `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("%s returned status %d", method, resp.StatusCode)
		}
		return fmt.Errorf("decode %s response: %w", method, err)
	}

	if envelope.Status != "OK" {
		return &APIError{Comment: envelope.Comment}
	}
	if err := json.Unmarshal(envelope.Result, result); err != nil {
		return fmt.Errorf("decode %s result: %w", method, err)
	}
	return nil
}
