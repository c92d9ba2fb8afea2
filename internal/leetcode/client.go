// Package leetcode fetches the Daily Coding Challenge from the
// LeetCode GraphQL API.
package leetcode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultEndpoint is the public LeetCode GraphQL endpoint.
const DefaultEndpoint = "https://leetcode.com/graphql"

const dailyQuery = `query questionOfToday { activeDailyCodingChallengeQuestion { date link question { questionFrontendId title titleSlug difficulty content topicTags { name } } } }`

// DailyProblem is today's challenge. Content is the raw HTML problem
// statement as served by LeetCode.
type DailyProblem struct {
	Date       string
	Title      string
	Difficulty string
	Link       string
	Content    string
	Topics     []string
}

// Client calls the LeetCode GraphQL API.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a Client against the public endpoint.
func NewClient(timeout time.Duration) *Client {
	return NewClientWithEndpoint(DefaultEndpoint, timeout)
}

// NewClientWithEndpoint creates a Client against a custom endpoint.
func NewClientWithEndpoint(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Daily fetches today's Daily Coding Challenge.
func (c *Client) Daily(ctx context.Context) (*DailyProblem, error) {
	payload, err := json.Marshal(map[string]string{"query": dailyQuery})
	if err != nil {
		return nil, fmt.Errorf("marshal graphql payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Referer", "https://leetcode.com")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(data))
	}

	var gqlResp struct {
		Data struct {
			ActiveDailyCodingChallengeQuestion struct {
				Date     string `json:"date"`
				Link     string `json:"link"`
				Question struct {
					Title      string `json:"title"`
					TitleSlug  string `json:"titleSlug"`
					Difficulty string `json:"difficulty"`
					Content    string `json:"content"`
					TopicTags  []struct {
						Name string `json:"name"`
					} `json:"topicTags"`
				} `json:"question"`
			} `json:"activeDailyCodingChallengeQuestion"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&gqlResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	q := gqlResp.Data.ActiveDailyCodingChallengeQuestion
	if q.Question.TitleSlug == "" {
		return nil, fmt.Errorf("empty daily challenge data")
	}

	topics := make([]string, 0, len(q.Question.TopicTags))
	for _, tag := range q.Question.TopicTags {
		topics = append(topics, tag.Name)
	}

	return &DailyProblem{
		Date:       q.Date,
		Title:      q.Question.Title,
		Difficulty: q.Question.Difficulty,
		Link:       resolveLink(q.Question.TitleSlug, q.Link),
		Content:    q.Question.Content,
		Topics:     topics,
	}, nil
}

func resolveLink(slug, path string) string {
	if path != "" {
		return "https://leetcode.com" + path
	}
	return fmt.Sprintf("https://leetcode.com/problems/%s/", strings.TrimSpace(slug))
}
