package leetcode

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestDaily(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		var body struct {
			Query string `json:"query"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if !strings.Contains(body.Query, "activeDailyCodingChallengeQuestion") {
			t.Errorf("query = %q, want daily challenge query", body.Query)
		}
		w.Write([]byte(`{"data":{"activeDailyCodingChallengeQuestion":{
			"date":"2026-08-31",
			"link":"/problems/two-sum/",
			"question":{
				"questionFrontendId":"1",
				"title":"Two Sum",
				"titleSlug":"two-sum",
				"difficulty":"Easy",
				"content":"<p>Given an array of integers <code>nums</code>...</p>",
				"topicTags":[{"name":"Array"},{"name":"Hash Table"}]
			}
		}}}`))
	}))
	defer ts.Close()

	client := NewClientWithEndpoint(ts.URL, 5*time.Second)
	problem, err := client.Daily(context.Background())
	if err != nil {
		t.Fatalf("Daily() error = %v", err)
	}

	if problem.Title != "Two Sum" {
		t.Errorf("Title = %s, want Two Sum", problem.Title)
	}
	if problem.Difficulty != "Easy" {
		t.Errorf("Difficulty = %s, want Easy", problem.Difficulty)
	}
	if problem.Link != "https://leetcode.com/problems/two-sum/" {
		t.Errorf("Link = %s", problem.Link)
	}
	if len(problem.Topics) != 2 || problem.Topics[0] != "Array" {
		t.Errorf("Topics = %v", problem.Topics)
	}
	if !strings.Contains(problem.Content, "<code>nums</code>") {
		t.Errorf("Content = %q, want raw HTML kept", problem.Content)
	}
}

func TestDailyEmptyData(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"activeDailyCodingChallengeQuestion":{}}}`))
	}))
	defer ts.Close()

	client := NewClientWithEndpoint(ts.URL, time.Second)
	if _, err := client.Daily(context.Background()); err == nil {
		t.Fatal("Daily() error = nil, want error for empty data")
	}
}

func TestDailyUpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("blocked"))
	}))
	defer ts.Close()

	client := NewClientWithEndpoint(ts.URL, time.Second)
	_, err := client.Daily(context.Background())
	if err == nil {
		t.Fatal("Daily() error = nil, want error")
	}
	if !strings.Contains(err.Error(), "403") {
		t.Errorf("error = %v, want status in message", err)
	}
}
