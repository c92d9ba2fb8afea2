package codeforces

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return NewClientWithBaseURL(ts.URL, 5*time.Second)
}

func TestUserInfo(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user.info" {
			t.Errorf("path = %s, want /user.info", r.URL.Path)
		}
		if got := r.URL.Query().Get("handles"); got != "tourist;Benq" {
			t.Errorf("handles = %s, want tourist;Benq", got)
		}
		w.Write([]byte(`{"status":"OK","result":[
			{"handle":"tourist","rating":3800,"maxRating":4000,"rank":"tourist","registrationTimeSeconds":1265987288},
			{"handle":"Benq","rating":3600,"maxRating":3700,"rank":"legendary grandmaster","registrationTimeSeconds":1300000000}
		]}`))
	})

	users, err := client.UserInfo(context.Background(), []string{"tourist", "Benq"})
	if err != nil {
		t.Fatalf("UserInfo() error = %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("len(users) = %d, want 2", len(users))
	}
	if users[0].Handle != "tourist" || users[0].Rating != 3800 {
		t.Errorf("users[0] = %+v", users[0])
	}
	if users[0].ProfileURL() != "https://codeforces.com/profile/tourist" {
		t.Errorf("ProfileURL() = %s", users[0].ProfileURL())
	}
}

func TestUserInfoNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"status":"FAILED","comment":"handles: User with handle ghost_user_42 not found"}`))
	})

	_, err := client.UserInfo(context.Background(), []string{"ghost_user_42"})
	if err == nil {
		t.Fatal("UserInfo() error = nil, want not-found error")
	}
	if !IsNotFound(err) {
		t.Errorf("IsNotFound(%v) = false, want true", err)
	}
}

func TestUserInfoNoHandles(t *testing.T) {
	client := NewClient(time.Second)
	if _, err := client.UserInfo(context.Background(), nil); err == nil {
		t.Fatal("UserInfo(nil) error = nil, want error")
	}
}

func TestUserStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("handle") != "tourist" || q.Get("from") != "1" || q.Get("count") != "100" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"status":"OK","result":[
			{"id":1,"contestId":1700,"creationTimeSeconds":1700000000,"verdict":"OK",
			 "programmingLanguage":"GNU C++20",
			 "problem":{"contestId":1700,"index":"A","name":"Two Chess","rating":800,"tags":["greedy","math"]}},
			{"id":2,"contestId":1700,"creationTimeSeconds":1699999000,"verdict":"WRONG_ANSWER",
			 "programmingLanguage":"GNU C++20",
			 "problem":{"contestId":1700,"index":"B","name":"Palindromic Numbers","rating":1100,"tags":["math"]}}
		]}`))
	})

	subs, err := client.UserStatus(context.Background(), "tourist", 100)
	if err != nil {
		t.Fatalf("UserStatus() error = %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("len(subs) = %d, want 2", len(subs))
	}
	if !subs[0].Accepted() {
		t.Error("subs[0].Accepted() = false, want true")
	}
	if subs[1].Accepted() {
		t.Error("subs[1].Accepted() = true, want false")
	}
	if got := subs[0].Problem.ID(); got != "1700-A" {
		t.Errorf("Problem.ID() = %s, want 1700-A", got)
	}
	if got := subs[0].Problem.URL(); got != "https://codeforces.com/problemset/problem/1700/A" {
		t.Errorf("Problem.URL() = %s", got)
	}
}

func TestUserStatusFullHistory(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("count") {
			t.Errorf("count param present for full history fetch: %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"status":"OK","result":[]}`))
	})

	if _, err := client.UserStatus(context.Background(), "tourist", 0); err != nil {
		t.Fatalf("UserStatus() error = %v", err)
	}
}

func TestUserRating(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"OK","result":[
			{"contestId":1,"contestName":"Codeforces Beta Round #1","handle":"tourist",
			 "rank":3,"ratingUpdateTimeSeconds":1266588000,"oldRating":1500,"newRating":1602},
			{"contestId":2,"contestName":"Codeforces Beta Round #2","handle":"tourist",
			 "rank":1,"ratingUpdateTimeSeconds":1267000000,"oldRating":1602,"newRating":1580}
		]}`))
	})

	changes, err := client.UserRating(context.Background(), "tourist")
	if err != nil {
		t.Fatalf("UserRating() error = %v", err)
	}
	if len(changes) != 2 {
		t.Fatalf("len(changes) = %d, want 2", len(changes))
	}
	if changes[0].Delta() != 102 {
		t.Errorf("Delta() = %d, want 102", changes[0].Delta())
	}
	if changes[1].Delta() != -22 {
		t.Errorf("Delta() = %d, want -22", changes[1].Delta())
	}
	if changes[0].ContestURL() != "https://codeforces.com/contest/1" {
		t.Errorf("ContestURL() = %s", changes[0].ContestURL())
	}
}

func TestProblemset(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"OK","result":{"problems":[
			{"contestId":1000,"index":"A","name":"Rated","rating":900,"tags":["implementation"]},
			{"contestId":1000,"index":"B","name":"Unrated","tags":["interactive"]}
		]}}`))
	})

	ps, err := client.Problemset(context.Background())
	if err != nil {
		t.Fatalf("Problemset() error = %v", err)
	}
	if len(ps.Problems) != 2 {
		t.Fatalf("len(problems) = %d, want 2", len(ps.Problems))
	}
	if ps.Problems[1].Rating != 0 {
		t.Errorf("unrated problem Rating = %d, want 0", ps.Problems[1].Rating)
	}
}

func TestContestList(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("gym"); got != "false" {
			t.Errorf("gym = %s, want false", got)
		}
		w.Write([]byte(`{"status":"OK","result":[
			{"id":2000,"name":"Codeforces Round 999","phase":"BEFORE","type":"CF",
			 "durationSeconds":7200,"startTimeSeconds":1900000000,"relativeTimeSeconds":-86400},
			{"id":1999,"name":"Codeforces Round 998","phase":"FINISHED","type":"CF",
			 "durationSeconds":7200,"startTimeSeconds":1800000000,"relativeTimeSeconds":86400}
		]}`))
	})

	contests, err := client.ContestList(context.Background())
	if err != nil {
		t.Fatalf("ContestList() error = %v", err)
	}
	if len(contests) != 2 {
		t.Fatalf("len(contests) = %d, want 2", len(contests))
	}
	if !contests[0].Upcoming() {
		t.Error("contests[0].Upcoming() = false, want true")
	}
	if contests[1].Upcoming() {
		t.Error("contests[1].Upcoming() = true, want false")
	}
}

func TestCallTransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // connection refused from here on
	client := NewClientWithBaseURL(ts.URL, time.Second)

	if _, err := client.UserRating(context.Background(), "tourist"); err == nil {
		t.Fatal("UserRating() error = nil, want transport error")
	}
}

func TestCallGarbageBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	})

	_, err := client.UserRating(context.Background(), "tourist")
	if err == nil {
		t.Fatal("UserRating() error = nil, want error")
	}
	if IsNotFound(err) {
		t.Errorf("IsNotFound(%v) = true, want false", err)
	}
}
