package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("AUTH_TOKEN", "test-token")
	t.Setenv("MY_NUMBER", "5511999999999")
	t.Setenv("KEEP_ALIVE_URL", "")
}

func TestRun_StartsServerWithValidConfig(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "4321")

	var servedAddr string
	var servedHandler http.Handler

	serve := func(_ context.Context, addr string, handler http.Handler) error {
		servedAddr = addr
		servedHandler = handler
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx, serve); err != nil {
		t.Fatalf("run() returned error: %v", err)
	}

	if servedAddr != ":4321" {
		t.Fatalf("serve addr = %q, want :4321", servedAddr)
	}
	if servedHandler == nil {
		t.Fatalf("serve handler is nil")
	}

	// Smoke test the routes to ensure router wiring is intact.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	servedHandler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("/health status = %d, want 200", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, `"status":"ok"`) {
		t.Fatalf("/health body = %q, want ok payload", body)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	servedHandler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("/ status = %d, want 200", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, serviceName) {
		t.Fatalf("root body = %q, want service payload", body)
	}
}

func TestRun_MCPRequiresAuth(t *testing.T) {
	setRequiredEnv(t)

	var servedHandler http.Handler
	serve := func(_ context.Context, _ string, handler http.Handler) error {
		servedHandler = handler
		return nil
	}

	if err := run(context.Background(), serve); err != nil {
		t.Fatalf("run() returned error: %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	servedHandler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("/mcp without token status = %d, want 401", rec.Code)
	}

	// a valid static token passes the auth layer
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/mcp", nil)
	req.Header.Set("Authorization", "Bearer test-token")
	servedHandler.ServeHTTP(rec, req)
	if rec.Code == http.StatusUnauthorized {
		t.Fatalf("/mcp with valid token status = %d, want non-401", rec.Code)
	}
}

func TestRun_ReturnsErrorWhenServeFails(t *testing.T) {
	setRequiredEnv(t)

	expected := errors.New("listen failed")
	err := run(context.Background(), func(context.Context, string, http.Handler) error {
		return expected
	})

	if err == nil {
		t.Fatalf("run() error = nil, want %v", expected)
	}
	if !errors.Is(err, expected) {
		t.Fatalf("run() error = %v, want to wrap %v", err, expected)
	}
}

func TestRun_MissingAuthToken(t *testing.T) {
	t.Setenv("AUTH_TOKEN", "")
	t.Setenv("MY_NUMBER", "5511999999999")

	called := false
	err := run(context.Background(), func(context.Context, string, http.Handler) error {
		called = true
		return nil
	})
	if err == nil {
		t.Fatal("run() error = nil, want configuration error")
	}
	if called {
		t.Fatal("serve should not be called when configuration is invalid")
	}
}

// freePort reserves an ephemeral port and releases it so the server
// can bind it immediately after.
func freePort(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("reserve port: %v", err)
	}
	defer l.Close()
	_, port, err := net.SplitHostPort(l.Addr().String())
	if err != nil {
		t.Fatalf("split addr: %v", err)
	}
	return port
}

func TestRun_ShutsDownOnContextCancel(t *testing.T) {
	setRequiredEnv(t)
	port := freePort(t)
	t.Setenv("PORT", port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- run(ctx, listenAndServe)
	}()

	// wait until the server answers
	url := "http://127.0.0.1:" + port + "/health"
	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				break
			}
		}
		if time.Now().After(deadline) {
			t.Fatal("server never became healthy")
		}
		time.Sleep(20 * time.Millisecond)
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run() after cancel = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("run() did not return after context cancellation")
	}

	// the listener must actually be closed
	if _, err := http.Get(url); err == nil {
		t.Fatal("server still answering after shutdown")
	}
}

func TestListenAndServe_ReturnsListenError(t *testing.T) {
	// occupy the port so ListenAndServe fails immediately
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer l.Close()

	err = listenAndServe(context.Background(), l.Addr().String(), http.NewServeMux())
	if err == nil {
		t.Fatal("listenAndServe() error = nil, want bind failure")
	}
}
