package keepalive

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestIntervalScheduleNext(t *testing.T) {
	sched := intervalSchedule{interval: 14 * time.Minute}
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	if got := sched.Next(now); !got.Equal(now.Add(14 * time.Minute)) {
		t.Errorf("Next() = %s, want %s", got, now.Add(14*time.Minute))
	}
}

func TestPingerDisabledWithoutURL(t *testing.T) {
	p := New("", 10*time.Millisecond, time.Second)
	if p.Enabled() {
		t.Error("Enabled() = true for empty URL")
	}
	if p.String() != "disabled" {
		t.Errorf("String() = %q, want disabled", p.String())
	}

	var logged bytes.Buffer
	log.SetOutput(&logged)
	defer log.SetOutput(os.Stderr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := p.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	// no schedule registered means no entries in the cron
	if entries := p.cron.Entries(); len(entries) != 0 {
		t.Errorf("cron entries = %d, want 0", len(entries))
	}

	// exactly one warning, no pings
	output := logged.String()
	if got := strings.Count(output, "[KeepAlive]"); got != 1 {
		t.Errorf("got %d [KeepAlive] log lines, want 1:\n%s", got, output)
	}
	if !strings.Contains(output, "KEEP_ALIVE_URL not set") {
		t.Errorf("missing disabled warning in log output:\n%s", output)
	}
}

func TestPingerTicks(t *testing.T) {
	var hits atomic.Int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := New(ts.URL, 20*time.Millisecond, time.Second)
	if err := p.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for hits.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	cancel()

	if got := hits.Load(); got < 2 {
		t.Fatalf("hits = %d, want at least 2", got)
	}
}

func TestPingerContinuesAfterFailures(t *testing.T) {
	var hits atomic.Int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		// always a soft failure
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := New(ts.URL, 20*time.Millisecond, time.Second)
	if err := p.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for hits.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	cancel()

	if got := hits.Load(); got < 3 {
		t.Fatalf("hits = %d, want at least 3 (loop must survive non-2xx)", got)
	}
}

func TestPingerStopsOnCancel(t *testing.T) {
	var hits atomic.Int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	p := New(ts.URL, 20*time.Millisecond, time.Second)
	if err := p.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for hits.Load() < 1 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	cancel()
	time.Sleep(60 * time.Millisecond)

	after := hits.Load()
	time.Sleep(100 * time.Millisecond)
	if got := hits.Load(); got > after+1 {
		t.Fatalf("hits kept growing after cancel: %d -> %d", after, got)
	}
}

func TestPingHardFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // transport errors from here on

	p := New(ts.URL, time.Minute, 200*time.Millisecond)
	// must not panic or block past the timeout
	done := make(chan struct{})
	go func() {
		p.ping(context.Background())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("ping did not return after transport failure")
	}
}
