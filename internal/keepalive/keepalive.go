// Package keepalive emits a periodic outbound GET so a free-tier host
// does not classify the process as idle and suspend it.
package keepalive

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
)

// intervalSchedule runs a job at a fixed interval without the
// one-second floor cron applies to @every specs.
type intervalSchedule struct {
	interval time.Duration
}

// Next returns the next activation time.
func (s intervalSchedule) Next(t time.Time) time.Time {
	return t.Add(s.interval)
}

// Pinger issues one GET per interval to a configured URL. Outcomes
// are logged and never stop the loop: a failed ping is tried again on
// the next tick, with no retry or backoff in between.
type Pinger struct {
	url        string
	interval   time.Duration
	timeout    time.Duration
	httpClient *http.Client
	cron       *cron.Cron
}

// New creates a Pinger. An empty url disables it.
func New(url string, interval, timeout time.Duration) *Pinger {
	return &Pinger{
		url:        url,
		interval:   interval,
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
		cron:       cron.New(),
	}
}

// Enabled reports whether a target URL is configured.
func (p *Pinger) Enabled() bool {
	return p.url != ""
}

// Start begins the ping loop. With no URL configured it logs a single
// warning and returns; this is a supported configuration, not an
// error. The loop stops when ctx is cancelled.
func (p *Pinger) Start(ctx context.Context) error {
	if !p.Enabled() {
		log.Printf("[KeepAlive] KEEP_ALIVE_URL not set, keep-alive pinger disabled")
		return nil
	}

	p.cron.Schedule(intervalSchedule{interval: p.interval}, cron.FuncJob(func() {
		p.ping(ctx)
	}))

	log.Printf("[KeepAlive] pinging %s every %s", p.url, p.interval)
	p.cron.Start()

	go func() {
		<-ctx.Done()
		p.cron.Stop()
		log.Printf("[KeepAlive] pinger stopped")
	}()
	return nil
}

// ping performs a single attempt and classifies the outcome: 2xx is a
// success, any other status a soft failure, a transport error a hard
// failure. All three only produce a log line.
func (p *Pinger) ping(ctx context.Context) {
	reqCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, p.url, http.NoBody)
	if err != nil {
		log.Printf("[KeepAlive] build request failed: %v", err)
		return
	}

	start := time.Now()
	resp, err := p.httpClient.Do(req)
	if err != nil {
		log.Printf("[KeepAlive] ping failed: %v", err)
		return
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	elapsed := time.Since(start).Round(time.Millisecond)
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		log.Printf("[KeepAlive] ping ok: %d in %s", resp.StatusCode, elapsed)
	} else {
		log.Printf("[KeepAlive] ping returned status %d in %s", resp.StatusCode, elapsed)
	}
}

// String describes the pinger configuration for startup logging.
func (p *Pinger) String() string {
	if !p.Enabled() {
		return "disabled"
	}
	return fmt.Sprintf("%s every %s", p.url, p.interval)
}
