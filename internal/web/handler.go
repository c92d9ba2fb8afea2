// Package web serves the plain HTTP surface that sits next to the MCP
// endpoint: a health check (also the keep-alive target) and a service
// info page.
package web

import (
	"encoding/json"
	"net/http"
	"time"
)

// HealthResponse is the /health payload. Status is always "ok" while
// the process is up; the keep-alive loop state never affects it.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// InfoResponse is the root endpoint payload.
type InfoResponse struct {
	Service  string   `json:"service"`
	Status   string   `json:"status"`
	Version  string   `json:"version"`
	Endpoint string   `json:"mcp_endpoint"`
	Features []string `json:"features"`
}

// Handler serves the health and info endpoints.
type Handler struct {
	service string
	version string
	now     func() time.Time
}

// NewHandler creates a Handler for the given service identity.
func NewHandler(service, version string) *Handler {
	return &Handler{
		service: service,
		version: version,
		now:     time.Now,
	}
}

// Health responds 200 with a timestamped health payload.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Service:   h.service,
		Version:   h.version,
		Timestamp: h.now().UTC().Format(time.RFC3339),
	})
}

// Root responds with service info.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, InfoResponse{
		Service:  h.service,
		Status:   "running",
		Version:  h.version,
		Endpoint: "/mcp",
		Features: []string{
			"codeforces stats",
			"problem recommendations",
			"rating graphs",
			"contest calendar",
			"leetcode daily",
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
