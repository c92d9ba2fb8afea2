package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"cp-assistant/internal/auth"
	"cp-assistant/internal/config"
	"cp-assistant/internal/keepalive"
	"cp-assistant/internal/tools"
	"cp-assistant/internal/web"
)

const (
	serviceName    = "cp-assistant"
	serviceVersion = "1.0.0"

	shutdownTimeout = 10 * time.Second
)

var loadDotEnv = godotenv.Load

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, listenAndServe); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// listenAndServe serves until ctx is cancelled, then drains in-flight
// requests before returning.
func listenAndServe(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{Addr: addr, Handler: handler}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Printf("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func run(ctx context.Context, serve func(context.Context, string, http.Handler) error) error {
	// Load .env file (ignore error if file doesn't exist)
	_ = loadDotEnv()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log.Printf("Starting %s server...", serviceName)
	log.Printf("Port: %d", cfg.Port)
	log.Printf("Default handle: %s", cfg.DefaultHandle)
	log.Printf("clist.by contest calendar: %v", cfg.ClistConfigured())
	log.Printf("Gemini practice advice: %v (model: %s)", cfg.GeminiConfigured(), cfg.GeminiModel)

	// Build the shared tool clients and register the MCP tools
	deps := tools.New(cfg)
	server := mcp.NewServer(&mcp.Implementation{
		Name:    serviceName,
		Version: serviceVersion,
	}, nil)
	tools.RegisterAll(server, deps)

	// MCP transport behind bearer-token authentication
	verifier := auth.NewVerifier(cfg.AuthToken)
	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)

	// Plain HTTP surface for platform probes
	webHandler := web.NewHandler(serviceName, serviceVersion)

	// Setup router
	r := mux.NewRouter()
	r.PathPrefix("/mcp").Handler(verifier.Middleware(mcpHandler))
	r.HandleFunc("/health", webHandler.Health).Methods("GET")
	r.HandleFunc("/", webHandler.Root).Methods("GET")

	// Start the keep-alive pinger for free-tier hosting
	pinger := keepalive.New(cfg.KeepAliveURL, cfg.KeepAliveInterval, cfg.KeepAliveTimeout)
	if err := pinger.Start(ctx); err != nil {
		return fmt.Errorf("failed to start keep-alive pinger: %w", err)
	}
	if pinger.Enabled() {
		log.Printf("Keep-alive: %s", pinger)
	}

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("Server listening on %s", addr)
	log.Printf("MCP endpoint: http://localhost%s/mcp", addr)
	log.Printf("Health check: http://localhost%s/health", addr)

	if err := serve(ctx, addr, r); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
