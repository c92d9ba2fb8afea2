// Package tools implements the MCP tools exposed by the assistant:
// Codeforces analytics, problem recommendations, contest calendars,
// the LeetCode daily challenge and chart rendering. Every handler is
// a stateless request/response mapping; upstream failures become
// user-visible error results, never process faults.
package tools

import (
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"cp-assistant/internal/clist"
	"cp-assistant/internal/codeforces"
	"cp-assistant/internal/config"
	"cp-assistant/internal/gemini"
	"cp-assistant/internal/leetcode"
)

// Deps carries the shared clients the tool handlers use. Clist and
// Gemini are nil when the corresponding credentials are not
// configured; the tools depending on them answer with a hint instead.
type Deps struct {
	Config     *config.Config
	Codeforces *codeforces.Client
	LeetCode   *leetcode.Client
	Clist      *clist.Client
	Gemini     *gemini.Client
}

// New builds the tool dependencies from configuration.
func New(cfg *config.Config) *Deps {
	d := &Deps{
		Config:     cfg,
		Codeforces: codeforces.NewClient(cfg.RequestTimeout),
		LeetCode:   leetcode.NewClient(cfg.RequestTimeout),
	}
	if cfg.ClistConfigured() {
		d.Clist = clist.NewClient(cfg.ClistUsername, cfg.ClistAPIKey, cfg.RequestTimeout)
	}
	if cfg.GeminiConfigured() {
		d.Gemini = gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.RequestTimeout)
	}
	return d
}

// RegisterAll registers every tool on the MCP server.
func RegisterAll(server *mcp.Server, d *Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate",
		Description: "Returns the owner's registered number for platform validation",
	}, d.handleValidate)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "about",
		Description: "Describes the assistant's capabilities and example prompts",
	}, d.handleAbout)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_codeforces_user_stats",
		Description: "Fetches Codeforces profile stats for one or more handles, sorted by rating for easy comparison",
	}, d.handleUserStats)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "recommend_problems",
		Description: "Recommends unsolved Codeforces problems in a rating window tailored to the user's level",
	}, d.handleRecommendProblems)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_solved_problems",
		Description: "Lists the most recently solved (accepted) problems for a user",
	}, d.handleSolvedProblems)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_rating_changes",
		Description: "Shows recent contest results with rank and rating delta",
	}, d.handleRatingChanges)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_solved_rating_histogram",
		Description: "Renders an ASCII histogram of solved problems by rating bin",
	}, d.handleRatingHistogram)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_upsolve_targets",
		Description: "Finds contests the user entered but has not fully solved, ranked by completion",
	}, d.handleUpsolveTargets)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_upcoming_contests",
		Description: "Lists upcoming programming contests (multi-judge when clist.by is configured)",
	}, d.handleUpcomingContests)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_leetcode_daily_problem",
		Description: "Fetches today's LeetCode Daily Coding Challenge",
	}, d.handleLeetCodeDaily)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_practice_advice",
		Description: "Asks Gemini for focused practice advice based on the user's profile and solve history",
	}, d.handlePracticeAdvice)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "plot_rating_graph",
		Description: "Plots rating history for one or more users as a PNG line chart",
	}, d.handlePlotRatingGraph)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "plot_performance_graph",
		Description: "Plots rating history together with per-contest rating changes",
	}, d.handlePlotPerformanceGraph)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "plot_solved_rating_distribution",
		Description: "Plots a histogram of solved problem ratings",
	}, d.handlePlotSolvedDistribution)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "plot_verdict_distribution",
		Description: "Plots a pie chart of submission verdicts",
	}, d.handlePlotVerdicts)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "plot_tag_distribution",
		Description: "Plots the most solved problem tags as a bar chart",
	}, d.handlePlotTags)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "plot_language_distribution",
		Description: "Plots a pie chart of programming languages used in submissions",
	}, d.handlePlotLanguages)
}

// resolveHandle applies the configured default when no handle was
// given. The returned result is non-nil when neither is available.
func (d *Deps) resolveHandle(handle string) (string, *mcp.CallToolResult) {
	handle = strings.TrimSpace(handle)
	if handle != "" {
		return handle, nil
	}
	if d.Config.DefaultHandle != "" {
		return d.Config.DefaultHandle, nil
	}
	return "", errorResult("Please specify a handle or set DEFAULT_HANDLE.")
}

// upstreamError maps a client error to a user-visible result.
func upstreamError(err error, who string) *mcp.CallToolResult {
	if codeforces.IsNotFound(err) {
		return errorResult("Could not find user %q on Codeforces. Check the handle and try again.", who)
	}
	return errorResult("Codeforces did not answer: %v. Please try again in a moment.", err)
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func errorResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
		IsError: true,
	}
}

func imageResult(text string, png []byte) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
			&mcp.ImageContent{MIMEType: "image/png", Data: png},
		},
	}
}

// resultText extracts the first text content of a result. Used by
// handlers that compose other handlers and by tests.
func resultText(res *mcp.CallToolResult) string {
	for _, content := range res.Content {
		if tc, ok := content.(*mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}
