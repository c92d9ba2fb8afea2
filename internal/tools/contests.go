package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"cp-assistant/internal/chatfmt"
)

// ContestsParams limits the contest list length.
type ContestsParams struct {
	Limit int `json:"limit,omitempty" jsonschema:"Maximum number of contests to list (default 10)"`
}

func (d *Deps) handleUpcomingContests(ctx context.Context, req *mcp.CallToolRequest, params ContestsParams) (*mcp.CallToolResult, any, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 10
	}

	if d.Clist != nil {
		return d.multiJudgeContests(ctx, limit)
	}
	return d.codeforcesContests(ctx, limit)
}

// multiJudgeContests lists contests across judges via clist.by.
func (d *Deps) multiJudgeContests(ctx context.Context, limit int) (*mcp.CallToolResult, any, error) {
	contests, err := d.Clist.Upcoming(ctx, limit)
	if err != nil {
		return errorResult("Could not fetch the contest calendar: %v.", err), nil, nil
	}
	if len(contests) == 0 {
		return textResult("No upcoming contests found."), nil, nil
	}

	var b strings.Builder
	b.WriteString("🏁 *Upcoming Contests*\n\n")
	for _, c := range contests {
		fmt.Fprintf(&b, "- [%s](%s)\n", c.Event, c.URL)
		fmt.Fprintf(&b, "  - %s, starts %s, lasts %s\n",
			c.Resource, c.Start.Format("2006-01-02 15:04 MST"), humanDuration(c.Duration))
	}
	return textResult(strings.TrimSpace(b.String())), nil, nil
}

// codeforcesContests lists upcoming Codeforces rounds only.
func (d *Deps) codeforcesContests(ctx context.Context, limit int) (*mcp.CallToolResult, any, error) {
	contests, err := d.Codeforces.ContestList(ctx)
	if err != nil {
		return errorResult("Could not fetch the Codeforces contest list: %v.", err), nil, nil
	}

	upcoming := contests[:0:0]
	for _, c := range contests {
		if c.Upcoming() {
			upcoming = append(upcoming, c)
		}
	}
	if len(upcoming) == 0 {
		return textResult("No upcoming Codeforces contests found."), nil, nil
	}

	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].StartTimeSeconds < upcoming[j].StartTimeSeconds
	})
	if limit > len(upcoming) {
		limit = len(upcoming)
	}

	var b strings.Builder
	b.WriteString("🏁 *Upcoming Codeforces Contests*\n\n")
	for _, c := range upcoming[:limit] {
		fmt.Fprintf(&b, "- [%s](%s)\n", c.Name, c.URL())
		fmt.Fprintf(&b, "  - starts %s, lasts %s\n",
			chatfmt.DateTime(c.StartTimeSeconds), humanDuration(time.Duration(c.DurationSeconds)*time.Second))
	}
	return textResult(strings.TrimSpace(b.String())), nil, nil
}

func humanDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	switch {
	case hours == 0:
		return fmt.Sprintf("%dm", minutes)
	case minutes == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
}
