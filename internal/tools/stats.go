package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"cp-assistant/internal/chatfmt"
)

// UserStatsParams selects which profiles to fetch.
type UserStatsParams struct {
	Handles []string `json:"handles,omitempty" jsonschema:"Codeforces handles to look up; defaults to the configured handle"`
}

func (d *Deps) handleUserStats(ctx context.Context, req *mcp.CallToolRequest, params UserStatsParams) (*mcp.CallToolResult, any, error) {
	handles := params.Handles
	if len(handles) == 0 {
		if d.Config.DefaultHandle == "" {
			return errorResult("No handles provided and no default handle is configured."), nil, nil
		}
		handles = []string{d.Config.DefaultHandle}
	}

	users, err := d.Codeforces.UserInfo(ctx, handles)
	if err != nil {
		return upstreamError(err, strings.Join(handles, ", ")), nil, nil
	}
	if len(users) == 0 {
		return errorResult("Could not find user(s): %s", strings.Join(handles, ", ")), nil, nil
	}

	sort.Slice(users, func(i, j int) bool { return users[i].Rating > users[j].Rating })

	title := "Stats"
	if len(users) > 1 {
		title = "Leaderboard"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🏆 *Codeforces User %s*\n\n", title)
	for _, u := range users {
		rank := u.Rank
		if rank == "" {
			rank = "Unrated"
		}
		fmt.Fprintf(&b, "*%s %s*\n", rank, u.Handle)
		fmt.Fprintf(&b, "- Rating: *%d* (Max: %d)\n", u.Rating, u.MaxRating)
		fmt.Fprintf(&b, "- Member Since: %s\n", chatfmt.MonthYear(u.RegistrationTimeSeconds))
		fmt.Fprintf(&b, "- [Profile](%s)\n\n", u.ProfileURL())
	}
	return textResult(strings.TrimSpace(b.String())), nil, nil
}
