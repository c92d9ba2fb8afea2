package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"cp-assistant/internal/chatfmt"
)

// daily problem statements can be long; keep chat messages bounded
const dailyContentLimit = 2000

// EmptyParams is used by tools that take no arguments.
type EmptyParams struct{}

func (d *Deps) handleLeetCodeDaily(ctx context.Context, req *mcp.CallToolRequest, params EmptyParams) (*mcp.CallToolResult, any, error) {
	problem, err := d.LeetCode.Daily(ctx)
	if err != nil {
		return errorResult("Could not fetch the LeetCode daily problem: %v.", err), nil, nil
	}

	var b strings.Builder
	b.WriteString("*Today's LeetCode Daily Problem*\n\n")
	fmt.Fprintf(&b, "*%s* (%s)\n", problem.Title, problem.Difficulty)
	if len(problem.Topics) > 0 {
		fmt.Fprintf(&b, "Topics: %s\n", strings.Join(problem.Topics, ", "))
	}
	fmt.Fprintf(&b, "Solve it here: %s\n\n", problem.Link)
	fmt.Fprintf(&b, "Problem Description:\n%s",
		chatfmt.Truncate(chatfmt.HTMLToText(problem.Content), dailyContentLimit))
	return textResult(b.String()), nil, nil
}
