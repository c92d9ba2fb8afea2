package tools

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (d *Deps) handleValidate(ctx context.Context, req *mcp.CallToolRequest, params EmptyParams) (*mcp.CallToolResult, any, error) {
	return textResult(d.Config.OwnerNumber), nil, nil
}

const aboutText = `🏆 *Welcome to your Competitive Programming Assistant!*

📊 *Profile & Stats*
- Codeforces user stats and ratings
- Compare multiple users side by side
- Rating changes and contest performance
- Recently solved problems

🎯 *Smart Recommendations*
- Unsolved problems matched to your level
- Upsolve targets from contests you entered
- Gemini-powered practice advice

📈 *Visual Analysis*
- Rating graphs over time
- Problem difficulty distribution
- Tag and language breakdowns
- Verdict pie charts

🏁 *Contest Info*
- Upcoming contests across judges
- Today's LeetCode Daily Challenge

Try: "Show my Codeforces stats", "Recommend problems for my level",
"Plot my rating graph", "What contests are upcoming?"

💡 Set DEFAULT_HANDLE so you can skip typing your handle.`

func (d *Deps) handleAbout(ctx context.Context, req *mcp.CallToolRequest, params EmptyParams) (*mcp.CallToolResult, any, error) {
	return textResult(strings.TrimSpace(aboutText)), nil, nil
}
