package tools

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"

	"cp-assistant/internal/codeforces"
)

// unratedBaseline is the difficulty window base for users without a
// contest rating yet.
const unratedBaseline = 1200

// RecommendParams controls the problem recommendation window.
type RecommendParams struct {
	Handle    string `json:"handle,omitempty" jsonschema:"Codeforces handle; defaults to the configured handle"`
	MinRating int    `json:"min_rating,omitempty" jsonschema:"Minimum problem rating"`
	MaxRating int    `json:"max_rating,omitempty" jsonschema:"Maximum problem rating"`
	Count     int    `json:"count,omitempty" jsonschema:"Number of problems to recommend (default 5)"`
}

func (d *Deps) handleRecommendProblems(ctx context.Context, req *mcp.CallToolRequest, params RecommendParams) (*mcp.CallToolResult, any, error) {
	handle, errRes := d.resolveHandle(params.Handle)
	if errRes != nil {
		return errRes, nil, nil
	}

	users, err := d.Codeforces.UserInfo(ctx, []string{handle})
	if err != nil {
		return upstreamError(err, handle), nil, nil
	}
	if len(users) == 0 {
		return errorResult("Could not find user %q.", handle), nil, nil
	}

	minRating, maxRating := params.MinRating, params.MaxRating
	if minRating == 0 && maxRating == 0 {
		base := users[0].Rating
		if base == 0 {
			base = unratedBaseline
		}
		minRating = base
		maxRating = base + 199
	}

	var (
		submissions []codeforces.Submission
		problemset  *codeforces.Problemset
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		submissions, err = d.Codeforces.UserStatus(gctx, handle, 0)
		return err
	})
	g.Go(func() error {
		var err error
		problemset, err = d.Codeforces.Problemset(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return upstreamError(err, handle), nil, nil
	}

	solved := make(map[string]bool)
	for _, sub := range submissions {
		if sub.Accepted() {
			solved[sub.Problem.ID()] = true
		}
	}

	var candidates []codeforces.Problem
	for _, p := range problemset.Problems {
		if p.Rating == 0 || p.Rating < minRating || p.Rating > maxRating {
			continue
		}
		if solved[p.ID()] {
			continue
		}
		candidates = append(candidates, p)
	}
	if len(candidates) == 0 {
		return errorResult("Couldn't find unsolved problems for *%s* in rating range %d-%d.", handle, minRating, maxRating), nil, nil
	}

	rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	count := params.Count
	if count <= 0 {
		count = 5
	}
	if count > len(candidates) {
		count = len(candidates)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "💡 *Recommended Problems for %s (%d-%d):*\n\n", handle, minRating, maxRating)
	for i, p := range candidates[:count] {
		fmt.Fprintf(&b, "%d. [%s](%s) - Rating: %d\n", i+1, p.Name, p.URL(), p.Rating)
	}
	return textResult(strings.TrimSpace(b.String())), nil, nil
}
