package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"

	"cp-assistant/internal/chatfmt"
	"cp-assistant/internal/codeforces"
)

// recentSubmissionWindow bounds how much history the recent-solves
// view fetches; deepSubmissionWindow is used for distribution views.
const (
	recentSubmissionWindow = 100
	deepSubmissionWindow   = 5000
)

// HandleCountParams is shared by tools taking a handle and a count.
type HandleCountParams struct {
	Handle string `json:"handle,omitempty" jsonschema:"Codeforces handle; defaults to the configured handle"`
	Count  int    `json:"count,omitempty" jsonschema:"Number of entries to show"`
}

func (d *Deps) handleSolvedProblems(ctx context.Context, req *mcp.CallToolRequest, params HandleCountParams) (*mcp.CallToolResult, any, error) {
	handle, errRes := d.resolveHandle(params.Handle)
	if errRes != nil {
		return errRes, nil, nil
	}

	submissions, err := d.Codeforces.UserStatus(ctx, handle, recentSubmissionWindow)
	if err != nil {
		return upstreamError(err, handle), nil, nil
	}

	sort.Slice(submissions, func(i, j int) bool {
		return submissions[i].CreationTimeSeconds > submissions[j].CreationTimeSeconds
	})

	seen := make(map[string]bool)
	var solves []codeforces.Submission
	for _, sub := range submissions {
		if !sub.Accepted() || seen[sub.Problem.ID()] {
			continue
		}
		seen[sub.Problem.ID()] = true
		solves = append(solves, sub)
	}
	if len(solves) == 0 {
		return errorResult("No recent accepted submissions found for *%s*.", handle), nil, nil
	}

	count := params.Count
	if count <= 0 {
		count = 10
	}
	if count > len(solves) {
		count = len(solves)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "✅ *Recently Solved by %s*\n\n", handle)
	for i, sub := range solves[:count] {
		rating := "N/A"
		if sub.Problem.Rating > 0 {
			rating = fmt.Sprintf("%d", sub.Problem.Rating)
		}
		fmt.Fprintf(&b, "%d. [%s](%s) - *%s* (Solved on %s)\n",
			i+1, sub.Problem.Name, sub.Problem.URL(), rating, chatfmt.Date(sub.CreationTimeSeconds))
	}
	return textResult(strings.TrimSpace(b.String())), nil, nil
}

func (d *Deps) handleRatingChanges(ctx context.Context, req *mcp.CallToolRequest, params HandleCountParams) (*mcp.CallToolResult, any, error) {
	handle, errRes := d.resolveHandle(params.Handle)
	if errRes != nil {
		return errRes, nil, nil
	}

	changes, err := d.Codeforces.UserRating(ctx, handle)
	if err != nil {
		return upstreamError(err, handle), nil, nil
	}
	if len(changes) == 0 {
		return errorResult("No rating changes found for *%s*. They might be unrated.", handle), nil, nil
	}

	sort.Slice(changes, func(i, j int) bool {
		return changes[i].RatingUpdateTimeSeconds > changes[j].RatingUpdateTimeSeconds
	})

	count := params.Count
	if count <= 0 {
		count = 5
	}
	if count > len(changes) {
		count = len(changes)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📈 *Recent Rating Changes for %s*\n\n", handle)
	for _, change := range changes[:count] {
		delta := change.Delta()
		arrow := "➖"
		if delta > 0 {
			arrow = "🔼"
		} else if delta < 0 {
			arrow = "🔽"
		}
		fmt.Fprintf(&b, "- [%s](%s)\n", change.ContestName, change.ContestURL())
		fmt.Fprintf(&b, "  - Rank: %d, %s %d -> *%d* (%+d)\n", change.Rank, arrow, change.OldRating, change.NewRating, delta)
	}
	return textResult(strings.TrimSpace(b.String())), nil, nil
}

// HistogramParams selects the histogram source and bin width.
type HistogramParams struct {
	Handle  string `json:"handle,omitempty" jsonschema:"Codeforces handle; defaults to the configured handle"`
	BinSize int    `json:"bin_size,omitempty" jsonschema:"Rating bin width between 100 and 400 (default 100)"`
}

func (d *Deps) handleRatingHistogram(ctx context.Context, req *mcp.CallToolRequest, params HistogramParams) (*mcp.CallToolResult, any, error) {
	handle, errRes := d.resolveHandle(params.Handle)
	if errRes != nil {
		return errRes, nil, nil
	}

	binSize := params.BinSize
	if binSize == 0 {
		binSize = 100
	}
	if binSize < 100 || binSize > 400 {
		return errorResult("bin_size must be between 100 and 400."), nil, nil
	}

	submissions, err := d.Codeforces.UserStatus(ctx, handle, deepSubmissionWindow)
	if err != nil {
		return upstreamError(err, handle), nil, nil
	}

	bins := solvedRatingBins(submissions, binSize)
	if len(bins) == 0 {
		return errorResult("No rated problems solved by *%s*.", handle), nil, nil
	}

	maxCount := 0
	keys := make([]int, 0, len(bins))
	for rating, count := range bins {
		keys = append(keys, rating)
		if count > maxCount {
			maxCount = count
		}
	}
	sort.Ints(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "📊 *Solved Problems Histogram for %s*\n\n```\n", handle)
	for _, rating := range keys {
		count := bins[rating]
		barLength := count * 40 / maxCount
		bar := strings.Repeat("█", barLength)
		fmt.Fprintf(&b, "%4d-%-4d | %-40s (%d)\n", rating, rating+binSize-1, bar, count)
	}
	b.WriteString("```")
	return textResult(b.String()), nil, nil
}

// solvedRatingBins buckets unique accepted rated problems by rating.
func solvedRatingBins(submissions []codeforces.Submission, binSize int) map[int]int {
	bins := make(map[int]int)
	seen := make(map[string]bool)
	for _, sub := range submissions {
		if !sub.Accepted() || sub.Problem.Rating == 0 || seen[sub.Problem.ID()] {
			continue
		}
		seen[sub.Problem.ID()] = true
		bins[sub.Problem.Rating/binSize*binSize]++
	}
	return bins
}

func (d *Deps) handleUpsolveTargets(ctx context.Context, req *mcp.CallToolRequest, params HandleCountParams) (*mcp.CallToolResult, any, error) {
	handle, errRes := d.resolveHandle(params.Handle)
	if errRes != nil {
		return errRes, nil, nil
	}

	var (
		changes     []codeforces.RatingChange
		submissions []codeforces.Submission
		problemset  *codeforces.Problemset
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		changes, err = d.Codeforces.UserRating(gctx, handle)
		return err
	})
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
	if len(changes) == 0 {
		return errorResult("No contest participation found for *%s*.", handle), nil, nil
	}

	totalByContest := make(map[int]int)
	for _, p := range problemset.Problems {
		totalByContest[p.ContestID]++
	}

	solvedByContest := make(map[int]int)
	seen := make(map[string]bool)
	for _, sub := range submissions {
		if !sub.Accepted() || seen[sub.Problem.ID()] {
			continue
		}
		seen[sub.Problem.ID()] = true
		solvedByContest[sub.Problem.ContestID]++
	}

	type target struct {
		change codeforces.RatingChange
		solved int
		total  int
	}
	var targets []target
	for _, change := range changes {
		total := totalByContest[change.ContestID]
		solved := solvedByContest[change.ContestID]
		if total == 0 || solved >= total {
			continue
		}
		targets = append(targets, target{change: change, solved: solved, total: total})
	}
	if len(targets) == 0 {
		return textResult(fmt.Sprintf("🎉 *%s* has fully solved every contest they participated in!", handle)), nil, nil
	}

	// closest-to-complete first, recent contests breaking ties
	sort.Slice(targets, func(i, j int) bool {
		ri := float64(targets[i].solved) / float64(targets[i].total)
		rj := float64(targets[j].solved) / float64(targets[j].total)
		if ri != rj {
			return ri > rj
		}
		return targets[i].change.RatingUpdateTimeSeconds > targets[j].change.RatingUpdateTimeSeconds
	})

	count := params.Count
	if count <= 0 {
		count = 5
	}
	if count > len(targets) {
		count = len(targets)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🧩 *Upsolve Targets for %s*\n\n", handle)
	for i, tg := range targets[:count] {
		remaining := tg.total - tg.solved
		fmt.Fprintf(&b, "%d. [%s](%s) - solved %d/%d, %d to go\n",
			i+1, tg.change.ContestName, tg.change.ContestURL(), tg.solved, tg.total, remaining)
	}
	return textResult(strings.TrimSpace(b.String())), nil, nil
}
