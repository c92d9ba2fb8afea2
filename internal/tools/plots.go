package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"

	"cp-assistant/internal/charts"
	"cp-assistant/internal/codeforces"
)

// mainVerdicts are shown individually in the verdict pie; everything
// else is folded into OTHER.
var mainVerdicts = map[string]bool{
	"OK":                    true,
	"WRONG_ANSWER":          true,
	"TIME_LIMIT_EXCEEDED":   true,
	"MEMORY_LIMIT_EXCEEDED": true,
	"RUNTIME_ERROR":         true,
	"COMPILATION_ERROR":     true,
}

// PlotRatingParams accepts both a single handle and a list, since
// chat models call the tool either way.
type PlotRatingParams struct {
	Handle  string   `json:"handle,omitempty" jsonschema:"A single Codeforces handle"`
	Handles []string `json:"handles,omitempty" jsonschema:"Codeforces handles to compare"`
}

func (d *Deps) handlePlotRatingGraph(ctx context.Context, req *mcp.CallToolRequest, params PlotRatingParams) (*mcp.CallToolResult, any, error) {
	handles := params.Handles
	if len(handles) == 0 && params.Handle != "" {
		handles = []string{params.Handle}
	}
	if len(handles) == 0 {
		if d.Config.DefaultHandle == "" {
			return errorResult("Please specify at least one handle or set DEFAULT_HANDLE."), nil, nil
		}
		handles = []string{d.Config.DefaultHandle}
	}

	allChanges := make([][]codeforces.RatingChange, len(handles))
	g, gctx := errgroup.WithContext(ctx)
	for i, handle := range handles {
		g.Go(func() error {
			changes, err := d.Codeforces.UserRating(gctx, handle)
			if err != nil {
				return err
			}
			allChanges[i] = changes
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return upstreamError(err, strings.Join(handles, ", ")), nil, nil
	}

	series := make([]charts.RatingSeries, 0, len(handles))
	for i, handle := range handles {
		times, ratings, _ := ratingPoints(allChanges[i])
		series = append(series, charts.RatingSeries{Handle: handle, Times: times, Ratings: ratings})
	}

	png, err := charts.RatingGraph(series)
	if err != nil {
		return errorResult("Could not plot a rating graph for %s: %v.", strings.Join(handles, ", "), err), nil, nil
	}
	return imageResult(fmt.Sprintf("Here is the rating graph for %s:", strings.Join(handles, ", ")), png), nil, nil
}

// PlotParams is shared by the single-handle plotting tools.
type PlotParams struct {
	Handle string `json:"handle,omitempty" jsonschema:"Codeforces handle; defaults to the configured handle"`
}

func (d *Deps) handlePlotPerformanceGraph(ctx context.Context, req *mcp.CallToolRequest, params PlotParams) (*mcp.CallToolResult, any, error) {
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

	times, ratings, deltas := ratingPoints(changes)
	png, err := charts.PerformanceGraph(handle, times, ratings, deltas)
	if err != nil {
		return errorResult("Could not plot the performance graph for %s: %v.", handle, err), nil, nil
	}
	return imageResult(fmt.Sprintf("Here is the performance graph for %s:", handle), png), nil, nil
}

// ratingPoints converts a contest history to chart inputs, oldest
// first.
func ratingPoints(changes []codeforces.RatingChange) (times []time.Time, ratings, deltas []float64) {
	sorted := make([]codeforces.RatingChange, len(changes))
	copy(sorted, changes)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].RatingUpdateTimeSeconds < sorted[j].RatingUpdateTimeSeconds
	})

	for _, change := range sorted {
		times = append(times, time.Unix(change.RatingUpdateTimeSeconds, 0).UTC())
		ratings = append(ratings, float64(change.NewRating))
		deltas = append(deltas, float64(change.Delta()))
	}
	return times, ratings, deltas
}

func (d *Deps) handlePlotSolvedDistribution(ctx context.Context, req *mcp.CallToolRequest, params PlotParams) (*mcp.CallToolResult, any, error) {
	handle, errRes := d.resolveHandle(params.Handle)
	if errRes != nil {
		return errRes, nil, nil
	}

	submissions, err := d.Codeforces.UserStatus(ctx, handle, deepSubmissionWindow)
	if err != nil {
		return upstreamError(err, handle), nil, nil
	}

	bins := solvedRatingBins(submissions, 100)
	if len(bins) == 0 {
		return errorResult("No rated problems solved by *%s*.", handle), nil, nil
	}

	keys := make([]int, 0, len(bins))
	for k := range bins {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	chartBins := make([]charts.Bin, 0, len(keys))
	for _, k := range keys {
		chartBins = append(chartBins, charts.Bin{Label: fmt.Sprintf("%d", k), Count: bins[k]})
	}

	png, err := charts.Histogram(fmt.Sprintf("Solved Problem Ratings for %s", handle), chartBins)
	if err != nil {
		return errorResult("Could not plot the rating distribution for %s: %v.", handle, err), nil, nil
	}
	return imageResult(fmt.Sprintf("Here's a histogram of solved problem ratings for %s:", handle), png), nil, nil
}

func (d *Deps) handlePlotVerdicts(ctx context.Context, req *mcp.CallToolRequest, params PlotParams) (*mcp.CallToolResult, any, error) {
	handle, errRes := d.resolveHandle(params.Handle)
	if errRes != nil {
		return errRes, nil, nil
	}

	submissions, err := d.Codeforces.UserStatus(ctx, handle, deepSubmissionWindow)
	if err != nil {
		return upstreamError(err, handle), nil, nil
	}
	if len(submissions) == 0 {
		return errorResult("No submissions found for *%s*.", handle), nil, nil
	}

	counts := make(map[string]int)
	for _, sub := range submissions {
		verdict := sub.Verdict
		if verdict == "" {
			verdict = "UNKNOWN"
		}
		if !mainVerdicts[verdict] {
			verdict = "OTHER"
		}
		counts[verdict]++
	}

	png, err := charts.Pie(fmt.Sprintf("Submission Verdicts for %s", handle), slicesByCount(counts, 0))
	if err != nil {
		return errorResult("Could not plot the verdict distribution for %s: %v.", handle, err), nil, nil
	}
	return imageResult(fmt.Sprintf("Here is the verdict distribution for %s:", handle), png), nil, nil
}

// PlotTagsParams limits how many tags the bar chart shows.
type PlotTagsParams struct {
	Handle string `json:"handle,omitempty" jsonschema:"Codeforces handle; defaults to the configured handle"`
	Count  int    `json:"count,omitempty" jsonschema:"Number of top tags to show (default 15)"`
}

func (d *Deps) handlePlotTags(ctx context.Context, req *mcp.CallToolRequest, params PlotTagsParams) (*mcp.CallToolResult, any, error) {
	handle, errRes := d.resolveHandle(params.Handle)
	if errRes != nil {
		return errRes, nil, nil
	}

	submissions, err := d.Codeforces.UserStatus(ctx, handle, deepSubmissionWindow)
	if err != nil {
		return upstreamError(err, handle), nil, nil
	}

	counts := make(map[string]int)
	seen := make(map[string]bool)
	for _, sub := range submissions {
		if !sub.Accepted() || seen[sub.Problem.ID()] {
			continue
		}
		seen[sub.Problem.ID()] = true
		for _, tag := range sub.Problem.Tags {
			counts[tag]++
		}
	}
	if len(counts) == 0 {
		return errorResult("No tagged solved problems found for *%s*.", handle), nil, nil
	}

	count := params.Count
	if count <= 0 {
		count = 15
	}

	bins := make([]charts.Bin, 0, count)
	for _, tag := range sortedByCount(counts, count) {
		bins = append(bins, charts.Bin{Label: tag, Count: counts[tag]})
	}

	png, err := charts.Histogram(fmt.Sprintf("Most Solved Tags for %s", handle), bins)
	if err != nil {
		return errorResult("Could not plot the tag distribution for %s: %v.", handle, err), nil, nil
	}
	return imageResult(fmt.Sprintf("Here is the tag distribution for %s:", handle), png), nil, nil
}

func (d *Deps) handlePlotLanguages(ctx context.Context, req *mcp.CallToolRequest, params PlotParams) (*mcp.CallToolResult, any, error) {
	handle, errRes := d.resolveHandle(params.Handle)
	if errRes != nil {
		return errRes, nil, nil
	}

	submissions, err := d.Codeforces.UserStatus(ctx, handle, deepSubmissionWindow)
	if err != nil {
		return upstreamError(err, handle), nil, nil
	}
	if len(submissions) == 0 {
		return errorResult("No submissions found for *%s*.", handle), nil, nil
	}

	counts := make(map[string]int)
	for _, sub := range submissions {
		lang := sub.ProgrammingLanguage
		if lang == "" {
			lang = "Unknown"
		}
		counts[lang]++
	}

	png, err := charts.Pie(fmt.Sprintf("Languages Used by %s", handle), slicesByCount(counts, 8))
	if err != nil {
		return errorResult("Could not plot the language distribution for %s: %v.", handle, err), nil, nil
	}
	return imageResult(fmt.Sprintf("Here is the language distribution for %s:", handle), png), nil, nil
}

// slicesByCount orders counts descending into pie slices. When top is
// positive, smaller entries beyond it are folded into "Other".
func slicesByCount(counts map[string]int, top int) []charts.Slice {
	keys := sortedByCount(counts, len(counts))

	var slices []charts.Slice
	other := 0
	for i, key := range keys {
		if top > 0 && i >= top {
			other += counts[key]
			continue
		}
		slices = append(slices, charts.Slice{Label: key, Count: counts[key]})
	}
	if other > 0 {
		slices = append(slices, charts.Slice{Label: "Other", Count: other})
	}
	return slices
}
