package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"

	"cp-assistant/internal/codeforces"
)

// AdviceParams selects the profile to analyze.
type AdviceParams struct {
	Handle string `json:"handle,omitempty" jsonschema:"Codeforces handle; defaults to the configured handle"`
}

func (d *Deps) handlePracticeAdvice(ctx context.Context, req *mcp.CallToolRequest, params AdviceParams) (*mcp.CallToolResult, any, error) {
	if d.Gemini == nil {
		return errorResult("Practice advice needs GEMINI_API_KEY to be configured."), nil, nil
	}

	handle, errRes := d.resolveHandle(params.Handle)
	if errRes != nil {
		return errRes, nil, nil
	}

	var (
		users       []codeforces.User
		submissions []codeforces.Submission
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = d.Codeforces.UserInfo(gctx, []string{handle})
		return err
	})
	g.Go(func() error {
		var err error
		submissions, err = d.Codeforces.UserStatus(gctx, handle, deepSubmissionWindow)
		return err
	})
	if err := g.Wait(); err != nil {
		return upstreamError(err, handle), nil, nil
	}
	if len(users) == 0 {
		return errorResult("Could not find user %q.", handle), nil, nil
	}

	prompt := buildAdvicePrompt(users[0], submissions)
	advice, err := d.Gemini.Generate(ctx, prompt)
	if err != nil {
		return errorResult("The practice coach is unavailable right now: %v.", err), nil, nil
	}

	return textResult(fmt.Sprintf("🧠 *Practice Advice for %s*\n\n%s", handle, advice)), nil, nil
}

// buildAdvicePrompt condenses the profile into a compact prompt so
// the model sees solved-rating spread and tag strengths, not raw data.
func buildAdvicePrompt(user codeforces.User, submissions []codeforces.Submission) string {
	bins := solvedRatingBins(submissions, 200)
	binKeys := make([]int, 0, len(bins))
	for k := range bins {
		binKeys = append(binKeys, k)
	}
	sort.Ints(binKeys)

	var distribution strings.Builder
	for _, k := range binKeys {
		fmt.Fprintf(&distribution, "%d-%d: %d solved; ", k, k+199, bins[k])
	}

	tagCounts := make(map[string]int)
	seen := make(map[string]bool)
	for _, sub := range submissions {
		if !sub.Accepted() || seen[sub.Problem.ID()] {
			continue
		}
		seen[sub.Problem.ID()] = true
		for _, tag := range sub.Problem.Tags {
			tagCounts[tag]++
		}
	}
	topTags := sortedByCount(tagCounts, 8)

	return fmt.Sprintf(`You are a competitive programming coach.
A Codeforces user asks what to practice next.
Profile: handle %s, rating %d (max %d), rank %q.
Solved problems by rating: %s
Most solved tags: %s
Give short, concrete practice advice: which rating range to grind, which 2-3 underrepresented topics to study, and one weekly routine suggestion. Keep it under 200 words, plain text.`,
		user.Handle, user.Rating, user.MaxRating, user.Rank,
		strings.TrimSpace(distribution.String()), strings.Join(topTags, ", "))
}

// sortedByCount returns up to n keys ordered by descending count,
// ties alphabetical for stable output.
func sortedByCount(counts map[string]int, n int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if n > len(keys) {
		n = len(keys)
	}
	return keys[:n]
}
