package codeforces

import "fmt"

// User is a Codeforces user profile as returned by user.info.
type User struct {
	Handle                  string `json:"handle"`
	Rating                  int    `json:"rating"`
	MaxRating               int    `json:"maxRating"`
	Rank                    string `json:"rank"`
	MaxRank                 string `json:"maxRank"`
	Country                 string `json:"country"`
	Organization            string `json:"organization"`
	Contribution            int    `json:"contribution"`
	FriendOfCount           int    `json:"friendOfCount"`
	RegistrationTimeSeconds int64  `json:"registrationTimeSeconds"`
	LastOnlineTimeSeconds   int64  `json:"lastOnlineTimeSeconds"`
}

// ProfileURL returns the public profile page for the user.
func (u User) ProfileURL() string {
	return "https://codeforces.com/profile/" + u.Handle
}

// Problem is a problemset entry. Rating is 0 when the problem is unrated.
type Problem struct {
	ContestID int      `json:"contestId"`
	Index     string   `json:"index"`
	Name      string   `json:"name"`
	Rating    int      `json:"rating"`
	Tags      []string `json:"tags"`
}

// ID returns the contest-scoped problem identifier, e.g. "1700-A".
func (p Problem) ID() string {
	return fmt.Sprintf("%d-%s", p.ContestID, p.Index)
}

// URL returns the public problem page.
func (p Problem) URL() string {
	return fmt.Sprintf("https://codeforces.com/problemset/problem/%d/%s", p.ContestID, p.Index)
}

// Submission is a user.status entry.
type Submission struct {
	ID                  int64   `json:"id"`
	ContestID           int     `json:"contestId"`
	CreationTimeSeconds int64   `json:"creationTimeSeconds"`
	Problem             Problem `json:"problem"`
	ProgrammingLanguage string  `json:"programmingLanguage"`
	Verdict             string  `json:"verdict"`
}

// Accepted reports whether the submission was a full solve.
func (s Submission) Accepted() bool {
	return s.Verdict == "OK"
}

// RatingChange is a user.rating entry for one rated contest.
type RatingChange struct {
	ContestID               int    `json:"contestId"`
	ContestName             string `json:"contestName"`
	Handle                  string `json:"handle"`
	Rank                    int    `json:"rank"`
	RatingUpdateTimeSeconds int64  `json:"ratingUpdateTimeSeconds"`
	OldRating               int    `json:"oldRating"`
	NewRating               int    `json:"newRating"`
}

// Delta returns the signed rating change.
func (rc RatingChange) Delta() int {
	return rc.NewRating - rc.OldRating
}

// ContestURL returns the public contest page.
func (rc RatingChange) ContestURL() string {
	return fmt.Sprintf("https://codeforces.com/contest/%d", rc.ContestID)
}

// Contest is a contest.list entry.
type Contest struct {
	ID                  int    `json:"id"`
	Name                string `json:"name"`
	Type                string `json:"type"`
	Phase               string `json:"phase"`
	DurationSeconds     int64  `json:"durationSeconds"`
	StartTimeSeconds    int64  `json:"startTimeSeconds"`
	RelativeTimeSeconds int64  `json:"relativeTimeSeconds"`
}

// Upcoming reports whether the contest has not started yet.
func (c Contest) Upcoming() bool {
	return c.Phase == "BEFORE"
}

// URL returns the public contest page.
func (c Contest) URL() string {
	return fmt.Sprintf("https://codeforces.com/contest/%d", c.ID)
}

// Problemset is the problemset.problems result.
type Problemset struct {
	Problems []Problem `json:"problems"`
}
