package domain

import (
	"fmt"
	"time"
)

// DefaultAttentionDays is how long a pull request may stay open before the
// report singles it out.
const DefaultAttentionDays = 15

// PullRequest is one pull request fetched from the API. All timestamps carry
// day precision (midnight UTC); nil ClosedAt/MergedAt means the pull request
// has not reached that state. MergedAt set implies ClosedAt set.
type PullRequest struct {
	Title     string
	URL       string
	Author    User
	Reviewers []User

	CreatedAt time.Time
	ClosedAt  *time.Time
	MergedAt  *time.Time
}

func (p PullRequest) IsOpen() bool {
	return p.ClosedAt == nil
}

func (p PullRequest) IsAbandoned() bool {
	return p.ClosedAt != nil && p.MergedAt == nil
}

func (p PullRequest) IsMerged() bool {
	return p.MergedAt != nil
}

// NeedsAttention reports whether the pull request has been open strictly
// longer than days as of the reference date. A pull request created exactly
// days ago does not qualify.
func (p PullRequest) NeedsAttention(asOf time.Time, days int) bool {
	return p.IsOpen() && Date(asOf).AddDate(0, 0, -days).After(p.CreatedAt)
}

// TimeToClose is the whole days between creation and closing. Valid only for
// closed pull requests.
func (p PullRequest) TimeToClose() int {
	return daysBetween(p.CreatedAt, *p.ClosedAt)
}

// OpenFor is the whole days the pull request has existed as of the reference
// date.
func (p PullRequest) OpenFor(asOf time.Time) int {
	return daysBetween(p.CreatedAt, asOf)
}

// Summary renders the multi-line text block shown for pull requests that need
// attention.
func (p PullRequest) Summary(asOf time.Time) string {
	s := fmt.Sprintf("\tAuthor      : %s\n", p.Author.DisplayName())
	s += fmt.Sprintf("\tTitle       : %s\n", p.Title)
	s += fmt.Sprintf("\tURL         : %s\n", p.URL)
	if p.IsOpen() {
		s += fmt.Sprintf("\tCreated  at : %s (%d days ago)\n",
			formatDate(p.CreatedAt), p.OpenFor(asOf))
	} else {
		s += fmt.Sprintf("\tCreated  at : %s and Closed at %s (after %d days)\n",
			formatDate(p.CreatedAt), formatDate(*p.ClosedAt), p.TimeToClose())
	}
	return s
}

// Date truncates t to day precision in UTC. Every date-relative figure in the
// report is a whole-day difference between two such values.
func Date(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(Date(to).Sub(Date(from)).Hours() / 24)
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
