package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"prstats/internal/domain"
)

// Renderer writes the human-readable report. It is the only component that
// owns output formatting; everything above it works on domain values.
type Renderer struct {
	out io.Writer
}

func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{
		out: out,
	}
}

func (r *Renderer) Render(rep domain.Report) {
	period := "For the entire life of the repository"
	if rep.PeriodDays > 0 {
		period = fmt.Sprintf("for the past %d days", rep.PeriodDays)
	}

	if len(rep.Merged) > 0 {
		fmt.Fprintf(r.out, "Merged Pull Requests %s: %d\n\n", period, len(rep.Merged))
		r.renderHistogram(rep.Merged, "merge")
	}

	if len(rep.Abandoned) > 0 {
		fmt.Fprintf(r.out, "\nAbandoned Pull Requests %s: %d\n\n", period, len(rep.Abandoned))
		r.renderHistogram(rep.Abandoned, "abandon")
	}

	fmt.Fprintf(r.out, "\nCurrently Open Pull Requests: %d\n\n", len(rep.Open))

	r.renderNeedingAttention(rep)
}

// renderHistogram prints average, peak and the per-bin distribution of close
// latency. Bars grow linearly with the count, one marker per pull request;
// long lines are fine for this tool. Callers guard on non-empty input.
func (r *Renderer) renderHistogram(prs []domain.PullRequest, action string) {
	stats := domain.NewCloseTimeStats(prs)

	fmt.Fprintf(r.out, "\tAverage time to %s: %d days\n", action, stats.Average)
	fmt.Fprintf(r.out, "\tPeak time to %s: %d days\n", action, stats.Peak)
	fmt.Fprintf(r.out, "\tHistogram of %s time: in days\n", action)

	for _, bin := range stats.Bins {
		fmt.Fprintf(r.out, "\t\t%3d: %s\n", bin.UpperBound, strings.Repeat("@", bin.Count))
	}
}

// renderNeedingAttention lists open pull requests older than the attention
// threshold, longest-open first.
func (r *Renderer) renderNeedingAttention(rep domain.Report) {
	open := make([]domain.PullRequest, len(rep.Open))
	copy(open, rep.Open)

	sort.SliceStable(open, func(i, j int) bool {
		return open[i].OpenFor(rep.AsOf) > open[j].OpenFor(rep.AsOf)
	})

	var blocks []string
	for _, pr := range open {
		if pr.NeedsAttention(rep.AsOf, domain.DefaultAttentionDays) {
			blocks = append(blocks, pr.Summary(rep.AsOf))
		}
	}

	if len(blocks) == 0 {
		return
	}

	fmt.Fprintf(r.out, "Pull Requests needing attention: (open for more than %d days):\n",
		domain.DefaultAttentionDays)
	for _, block := range blocks {
		fmt.Fprintln(r.out, block)
	}
}
