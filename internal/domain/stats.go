package domain

import "time"

// CloseTimeBins are the histogram bucket upper bounds, in days. A close time
// lands in the smallest bin it does not exceed; anything past the last bound
// is left out of the histogram (it still counts toward average and peak).
var CloseTimeBins = []int{0, 1, 2, 3, 4, 5, 6, 7, 15, 21, 30, 60, 120}

type BinCount struct {
	UpperBound int
	Count      int
}

type CloseTimeStats struct {
	Average int
	Peak    int
	Bins    []BinCount
}

// Report is everything one run produces: the open bucket plus the two
// classified closed buckets, with the reference date all relative-day math
// was anchored to.
type Report struct {
	PeriodDays int
	AsOf       time.Time
	Open       []PullRequest
	Merged     []PullRequest
	Abandoned  []PullRequest
}

// NewCloseTimeStats computes close-latency statistics over closed pull
// requests. Trailing empty bins are trimmed. The input must be non-empty;
// the average of zero records is undefined.
func NewCloseTimeStats(prs []PullRequest) CloseTimeStats {
	counts := make(map[int]int, len(CloseTimeBins))

	sum, peak := 0, 0
	for _, pr := range prs {
		d := pr.TimeToClose()
		sum += d
		if d > peak {
			peak = d
		}
		for _, bound := range CloseTimeBins {
			if d <= bound {
				counts[bound]++
				break
			}
		}
	}

	bins := make([]BinCount, len(CloseTimeBins))
	for i, bound := range CloseTimeBins {
		bins[i] = BinCount{UpperBound: bound, Count: counts[bound]}
	}
	for len(bins) > 0 && bins[len(bins)-1].Count == 0 {
		bins = bins[:len(bins)-1]
	}

	return CloseTimeStats{
		Average: sum / len(prs),
		Peak:    peak,
		Bins:    bins,
	}
}
