package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"prstats/internal/domain"
	"prstats/internal/logger"
)

func (s *serviceImpl) BuildReport(ctx context.Context, params ReportParams) (domain.Report, error) {
	report := domain.Report{
		PeriodDays: params.PeriodDays,
		AsOf:       domain.Date(params.AsOf),
	}

	open, err := s.source.ListOpenPullRequests(ctx, params.Repo)
	if err != nil {
		logger.LogDomainAware(ctx, err, "failed to fetch open pull requests",
			zap.String("repo", params.Repo),
		)
		return domain.Report{}, err
	}
	report.Open = open

	if params.OpenOnly {
		return report, nil
	}

	var closedAfter *time.Time
	if params.PeriodDays > 0 {
		cutoff := report.AsOf.AddDate(0, 0, -params.PeriodDays)
		closedAfter = &cutoff
	}

	closed, err := s.source.ListClosedPullRequests(ctx, params.Repo, closedAfter)
	if err != nil {
		logger.LogDomainAware(ctx, err, "failed to fetch closed pull requests",
			zap.String("repo", params.Repo),
		)
		return domain.Report{}, err
	}

	merged, abandoned, err := classifyClosed(closed)
	if err != nil {
		logger.LogDomainAware(ctx, err, "closed listing failed consistency check",
			zap.String("repo", params.Repo),
		)
		return domain.Report{}, err
	}
	report.Merged = merged
	report.Abandoned = abandoned

	return report, nil
}

// classifyClosed partitions closed pull requests into merged and abandoned.
// A record from the closed listing that still reports itself open breaks the
// invariant the whole report rests on, so it fails the run instead of being
// skipped.
func classifyClosed(prs []domain.PullRequest) (merged, abandoned []domain.PullRequest, err error) {
	for _, pr := range prs {
		switch {
		case pr.IsOpen():
			return nil, nil, domain.NewDomainError(domain.ErrorCodeInconsistentState,
				"open pull request in closed listing")
		case pr.IsAbandoned():
			abandoned = append(abandoned, pr)
		case pr.IsMerged():
			merged = append(merged, pr)
		}
	}

	return merged, abandoned, nil
}
