package usecase

import (
	"context"
	"time"

	"prstats/internal/domain"
)

type (
	ReportUseCase interface {
		BuildReport(ctx context.Context, params ReportParams) (domain.Report, error)
	}

	// PullRequestSource is the data-source layer: it yields fully resolved
	// pull requests for one repository, in the order the API serves them.
	// A non-nil closedAfter keeps only pull requests closed strictly after
	// the cutoff.
	PullRequestSource interface {
		ListOpenPullRequests(ctx context.Context, repo string) ([]domain.PullRequest, error)
		ListClosedPullRequests(ctx context.Context, repo string, closedAfter *time.Time) ([]domain.PullRequest, error)
	}
)

// ReportParams carries everything one run needs, including the reference
// date all relative-day math is anchored to.
type ReportParams struct {
	Repo       string
	PeriodDays int
	OpenOnly   bool
	AsOf       time.Time
}

var _ ReportUseCase = (*serviceImpl)(nil)

type serviceImpl struct {
	source PullRequestSource
}

func NewService(source PullRequestSource) *serviceImpl {
	return &serviceImpl{
		source: source,
	}
}
