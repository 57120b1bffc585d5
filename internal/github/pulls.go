package github

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/peterhellberg/link"

	"prstats/internal/domain"
	"prstats/internal/usecase"
)

// TODO: the extra '?' separators should be '&'; as served, GitHub only sees
// the state parameter and ignores sort/direction. Kept until the intended
// ordering is confirmed.
const (
	openPullsPath   = "/repos/scylladb/%s/pulls?state=open?sort=created_at?direction=desc"
	closedPullsPath = "/repos/scylladb/%s/pulls?state=closed?sort=closed_at?direction=desc"
)

type userRef struct {
	URL string `json:"url"`
}

type pullPayload struct {
	Title              string     `json:"title"`
	HTMLURL            string     `json:"html_url"`
	CreatedAt          time.Time  `json:"created_at"`
	ClosedAt           *time.Time `json:"closed_at"`
	MergedAt           *time.Time `json:"merged_at"`
	User               userRef    `json:"user"`
	RequestedReviewers []userRef  `json:"requested_reviewers"`
}

// includeFunc decides on the raw payload, before user resolution, so an
// excluded pull request costs no extra API calls.
type includeFunc func(pullPayload) bool

var _ usecase.PullRequestSource = (*sourceImpl)(nil)

type sourceImpl struct {
	client   *Client
	resolver *UserResolver
}

func NewPullRequestSource(client *Client, resolver *UserResolver) *sourceImpl {
	return &sourceImpl{
		client:   client,
		resolver: resolver,
	}
}

func (s *sourceImpl) ListOpenPullRequests(ctx context.Context, repo string) ([]domain.PullRequest, error) {
	url := s.client.baseURL + fmt.Sprintf(openPullsPath, repo)
	return s.listPullRequests(ctx, url, nil)
}

func (s *sourceImpl) ListClosedPullRequests(ctx context.Context, repo string, closedAfter *time.Time) ([]domain.PullRequest, error) {
	url := s.client.baseURL + fmt.Sprintf(closedPullsPath, repo)

	var include includeFunc
	if closedAfter != nil {
		cutoff := *closedAfter
		include = func(p pullPayload) bool {
			return p.ClosedAt != nil && domain.Date(*p.ClosedAt).After(cutoff)
		}
	}

	return s.listPullRequests(ctx, url, include)
}

// listPullRequests walks the pagination chain from url, keeping the API's
// per-page order. A non-success status anywhere in the chain fails the whole
// listing; records accumulated so far are discarded.
func (s *sourceImpl) listPullRequests(ctx context.Context, url string, include includeFunc) ([]domain.PullRequest, error) {
	var result []domain.PullRequest

	for url != "" {
		var page []pullPayload
		resp, err := s.client.getJSON(ctx, url, &page)
		if err != nil {
			return nil, err
		}

		for _, payload := range page {
			if include != nil && !include(payload) {
				continue
			}
			result = append(result, s.toDomain(ctx, payload))
		}

		url = nextPageURL(resp)
	}

	return result, nil
}

func (s *sourceImpl) toDomain(ctx context.Context, payload pullPayload) domain.PullRequest {
	reviewers := make([]domain.User, 0, len(payload.RequestedReviewers))
	for _, ref := range payload.RequestedReviewers {
		reviewers = append(reviewers, s.resolver.Resolve(ctx, ref.URL))
	}

	return domain.PullRequest{
		Title:     payload.Title,
		URL:       payload.HTMLURL,
		Author:    s.resolver.Resolve(ctx, payload.User.URL),
		Reviewers: reviewers,
		CreatedAt: domain.Date(payload.CreatedAt),
		ClosedAt:  datePtr(payload.ClosedAt),
		MergedAt:  datePtr(payload.MergedAt),
	}
}

func nextPageURL(resp *http.Response) string {
	if next, ok := link.ParseResponse(resp)["next"]; ok {
		return next.URI
	}
	return ""
}

func datePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := domain.Date(*t)
	return &d
}
