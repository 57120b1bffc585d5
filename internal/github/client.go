package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"prstats/internal/domain"
)

const defaultBaseURL = "https://api.github.com"

// Client issues authenticated requests against the GitHub REST API. No
// request timeout is configured: a run either finishes or gets interrupted
// by hand.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient builds a client that sends the token as a bearer credential on
// every request.
func NewClient(ctx context.Context, token string) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})

	return &Client{
		httpClient: oauth2.NewClient(ctx, src),
		baseURL:    defaultBaseURL,
	}
}

// getJSON fetches url and decodes the body into out. The response is returned
// so callers can inspect pagination headers; its body is already drained.
func (c *Client) getJSON(ctx context.Context, url string, out any) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("can not build request for %s: %w", url, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewDomainError(domain.ErrorCodeAPIFailure,
			fmt.Sprintf("can not contact github API: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, domain.NewDomainError(domain.ErrorCodeAPIFailure,
			fmt.Sprintf("github API returned %s for %s", resp.Status, url))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return nil, fmt.Errorf("can not decode response from %s: %w", url, err)
	}

	return resp, nil
}
