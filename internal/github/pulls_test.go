package github

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"prstats/internal/domain"
)

// ----------HELPERS FOR TESTS----------

func newTestSource(srv *httptest.Server) *sourceImpl {
	client := &Client{httpClient: srv.Client(), baseURL: srv.URL}
	return NewPullRequestSource(client, NewUserResolver(client))
}

func jsonTime(s string) string {
	if s == "" {
		return "null"
	}
	return fmt.Sprintf("%q", s)
}

// pullJSON builds one pull-request payload; empty closed/merged render as null.
func pullJSON(srvURL, title, created, closed, merged string) string {
	return fmt.Sprintf(`{
		"title": %q,
		"html_url": "https://github.com/scylladb/demo/pull/1",
		"created_at": %q,
		"closed_at": %s,
		"merged_at": %s,
		"user": {"url": %q},
		"requested_reviewers": []
	}`, title, created, jsonTime(closed), jsonTime(merged), srvURL+"/users/"+title)
}

func titles(prs []domain.PullRequest) []string {
	res := make([]string, 0, len(prs))
	for _, pr := range prs {
		res = append(res, pr.Title)
	}
	return res
}

// newPagedServer serves three pages of open pull requests (2, 2 and 1)
// chained via Link headers, and a trivial user-profile endpoint.
func newPagedServer(t *testing.T, pull func(srvURL, title string) string, userCalls *int64) *httptest.Server {
	t.Helper()

	var srv *httptest.Server

	mux := http.NewServeMux()
	mux.HandleFunc("/users/", func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt64(userCalls, 1)
		fmt.Fprint(w, `{"login": "somebody", "name": null}`)
	})
	mux.HandleFunc("/repos/scylladb/demo/pulls", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "":
			w.Header().Set("Link", fmt.Sprintf(`<%s/repos/scylladb/demo/pulls?page=2>; rel="next"`, srv.URL))
			fmt.Fprintf(w, "[%s,%s]", pull(srv.URL, "p1"), pull(srv.URL, "p2"))
		case "2":
			w.Header().Set("Link", fmt.Sprintf(`<%s/repos/scylladb/demo/pulls?page=3>; rel="next"`, srv.URL))
			fmt.Fprintf(w, "[%s,%s]", pull(srv.URL, "p3"), pull(srv.URL, "p4"))
		case "3":
			fmt.Fprintf(w, "[%s]", pull(srv.URL, "p5"))
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
			w.WriteHeader(http.StatusNotFound)
		}
	})

	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

// ----------PAGINATION TESTS----------

func TestListOpenPullRequests_FollowsNextLinks(t *testing.T) {
	var userCalls int64
	srv := newPagedServer(t, func(srvURL, title string) string {
		return pullJSON(srvURL, title, "2024-01-01T10:00:00Z", "", "")
	}, &userCalls)

	source := newTestSource(srv)

	prs, err := source.ListOpenPullRequests(context.Background(), "demo")
	require.NoError(t, err)

	require.Equal(t, []string{"p1", "p2", "p3", "p4", "p5"}, titles(prs))
	require.True(t, prs[0].IsOpen())
	require.Equal(t, "somebody", prs[0].Author.DisplayName())
}

func TestListClosedPullRequests_CutoffFiltersBeforeUserResolution(t *testing.T) {
	closedAt := map[string]string{
		"p1": "2024-06-01T12:00:00Z",
		"p2": "2024-06-02T12:00:00Z",
		"p3": "2024-01-01T12:00:00Z", // page 2: before the cutoff
		"p4": "2024-01-02T12:00:00Z", // page 2: before the cutoff
		"p5": "2024-06-03T12:00:00Z",
	}

	var userCalls int64
	srv := newPagedServer(t, func(srvURL, title string) string {
		return pullJSON(srvURL, title, "2023-12-01T10:00:00Z", closedAt[title], closedAt[title])
	}, &userCalls)

	source := newTestSource(srv)

	cutoff := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	prs, err := source.ListClosedPullRequests(context.Background(), "demo", &cutoff)
	require.NoError(t, err)

	require.Equal(t, []string{"p1", "p2", "p5"}, titles(prs))

	// excluded payloads must not cost profile lookups
	require.EqualValues(t, 3, atomic.LoadInt64(&userCalls))
}

func TestListClosedPullRequests_NoCutoffKeepsEverything(t *testing.T) {
	var userCalls int64
	srv := newPagedServer(t, func(srvURL, title string) string {
		return pullJSON(srvURL, title, "2024-01-01T10:00:00Z", "2024-01-05T10:00:00Z", "")
	}, &userCalls)

	source := newTestSource(srv)

	prs, err := source.ListClosedPullRequests(context.Background(), "demo", nil)
	require.NoError(t, err)
	require.Len(t, prs, 5)
	require.True(t, prs[0].IsAbandoned())
}

// ----------FAILURE TESTS----------

func TestListPullRequests_NonSuccessStatusIsFatal(t *testing.T) {
	var srv *httptest.Server

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/scylladb/demo/pulls", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Link", fmt.Sprintf(`<%s/repos/scylladb/demo/pulls?page=2>; rel="next"`, srv.URL))
		fmt.Fprintf(w, "[%s]", pullJSON(srv.URL, "p1", "2024-01-01T10:00:00Z", "", ""))
	})
	mux.HandleFunc("/users/", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"login": "somebody", "name": null}`)
	})

	srv = httptest.NewServer(mux)
	defer srv.Close()

	source := newTestSource(srv)

	prs, err := source.ListOpenPullRequests(context.Background(), "demo")
	require.Error(t, err)

	var derr *domain.DomainError
	require.ErrorAs(t, err, &derr)
	require.Equal(t, domain.ErrorCodeAPIFailure, derr.Code)

	// a failure mid-pagination discards the records fetched so far
	require.Nil(t, prs)
}

func TestListPullRequests_DateTruncation(t *testing.T) {
	var userCalls int64
	srv := newPagedServer(t, func(srvURL, title string) string {
		return pullJSON(srvURL, title, "2024-01-01T23:59:59Z", "2024-01-04T00:00:01Z", "2024-01-04T00:00:01Z")
	}, &userCalls)

	source := newTestSource(srv)

	prs, err := source.ListClosedPullRequests(context.Background(), "demo", nil)
	require.NoError(t, err)

	// day precision: wall-clock time must not leak into the day math
	require.Equal(t, 3, prs[0].TimeToClose())
}
