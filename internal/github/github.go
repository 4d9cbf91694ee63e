package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v63/github"
	"golang.org/x/oauth2"

	"github.com/dshills/crosscheck/internal/change"
)

// Client queries a hosted repository's compare capability through the GitHub
// REST API. It never retries; rate-limit and transport failures are
// classified and surfaced so retry policy stays with the caller.
type Client struct {
	gh *gh.Client
}

// NewClient creates a GitHub API client. token may be empty for anonymous
// access to public repositories. apiURL overrides the API base URL (GitHub
// Enterprise); empty means api.github.com. timeout bounds each request,
// independent of any rate-limit backoff the caller may apply.
func NewClient(ctx context.Context, token, apiURL string, timeout time.Duration) (*Client, error) {
	httpCli := &http.Client{Timeout: timeout}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		ctx = context.WithValue(ctx, oauth2.HTTPClient, httpCli)
		httpCli = oauth2.NewClient(ctx, ts)
		httpCli.Timeout = timeout
	}

	client := gh.NewClient(httpCli)
	if apiURL != "" {
		base, err := url.Parse(strings.TrimRight(apiURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid API URL %q: %w", apiURL, err)
		}
		client.BaseURL = base
	}

	return &Client{gh: client}, nil
}

// BranchHead returns the head commit SHA of a branch on the hosted
// repository. branch is the bare branch name without any remote prefix.
func (c *Client) BranchHead(ctx context.Context, owner, repo, branch string) (string, error) {
	b, _, err := c.gh.Repositories.GetBranch(ctx, owner, repo, branch, 0)
	if err != nil {
		return "", classify(err, fmt.Sprintf("branch %q in %s/%s", branch, owner, repo))
	}
	return b.GetCommit().GetSHA(), nil
}

// Changes lists the files changed between base and head via the compare API
// as a change set. All pages are followed and aggregated before returning;
// a partially fetched comparison is never returned.
func (c *Client) Changes(ctx context.Context, owner, repo, base, head string) (change.Set, error) {
	set := change.Set{}
	opt := &gh.ListOptions{PerPage: 100}

	for {
		cmp, resp, err := c.gh.Repositories.CompareCommits(ctx, owner, repo, base, head, opt)
		if err != nil {
			return nil, classify(err, fmt.Sprintf("comparison %s...%s in %s/%s", base, head, owner, repo))
		}

		for _, f := range cmp.Files {
			// Unchanged entries carry no modification and cannot conflict.
			if f.GetStatus() == "unchanged" {
				continue
			}
			rec, err := change.FromGitHub(f.GetStatus(), f.GetFilename(), f.GetPreviousFilename())
			if err != nil {
				return nil, err
			}
			if err := set.Add(rec); err != nil {
				return nil, err
			}
		}

		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}

	return set, nil
}

// classify maps go-github and transport errors onto the client's error
// taxonomy. Expired or missing credentials, missing resources, rate limits,
// and transient transport failures are kept distinct so callers can react
// appropriately.
func classify(err error, resource string) error {
	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return &RateLimitedError{
			Resource:   resource,
			RetryAfter: time.Until(rateErr.Rate.Reset.Time),
		}
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		re := &RateLimitedError{Resource: resource}
		if abuseErr.RetryAfter != nil {
			re.RetryAfter = *abuseErr.RetryAfter
		}
		return re
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		switch ghErr.Response.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &AccessDeniedError{Resource: resource, StatusCode: ghErr.Response.StatusCode}
		case http.StatusNotFound, http.StatusUnprocessableEntity:
			return &NotFoundError{Resource: resource, StatusCode: ghErr.Response.StatusCode}
		}
		return &UnavailableError{Resource: resource, Err: err}
	}

	// Transport failure, timeout, or canceled context.
	return &UnavailableError{Resource: resource, Err: err}
}
