package github

import (
	"errors"
	"fmt"
	"time"
)

// AccessDeniedError reports a missing, expired, or under-scoped credential
// (HTTP 401/403).
type AccessDeniedError struct {
	Resource   string
	StatusCode int
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("access denied (HTTP %d) for %s: check GITHUB_TOKEN", e.StatusCode, e.Resource)
}

// IsAccessDenied checks if an error is (or wraps) an access-denied error.
func IsAccessDenied(err error) bool {
	var ae *AccessDeniedError
	return errors.As(err, &ae)
}

// NotFoundError reports a repository, branch, or commit that does not exist
// on the remote (HTTP 404/422).
type NotFoundError struct {
	Resource   string
	StatusCode int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found (HTTP %d): %s", e.StatusCode, e.Resource)
}

// IsNotFound checks if an error is (or wraps) a not-found error.
func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}

// RateLimitedError reports an API rate limit. RetryAfter is the server's
// hint for when to retry, zero if none was provided. This package never
// retries; honoring the hint is the caller's decision.
type RateLimitedError struct {
	Resource   string
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited fetching %s: retry after %s", e.Resource, e.RetryAfter.Round(time.Second))
	}
	return fmt.Sprintf("rate limited fetching %s", e.Resource)
}

// IsRateLimited checks if an error is (or wraps) a rate-limit error.
func IsRateLimited(err error) bool {
	var re *RateLimitedError
	return errors.As(err, &re)
}

// UnavailableError reports a transport failure, timeout, or unexpected API
// response. Potentially transient.
type UnavailableError struct {
	Resource string
	Err      error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("remote unavailable fetching %s: %v", e.Resource, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// IsUnavailable checks if an error is (or wraps) an unavailable error.
func IsUnavailable(err error) bool {
	var ue *UnavailableError
	return errors.As(err, &ue)
}
