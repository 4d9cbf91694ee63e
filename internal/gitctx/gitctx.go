package gitctx

import (
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/dshills/crosscheck/internal/change"
)

// UnknownRefError reports a branch or ref that does not resolve to a commit
// in the local repository.
type UnknownRefError struct {
	Ref string
	Err error
}

func (e *UnknownRefError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unknown ref %q: %v", e.Ref, e.Err)
	}
	return fmt.Sprintf("unknown ref %q", e.Ref)
}

func (e *UnknownRefError) Unwrap() error { return e.Err }

// IsUnknownRef checks if an error is (or wraps) an unknown-ref error.
func IsUnknownRef(err error) bool {
	var ue *UnknownRefError
	return errors.As(err, &ue)
}

// AmbiguousMergeBaseError reports criss-cross history: more than one best
// common ancestor exists and none is reachable from the others. The caller
// must pick a base; this package does not choose one.
type AmbiguousMergeBaseError struct {
	RefA       string
	RefB       string
	Candidates []string
}

func (e *AmbiguousMergeBaseError) Error() string {
	return fmt.Sprintf("ambiguous merge base between %q and %q: %d candidates (%s)",
		e.RefA, e.RefB, len(e.Candidates), strings.Join(e.Candidates, ", "))
}

// IsAmbiguousMergeBase checks if an error is (or wraps) an ambiguous
// merge-base error.
func IsAmbiguousMergeBase(err error) bool {
	var ae *AmbiguousMergeBaseError
	return errors.As(err, &ae)
}

// ResolveCommit resolves a branch name or ref to a full commit SHA using only
// local commit-graph data. Remote-tracking refs (origin/feature) resolve as
// long as the ref is known locally; no fetch is performed.
func ResolveCommit(repoPath, ref string) (string, error) {
	out, err := gitOutput(repoPath, "rev-parse", "--verify", "--quiet", ref+"^{commit}")
	if err != nil {
		return "", &UnknownRefError{Ref: ref, Err: err}
	}
	return strings.TrimSpace(out), nil
}

// MergeBase returns the best common ancestor commit of two refs. Both refs
// must resolve locally. Criss-cross histories with multiple best ancestors
// fail with an AmbiguousMergeBaseError rather than picking one silently.
func MergeBase(repoPath, refA, refB string) (string, error) {
	commitA, err := ResolveCommit(repoPath, refA)
	if err != nil {
		return "", err
	}
	commitB, err := ResolveCommit(repoPath, refB)
	if err != nil {
		return "", err
	}

	out, err := gitOutput(repoPath, "merge-base", "--all", commitA, commitB)
	if err != nil {
		return "", fmt.Errorf("no common ancestor of %q and %q: %w", refA, refB, err)
	}

	var candidates []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			candidates = append(candidates, line)
		}
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("no common ancestor of %q and %q", refA, refB)
	}
	if len(candidates) > 1 {
		return "", &AmbiguousMergeBaseError{RefA: refA, RefB: refB, Candidates: candidates}
	}
	return candidates[0], nil
}

// Changes lists the files changed between two commits as a change set, using
// name/status output only (no hunk content). Rename and copy detection is
// enabled so moved files carry their origin path. Read-only: nothing is
// fetched, staged, or checked out.
func Changes(repoPath, base, tip string) (change.Set, error) {
	out, err := gitOutput(repoPath, "diff", "--name-status", "--find-renames", base, tip)
	if err != nil {
		return nil, fmt.Errorf("git diff --name-status %s %s: %w", base, tip, err)
	}

	set := change.Set{}
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		c, err := change.FromGitLine(line)
		if err != nil {
			return nil, err
		}
		if err := set.Add(c); err != nil {
			return nil, err
		}
	}
	return set, nil
}

var (
	httpsRemoteRe = regexp.MustCompile(`https?://[^/]+/([^/]+)/([^/.\s]+)`)
	sshRemoteRe   = regexp.MustCompile(`[^@]+@[^:]+:([^/]+)/([^/.\s]+)`)
)

// DetectRepo parses owner/repo from the named remote's URL.
func DetectRepo(repoPath, remote string) (owner, repo string, err error) {
	out, err := gitOutput(repoPath, "remote", "get-url", remote)
	if err != nil {
		return "", "", fmt.Errorf("cannot detect repo: git remote get-url %s failed: %w", remote, err)
	}
	return ParseRemoteURL(strings.TrimSpace(out))
}

// ParseRemoteURL extracts owner/repo from a git remote URL.
func ParseRemoteURL(url string) (owner, repo string, err error) {
	url = strings.TrimSuffix(url, ".git")

	if m := httpsRemoteRe.FindStringSubmatch(url); len(m) == 3 {
		return m[1], m[2], nil
	}
	if m := sshRemoteRe.FindStringSubmatch(url); len(m) == 3 {
		return m[1], m[2], nil
	}
	return "", "", fmt.Errorf("cannot parse owner/repo from remote URL: %s", url)
}

func gitOutput(repoPath string, args ...string) (string, error) {
	cmd := exec.Command("git", append([]string{"-C", repoPath}, args...)...)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return string(out), fmt.Errorf("%s: %s", err, string(exitErr.Stderr))
		}
		return "", err
	}
	return string(out), nil
}
