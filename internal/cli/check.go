package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/crosscheck/internal/change"
	"github.com/dshills/crosscheck/internal/config"
	"github.com/dshills/crosscheck/internal/gitctx"
	"github.com/dshills/crosscheck/internal/github"
	"github.com/dshills/crosscheck/internal/output"
	"github.com/dshills/crosscheck/internal/reconcile"
)

var (
	flagOwner    string
	flagRepo     string
	flagToken    string
	flagRemote   string
	flagRepoPath string
	flagFormat   string
	flagOut      string
	flagTimeout  int
	flagVerbose  bool
)

func init() {
	rootCmd.Flags().StringVar(&flagOwner, "owner", "", "Repository owner (default: parsed from the remote URL)")
	rootCmd.Flags().StringVar(&flagRepo, "repo", "", "Repository name (default: parsed from the remote URL)")
	rootCmd.Flags().StringVar(&flagToken, "token", "", "GitHub access token (default: GITHUB_TOKEN)")
	rootCmd.Flags().StringVar(&flagRemote, "remote", "", "Remote name used to qualify the remote branch (default: origin)")
	rootCmd.Flags().StringVar(&flagRepoPath, "repo-path", ".", "Local repository path")
	rootCmd.Flags().StringVar(&flagFormat, "format", "", "Output format (text, json, markdown)")
	rootCmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	rootCmd.Flags().IntVar(&flagTimeout, "timeout", 0, "Per-request API timeout in seconds")
	rootCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Print progress to stderr")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagRemote != "" {
		m["remote"] = flagRemote
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagToken != "" {
		m["token"] = flagToken
	}
	if flagTimeout > 0 {
		m["timeout"] = fmt.Sprintf("%d", flagTimeout)
	}
	return m
}

func runCheck(cmd *cobra.Command, args []string) error {
	localBranch, remoteBranch := args[0], args[1]

	if strings.Contains(localBranch, "/") {
		fmt.Fprintf(os.Stderr, "Error: local branch %q must be a plain branch name\n", localBranch)
		exitCode = ExitUsageError
		return nil
	}

	cfg, err := config.Load(buildOverrides())
	if err != nil {
		return err
	}

	// The merge base is resolved against the local remote-tracking ref;
	// the API is queried with the bare branch name.
	remoteRef, apiBranch := qualifyRemoteBranch(cfg.Remote, remoteBranch)

	owner, repo := flagOwner, flagRepo
	if owner == "" || repo == "" {
		owner, repo, err = gitctx.DetectRepo(flagRepoPath, cfg.Remote)
		if err != nil {
			fail(err)
			return nil
		}
		verbosef("detected repository: %s/%s", owner, repo)
	}

	start := time.Now()

	gitStart := time.Now()
	base, err := gitctx.MergeBase(flagRepoPath, remoteRef, localBranch)
	if err != nil {
		fail(err)
		return nil
	}
	gitMs := time.Since(gitStart).Milliseconds()
	verbosef("merge base: %s", base)

	client, err := github.NewClient(cmd.Context(), cfg.Token, cfg.APIURL, cfg.Timeout())
	if err != nil {
		fail(err)
		return nil
	}

	localSet, remoteSet, diffMs, apiMs, err := gather(cmd.Context(), client, owner, repo, flagRepoPath, base, localBranch, apiBranch)
	if err != nil {
		fail(err)
		return nil
	}
	gitMs += diffMs
	verbosef("local changes: %d, remote changes: %d", len(localSet), len(remoteSet))

	report := reconcile.BuildReport(reconcile.Inputs{
		LocalBranch:  localBranch,
		RemoteBranch: remoteRef,
		Owner:        owner,
		Repo:         repo,
		MergeBase:    base,
	}, localSet, remoteSet, reconcile.Timing{
		GitMs:   gitMs,
		APIMs:   apiMs,
		TotalMs: time.Since(start).Milliseconds(),
	})

	if err := output.WriteReport(report, cfg.Format, flagOut); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		exitCode = ExitRuntimeError
		return nil
	}

	if len(report.Conflicts) > 0 {
		exitCode = ExitConflicts
	}
	return nil
}

// gather runs the local git read and the remote API read concurrently. The
// two sides are independent; reconciliation must not start until both are
// complete, and either failure fails the run — a report is never built from
// one side. Canceling ctx cancels the in-flight API calls.
func gather(ctx context.Context, client *github.Client, owner, repo, repoPath, base, localBranch, apiBranch string) (localSet, remoteSet change.Set, gitMs, apiMs int64, err error) {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t0 := time.Now()
		var err error
		localSet, err = gitctx.Changes(repoPath, base, localBranch)
		gitMs = time.Since(t0).Milliseconds()
		if err != nil {
			return fmt.Errorf("listing local changes for %q: %w", localBranch, err)
		}
		return nil
	})
	g.Go(func() error {
		t0 := time.Now()
		defer func() { apiMs = time.Since(t0).Milliseconds() }()
		head, err := client.BranchHead(ctx, owner, repo, apiBranch)
		if err != nil {
			return err
		}
		remoteSet, err = client.Changes(ctx, owner, repo, base, head)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, gitMs, apiMs, err
	}
	return localSet, remoteSet, gitMs, apiMs, nil
}

// qualifyRemoteBranch splits a remote branch argument into the local
// remote-tracking ref and the bare branch name for the API. "feature"
// becomes ("origin/feature", "feature"); "upstream/main" stays
// ("upstream/main", "main").
func qualifyRemoteBranch(remote, branch string) (remoteRef, apiBranch string) {
	if !strings.Contains(branch, "/") {
		return remote + "/" + branch, branch
	}
	parts := strings.Split(branch, "/")
	return branch, parts[len(parts)-1]
}

// fail prints the error and maps it onto the exit code scheme.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	exitCode = exitCodeForError(err)
}

func exitCodeForError(err error) int {
	if github.IsAccessDenied(err) {
		return ExitAuthError
	}
	return ExitRuntimeError
}

func verbosef(format string, args ...interface{}) {
	if !flagVerbose {
		return
	}
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
