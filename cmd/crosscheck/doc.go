// Crosscheck is a CLI that warns about likely merge conflicts before they
// happen.
//
// It compares a local branch against a remote branch since their common
// merge base and reports every file changed on both sides, without fetching
// the remote branch. The local side comes from git; the remote side comes
// from the GitHub compare API. Exit codes are deterministic so the check can
// gate CI.
//
// Usage:
//
//	crosscheck my-feature main                # compare against origin/main
//	crosscheck my-feature upstream/main       # explicit remote-tracking ref
//	crosscheck my-feature main --format json  # machine-readable report
//	crosscheck config init                    # write a default config file
//
// See https://github.com/dshills/crosscheck for full documentation.
package main
