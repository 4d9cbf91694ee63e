// Package github is the remote diff source: it lists the files changed on a
// hosted branch since a base commit through the GitHub compare API, without
// fetching any objects into the local repository.
//
// [Client.BranchHead] resolves a remote branch to its head commit and
// [Client.Changes] aggregates the paginated compare file list into a
// normalized change set. Failures are classified into [AccessDeniedError],
// [NotFoundError], [RateLimitedError] (carrying the server's retry-after
// hint), and [UnavailableError]; the client itself never retries.
package github
