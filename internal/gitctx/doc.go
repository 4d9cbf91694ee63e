// Package gitctx queries commit metadata and change lists from a local git
// repository by shelling out to git.
//
// Every query is read-only: nothing is fetched, staged, or checked out.
// [ResolveCommit] turns a branch name or ref into a commit SHA,
// [MergeBase] finds the common ancestor of two refs using only local
// commit-graph data, and [Changes] lists the files changed between two
// commits as a normalized change set.
//
// [DetectRepo] parses the GitHub owner/repo pair from a remote URL so the
// CLI can default repository coordinates from the local clone.
package gitctx
