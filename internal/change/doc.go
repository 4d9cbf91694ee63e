// Package change defines the normalized file-change model shared by both
// diff sources.
//
// A [Change] classifies how a single file differs between two commits. Two
// pure translation tables build Changes from the raw vocabularies of the two
// sources: [FromGitLine] for `git diff --name-status` output and [FromGitHub]
// for the GitHub compare API's file-status strings. A [Set] collects the
// Changes of one side keyed by current path, and [Set.Touched] derives the
// rename-aware index the reconciliation engine matches on.
//
// Unrecognized status tokens are never skipped; they surface as a
// [*ParseError] carrying the offending input.
package change
