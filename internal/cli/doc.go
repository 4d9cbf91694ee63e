// Package cli wires together the Cobra command tree for the crosscheck
// binary.
//
// It defines the root check command and its subcommands (config, version),
// binds flags, reads configuration, gathers the local and remote change
// sets, and returns deterministic exit codes for CI gating.
package cli
