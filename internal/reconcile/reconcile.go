package reconcile

import (
	"sort"

	"github.com/dshills/crosscheck/internal/change"
)

// Conflict is one file path touched by both sides since the merge base. The
// two records show how each side changed it; for renames the destination is
// visible through each record's Path.
type Conflict struct {
	Path   string        `json:"path"`
	Local  change.Change `json:"local"`
	Remote change.Change `json:"remote"`
}

// Inputs records what was compared, for the report header.
type Inputs struct {
	LocalBranch  string `json:"localBranch"`
	RemoteBranch string `json:"remoteBranch"`
	Owner        string `json:"owner"`
	Repo         string `json:"repo"`
	MergeBase    string `json:"mergeBase"`
}

// Timing breaks down where the run spent its time.
type Timing struct {
	GitMs   int64 `json:"gitMs"`
	APIMs   int64 `json:"apiMs"`
	TotalMs int64 `json:"totalMs"`
}

// Report is the ordered conflict report for one comparison.
type Report struct {
	Inputs        Inputs     `json:"inputs"`
	LocalChanges  int        `json:"localChanges"`
	RemoteChanges int        `json:"remoteChanges"`
	Conflicts     []Conflict `json:"conflicts"`
	Timing        Timing     `json:"timing"`
}

// Conflicts reconciles the two sides' change sets into the list of paths
// touched by both, sorted lexicographically so output is deterministic
// regardless of either source's native ordering.
//
// A side touches a path if it has a record at that path, or a rename/copy
// record whose origin is that path. So a file renamed on one side and
// modified under its old name on the other is still detected, keyed at the
// old name. The kinds need not agree: removed-vs-modified is a conflict too,
// and so is both sides renaming the same origin (whether or not the
// destinations match). Destinations of divergent renames are not
// cross-checked against each other.
func Conflicts(local, remote change.Set) []Conflict {
	localIdx := local.Touched()
	remoteIdx := remote.Touched()

	var paths []string
	for p := range localIdx {
		if _, ok := remoteIdx[p]; ok {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)

	conflicts := make([]Conflict, 0, len(paths))
	for _, p := range paths {
		conflicts = append(conflicts, Conflict{
			Path:   p,
			Local:  localIdx[p],
			Remote: remoteIdx[p],
		})
	}
	return conflicts
}

// BuildReport assembles the final report from the reconciled sides.
func BuildReport(inputs Inputs, local, remote change.Set, timing Timing) *Report {
	return &Report{
		Inputs:        inputs,
		LocalChanges:  len(local),
		RemoteChanges: len(remote),
		Conflicts:     Conflicts(local, remote),
		Timing:        timing,
	}
}
