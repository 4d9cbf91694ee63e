package reconcile

import (
	"reflect"
	"testing"

	"github.com/dshills/crosscheck/internal/change"
)

func mustSet(t *testing.T, changes ...change.Change) change.Set {
	t.Helper()
	s := change.Set{}
	for _, c := range changes {
		if err := s.Add(c); err != nil {
			t.Fatalf("building set: %v", err)
		}
	}
	return s
}

func TestConflicts_BothModified(t *testing.T) {
	local := mustSet(t, change.Change{Path: "file.txt", Kind: change.Modified})
	remote := mustSet(t, change.Change{Path: "file.txt", Kind: change.Modified})

	got := Conflicts(local, remote)
	if len(got) != 1 {
		t.Fatalf("got %d conflicts, want 1", len(got))
	}
	if got[0].Path != "file.txt" {
		t.Errorf("Path = %q, want file.txt", got[0].Path)
	}
	if got[0].Local.Kind != change.Modified || got[0].Remote.Kind != change.Modified {
		t.Errorf("kinds = %s/%s, want modified/modified", got[0].Local.Kind, got[0].Remote.Kind)
	}
}

func TestConflicts_RemovedVsRenamed(t *testing.T) {
	local := mustSet(t, change.Change{Path: "old.txt", Kind: change.Removed})
	remote := mustSet(t, change.Change{Path: "new.txt", Kind: change.Renamed, OldPath: "old.txt"})

	got := Conflicts(local, remote)
	if len(got) != 1 {
		t.Fatalf("got %d conflicts, want 1", len(got))
	}
	if got[0].Path != "old.txt" {
		t.Errorf("conflict keyed at %q, want old.txt", got[0].Path)
	}
	if got[0].Remote.Path != "new.txt" {
		t.Errorf("remote record path = %q, want the rename destination", got[0].Remote.Path)
	}
}

func TestConflicts_OneSidedChange(t *testing.T) {
	local := mustSet(t, change.Change{Path: "x.txt", Kind: change.Added})
	remote := change.Set{}

	if got := Conflicts(local, remote); len(got) != 0 {
		t.Errorf("got %d conflicts, want 0", len(got))
	}
}

func TestConflicts_RenameVsModifyUnderOldName(t *testing.T) {
	local := mustSet(t, change.Change{Path: "b.txt", Kind: change.Renamed, OldPath: "a.txt"})
	remote := mustSet(t, change.Change{Path: "a.txt", Kind: change.Modified})

	got := Conflicts(local, remote)
	if len(got) != 1 {
		t.Fatalf("got %d conflicts, want 1", len(got))
	}
	if got[0].Path != "a.txt" {
		t.Errorf("conflict keyed at %q, want a.txt", got[0].Path)
	}
	if got[0].Local.Path != "b.txt" {
		t.Errorf("local record should be the rename, got %+v", got[0].Local)
	}
}

func TestConflicts_DivergentRenames(t *testing.T) {
	local := mustSet(t, change.Change{Path: "left.txt", Kind: change.Renamed, OldPath: "orig.txt"})
	remote := mustSet(t, change.Change{Path: "right.txt", Kind: change.Renamed, OldPath: "orig.txt"})

	got := Conflicts(local, remote)
	if len(got) != 1 {
		t.Fatalf("got %d conflicts, want 1 keyed at the shared origin", len(got))
	}
	if got[0].Path != "orig.txt" {
		t.Errorf("conflict keyed at %q, want orig.txt", got[0].Path)
	}
	// Destinations stay visible through the records; they are not themselves
	// cross-checked.
	if got[0].Local.Path != "left.txt" || got[0].Remote.Path != "right.txt" {
		t.Errorf("records = %+v / %+v", got[0].Local, got[0].Remote)
	}
}

func TestConflicts_IdenticalRenames(t *testing.T) {
	local := mustSet(t, change.Change{Path: "new.txt", Kind: change.Renamed, OldPath: "old.txt"})
	remote := mustSet(t, change.Change{Path: "new.txt", Kind: change.Renamed, OldPath: "old.txt"})

	got := Conflicts(local, remote)
	// Both old and new names are touched by both sides; no suppression for
	// the identical rename.
	if len(got) != 2 {
		t.Fatalf("got %d conflicts, want 2 (origin and destination)", len(got))
	}
	if got[0].Path != "new.txt" || got[1].Path != "old.txt" {
		t.Errorf("paths = %q, %q", got[0].Path, got[1].Path)
	}
}

func TestConflicts_BothDeleted(t *testing.T) {
	local := mustSet(t, change.Change{Path: "gone.txt", Kind: change.Removed})
	remote := mustSet(t, change.Change{Path: "gone.txt", Kind: change.Removed})

	if got := Conflicts(local, remote); len(got) != 1 {
		t.Errorf("got %d conflicts, want 1 (double delete is still a conflict)", len(got))
	}
}

func TestConflicts_SortedOutput(t *testing.T) {
	local := mustSet(t,
		change.Change{Path: "zebra.txt", Kind: change.Modified},
		change.Change{Path: "apple.txt", Kind: change.Modified},
		change.Change{Path: "mango.txt", Kind: change.Modified},
	)
	remote := mustSet(t,
		change.Change{Path: "mango.txt", Kind: change.Removed},
		change.Change{Path: "zebra.txt", Kind: change.Modified},
		change.Change{Path: "apple.txt", Kind: change.Modified},
	)

	got := Conflicts(local, remote)
	want := []string{"apple.txt", "mango.txt", "zebra.txt"}
	var paths []string
	for _, c := range got {
		paths = append(paths, c.Path)
	}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("paths = %v, want %v", paths, want)
	}
}

func TestConflicts_Idempotent(t *testing.T) {
	local := mustSet(t,
		change.Change{Path: "a.txt", Kind: change.Modified},
		change.Change{Path: "c.txt", Kind: change.Renamed, OldPath: "b.txt"},
	)
	remote := mustSet(t,
		change.Change{Path: "a.txt", Kind: change.Removed},
		change.Change{Path: "b.txt", Kind: change.Modified},
	)

	first := Conflicts(local, remote)
	second := Conflicts(local, remote)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated reconciliation differs:\n%v\n%v", first, second)
	}
}

func TestConflicts_ModifyAndCopySamePath(t *testing.T) {
	// One side modifies a.txt and also copies it to b.txt. The conflict at
	// a.txt must carry the record at the current path, and repeated runs must
	// agree exactly.
	local := mustSet(t,
		change.Change{Path: "a.txt", Kind: change.Modified},
		change.Change{Path: "b.txt", Kind: change.Copied, OldPath: "a.txt"},
	)
	remote := mustSet(t, change.Change{Path: "a.txt", Kind: change.Removed})

	first := Conflicts(local, remote)
	if len(first) != 1 {
		t.Fatalf("got %d conflicts, want 1", len(first))
	}
	if first[0].Path != "a.txt" {
		t.Errorf("conflict keyed at %q, want a.txt", first[0].Path)
	}
	if first[0].Local.Kind != change.Modified {
		t.Errorf("local record = %+v, want the modification at the current path", first[0].Local)
	}

	for i := 0; i < 20; i++ {
		again := Conflicts(local, remote)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs:\nfirst: %+v\nagain: %+v", i, first, again)
		}
	}
}

func TestConflicts_DetectionSymmetry(t *testing.T) {
	local := mustSet(t,
		change.Change{Path: "a.txt", Kind: change.Modified},
		change.Change{Path: "only-local.txt", Kind: change.Added},
	)
	remote := mustSet(t,
		change.Change{Path: "a.txt", Kind: change.Modified},
		change.Change{Path: "only-remote.txt", Kind: change.Added},
	)

	forward := Conflicts(local, remote)
	swapped := Conflicts(remote, local)

	if len(forward) != len(swapped) {
		t.Fatalf("conflict counts differ: %d vs %d", len(forward), len(swapped))
	}
	for i := range forward {
		if forward[i].Path != swapped[i].Path {
			t.Errorf("path %d: %q vs %q", i, forward[i].Path, swapped[i].Path)
		}
		// Sides swap, content does not.
		if !reflect.DeepEqual(forward[i].Local, swapped[i].Remote) {
			t.Errorf("swapped sides should exchange records at %q", forward[i].Path)
		}
	}
}

func TestConflicts_EmptySets(t *testing.T) {
	if got := Conflicts(change.Set{}, change.Set{}); len(got) != 0 {
		t.Errorf("got %d conflicts from empty sets, want 0", len(got))
	}
}

func TestBuildReport(t *testing.T) {
	local := mustSet(t, change.Change{Path: "a.txt", Kind: change.Modified})
	remote := mustSet(t,
		change.Change{Path: "a.txt", Kind: change.Modified},
		change.Change{Path: "b.txt", Kind: change.Added},
	)

	report := BuildReport(Inputs{
		LocalBranch:  "feature",
		RemoteBranch: "origin/main",
		Owner:        "dshills",
		Repo:         "crosscheck",
		MergeBase:    "abc123",
	}, local, remote, Timing{GitMs: 5, APIMs: 120, TotalMs: 130})

	if report.LocalChanges != 1 || report.RemoteChanges != 2 {
		t.Errorf("change counts = %d/%d, want 1/2", report.LocalChanges, report.RemoteChanges)
	}
	if len(report.Conflicts) != 1 {
		t.Fatalf("got %d conflicts, want 1", len(report.Conflicts))
	}
	if report.Inputs.MergeBase != "abc123" {
		t.Errorf("MergeBase = %q", report.Inputs.MergeBase)
	}
	if report.Timing.TotalMs != 130 {
		t.Errorf("TotalMs = %d", report.Timing.TotalMs)
	}
}
