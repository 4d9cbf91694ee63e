// Package reconcile detects candidate merge conflicts between two change
// sets gathered from the same merge base.
//
// Detection is rename-aware: each side's set is indexed over both current
// paths and rename/copy origins, and a conflict is any path present in both
// indexes. The result is sorted by path, so [Conflicts] is a pure,
// deterministic function of its two inputs.
package reconcile
