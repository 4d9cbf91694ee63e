package output

import (
	"fmt"
	"io"

	"github.com/dshills/crosscheck/internal/change"
	"github.com/dshills/crosscheck/internal/reconcile"
)

// MarkdownWriter outputs a PR-comment-friendly markdown report.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, report *reconcile.Report) error {
	ew := &errWriter{w: w}
	in := report.Inputs

	ew.printf("## Crosscheck — %s/%s\n\n", in.Owner, in.Repo)
	ew.printf("`%s` vs `%s` since merge base `%s`\n\n",
		in.LocalBranch, in.RemoteBranch, shortSHA(in.MergeBase))

	if len(report.Conflicts) == 0 {
		ew.printf("No overlapping changes. :white_check_mark:\n")
		return ew.err
	}

	ew.printf("%d file(s) changed on both branches:\n\n", len(report.Conflicts))
	ew.printf("| Path | Local | Remote |\n")
	ew.printf("|------|-------|--------|\n")
	for _, c := range report.Conflicts {
		ew.printf("| `%s` | %s | %s |\n", c.Path, describe(c.Local), describe(c.Remote))
	}

	return ew.err
}

// describe renders a change for a table cell, without the column padding the
// text writer uses.
func describe(c change.Change) string {
	label := string(c.Kind)
	if c.OldPath != "" {
		return fmt.Sprintf("%s `%s -> %s`", label, c.OldPath, c.Path)
	}
	return fmt.Sprintf("%s `%s`", label, c.Path)
}
