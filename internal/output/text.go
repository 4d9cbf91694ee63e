package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dshills/crosscheck/internal/reconcile"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	pathStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	localStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	remoteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	cleanStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// TextWriter outputs a human-readable text report. Styling degrades to plain
// text on non-terminal writers.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, report *reconcile.Report) error {
	ew := &errWriter{w: w}

	in := report.Inputs
	ew.printf("%s\n", headerStyle.Render(fmt.Sprintf("Crosscheck — %s/%s", in.Owner, in.Repo)))
	ew.printf("Local: %s  Remote: %s  Merge base: %s\n",
		in.LocalBranch, in.RemoteBranch, shortSHA(in.MergeBase))
	ew.println(strings.Repeat("─", 60))
	ew.printf("Changed files: %d local, %d remote\n", report.LocalChanges, report.RemoteChanges)
	ew.println(strings.Repeat("─", 60))

	if len(report.Conflicts) == 0 {
		ew.printf("\n%s\n", cleanStyle.Render("No overlapping changes. Merge away!"))
		ew.printf("\nCompleted in %dms (git: %dms, API: %dms)\n",
			report.Timing.TotalMs, report.Timing.GitMs, report.Timing.APIMs)
		return ew.err
	}

	ew.printf("\nPotential conflicts: %d\n", len(report.Conflicts))
	for _, c := range report.Conflicts {
		ew.printf("\n%s %s\n", headerStyle.Render("Conflict:"), pathStyle.Render(c.Path))
		ew.printf("  %s %s\n", remoteStyle.Render("remote:"), c.Remote)
		ew.printf("  %s %s\n", localStyle.Render("local: "), c.Local)
	}

	ew.printf("\n%s\n", strings.Repeat("─", 60))
	ew.printf("Completed in %dms (git: %dms, API: %dms)\n",
		report.Timing.TotalMs, report.Timing.GitMs, report.Timing.APIMs)

	return ew.err
}

// shortSHA abbreviates a full commit SHA for display.
func shortSHA(sha string) string {
	if len(sha) > 12 {
		return sha[:12]
	}
	return sha
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}
