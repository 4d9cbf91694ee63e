package change

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies how a file changed between two commits.
type Kind string

const (
	Added       Kind = "added"
	Modified    Kind = "modified"
	Removed     Kind = "removed"
	Renamed     Kind = "renamed"
	Copied      Kind = "copied"
	TypeChanged Kind = "changed"
)

// PathChanging reports whether the kind carries a prior path.
func (k Kind) PathChanging() bool {
	return k == Renamed || k == Copied
}

// Change is the normalized record of one file's change between two commits.
// OldPath is set exactly when Kind is Renamed or Copied.
type Change struct {
	Path    string `json:"path"`
	Kind    Kind   `json:"kind"`
	OldPath string `json:"oldPath,omitempty"`
}

// String renders the change as "<Kind>  [old -> ]path", with the kind label
// padded so paths line up across a report.
func (c Change) String() string {
	if c.Kind == "" {
		return c.Path
	}
	label := strings.ToUpper(string(c.Kind[:1])) + string(c.Kind[1:])
	if c.OldPath != "" {
		return fmt.Sprintf("%-8s  %s -> %s", label, c.OldPath, c.Path)
	}
	return fmt.Sprintf("%-8s  %s", label, c.Path)
}

// ParseError reports a status token or diff line that could not be mapped
// onto a Kind. It always carries the raw input for diagnostics.
type ParseError struct {
	Source string // "git" or "github"
	Input  string // the offending raw line or status token
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unparseable %s diff entry %q: %s", e.Source, e.Input, e.Reason)
}

// IsParseError checks if an error is (or wraps) a diff parse error.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// gitKinds maps the first letter of a `git diff --name-status` status token.
// Rename and copy tokens carry a trailing similarity score (e.g. "R100").
var gitKinds = map[byte]Kind{
	'A': Added,
	'M': Modified,
	'D': Removed,
	'R': Renamed,
	'C': Copied,
	'T': TypeChanged,
}

// FromGitLine parses one tab-separated line of `git diff --name-status`
// output. Rename and copy entries carry two paths (origin, destination);
// all other kinds carry exactly one.
func FromGitLine(line string) (Change, error) {
	fields := strings.Split(line, "\t")
	token := fields[0]
	if token == "" {
		return Change{}, &ParseError{Source: "git", Input: line, Reason: "empty status token"}
	}

	kind, ok := gitKinds[token[0]]
	if !ok {
		return Change{}, &ParseError{Source: "git", Input: line, Reason: fmt.Sprintf("unknown status letter %q", token[:1])}
	}
	for i := 1; i < len(token); i++ {
		if token[i] < '0' || token[i] > '9' {
			return Change{}, &ParseError{Source: "git", Input: line, Reason: fmt.Sprintf("malformed status token %q", token)}
		}
	}

	if kind.PathChanging() {
		if len(fields) != 3 || fields[1] == "" || fields[2] == "" {
			return Change{}, &ParseError{Source: "git", Input: line, Reason: fmt.Sprintf("expected two paths for status %q", string(kind))}
		}
		if kind == Renamed && fields[1] == fields[2] {
			return Change{}, &ParseError{Source: "git", Input: line, Reason: "rename origin and destination are identical"}
		}
		return Change{Path: fields[2], Kind: kind, OldPath: fields[1]}, nil
	}

	if len(fields) != 2 || fields[1] == "" {
		return Change{}, &ParseError{Source: "git", Input: line, Reason: fmt.Sprintf("expected one path for status %q", string(kind))}
	}
	return Change{Path: fields[1], Kind: kind}, nil
}

// githubKinds maps the compare API's file status vocabulary. "unchanged"
// is deliberately absent: unchanged entries carry no modification and are
// filtered out by the caller before translation.
var githubKinds = map[string]Kind{
	"added":    Added,
	"modified": Modified,
	"removed":  Removed,
	"renamed":  Renamed,
	"copied":   Copied,
	"changed":  TypeChanged,
}

// FromGitHub builds a Change from one file entry of a GitHub compare
// response. previousFilename must be present exactly when the status is
// renamed or copied.
func FromGitHub(status, filename, previousFilename string) (Change, error) {
	kind, ok := githubKinds[status]
	if !ok {
		return Change{}, &ParseError{Source: "github", Input: status, Reason: fmt.Sprintf("unknown file status for %q", filename)}
	}
	if filename == "" {
		return Change{}, &ParseError{Source: "github", Input: status, Reason: "empty filename"}
	}

	if kind.PathChanging() {
		if previousFilename == "" {
			return Change{}, &ParseError{Source: "github", Input: status, Reason: fmt.Sprintf("missing previous filename for %q", filename)}
		}
		if kind == Renamed && previousFilename == filename {
			return Change{}, &ParseError{Source: "github", Input: status, Reason: fmt.Sprintf("rename of %q onto itself", filename)}
		}
		return Change{Path: filename, Kind: kind, OldPath: previousFilename}, nil
	}

	if previousFilename != "" {
		return Change{}, &ParseError{Source: "github", Input: status, Reason: fmt.Sprintf("unexpected previous filename for %q", filename)}
	}
	return Change{Path: filename, Kind: kind}, nil
}

// Set holds one side's changes keyed by current path. A path may appear at
// most once per side.
type Set map[string]Change

// Add inserts a change, rejecting duplicate paths.
func (s Set) Add(c Change) error {
	if _, ok := s[c.Path]; ok {
		return fmt.Errorf("duplicate diff entry for %q", c.Path)
	}
	s[c.Path] = c
	return nil
}

// Touched derives the rename-aware index: every path the side references —
// current paths plus rename/copy origins — mapped to the change that
// references it. A record at a current path wins over a rename/copy origin
// referencing the same path, so the index does not depend on map iteration
// order. Built once per set so conflict matching avoids repeated scans.
func (s Set) Touched() map[string]Change {
	idx := make(map[string]Change, len(s))
	for _, c := range s {
		idx[c.Path] = c
	}
	for _, c := range s {
		if c.OldPath == "" {
			continue
		}
		if _, ok := idx[c.OldPath]; !ok {
			idx[c.OldPath] = c
		}
	}
	return idx
}
