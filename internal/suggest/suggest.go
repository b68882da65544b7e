// Package suggest produces branch-name and commit-message candidates for the
// staged changes, either from an external LLM command or from built-in rules.
package suggest

import "errors"

// MaxCommitMessages caps the commit candidates offered to the user.
const MaxCommitMessages = 3

var (
	// ErrUnstructuredResponse means the response lacks a [BRANCHES] or [COMMITS] marker.
	ErrUnstructuredResponse = errors.New("response is missing [BRANCHES] or [COMMITS] marker")
	// ErrEmptyResponse means the response yielded neither branches nor commits.
	ErrEmptyResponse = errors.New("response contains no suggestions")
)

// Source identifies which engine produced a Set.
type Source string

const (
	SourceExternal  Source = "external"
	SourceHeuristic Source = "heuristic"
)

// Set holds at most three branch names and at most three commit messages.
type Set struct {
	BranchNames    []string
	CommitMessages []string
}

// Input is the staged state suggestions are derived from.
type Input struct {
	Diff  string
	Files []string
}

// Result is a Set plus where it came from. Err records why the external tool
// was not used; it is informational, the Set is always usable.
type Result struct {
	Set    Set
	Source Source
	Tool   string
	Err    error
}
