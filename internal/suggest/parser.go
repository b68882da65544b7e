package suggest

import (
	"strings"
	"time"

	"github.com/samzong/git-auto-commit/internal/branch"
	"github.com/samzong/git-auto-commit/internal/gitutil"
	"github.com/samzong/git-auto-commit/internal/stringsutil"
)

const (
	MarkerBranches = "[BRANCHES]"
	MarkerCommits  = "[COMMITS]"
)

// ParseResponse extracts suggestions from the external tool's output.
// Lines that are not valid branch names are dropped before the remaining
// names are padded to three with generic names; commit messages are
// not padded and may be empty when branches were found.
func ParseResponse(text string, now time.Time) (Set, error) {
	if strings.TrimSpace(text) == "" {
		return Set{}, ErrEmptyResponse
	}

	branchSection, commitSection, ok := splitSections(text)
	if !ok {
		return Set{}, ErrUnstructuredResponse
	}

	branches := parseBranches(branchSection)
	commits := stringsutil.Truncate(parseCommits(commitSection), MaxCommitMessages)
	if len(branches) == 0 && len(commits) == 0 {
		return Set{}, ErrEmptyResponse
	}

	return Set{
		BranchNames:    branch.Backfill(branches, now),
		CommitMessages: commits,
	}, nil
}

// splitSections returns the text following each marker up to the other
// marker or the end of the text.
func splitSections(text string) (string, string, bool) {
	bi := strings.Index(text, MarkerBranches)
	ci := strings.Index(text, MarkerCommits)
	if bi < 0 || ci < 0 {
		return "", "", false
	}

	bStart := bi + len(MarkerBranches)
	cStart := ci + len(MarkerCommits)
	if bi < ci {
		return text[bStart:ci], text[cStart:], true
	}
	return text[bStart:], text[cStart:bi], true
}

func parseBranches(section string) []string {
	var names []string
	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.Contains(line, "/") {
			continue
		}
		if gitutil.ValidateBranchName(line) != nil {
			continue
		}
		names = append(names, line)
	}
	return names
}

// parseCommits groups lines into messages. A boundary line starts a new
// message, a blank line adds a paragraph break and any other line continues
// the current message. Lines before the first boundary are dropped, as are
// code fences wrapping the section.
func parseCommits(section string) []string {
	var (
		commits []string
		current strings.Builder
		open    bool
	)

	finalize := func() {
		if msg := trimFenceWrappers(strings.TrimSpace(current.String())); msg != "" {
			commits = append(commits, msg)
		}
		current.Reset()
	}

	for _, raw := range strings.Split(section, "\n") {
		line := strings.TrimRight(raw, " \t\r")
		trimmed := strings.TrimSpace(line)

		switch {
		case isCommitBoundary(trimmed):
			finalize()
			current.WriteString(trimmed)
			open = true
		case !open:
			continue
		case trimmed == "":
			current.WriteString("\n")
		default:
			current.WriteString("\n")
			current.WriteString(line)
		}
	}
	finalize()

	return commits
}

// trimFenceWrappers removes trailing fence lines that close a wrapper opened
// outside the message. A fence that closes a block opened in the body stays.
func trimFenceWrappers(msg string) string {
	lines := strings.Split(msg, "\n")
	end := len(lines)
	for end > 0 {
		trimmed := strings.TrimSpace(lines[end-1])
		if trimmed != "" && !isFence(trimmed) {
			break
		}
		end--
	}

	fences := 0
	for _, line := range lines[:end] {
		if isFence(strings.TrimSpace(line)) {
			fences++
		}
	}
	if fences%2 == 1 {
		for end < len(lines) && !isFence(strings.TrimSpace(lines[end])) {
			end++
		}
		if end < len(lines) {
			end++
		}
	}
	return strings.TrimSpace(strings.Join(lines[:end], "\n"))
}

func isFence(line string) bool {
	return strings.HasPrefix(line, "```")
}

// isCommitBoundary reports whether line opens a commit message: a prefix of
// ASCII letters, digits and hyphens starting with a letter, then a colon.
// A colon followed by "//" is a URL, not a boundary.
func isCommitBoundary(line string) bool {
	idx := strings.IndexByte(line, ':')
	if idx <= 0 {
		return false
	}
	if strings.HasPrefix(line[idx+1:], "//") {
		return false
	}

	prefix := line[:idx]
	if !isASCIILetter(prefix[0]) {
		return false
	}
	for i := 1; i < len(prefix); i++ {
		c := prefix[i]
		if !isASCIILetter(c) && !(c >= '0' && c <= '9') && c != '-' {
			return false
		}
	}
	return true
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
