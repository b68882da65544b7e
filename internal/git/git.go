// Package git inspects the repository and runs the mutating git commands.
package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/samzong/git-auto-commit/internal/cmdrunner"
	"github.com/samzong/git-auto-commit/internal/gitutil"
)

// ChangeKind describes how a staged path differs from HEAD.
type ChangeKind string

const (
	ChangeAdded       ChangeKind = "added"
	ChangeModified    ChangeKind = "modified"
	ChangeDeleted     ChangeKind = "deleted"
	ChangeRenamed     ChangeKind = "renamed"
	ChangeTypeChanged ChangeKind = "type-changed"
)

// StagedChange is a file-level change already in the index. From is the
// source path of a rename.
type StagedChange struct {
	Path string
	Kind ChangeKind
	From string
}

// Options configures a Client.
type Options struct {
	Verbose bool
	Dir     string
	Runner  cmdrunner.Executor
}

// Client reads repository facts through go-git and shells out to git for
// diff, checkout and commit.
type Client struct {
	dir    string
	runner cmdrunner.Executor
}

// NewClient creates a Client rooted at opts.Dir (the working directory when empty).
func NewClient(opts Options) *Client {
	runner := opts.Runner
	if runner == nil {
		runner = cmdrunner.Runner{Verbose: opts.Verbose, Dir: opts.Dir}
	}
	return &Client{dir: opts.Dir, runner: runner}
}

func (c *Client) open() (*gogit.Repository, error) {
	dir := c.dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}
	return gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
}

// IsGitRepository reports whether the client's directory is inside a repository.
func (c *Client) IsGitRepository() bool {
	_, err := c.open()
	return err == nil
}

// CurrentBranch returns the short name of the checked-out branch. An unborn
// branch (no commits yet) is reported by the name HEAD points to, a detached
// HEAD by its abbreviated hash.
func (c *Client) CurrentBranch() (string, error) {
	repo, err := c.open()
	if err != nil {
		return "", fmt.Errorf("failed to open repository: %w", err)
	}

	head, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		ref, symErr := repo.Storer.Reference(plumbing.HEAD)
		if symErr != nil {
			return "", fmt.Errorf("failed to read HEAD: %w", symErr)
		}
		return ref.Target().Short(), nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read HEAD: %w", err)
	}

	if head.Name().IsBranch() {
		return head.Name().Short(), nil
	}
	hash := head.Hash().String()
	if len(hash) > 7 {
		hash = hash[:7]
	}
	return hash, nil
}

// StagedChanges lists the paths staged in the index relative to HEAD, sorted
// by path. Renames are detected; intent-to-add entries are not staged.
func (c *Client) StagedChanges(ctx context.Context) ([]StagedChange, error) {
	result, err := c.runner.Run(ctx, "git", "diff", "--cached", "--name-status", "-M", "-z")
	if err != nil || !result.Success() {
		return nil, gitutil.WrapGitError("git diff --cached --name-status failed", result, err)
	}

	changes, err := parseNameStatus(string(result.Stdout))
	if err != nil {
		return nil, err
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].Path < changes[j].Path })
	return changes, nil
}

// parseNameStatus reads NUL-separated `--name-status -z` output: a status
// field followed by one path, or two (source, destination) for renames and
// copies.
func parseNameStatus(out string) ([]StagedChange, error) {
	fields := strings.Split(strings.TrimSuffix(out, "\x00"), "\x00")

	var changes []StagedChange
	for i := 0; i < len(fields); {
		status := fields[i]
		i++
		if status == "" {
			continue
		}

		paths := 1
		if status[0] == 'R' || status[0] == 'C' {
			paths = 2
		}
		if i+paths > len(fields) {
			return nil, fmt.Errorf("malformed name-status output near %q", status)
		}
		names := fields[i : i+paths]
		i += paths

		change := StagedChange{Path: names[len(names)-1]}
		switch status[0] {
		case 'A', 'C':
			change.Kind = ChangeAdded
		case 'M':
			change.Kind = ChangeModified
		case 'D':
			change.Kind = ChangeDeleted
		case 'R':
			change.Kind = ChangeRenamed
			change.From = names[0]
		case 'T':
			change.Kind = ChangeTypeChanged
		default:
			continue
		}
		changes = append(changes, change)
	}
	return changes, nil
}

// StagedDiff returns the unified diff of the index against HEAD.
func (c *Client) StagedDiff(ctx context.Context) (string, error) {
	result, err := c.runner.Run(ctx, "git", "diff", "--cached")
	if err != nil || !result.Success() {
		return "", gitutil.WrapGitError("git diff --cached failed", result, err)
	}
	return result.StdoutString(false), nil
}

// CreateAndSwitchBranch runs git checkout -b.
func (c *Client) CreateAndSwitchBranch(ctx context.Context, name string) error {
	result, err := c.runner.Run(ctx, "git", "checkout", "-b", name)
	if err != nil || !result.Success() {
		return gitutil.WrapGitError("git checkout -b failed", result, err)
	}
	return nil
}

// Commit runs git commit -m.
func (c *Client) Commit(ctx context.Context, message string) error {
	result, err := c.runner.Run(ctx, "git", "commit", "-m", message)
	if err != nil || !result.Success() {
		return gitutil.WrapGitError("git commit failed", result, err)
	}
	return nil
}
