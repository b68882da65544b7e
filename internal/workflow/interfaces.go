// Package workflow provides the commit workflow orchestration logic.
package workflow

import (
	"context"

	"github.com/samzong/git-auto-commit/internal/git"
	"github.com/samzong/git-auto-commit/internal/suggest"
	"github.com/samzong/git-auto-commit/internal/ui"
)

// GitClient abstracts git operations for testability.
type GitClient interface {
	IsGitRepository() bool
	CurrentBranch() (string, error)
	StagedChanges(ctx context.Context) ([]git.StagedChange, error)
	StagedDiff(ctx context.Context) (string, error)
	CreateAndSwitchBranch(ctx context.Context, name string) error
	Commit(ctx context.Context, message string) error
}

// Suggester produces the suggestion set for the staged changes.
type Suggester interface {
	Suggest(ctx context.Context, in suggest.Input) suggest.Result
}

// Chooser abstracts the interactive prompts for testability.
type Chooser interface {
	Select(ctx context.Context, title string, options []ui.Option) (string, error)
	Input(ctx context.Context, title string, validate func(string) error) (string, error)
	Confirm(ctx context.Context, title, affirmative, negative string) (bool, error)
}
