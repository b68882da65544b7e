package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/samzong/git-auto-commit/internal/analyzer"
	"github.com/samzong/git-auto-commit/internal/git"
	"github.com/samzong/git-auto-commit/internal/stringsutil"
	"github.com/samzong/git-auto-commit/internal/suggest"
	"github.com/samzong/git-auto-commit/internal/ui"
)

var (
	ErrNotRepository   = errors.New("not a git repository (or any of the parent directories)")
	ErrNoStagedChanges = errors.New("no staged changes, stage files with 'git add <file>' first")
)

type CommitOptions struct {
	ErrWriter io.Writer
	OutWriter io.Writer
}

type CommitFlow struct {
	git       GitClient
	suggester Suggester
	selection *SelectionFlow
	opts      CommitOptions
}

func NewCommitFlow(gitClient GitClient, suggester Suggester, chooser Chooser, opts CommitOptions) *CommitFlow {
	if opts.ErrWriter == nil {
		opts.ErrWriter = io.Discard
	}
	if opts.OutWriter == nil {
		opts.OutWriter = io.Discard
	}
	return &CommitFlow{
		git:       gitClient,
		suggester: suggester,
		selection: NewSelectionFlow(chooser, opts.ErrWriter),
		opts:      opts,
	}
}

// Run gathers the staged state, lets the user pick a branch and a commit
// message, then switches branch and commits. Nothing is changed in the
// repository until both choices are made.
func (f *CommitFlow) Run(ctx context.Context) error {
	if !f.git.IsGitRepository() {
		return ErrNotRepository
	}

	current, changes, diff, err := f.gatherStagedState(ctx)
	if err != nil {
		return err
	}
	f.printStaged(current, changes, diff)

	files := make([]string, 0, len(changes))
	for _, c := range changes {
		files = append(files, c.Path)
	}

	result := f.generateSuggestions(ctx, suggest.Input{Diff: diff, Files: files})
	if err := ctx.Err(); err != nil {
		return err
	}

	newBranch, err := f.selection.ChooseBranch(ctx, current, result.Set.BranchNames)
	if err != nil {
		return fmt.Errorf("branch selection failed: %w", err)
	}

	message, err := f.selection.ChooseCommit(ctx, result.Set.CommitMessages)
	if err != nil {
		return fmt.Errorf("commit message selection failed: %w", err)
	}

	if newBranch != "" {
		if err := f.git.CreateAndSwitchBranch(ctx, newBranch); err != nil {
			return fmt.Errorf("failed to create branch: %w", err)
		}
		fmt.Fprintf(f.opts.ErrWriter, "Switched to new branch: %s\n", newBranch)
	}

	if err := f.git.Commit(ctx, message); err != nil {
		return fmt.Errorf("failed to commit changes: %w", err)
	}

	fmt.Fprintln(f.opts.ErrWriter, "Successfully committed changes!")
	fmt.Fprintln(f.opts.OutWriter, stringsutil.FirstLine(message))
	return nil
}

func (f *CommitFlow) gatherStagedState(ctx context.Context) (string, []git.StagedChange, string, error) {
	current, err := f.git.CurrentBranch()
	if err != nil {
		return "", nil, "", fmt.Errorf("failed to get current branch: %w", err)
	}

	changes, err := f.git.StagedChanges(ctx)
	if err != nil {
		return "", nil, "", fmt.Errorf("failed to read staged files: %w", err)
	}
	if len(changes) == 0 {
		return "", nil, "", ErrNoStagedChanges
	}

	diff, err := f.git.StagedDiff(ctx)
	if err != nil {
		return "", nil, "", fmt.Errorf("failed to get git diff: %w", err)
	}

	return current, changes, diff, nil
}

func (f *CommitFlow) printStaged(current string, changes []git.StagedChange, diff string) {
	fmt.Fprintf(f.opts.ErrWriter, "Current branch: %s\n", current)
	fmt.Fprintln(f.opts.ErrWriter, "Staged files:")
	for _, c := range changes {
		if c.From != "" {
			fmt.Fprintf(f.opts.ErrWriter, "  %-12s %s -> %s\n", c.Kind, c.From, c.Path)
			continue
		}
		fmt.Fprintf(f.opts.ErrWriter, "  %-12s %s\n", c.Kind, c.Path)
	}
	fmt.Fprintln(f.opts.ErrWriter, analyzer.ComputeStats(diff).String())
}

func (f *CommitFlow) generateSuggestions(ctx context.Context, in suggest.Input) suggest.Result {
	sp := ui.NewSpinner(f.opts.ErrWriter, "Generating suggestions...")
	sp.Start()
	result := f.suggester.Suggest(ctx, in)
	sp.Stop()

	if result.Source == suggest.SourceExternal {
		fmt.Fprintf(f.opts.ErrWriter, "Suggestions from %s\n", result.Tool)
	} else {
		fmt.Fprintln(f.opts.ErrWriter, "Using built-in suggestions")
	}
	return result
}
