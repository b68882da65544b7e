package workflow

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samzong/git-auto-commit/internal/git"
	"github.com/samzong/git-auto-commit/internal/suggest"
)

const stagedDiff = `diff --git a/README.md b/README.md
new file mode 100644
--- /dev/null
+++ b/README.md
@@ -0,0 +1 @@
+# Title
`

func newFakeGit() *fakeGit {
	return &fakeGit{
		isRepo:  true,
		branch:  "main",
		changes: []git.StagedChange{{Path: "README.md", Kind: git.ChangeAdded}},
		diff:    stagedDiff,
	}
}

func externalResult() suggest.Result {
	return suggest.Result{
		Set: suggest.Set{
			BranchNames:    []string{"docs/readme", "feature/update-20240101"},
			CommitMessages: []string{"docs: add readme\n\nExplain setup."},
		},
		Source: suggest.SourceExternal,
		Tool:   "gemini",
	}
}

func runFlow(t *testing.T, g *fakeGit, s *fakeSuggester, c *scriptedChooser) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	flow := NewCommitFlow(g, s, c, CommitOptions{OutWriter: &out, ErrWriter: &errOut})
	err := flow.Run(context.Background())
	return out.String(), errOut.String(), err
}

func TestCommitFlow_NotRepository(t *testing.T) {
	g := newFakeGit()
	g.isRepo = false

	_, _, err := runFlow(t, g, &fakeSuggester{}, &scriptedChooser{})
	assert.ErrorIs(t, err, ErrNotRepository)
	assert.Empty(t, g.calls)
}

func TestCommitFlow_NoStagedChanges(t *testing.T) {
	g := newFakeGit()
	g.changes = nil

	_, _, err := runFlow(t, g, &fakeSuggester{}, &scriptedChooser{})
	assert.ErrorIs(t, err, ErrNoStagedChanges)
	assert.Contains(t, err.Error(), "git add")
	assert.Empty(t, g.calls)
}

func TestCommitFlow_NewBranchAndCommit(t *testing.T) {
	g := newFakeGit()
	s := &fakeSuggester{result: externalResult()}
	c := &scriptedChooser{steps: []step{selectStep("0"), selectStep("0"), confirmStep(true)}}

	out, errOut, err := runFlow(t, g, s, c)
	require.NoError(t, err)

	assert.Equal(t, "docs/readme", g.createdName)
	assert.Equal(t, "docs: add readme\n\nExplain setup.", g.committed)
	assert.Equal(t, []string{"checkout -b docs/readme", "commit"}, g.calls)

	assert.Equal(t, suggest.Input{Diff: stagedDiff, Files: []string{"README.md"}}, s.input)
	assert.Contains(t, errOut, "Current branch: main")
	assert.Contains(t, errOut, "added        README.md")
	assert.Contains(t, errOut, "0 files changed, 1 insertions(+), 0 deletions(-)")
	assert.Contains(t, errOut, "Suggestions from gemini")
	assert.Contains(t, errOut, "Switched to new branch: docs/readme")
	assert.Equal(t, "docs: add readme\n", out)
}

func TestCommitFlow_ListsRenamesWithSource(t *testing.T) {
	g := newFakeGit()
	g.changes = []git.StagedChange{
		{Path: "new.go", Kind: git.ChangeRenamed, From: "old.go"},
		{Path: "run.sh", Kind: git.ChangeTypeChanged},
	}
	s := &fakeSuggester{result: externalResult()}
	c := &scriptedChooser{steps: []step{selectStep(keepBranchValue), selectStep("0"), confirmStep(true)}}

	_, errOut, err := runFlow(t, g, s, c)
	require.NoError(t, err)
	assert.Contains(t, errOut, "renamed      old.go -> new.go")
	assert.Contains(t, errOut, "type-changed run.sh")
	assert.Equal(t, []string{"new.go", "run.sh"}, s.input.Files)
}

func TestCommitFlow_KeepBranchWithHeuristics(t *testing.T) {
	g := newFakeGit()
	s := &fakeSuggester{result: suggest.Result{
		Set:    suggest.Set{BranchNames: []string{"docs/update-docs-20240101"}, CommitMessages: []string{"feat: add README.md"}},
		Source: suggest.SourceHeuristic,
	}}
	c := &scriptedChooser{steps: []step{selectStep(keepBranchValue), selectStep("0"), confirmStep(true)}}

	_, errOut, err := runFlow(t, g, s, c)
	require.NoError(t, err)
	assert.Empty(t, g.createdName)
	assert.Equal(t, []string{"commit"}, g.calls)
	assert.Equal(t, "feat: add README.md", g.committed)
	assert.Contains(t, errOut, "Using built-in suggestions")
}

func TestCommitFlow_AbortLeavesRepositoryUntouched(t *testing.T) {
	g := newFakeGit()
	s := &fakeSuggester{result: externalResult()}
	c := &scriptedChooser{steps: []step{selectStep("0"), {kind: "select", err: errAbort}}}

	_, _, err := runFlow(t, g, s, c)
	assert.ErrorIs(t, err, errAbort)
	assert.Empty(t, g.calls)
}

func TestCommitFlow_BranchFailureStopsBeforeCommit(t *testing.T) {
	g := newFakeGit()
	g.branchErr = errors.New("fatal: a branch named 'docs/readme' already exists")
	s := &fakeSuggester{result: externalResult()}
	c := &scriptedChooser{steps: []step{selectStep("0"), selectStep("0"), confirmStep(true)}}

	_, _, err := runFlow(t, g, s, c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	assert.Equal(t, []string{"checkout -b docs/readme"}, g.calls)
}

func TestCommitFlow_CommitFailure(t *testing.T) {
	g := newFakeGit()
	g.commitErr = errors.New("pre-commit hook failed")
	s := &fakeSuggester{result: externalResult()}
	c := &scriptedChooser{steps: []step{selectStep(keepBranchValue), selectStep("0"), confirmStep(true)}}

	_, _, err := runFlow(t, g, s, c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to commit changes")
	assert.Contains(t, err.Error(), "pre-commit hook failed")
}

func TestCommitFlow_CancelledDuringSuggestions(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := newFakeGit()
	flow := NewCommitFlow(g, &fakeSuggester{result: externalResult()}, &scriptedChooser{}, CommitOptions{})
	err := flow.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, g.calls)
}
