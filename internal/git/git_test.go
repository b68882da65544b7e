package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/samzong/git-auto-commit/internal/cmdrunner"
	"github.com/samzong/git-auto-commit/internal/gitutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	calls  [][]string
	result cmdrunner.Result
	err    error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (cmdrunner.Result, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return f.result, f.err
}

func TestIsGitRepository(t *testing.T) {
	dir, _ := CreateSafeTempRepo(t)
	assert.True(t, NewClient(Options{Dir: dir}).IsGitRepository())

	assert.False(t, NewClient(Options{Dir: t.TempDir()}).IsGitRepository())
}

func TestCurrentBranch(t *testing.T) {
	dir, repo := CreateSafeTempRepo(t)
	client := NewClient(Options{Dir: dir})

	t.Run("unborn branch", func(t *testing.T) {
		branch, err := client.CurrentBranch()
		require.NoError(t, err)
		assert.Equal(t, "master", branch)
	})

	t.Run("after first commit", func(t *testing.T) {
		WriteFile(t, dir, "README.md", "# demo\n")
		CommitAll(t, repo, "initial commit", "README.md")

		branch, err := client.CurrentBranch()
		require.NoError(t, err)
		assert.Equal(t, "master", branch)
	})
}

// requireGit skips tests that shell out to git and isolates them from the
// user's git configuration.
func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	global := filepath.Join(t.TempDir(), "gitconfig")
	require.NoError(t, os.WriteFile(global, nil, 0o644))
	t.Setenv("GIT_CONFIG_GLOBAL", global)
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_AUTHOR_NAME", "Test")
	t.Setenv("GIT_AUTHOR_EMAIL", "test@test.com")
	t.Setenv("GIT_COMMITTER_NAME", "Test")
	t.Setenv("GIT_COMMITTER_EMAIL", "test@test.com")
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	result, err := cmdrunner.Runner{Dir: dir}.Run(context.Background(), "git", args...)
	require.NoError(t, err)
	require.True(t, result.Success(), "git %v: %s", args, result.StderrString(true))
}

func TestStagedChanges(t *testing.T) {
	requireGit(t)
	dir, repo := CreateSafeTempRepo(t)
	WriteFile(t, dir, "keep.go", "package keep\n")
	WriteFile(t, dir, "gone.txt", "bye\n")
	CommitAll(t, repo, "initial commit", "keep.go", "gone.txt")

	WriteFile(t, dir, "keep.go", "package keep\n\nconst X = 1\n")
	WriteFile(t, dir, "docs/new.md", "hello\n")
	runGit(t, dir, "add", "keep.go", "docs/new.md")
	runGit(t, dir, "rm", "-q", "gone.txt")
	WriteFile(t, dir, "untracked.txt", "not staged\n")

	changes, err := NewClient(Options{Dir: dir}).StagedChanges(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []StagedChange{
		{Path: "docs/new.md", Kind: ChangeAdded},
		{Path: "gone.txt", Kind: ChangeDeleted},
		{Path: "keep.go", Kind: ChangeModified},
	}, changes)
}

func TestStagedChanges_RenameAndIntentToAdd(t *testing.T) {
	requireGit(t)
	dir, repo := CreateSafeTempRepo(t)
	WriteFile(t, dir, "old.go", "package old\n\nfunc Hello() string { return \"hello\" }\n")
	CommitAll(t, repo, "initial commit", "old.go")

	runGit(t, dir, "mv", "old.go", "new.go")
	WriteFile(t, dir, "ita.txt", "later\n")
	runGit(t, dir, "add", "-N", "ita.txt")

	changes, err := NewClient(Options{Dir: dir}).StagedChanges(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []StagedChange{{Path: "new.go", Kind: ChangeRenamed, From: "old.go"}}, changes)
}

func TestStagedChanges_UnbornBranch(t *testing.T) {
	requireGit(t)
	dir, _ := CreateSafeTempRepo(t)
	WriteFile(t, dir, "README.md", "# demo\n")
	runGit(t, dir, "add", "README.md")

	changes, err := NewClient(Options{Dir: dir}).StagedChanges(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []StagedChange{{Path: "README.md", Kind: ChangeAdded}}, changes)
}

func TestStagedChanges_LinkedWorktree(t *testing.T) {
	requireGit(t)
	dir, repo := CreateSafeTempRepo(t)
	WriteFile(t, dir, "a.go", "package a\n")
	WriteFile(t, dir, "b.go", "package b\n")
	WriteFile(t, dir, "c.md", "# c\n")
	CommitAll(t, repo, "initial commit", "a.go", "b.go", "c.md")

	wtDir := filepath.Join(t.TempDir(), "linked")
	runGit(t, dir, "worktree", "add", "-q", "-b", "topic", wtDir)
	client := NewClient(Options{Dir: wtDir})

	assert.True(t, client.IsGitRepository())
	branch, err := client.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "topic", branch)

	changes, err := client.StagedChanges(context.Background())
	require.NoError(t, err)
	assert.Empty(t, changes)

	WriteFile(t, wtDir, "a.go", "package a\n\nconst A = 1\n")
	runGit(t, wtDir, "add", "a.go")

	changes, err = client.StagedChanges(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []StagedChange{{Path: "a.go", Kind: ChangeModified}}, changes)
}

func TestStagedChanges_NothingStaged(t *testing.T) {
	requireGit(t)
	dir, repo := CreateSafeTempRepo(t)
	WriteFile(t, dir, "a.txt", "a\n")
	CommitAll(t, repo, "initial commit", "a.txt")

	changes, err := NewClient(Options{Dir: dir}).StagedChanges(context.Background())
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestStagedChanges_CommandFailure(t *testing.T) {
	runner := &fakeRunner{result: cmdrunner.Result{ExitCode: 128, Stderr: []byte("fatal: not a git repository\n")}}

	_, err := NewClient(Options{Runner: runner}).StagedChanges(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, gitutil.ErrCommandFailed)
	assert.Contains(t, err.Error(), "not a git repository")
	assert.Equal(t, [][]string{{"git", "diff", "--cached", "--name-status", "-M", "-z"}}, runner.calls)
}

func TestParseNameStatus(t *testing.T) {
	out := "M\x00keep.go\x00R087\x00old.go\x00new.go\x00T\x00run.sh\x00" +
		"C100\x00a.go\x00copy.go\x00U\x00conflict.go\x00A\x00dir with space/x.md\x00D\x00gone.txt\x00"

	changes, err := parseNameStatus(out)
	require.NoError(t, err)
	assert.Equal(t, []StagedChange{
		{Path: "keep.go", Kind: ChangeModified},
		{Path: "new.go", Kind: ChangeRenamed, From: "old.go"},
		{Path: "run.sh", Kind: ChangeTypeChanged},
		{Path: "copy.go", Kind: ChangeAdded},
		{Path: "dir with space/x.md", Kind: ChangeAdded},
		{Path: "gone.txt", Kind: ChangeDeleted},
	}, changes)

	empty, err := parseNameStatus("")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = parseNameStatus("R100\x00only-one.go\x00")
	assert.Error(t, err)
}

func TestCommandArguments(t *testing.T) {
	runner := &fakeRunner{result: cmdrunner.Result{Stdout: []byte("diff --git a/x b/x\n")}}
	client := NewClient(Options{Runner: runner})
	ctx := context.Background()

	diff, err := client.StagedDiff(ctx)
	require.NoError(t, err)
	assert.Equal(t, "diff --git a/x b/x\n", diff)

	require.NoError(t, client.CreateAndSwitchBranch(ctx, "feature/x"))
	require.NoError(t, client.Commit(ctx, "feat: add x\n\nbody"))

	assert.Equal(t, [][]string{
		{"git", "diff", "--cached"},
		{"git", "checkout", "-b", "feature/x"},
		{"git", "commit", "-m", "feat: add x\n\nbody"},
	}, runner.calls)
}

func TestCommandFailuresIncludeStderr(t *testing.T) {
	runner := &fakeRunner{result: cmdrunner.Result{
		ExitCode: 128,
		Stderr:   []byte("fatal: a branch named 'feature/x' already exists\n"),
	}}
	client := NewClient(Options{Runner: runner})

	err := client.CreateAndSwitchBranch(context.Background(), "feature/x")
	require.Error(t, err)
	assert.ErrorIs(t, err, gitutil.ErrCommandFailed)
	assert.Contains(t, err.Error(), "already exists")

	err = client.Commit(context.Background(), "msg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "git commit failed")
}
