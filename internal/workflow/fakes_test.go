package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/samzong/git-auto-commit/internal/git"
	"github.com/samzong/git-auto-commit/internal/suggest"
	"github.com/samzong/git-auto-commit/internal/ui"
)

type fakeGit struct {
	isRepo      bool
	branch      string
	changes     []git.StagedChange
	diff        string
	branchErr   error
	commitErr   error
	createdName string
	committed   string
	calls       []string
}

func (g *fakeGit) IsGitRepository() bool { return g.isRepo }

func (g *fakeGit) CurrentBranch() (string, error) { return g.branch, nil }

func (g *fakeGit) StagedChanges(context.Context) ([]git.StagedChange, error) { return g.changes, nil }

func (g *fakeGit) StagedDiff(context.Context) (string, error) { return g.diff, nil }

func (g *fakeGit) CreateAndSwitchBranch(_ context.Context, name string) error {
	g.calls = append(g.calls, "checkout -b "+name)
	if g.branchErr != nil {
		return g.branchErr
	}
	g.createdName = name
	return nil
}

func (g *fakeGit) Commit(_ context.Context, message string) error {
	g.calls = append(g.calls, "commit")
	if g.commitErr != nil {
		return g.commitErr
	}
	g.committed = message
	return nil
}

type fakeSuggester struct {
	result suggest.Result
	input  suggest.Input
}

func (s *fakeSuggester) Suggest(_ context.Context, in suggest.Input) suggest.Result {
	s.input = in
	return s.result
}

// step is one scripted answer: a value for Select/Input or a bool for Confirm.
type step struct {
	kind    string
	value   string
	confirm bool
	err     error
}

func selectStep(value string) step { return step{kind: "select", value: value} }
func inputStep(value string) step { return step{kind: "input", value: value} }
func confirmStep(ok bool) step { return step{kind: "confirm", confirm: ok} }

type scriptedChooser struct {
	steps    []step
	menus    [][]ui.Option
	inputs   int
	confirms int
}

func (c *scriptedChooser) next(kind string) (step, error) {
	if len(c.steps) == 0 {
		return step{}, fmt.Errorf("unexpected %s prompt", kind)
	}
	s := c.steps[0]
	c.steps = c.steps[1:]
	if s.kind != kind {
		return step{}, fmt.Errorf("expected %s prompt, got %s", s.kind, kind)
	}
	return s, s.err
}

func (c *scriptedChooser) Select(_ context.Context, _ string, options []ui.Option) (string, error) {
	c.menus = append(c.menus, options)
	s, err := c.next("select")
	return s.value, err
}

func (c *scriptedChooser) Input(context.Context, string, func(string) error) (string, error) {
	c.inputs++
	s, err := c.next("input")
	return s.value, err
}

func (c *scriptedChooser) Confirm(context.Context, string, string, string) (bool, error) {
	c.confirms++
	s, err := c.next("confirm")
	return s.confirm, err
}

var errAbort = errors.New("aborted")

func labels(options []ui.Option) []string {
	out := make([]string, 0, len(options))
	for _, o := range options {
		out = append(out, o.Label)
	}
	return out
}
