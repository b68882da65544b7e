package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/samzong/git-auto-commit/internal/gitutil"
	"github.com/samzong/git-auto-commit/internal/stringsutil"
	"github.com/samzong/git-auto-commit/internal/ui"
)

const (
	keepBranchValue = "keep"
	customValue     = "custom"
)

var errEmptyMessage = errors.New("commit message cannot be empty")

type commitState int

const (
	stateChooseCommit commitState = iota
	statePreviewCommit
	stateCommitted
)

// SelectionFlow runs the interactive branch and commit message choices.
type SelectionFlow struct {
	chooser Chooser
	out     io.Writer
}

func NewSelectionFlow(chooser Chooser, out io.Writer) *SelectionFlow {
	if out == nil {
		out = io.Discard
	}
	return &SelectionFlow{chooser: chooser, out: out}
}

// ChooseBranch returns the branch to create, or "" to stay on current.
// Candidates that are not valid branch names are not offered.
func (s *SelectionFlow) ChooseBranch(ctx context.Context, current string, candidates []string) (string, error) {
	valid := validBranches(candidates)
	options := []ui.Option{{Label: fmt.Sprintf("Keep current branch (%s)", current), Value: keepBranchValue}}
	for i, name := range valid {
		options = append(options, ui.Option{Label: name, Value: strconv.Itoa(i)})
	}
	options = append(options, ui.Option{Label: "Custom branch name", Value: customValue})

	choice, err := s.chooser.Select(ctx, "Select a branch", options)
	if err != nil {
		return "", err
	}

	switch choice {
	case keepBranchValue:
		return "", nil
	case customValue:
		return s.customBranch(ctx)
	default:
		i, err := strconv.Atoi(choice)
		if err != nil || i < 0 || i >= len(valid) {
			return "", fmt.Errorf("unknown branch option %q", choice)
		}
		return valid[i], nil
	}
}

func validBranches(candidates []string) []string {
	var names []string
	for _, name := range candidates {
		name = strings.TrimSpace(name)
		if gitutil.ValidateBranchName(name) != nil {
			continue
		}
		names = append(names, name)
	}
	return stringsutil.UniqueStrings(names)
}

func (s *SelectionFlow) customBranch(ctx context.Context) (string, error) {
	for {
		name, err := s.chooser.Input(ctx, "New branch name", gitutil.ValidateBranchName)
		if err != nil {
			return "", err
		}
		name = strings.TrimSpace(name)
		if err := gitutil.ValidateBranchName(name); err != nil {
			fmt.Fprintf(s.out, "Invalid branch name: %v\n", err)
			continue
		}
		return name, nil
	}
}

// ChooseCommit loops between choosing a message and previewing it until the
// user confirms one. The returned message is trimmed and never empty.
func (s *SelectionFlow) ChooseCommit(ctx context.Context, candidates []string) (string, error) {
	candidates = nonEmpty(candidates)

	state := stateChooseCommit
	var message string
	for {
		switch state {
		case stateChooseCommit:
			chosen, err := s.pickCommit(ctx, candidates)
			if err != nil {
				return "", err
			}
			message = chosen
			state = statePreviewCommit

		case statePreviewCommit:
			fmt.Fprintln(s.out, "\nCommit message:")
			fmt.Fprintln(s.out, message)
			fmt.Fprintln(s.out)

			ok, err := s.chooser.Confirm(ctx, "Use this commit message?", "Use this message", "Choose again")
			if err != nil {
				return "", err
			}
			if ok {
				state = stateCommitted
			} else {
				state = stateChooseCommit
			}

		case stateCommitted:
			return message, nil
		}
	}
}

func (s *SelectionFlow) pickCommit(ctx context.Context, candidates []string) (string, error) {
	options := make([]ui.Option, 0, len(candidates)+1)
	for i, msg := range candidates {
		options = append(options, ui.Option{Label: stringsutil.FirstLine(msg), Value: strconv.Itoa(i)})
	}
	options = append(options, ui.Option{Label: "Custom message", Value: customValue})

	choice, err := s.chooser.Select(ctx, "Select a commit message", options)
	if err != nil {
		return "", err
	}
	if choice == customValue {
		return s.customMessage(ctx)
	}

	i, err := strconv.Atoi(choice)
	if err != nil || i < 0 || i >= len(candidates) {
		return "", fmt.Errorf("unknown commit option %q", choice)
	}
	return candidates[i], nil
}

func (s *SelectionFlow) customMessage(ctx context.Context) (string, error) {
	for {
		msg, err := s.chooser.Input(ctx, "Commit message", validateMessage)
		if err != nil {
			return "", err
		}
		msg = strings.TrimSpace(msg)
		if msg == "" {
			fmt.Fprintln(s.out, "Commit message cannot be empty")
			continue
		}
		return msg, nil
	}
}

func validateMessage(msg string) error {
	if strings.TrimSpace(msg) == "" {
		return errEmptyMessage
	}
	return nil
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
