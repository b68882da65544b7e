package gitutil

import (
	"errors"
	"fmt"

	"github.com/samzong/git-auto-commit/internal/cmdrunner"
)

// ErrCommandFailed marks a git command that ran but exited non-zero.
var ErrCommandFailed = errors.New("git command failed")

// WrapGitError builds an error message that prefers git stderr output when present.
func WrapGitError(action string, result cmdrunner.Result, err error) error {
	if err == nil {
		err = fmt.Errorf("%w (exit status %d)", ErrCommandFailed, result.ExitCode)
	}
	if errMsg := result.StderrString(true); errMsg != "" {
		return fmt.Errorf("%s: %s: %w", action, errMsg, err)
	}
	return fmt.Errorf("%s: %w", action, err)
}
