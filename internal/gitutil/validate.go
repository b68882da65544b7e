package gitutil

import (
	"errors"
	"fmt"
	"strings"
)

var invalidBranchChars = []string{" ", "~", "^", ":", "?", "*", "[", "]", "\\"}

// ValidateBranchName validates a git branch name for common illegal patterns.
func ValidateBranchName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("branch name cannot be empty")
	}
	if strings.HasPrefix(name, "/") {
		return fmt.Errorf("branch name cannot start with '/': %s", name)
	}
	if strings.HasPrefix(name, ".") {
		return fmt.Errorf("branch name cannot start with '.': %s", name)
	}
	for _, ch := range invalidBranchChars {
		if strings.Contains(name, ch) {
			return fmt.Errorf("branch name contains invalid character %q: %s", ch, name)
		}
	}
	return nil
}
