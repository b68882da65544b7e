package suggest

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/samzong/git-auto-commit/internal/analyzer"
	"github.com/samzong/git-auto-commit/internal/branch"
	"github.com/samzong/git-auto-commit/internal/stringsutil"
)

var genericCommitMessages = []string{
	"chore: update project files",
	"refactor: improve code quality",
	"chore: routine maintenance",
	"chore: adjust file contents",
	"chore: modify project files",
}

var (
	docExts    = []string{".md", ".txt", ".doc"}
	configExts = []string{".json", ".yaml", ".yml", ".toml", ".ini"}
	codeExts   = []string{".rs", ".js", ".ts", ".py", ".java", ".go"}
)

type fileTraits struct {
	docs   bool
	config bool
	code   bool
	tests  bool
}

func traitsOf(files []string) fileTraits {
	var t fileTraits
	for _, f := range files {
		ext := filepath.Ext(f)
		t.docs = t.docs || stringsutil.Contains(docExts, ext)
		t.config = t.config || stringsutil.Contains(configExts, ext)
		t.code = t.code || stringsutil.Contains(codeExts, ext)
		t.tests = t.tests || strings.Contains(f, "test") || strings.Contains(f, "spec")
	}
	return t
}

// Heuristic returns the rule-based suggestions. It never fails and each list
// holds one to three unique entries.
func Heuristic(files []string, presence analyzer.Presence, now time.Time) Set {
	return Set{
		BranchNames:    branch.Suggest(files, now),
		CommitMessages: HeuristicCommits(files, presence),
	}
}

// HeuristicCommits returns exactly three unique commit messages chosen by the
// kind of change and the dominant file type.
func HeuristicCommits(files []string, presence analyzer.Presence) []string {
	t := traitsOf(files)
	var msgs []string

	switch {
	case presence.NewFiles:
		if len(files) == 1 {
			msgs = append(msgs, "feat: add "+files[0])
		} else {
			msgs = append(msgs, "feat: add new files")
		}
		switch {
		case t.docs:
			msgs = append(msgs, "docs: add project documentation")
		case t.config:
			msgs = append(msgs, "chore: add configuration files")
		case t.code:
			msgs = append(msgs, "feat: add new module")
		}
	case presence.DeletedFiles:
		if len(files) == 1 {
			msgs = append(msgs, "chore: remove "+files[0])
		} else {
			msgs = append(msgs, "chore: remove unused files")
		}
		msgs = append(msgs, "chore: clean up obsolete code", "refactor: remove redundant files")
	case presence.OnlyModified:
		switch {
		case t.docs:
			msgs = append(msgs, "docs: update project documentation", "docs: fix documentation content")
		case t.config:
			msgs = append(msgs, "chore: adjust project configuration", "chore: update config files")
		case t.tests:
			msgs = append(msgs, "test: update test cases", "test: fix tests")
		case t.code:
			msgs = append(msgs, "fix: fix bug", "perf: improve performance", "refactor: restructure code")
		}
	}

	msgs = stringsutil.AppendMissing(stringsutil.UniqueStrings(msgs), MaxCommitMessages, genericCommitMessages...)
	return stringsutil.Truncate(msgs, MaxCommitMessages)
}
