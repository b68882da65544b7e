// Package branch proposes date-stamped branch names from staged paths.
package branch

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/samzong/git-auto-commit/internal/stringsutil"
)

// DateLayout is the stamp appended to every suggested branch name.
const DateLayout = "20060102"

// MaxSuggestions caps the number of offered branch names.
const MaxSuggestions = 3

type rule struct {
	prefix string
	match  func(path string) bool
}

// Rules are checked in order; each matching rule contributes one name.
var rules = []rule{
	{prefix: "feature/new-feature", match: containsAny("feature", "add")},
	{prefix: "fix/bug-fix", match: containsAny("fix", "bug")},
	{prefix: "docs/update-docs", match: hasExt(".md", ".txt")},
	{prefix: "config/update-config", match: hasExt(".json", ".yaml", ".yml", ".toml")},
	{prefix: "test/update-tests", match: containsAny("test", "spec")},
}

var genericPrefixes = []string{
	"feature/update",
	"refactor/improve-code",
	"chore/maintenance",
}

func containsAny(keywords ...string) func(string) bool {
	return func(path string) bool {
		lower := strings.ToLower(path)
		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) {
				return true
			}
		}
		return false
	}
}

func hasExt(exts ...string) func(string) bool {
	return func(path string) bool {
		ext := strings.ToLower(filepath.Ext(path))
		for _, e := range exts {
			if ext == e {
				return true
			}
		}
		return false
	}
}

func stamp(prefix string, now time.Time) string {
	return prefix + "-" + now.Format(DateLayout)
}

// Suggest returns one to three unique branch names for the staged paths.
func Suggest(files []string, now time.Time) []string {
	var names []string
	for _, r := range rules {
		for _, f := range files {
			if r.match(f) {
				names = append(names, stamp(r.prefix, now))
				break
			}
		}
	}
	return Backfill(names, now)
}

// Generic returns the fallback names used to pad short lists.
func Generic(now time.Time) []string {
	names := make([]string, 0, len(genericPrefixes))
	for _, prefix := range genericPrefixes {
		names = append(names, stamp(prefix, now))
	}
	return names
}

// Backfill pads names with generic names, skipping duplicates, and caps the
// result at MaxSuggestions.
func Backfill(names []string, now time.Time) []string {
	names = stringsutil.AppendMissing(stringsutil.UniqueStrings(names), MaxSuggestions, Generic(now)...)
	return stringsutil.Truncate(names, MaxSuggestions)
}
