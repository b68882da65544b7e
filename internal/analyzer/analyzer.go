// Package analyzer derives statistics and file summaries from staged diffs.
package analyzer

import (
	"path/filepath"
	"strings"
)

const nullDevice = "/dev/null"

var categoryByExt = map[string]Category{
	"rs":   CategorySource,
	"js":   CategorySource,
	"ts":   CategorySource,
	"py":   CategorySource,
	"java": CategorySource,
	"go":   CategorySource,
	"md":   CategoryDocs,
	"toml": CategoryConfig,
	"yaml": CategoryConfig,
	"yml":  CategoryConfig,
	"json": CategoryConfig,
	"html": CategoryFrontend,
	"css":  CategoryFrontend,
}

// ComputeStats counts file headers, added lines and deleted lines.
// Every +++/--- header not naming the null device counts as half a file.
func ComputeStats(diff string) DiffStats {
	var stats DiffStats
	headers := 0

	for _, line := range strings.Split(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+++") || strings.HasPrefix(line, "---"):
			if !strings.Contains(line, nullDevice) {
				headers++
			}
		case strings.HasPrefix(line, "+"):
			stats.Additions++
		case strings.HasPrefix(line, "-"):
			stats.Deletions++
		}
	}

	stats.FilesChanged = headers / 2
	return stats
}

// CategoryOf maps a path's extension to its Category.
func CategoryOf(path string) Category {
	ext := filepath.Ext(filepath.Base(path))
	if ext == "" {
		return CategoryNoExtension
	}
	if category, ok := categoryByExt[strings.ToLower(strings.TrimPrefix(ext, "."))]; ok {
		return category
	}
	return CategoryOther
}

// SummarizeFiles categorizes each path, preserving order.
func SummarizeFiles(paths []string) FileSummary {
	summary := make(FileSummary, 0, len(paths))
	for _, path := range paths {
		summary = append(summary, FileEntry{Path: path, Category: CategoryOf(path)})
	}
	return summary
}

// DetectPresence reports new, deleted and modification-only changes.
func DetectPresence(diff string) Presence {
	p := Presence{
		NewFiles:     strings.Contains(diff, "new file mode"),
		DeletedFiles: strings.Contains(diff, "deleted file mode"),
	}
	p.OnlyModified = strings.Contains(diff, "diff --git") && !p.NewFiles && !p.DeletedFiles
	return p
}
