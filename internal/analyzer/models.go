package analyzer

import (
	"fmt"
	"strings"
)

// Category is the coarse file type inferred from a path's extension.
type Category string

const (
	CategorySource      Category = "source-code"
	CategoryDocs        Category = "markup/docs"
	CategoryConfig      Category = "config"
	CategoryFrontend    Category = "frontend-asset"
	CategoryOther       Category = "other"
	CategoryNoExtension Category = "no-extension"
)

// DiffStats summarizes the size of a unified diff.
type DiffStats struct {
	FilesChanged int `json:"files_changed"`
	Additions    int `json:"additions"`
	Deletions    int `json:"deletions"`
}

func (s DiffStats) String() string {
	return fmt.Sprintf("%d files changed, %d insertions(+), %d deletions(-)",
		s.FilesChanged, s.Additions, s.Deletions)
}

// FileEntry pairs a path with its inferred category.
type FileEntry struct {
	Path     string   `json:"path"`
	Category Category `json:"category"`
}

// FileSummary is the per-file category listing, in input order.
type FileSummary []FileEntry

func (s FileSummary) String() string {
	var b strings.Builder
	for i, entry := range s {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "- %s (%s)", entry.Path, entry.Category)
	}
	return b.String()
}

// Presence records which kinds of file changes a diff contains.
type Presence struct {
	NewFiles     bool
	DeletedFiles bool
	OnlyModified bool
}
