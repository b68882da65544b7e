// Package formatter builds the prompt sent to the external suggestion tool.
package formatter

import (
	"strings"
	"unicode/utf8"

	"github.com/samzong/git-auto-commit/internal/analyzer"
	"github.com/samzong/git-auto-commit/internal/config"
)

// TruncationMarker joins the kept head and tail of an oversized diff.
const TruncationMarker = "\n\n... (diff truncated) ...\n\n"

// Template placeholders.
const (
	PlaceholderDiff        = "{diff}"
	PlaceholderStats       = "{stats}"
	PlaceholderFileSummary = "{file_summary}"
	PlaceholderFiles       = "{files}"
	PlaceholderDate        = "{date}"
)

// PromptData is the material substituted into a prompt template.
type PromptData struct {
	Stats   analyzer.DiffStats
	Summary analyzer.FileSummary
	Files   []string
	Diff    string
	Date    string
}

// PromptBuilder fills Template with PromptData, truncating diffs longer than
// DiffLimit bytes.
type PromptBuilder struct {
	Template  string
	DiffLimit int
}

// NewPromptBuilder returns a builder using the configured limit, or the
// default limit when cfg is nil.
func NewPromptBuilder(template string, cfg *config.Config) PromptBuilder {
	limit := config.DefaultDiffLimit
	if cfg != nil && cfg.DiffLimit > 0 {
		limit = cfg.DiffLimit
	}
	return PromptBuilder{Template: template, DiffLimit: limit}
}

// Build substitutes every known placeholder in a single pass. Unknown
// placeholders are left untouched, and placeholder text inside the
// substituted values is never expanded again.
func (b PromptBuilder) Build(data PromptData) string {
	replacer := strings.NewReplacer(
		PlaceholderDiff, TruncateDiff(data.Diff, b.DiffLimit),
		PlaceholderStats, data.Stats.String(),
		PlaceholderFileSummary, data.Summary.String(),
		PlaceholderFiles, strings.Join(data.Files, "\n"),
		PlaceholderDate, data.Date,
	)
	return replacer.Replace(b.Template)
}

// TruncateDiff keeps the first and last limit/2 bytes of a diff longer than
// limit, never splitting a UTF-8 sequence.
func TruncateDiff(diff string, limit int) string {
	if limit <= 0 || len(diff) <= limit {
		return diff
	}
	half := limit / 2
	return truncateToValidUTF8(diff, half) + TruncationMarker + tailToValidUTF8(diff, limit-half)
}

func truncateToValidUTF8(input string, maxBytes int) string {
	if len(input) <= maxBytes {
		return input
	}

	end := maxBytes
	for end > 0 && !utf8.RuneStart(input[end]) {
		end--
	}
	return input[:end]
}

func tailToValidUTF8(input string, maxBytes int) string {
	if len(input) <= maxBytes {
		return input
	}

	start := len(input) - maxBytes
	for start < len(input) && !utf8.RuneStart(input[start]) {
		start++
	}
	return input[start:]
}
