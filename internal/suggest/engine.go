package suggest

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/samzong/git-auto-commit/internal/analyzer"
	"github.com/samzong/git-auto-commit/internal/branch"
	"github.com/samzong/git-auto-commit/internal/formatter"
)

// Generator runs the external tool with a prompt and returns its output.
type Generator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// Engine asks the external tool for suggestions and falls back to the
// heuristic rules whenever that fails.
type Engine struct {
	generator Generator
	builder   formatter.PromptBuilder
	logger    *zap.Logger
	now       func() time.Time
}

// NewEngine creates an Engine. A nil generator makes every run heuristic.
func NewEngine(generator Generator, builder formatter.PromptBuilder, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		generator: generator,
		builder:   builder,
		logger:    logger,
		now:       time.Now,
	}
}

// SetClock overrides the time source used for date stamps.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// Prompt renders the prompt for in.
func (e *Engine) Prompt(in Input) string {
	return e.builder.Build(formatter.PromptData{
		Stats:   analyzer.ComputeStats(in.Diff),
		Summary: analyzer.SummarizeFiles(in.Files),
		Files:   in.Files,
		Diff:    in.Diff,
		Date:    e.now().Format(branch.DateLayout),
	})
}

// Suggest always returns a usable Set. Result.Err is set when the external
// tool was configured but could not be used.
func (e *Engine) Suggest(ctx context.Context, in Input) Result {
	now := e.now()
	fallback := Heuristic(in.Files, analyzer.DetectPresence(in.Diff), now)

	if e.generator == nil || e.generator.Name() == "" {
		return Result{Set: fallback, Source: SourceHeuristic}
	}
	tool := e.generator.Name()

	response, err := e.generator.Generate(ctx, e.Prompt(in))
	if err != nil {
		e.logger.Warn("external suggestion command failed, using built-in suggestions",
			zap.String("command", tool), zap.Error(err))
		return Result{Set: fallback, Source: SourceHeuristic, Tool: tool, Err: err}
	}

	set, err := ParseResponse(response, now)
	if err != nil {
		e.logger.Warn("could not parse suggestion response, using built-in suggestions",
			zap.String("command", tool), zap.Error(err))
		e.logger.Debug("unparsed response", zap.String("response", response))
		return Result{Set: fallback, Source: SourceHeuristic, Tool: tool, Err: err}
	}

	if len(set.CommitMessages) == 0 {
		e.logger.Warn("response contained no commit messages, using built-in commit messages",
			zap.String("command", tool))
		set.CommitMessages = fallback.CommitMessages
	}

	return Result{Set: set, Source: SourceExternal, Tool: tool}
}
