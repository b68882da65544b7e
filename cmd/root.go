package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/samzong/git-auto-commit/internal/config"
	"github.com/samzong/git-auto-commit/internal/formatter"
	"github.com/samzong/git-auto-commit/internal/git"
	"github.com/samzong/git-auto-commit/internal/llm"
	"github.com/samzong/git-auto-commit/internal/logging"
	"github.com/samzong/git-auto-commit/internal/suggest"
	"github.com/samzong/git-auto-commit/internal/ui"
	"github.com/samzong/git-auto-commit/internal/workflow"
)

var (
	rootCmd = &cobra.Command{
		Use:   "git-auto-commit",
		Short: "git-auto-commit - branch and commit message suggestions for staged changes",
		Long: `git-auto-commit inspects the staged changes, suggests branch names and ` +
			`commit messages using a local LLM command (or built-in rules when it is ` +
			`unavailable), lets you pick one, then switches branch and commits.`,
		Version: fmt.Sprintf("%s (built at %s)", Version, BuildTime),
		Args:    cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	newChooser = func() workflow.Chooser { return ui.NewHuhChooser() }
	configPath = config.DefaultPath
)

func Execute() error {
	return ExecuteContext(context.Background())
}

func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// RootCmd returns the root command (used for documentation generation).
func RootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	// RunE is assigned here to avoid an initialization cycle through outWriter/errWriter.
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runAutoCommit(cmd.Context())
	}
	rootCmd.AddCommand(configCmd)
}

// loadConfig never fails: problems are logged and defaults are used.
func loadConfig() (*config.Config, *zap.Logger) {
	path, pathErr := configPath()
	cfg, loadErr := config.Load(path)
	logger := logging.New(errWriter(), cfg.LogLevel)

	if pathErr != nil {
		logger.Warn("cannot locate config file, using defaults", zap.Error(pathErr))
	}
	if loadErr != nil {
		logger.Warn("config file problem, using defaults", zap.String("path", path), zap.Error(loadErr))
	}
	return cfg, logger
}

func newEngine(cfg *config.Config, logger *zap.Logger) *suggest.Engine {
	template, err := formatter.ResolveTemplate(cfg)
	if err != nil {
		logger.Warn("prompt template file problem, using combined_prompt",
			zap.String("path", cfg.PromptTemplateFile), zap.Error(err))
	}

	var generator suggest.Generator
	if cfg.Command != "" {
		generator = llm.NewClient(llm.OptionsFromConfig(cfg))
	}
	return suggest.NewEngine(generator, formatter.NewPromptBuilder(template, cfg), logger)
}

func runAutoCommit(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, logger := loadConfig()
	defer func() { _ = logger.Sync() }()

	gitClient := git.NewClient(git.Options{Verbose: cfg.LogLevel == "debug"})
	flow := workflow.NewCommitFlow(gitClient, newEngine(cfg, logger), newChooser(), workflow.CommitOptions{
		ErrWriter: errWriter(),
		OutWriter: outWriter(),
	})
	return flow.Run(ctx)
}
