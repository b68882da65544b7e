// Package llm invokes a locally installed LLM command-line tool.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samzong/git-auto-commit/internal/cmdrunner"
	"github.com/samzong/git-auto-commit/internal/config"
)

var (
	// ErrCommandFailed is returned when the tool ran but exited non-zero.
	ErrCommandFailed = errors.New("llm command failed")
	// ErrTimeout is returned when the tool did not finish within the timeout.
	ErrTimeout = errors.New("llm command timed out")
	// ErrEmptyResponse is returned when the tool printed nothing.
	ErrEmptyResponse = errors.New("llm command returned empty response")
)

// Options configures a Client.
type Options struct {
	Command    string
	PromptFlag string
	ModelFlag  string
	Model      string
	ExtraArgs  []string
	Timeout    time.Duration
	Runner     cmdrunner.Executor
}

// OptionsFromConfig copies the command settings out of cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Command:    cfg.Command,
		PromptFlag: cfg.PromptFlag,
		ModelFlag:  cfg.ModelFlag,
		Model:      cfg.Model,
		ExtraArgs:  append([]string(nil), cfg.ExtraArgs...),
		Timeout:    cfg.Timeout(),
	}
}

// Client runs `<command> <prompt_flag> <prompt> <model_flag> <model> <extra_args...>`.
type Client struct {
	opts   Options
	runner cmdrunner.Executor
}

// NewClient creates a Client.
func NewClient(opts Options) *Client {
	runner := opts.Runner
	if runner == nil {
		runner = cmdrunner.Runner{}
	}
	return &Client{opts: opts, runner: runner}
}

// Name returns the configured command.
func (c *Client) Name() string {
	return c.opts.Command
}

// Args builds the argument vector for prompt.
func (c *Client) Args(prompt string) []string {
	args := []string{c.opts.PromptFlag, prompt, c.opts.ModelFlag, c.opts.Model}
	return append(args, c.opts.ExtraArgs...)
}

// Generate sends prompt to the tool and returns its trimmed stdout.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.opts.Command == "" {
		return "", errors.New("llm command not configured")
	}

	if c.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()
	}

	result, err := c.runner.Run(ctx, c.opts.Command, c.Args(prompt)...)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %s did not respond within %s", ErrTimeout, c.opts.Command, c.opts.Timeout)
		}
		return "", fmt.Errorf("failed to run %s, make sure the %s CLI is installed: %w", c.opts.Command, c.opts.Command, err)
	}

	if !result.Success() {
		if stderr := result.StderrString(true); stderr != "" {
			return "", fmt.Errorf("%w: %s exited with status %d: %s", ErrCommandFailed, c.opts.Command, result.ExitCode, stderr)
		}
		return "", fmt.Errorf("%w: %s exited with status %d", ErrCommandFailed, c.opts.Command, result.ExitCode)
	}

	response := result.StdoutString(true)
	if response == "" {
		return "", ErrEmptyResponse
	}
	return response, nil
}
