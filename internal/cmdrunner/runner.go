// Package cmdrunner runs external programs and captures their output.
package cmdrunner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Executor runs a command and reports its exit status and captured output.
//
// A non-nil error means the process could not be started or was stopped by
// ctx. A process that ran and exited non-zero returns a nil error and a
// Result with a non-zero ExitCode.
type Executor interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// Runner executes commands with shared logging and output handling.
type Runner struct {
	Verbose bool
	Dir     string
	Env     []string
	Logger  io.Writer
}

// Result contains the exit status and captured stdout/stderr of a command.
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Success reports whether the command exited with status zero.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// StdoutString decodes stdout as UTF-8, replacing invalid sequences.
func (r Result) StdoutString(trim bool) string {
	return decode(r.Stdout, trim)
}

// StderrString decodes stderr as UTF-8, replacing invalid sequences.
func (r Result) StderrString(trim bool) string {
	return decode(r.Stderr, trim)
}

func decode(b []byte, trim bool) string {
	output := strings.ToValidUTF8(string(b), "�")
	if trim {
		return strings.TrimSpace(output)
	}
	return output
}

func (r Runner) withDefaults() Runner {
	if r.Logger == nil {
		r.Logger = os.Stderr
	}
	return r
}

func (r Runner) command(ctx context.Context, name string, args []string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	if r.Dir != "" {
		cmd.Dir = r.Dir
	}
	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}
	return cmd
}

func (r Runner) log(name string, args []string) {
	if !r.Verbose {
		return
	}
	r = r.withDefaults()
	fmt.Fprintf(r.Logger, "Running: %s %s\n", name, strings.Join(args, " "))
}

// Run executes name with args and captures stdout/stderr.
func (r Runner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	r.log(name, args)
	cmd := r.command(ctx, name, args)

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err := cmd.Run()
	result := Result{Stdout: outBuf.Bytes(), Stderr: errBuf.Bytes()}
	if err == nil {
		return result, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		result.ExitCode = -1
		return result, ctxErr
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}

	result.ExitCode = -1
	return result, err
}
