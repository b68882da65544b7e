package ui

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
)

// ErrAborted is returned when the user quits a prompt.
var ErrAborted = errors.New("aborted by user")

// Option is one menu entry. Label is shown, Value is returned.
type Option struct {
	Label string
	Value string
}

// HuhChooser prompts on the terminal using charmbracelet/huh.
type HuhChooser struct {
	Stdin  *os.File
	Stdout *os.File
}

// NewHuhChooser returns a chooser bound to the process terminal.
func NewHuhChooser() *HuhChooser {
	return &HuhChooser{Stdin: os.Stdin, Stdout: os.Stdout}
}

func (c *HuhChooser) ensureTerminal() error {
	if !IsTerminal(c.Stdin) {
		return errors.New("stdin is not a terminal, interactive selection is required")
	}
	return nil
}

func (c *HuhChooser) run(ctx context.Context, field huh.Field) error {
	if err := c.ensureTerminal(); err != nil {
		return err
	}
	err := huh.NewForm(huh.NewGroup(field)).RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrAborted
	}
	return err
}

// Select shows options and returns the Value of the chosen one.
func (c *HuhChooser) Select(ctx context.Context, title string, options []Option) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("no options for %q", title)
	}

	width := TerminalWidth(c.Stdout)
	huhOptions := make([]huh.Option[string], 0, len(options))
	for _, opt := range options {
		huhOptions = append(huhOptions, huh.NewOption(FitLabel(opt.Label, width), opt.Value))
	}

	selected := options[0].Value
	field := huh.NewSelect[string]().Title(title).Options(huhOptions...).Value(&selected)
	if err := c.run(ctx, field); err != nil {
		return "", err
	}
	return selected, nil
}

// Input asks for free text; validate runs on every submission.
func (c *HuhChooser) Input(ctx context.Context, title string, validate func(string) error) (string, error) {
	var value string
	field := huh.NewInput().Title(title).Value(&value)
	if validate != nil {
		field = field.Validate(validate)
	}
	if err := c.run(ctx, field); err != nil {
		return "", err
	}
	return value, nil
}

// Confirm asks a yes/no question.
func (c *HuhChooser) Confirm(ctx context.Context, title, affirmative, negative string) (bool, error) {
	confirmed := true
	field := huh.NewConfirm().Title(title).Affirmative(affirmative).Negative(negative).Value(&confirmed)
	if err := c.run(ctx, field); err != nil {
		return false, err
	}
	return confirmed, nil
}
