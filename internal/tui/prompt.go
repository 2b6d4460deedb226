package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	huh "github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// ErrNoChoices is returned when Select is called without choices.
var ErrNoChoices = errors.New("no choices to select from")

// Prompter asks the operator questions.
type Prompter interface {
	Confirm(ctx context.Context, message string) (bool, error)
	Select(ctx context.Context, message string, choices []string) (string, error)
}

// HuhPrompter implements Prompter with huh forms.
type HuhPrompter struct {
	theme      *huh.Theme
	accessible bool
	altScreen  bool
}

// PrompterOption configures a HuhPrompter.
type PrompterOption func(*HuhPrompter)

// WithAccessible switches huh to line-based prompts that work without a TTY.
func WithAccessible(enabled bool) PrompterOption {
	return func(p *HuhPrompter) {
		p.accessible = enabled
	}
}

// WithAltScreen renders each form on the terminal's alternate screen.
func WithAltScreen(enabled bool) PrompterOption {
	return func(p *HuhPrompter) {
		p.altScreen = enabled
	}
}

// NewHuhPrompter constructs a HuhPrompter with the Electron huh theme.
func NewHuhPrompter(options ...PrompterOption) *HuhPrompter {
	p := &HuhPrompter{theme: NewHuhTheme()}
	for _, option := range options {
		option(p)
	}
	return p
}

// Confirm asks a yes/no question. Aborting the form returns huh.ErrUserAborted.
func (p *HuhPrompter) Confirm(ctx context.Context, message string) (bool, error) {
	answer := false

	form := p.form(
		huh.NewGroup(
			huh.NewConfirm().
				Title(message).
				Affirmative("Yes").
				Negative("No").
				Value(&answer),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return false, fmt.Errorf("prompt %q: %w", message, err)
	}

	return answer, nil
}

// Select asks the operator to pick one of choices.
func (p *HuhPrompter) Select(ctx context.Context, message string, choices []string) (string, error) {
	if len(choices) == 0 {
		return "", ErrNoChoices
	}

	selected := choices[0]

	keyMap := huh.NewDefaultKeyMap()
	keyMap.Select.Filter.SetEnabled(false)
	keyMap.Select.Submit.SetKeys("enter", " ")
	keyMap.Select.Submit.SetHelp("space/enter", "continue")

	form := p.form(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(message).
				Options(huh.NewOptions(choices...)...).
				Value(&selected),
		),
	).WithKeyMap(keyMap)

	if err := form.RunWithContext(ctx); err != nil {
		return "", fmt.Errorf("prompt %q: %w", message, err)
	}

	return selected, nil
}

func (p *HuhPrompter) form(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).
		WithTheme(p.theme).
		WithShowHelp(true).
		WithAccessible(p.accessible)

	if p.altScreen {
		form = form.WithProgramOptions(tea.WithAltScreen())
	}

	return form
}

// NewHuhTheme returns the base huh theme recoloured with Electron teal and
// an amber selection.
func NewHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	teal := lipgloss.Color("#47848F")
	amber := lipgloss.Color("#F2A541")
	grey := lipgloss.Color("#888888")

	t.Focused.Title = t.Focused.Title.Foreground(teal).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(grey)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(amber)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(amber)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Background(teal).Foreground(lipgloss.Color("#FFFFFF"))
	t.Focused.BlurredButton = t.Focused.BlurredButton.Foreground(grey)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())

	return t
}
