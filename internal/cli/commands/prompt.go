package commands

import (
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"golang.org/x/term"
)

// Prompter asks the user for missing input
type Prompter interface {
	Interactive() bool
	Select(label string, items []string) (int, error)
	Input(label string) (string, error)
}

// terminalPrompter prompts on the controlling terminal
type terminalPrompter struct{}

func newTerminalPrompter() Prompter {
	return terminalPrompter{}
}

// Interactive reports whether stdin is a terminal (not piped)
func (terminalPrompter) Interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func (terminalPrompter) Select(label string, items []string) (int, error) {
	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "> {{ . | cyan }}",
		Inactive: "  {{ . }}",
		Selected: "{{ . | green }}",
	}

	prompt := promptui.Select{
		Label:     label,
		Items:     items,
		Templates: templates,
		Size:      len(items),
	}

	index, _, err := prompt.Run()
	if err != nil {
		return 0, fmt.Errorf("selection cancelled: %w", err)
	}
	return index, nil
}

func (terminalPrompter) Input(label string) (string, error) {
	prompt := promptui.Prompt{Label: label}

	value, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("input cancelled: %w", err)
	}
	return value, nil
}
