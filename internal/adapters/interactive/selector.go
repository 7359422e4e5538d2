package interactive

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
	"github.com/trebuchet-org/ztx/internal/domain/abi"
	"github.com/trebuchet-org/ztx/internal/domain/config"
	"github.com/trebuchet-org/ztx/internal/usecase"
)

// SelectorAdapter handles interactive selection
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg}
}

// SelectFunction selects one function from a list
func (s *SelectorAdapter) SelectFunction(ctx context.Context, functions []abi.FunctionSignature) (abi.FunctionSignature, error) {
	if s.config.NonInteractive {
		return abi.FunctionSignature{}, fmt.Errorf("interactive selection not available in non-interactive mode")
	}

	if len(functions) == 0 {
		return abi.FunctionSignature{}, fmt.Errorf("no functions provided for selection")
	}

	if len(functions) == 1 {
		return functions[0], nil
	}

	options := formatFunctionOptions(functions)

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, type to filter, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:             "Select a function",
		Items:             options,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          createFuzzySearchFunc(plainFunctionOptions(functions)),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return abi.FunctionSignature{}, fmt.Errorf("selection cancelled: %w", err)
	}

	return functions[index], nil
}

// formatFunctionOptions renders "name(type name, ...) [mutability] [returns ...]"
func formatFunctionOptions(functions []abi.FunctionSignature) []string {
	options := make([]string, len(functions))
	for i, fn := range functions {
		name := color.New(color.FgWhite, color.Bold).Sprint(fn.Name)
		rest := strings.TrimPrefix(fn.Full(), "function "+fn.Name)
		options[i] = name + color.New(color.FgBlue).Sprint(rest)
	}
	return options
}

// plainFunctionOptions are the uncolored search targets
func plainFunctionOptions(functions []abi.FunctionSignature) []string {
	options := make([]string, len(functions))
	for i, fn := range functions {
		options[i] = strings.TrimPrefix(fn.Full(), "function ")
	}
	return options
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		if strings.Contains(item, input) {
			return true
		}

		pattern := fuzzy.Find(input, []string{item})
		return len(pattern) > 0
	}
}

// Ensure the adapter implements the interface
var _ usecase.FunctionSelector = (*SelectorAdapter)(nil)
