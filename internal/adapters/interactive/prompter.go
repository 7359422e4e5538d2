package interactive

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/trebuchet-org/ztx/internal/domain/abi"
	"github.com/trebuchet-org/ztx/internal/domain/config"
	"github.com/trebuchet-org/ztx/internal/usecase"
)

// PrompterAdapter asks for call arguments one input at a time
type PrompterAdapter struct {
	config *config.RuntimeConfig
}

// NewPrompterAdapter creates a new argument prompter
func NewPrompterAdapter(cfg *config.RuntimeConfig) *PrompterAdapter {
	return &PrompterAdapter{config: cfg}
}

// PromptArguments prompts for every input of fn, prefilled with current.
// Valid values are shown for confirmation, invalid ones must be fixed.
func (p *PrompterAdapter) PromptArguments(ctx context.Context, fn abi.FunctionSignature, current []abi.Raw) ([]abi.Raw, error) {
	if p.config.NonInteractive {
		return nil, fmt.Errorf("interactive prompts not available in non-interactive mode")
	}

	out := make([]abi.Raw, len(fn.Inputs))
	for i, input := range fn.Inputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		label := inputLabel(i, input)
		prompt := promptui.Prompt{
			Label:     label,
			AllowEdit: true,
			Validate:  validateInput(label, input.Type),
		}
		if i < len(current) {
			prompt.Default = current[i].String()
		}

		value, err := prompt.Run()
		if err != nil {
			return nil, fmt.Errorf("prompt cancelled: %w", err)
		}

		raw, err := abi.ParseRaw(value)
		if err != nil {
			return nil, err
		}
		out[i] = raw
	}
	return out, nil
}

// inputLabel renders "name (type)", falling back to the position
func inputLabel(index int, input abi.Param) string {
	name := input.Name
	if name == "" {
		name = fmt.Sprintf("arg%d", index)
	}
	return fmt.Sprintf("%s (%s)", name, input.Type.Canonical())
}

// validateInput checks a typed literal against t
func validateInput(label string, t abi.Type) promptui.ValidateFunc {
	return func(s string) error {
		raw, err := abi.ParseRaw(s)
		if err != nil {
			return err
		}
		if v, ok := abi.Validate(t, raw); !ok {
			problems := v.Problems(label)
			if len(problems) == 0 {
				return errors.New("invalid value")
			}
			return errors.New(strings.Join(problems, "; "))
		}
		return nil
	}
}

// Ensure the adapter implements the interface
var _ usecase.ArgumentPrompter = (*PrompterAdapter)(nil)
