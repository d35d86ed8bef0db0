package tui

import (
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrInteractiveDisabled is returned when interactive prompts are disabled via ACTIONPIN_NO_INTERACTIVE
var ErrInteractiveDisabled = fmt.Errorf("interactive prompts are disabled (ACTIONPIN_NO_INTERACTIVE is set)")

// ErrPromptCanceled is returned when the user interrupts a prompt
var ErrPromptCanceled = errors.New("canceled")

// checkInteractiveAllowed returns an error if interactive mode is disabled
func checkInteractiveAllowed() error {
	if os.Getenv("ACTIONPIN_NO_INTERACTIVE") != "" {
		return ErrInteractiveDisabled
	}
	return nil
}

// Confirmer asks a yes/no question
type Confirmer interface {
	Confirm(message string, defaultYes bool) (bool, error)
}

// SurveyConfirmer prompts on the terminal
type SurveyConfirmer struct{}

// Confirm asks message and returns the answer
func (SurveyConfirmer) Confirm(message string, defaultYes bool) (bool, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return false, err
	}

	var answer bool
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultYes,
	}
	if err := survey.AskOne(prompt, &answer); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return false, ErrPromptCanceled
		}
		return false, fmt.Errorf("prompt failed: %w", err)
	}
	return answer, nil
}
