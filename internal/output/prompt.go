package output

import (
	"github.com/AlecAivazis/survey/v2"
)

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(message string, defaultValue bool) (bool, error)
}

// SurveyConfirmer prompts on the terminal.
type SurveyConfirmer struct{}

// Confirm asks message and returns the answer.
func (SurveyConfirmer) Confirm(message string, defaultValue bool) (bool, error) {
	answer := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &answer); err != nil {
		return false, err
	}
	return answer, nil
}

// StaticConfirmer answers every question with Answer. Used when prompting is
// disabled or not possible.
type StaticConfirmer struct {
	Answer bool
}

// Confirm returns the configured answer.
func (c StaticConfirmer) Confirm(string, bool) (bool, error) {
	return c.Answer, nil
}
