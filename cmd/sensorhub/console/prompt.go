package console

import (
	"strings"

	"github.com/chzyer/readline"
)

const (
	Yes = "y"
	No  = "n"
)

// Confirm asks a yes/no question. The first answer is the default used on
// empty or unrecognized input.
func Confirm(question string, def string) (bool, error) {
	answers := []string{Yes, No}
	if def == No {
		answers = []string{No, Yes}
	}
	res, err := Prompt(question, answers...)
	if err != nil {
		return false, err
	}
	return res == Yes, nil
}

func Prompt(question string, constraints ...string) (string, error) {
	rl, err := readline.New(promptLine(question, constraints...))
	if err != nil {
		return "", err
	}
	defer func() { _ = rl.Close() }()
	response, err := rl.Readline()
	if err != nil {
		return "", err
	}
	return matchAnswer(response, constraints...), nil
}

func promptLine(question string, constraints ...string) string {
	if len(constraints) == 0 {
		return question
	}
	var prompt strings.Builder
	prompt.WriteString(question)
	prompt.WriteString(" [")
	prompt.WriteString(strings.ToUpper(constraints[0]))
	for i := 1; i < len(constraints); i++ {
		prompt.WriteString("/")
		prompt.WriteString(constraints[i])
	}
	prompt.WriteString("]: ")
	return prompt.String()
}

func matchAnswer(response string, constraints ...string) string {
	if len(constraints) == 0 {
		return response
	}
	normalized := strings.ToLower(strings.TrimSpace(response))
	for _, c := range constraints {
		if normalized == c {
			return normalized
		}
	}
	// no input or no match, return default
	return constraints[0]
}
