package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromptLine(t *testing.T) {
	assert.Equal(t, "continue? [Y/n]: ", promptLine("continue?", Yes, No))
	assert.Equal(t, "continue? [N/y]: ", promptLine("continue?", No, Yes))
	assert.Equal(t, "name", promptLine("name"))
}

func TestMatchAnswer(t *testing.T) {
	tests := []struct {
		given    string
		expected string
	}{
		{"", No},
		{"y", Yes},
		{" Y ", Yes},
		{"n", No},
		{"maybe", No},
	}
	for _, test := range tests {
		t.Run(test.given, func(t *testing.T) {
			assert.Equal(t, test.expected, matchAnswer(test.given, No, Yes))
		})
	}
	assert.Equal(t, "free text", matchAnswer("free text"))
}
