package prompt_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slok/wrench/internal/prompt"
)

func TestTerminalPrompterConfirm(t *testing.T) {
	tests := map[string]struct {
		answer   string
		expected bool
	}{
		"yes answers are affirmative":           {answer: "yes\n", expected: true},
		"single y is affirmative":               {answer: "y\n", expected: true},
		"uppercase Y is affirmative":            {answer: "Y\n", expected: true},
		"si style answers are affirmative":      {answer: "si\n", expected: true},
		"uppercase S is affirmative":            {answer: "S\n", expected: true},
		"no declines":                           {answer: "no\n", expected: false},
		"empty answer declines":                 {answer: "\n", expected: false},
		"closed input declines":                 {answer: "", expected: false},
		"whitespace around the answer is fine":  {answer: "  y  \n", expected: true},
		"unrelated answer declines":             {answer: "maybe\n", expected: false},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			var out bytes.Buffer
			p := prompt.NewTerminalPrompter(strings.NewReader(test.answer), &out)

			got := p.Confirm("Run the disk check?")

			assert.Equal(test.expected, got)
			assert.Equal("Run the disk check? [y/N]: ", out.String())
		})
	}
}

func TestAutoPrompter(t *testing.T) {
	assert := assert.New(t)

	p := &prompt.Auto{Answer: true}
	assert.True(p.Confirm("first?"))
	assert.True(p.Confirm("second?"))
	assert.Equal([]string{"first?", "second?"}, p.Asked)

	decline := &prompt.Auto{}
	assert.False(decline.Confirm("anything?"))
}
