// Package prompt provides operator confirmation for interactive maintenance
// steps.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter asks the operator a yes/no question. Implementations block until
// an answer arrives; interactive tasks are exempt from timeout wrapping for
// exactly this reason.
type Prompter interface {
	Confirm(question string) bool
}

// TerminalPrompter asks questions on a writer and reads answers line by line
// from a reader. Answers starting with "y" or "s" (case-insensitive) are
// affirmative; anything else, including read errors, declines.
type TerminalPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminalPrompter creates a prompter over the given streams.
func NewTerminalPrompter(in io.Reader, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{in: bufio.NewReader(in), out: out}
}

func (p *TerminalPrompter) Confirm(question string) bool {
	fmt.Fprintf(p.out, "%s [y/N]: ", question)

	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	return IsAffirmative(line)
}

// IsAffirmative reports whether an answer counts as a yes.
func IsAffirmative(answer string) bool {
	answer = strings.ToLower(strings.TrimSpace(answer))
	return strings.HasPrefix(answer, "y") || strings.HasPrefix(answer, "s")
}

// Auto is a non-interactive Prompter answering every question the same way.
// Used for --yes/--non-interactive runs and in tests.
type Auto struct {
	// Answer is returned for every confirmation.
	Answer bool
	// Asked records the questions in the order they were asked.
	Asked []string
}

func (a *Auto) Confirm(question string) bool {
	a.Asked = append(a.Asked, question)
	return a.Answer
}
