package platform

import (
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/chzyer/readline"
)

// ErrPromptClosed is returned when the user ends input with EOF or an interrupt
var ErrPromptClosed = errors.New("input closed")

// ReadlinePrompter asks questions on the controlling terminal.
// The terminal is only touched on the first prompt.
type ReadlinePrompter struct {
	once sync.Once
	rl   *readline.Instance
	err  error
}

// NewReadlinePrompter creates a prompter; call Close when done
func NewReadlinePrompter() *ReadlinePrompter {
	return &ReadlinePrompter{}
}

// Prompt prints label and returns the trimmed answer
func (p *ReadlinePrompter) Prompt(label string) (string, error) {
	p.once.Do(func() {
		p.rl, p.err = readline.NewEx(&readline.Config{
			InterruptPrompt: "^C",
			HistoryLimit:    -1,
		})
	})
	if p.err != nil {
		return "", p.err
	}

	p.rl.SetPrompt(label)
	line, err := p.rl.Readline()
	if err != nil {
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return "", ErrPromptClosed
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Close releases the terminal
func (p *ReadlinePrompter) Close() error {
	if p.rl == nil {
		return nil
	}
	return p.rl.Close()
}
