package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// ErrAborted is returned when the user aborts a prompt (Ctrl+C).
var ErrAborted = errors.New("aborted")

// Prompter reads interactive input.
type Prompter interface {
	Input(label, defaultValue string) (string, error)
	Password(label string) (string, error)
	Confirm(label string) (bool, error)
	Line(label string) (string, error)
}

// newTerminalPrompter uses promptui on a terminal and plain line reads otherwise,
// so erpctl can be scripted through a pipe.
func newTerminalPrompter() Prompter {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return uiPrompter{}
	}

	return newLinePrompter(os.Stdin, os.Stderr)
}

type uiPrompter struct{}

func (uiPrompter) Input(label, defaultValue string) (string, error) {
	p := promptui.Prompt{Label: label, Default: defaultValue}
	result, err := p.Run()

	return result, wrapPromptError(err)
}

func (uiPrompter) Password(label string) (string, error) {
	p := promptui.Prompt{Label: label, Mask: '*'}
	result, err := p.Run()

	return result, wrapPromptError(err)
}

func (uiPrompter) Confirm(label string) (bool, error) {
	p := promptui.Prompt{Label: label, IsConfirm: true}
	result, err := p.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) {
			return false, ErrAborted
		}
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}

		return false, err
	}

	return isYes(result), nil
}

func (uiPrompter) Line(label string) (string, error) {
	p := promptui.Prompt{Label: label}
	result, err := p.Run()

	return result, wrapPromptError(err)
}

func wrapPromptError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrEOF) {
		return ErrAborted
	}

	return err
}

// linePrompter reads one line per prompt.
type linePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newLinePrompter(in io.Reader, out io.Writer) *linePrompter {
	return &linePrompter{in: bufio.NewReader(in), out: out}
}

func (p *linePrompter) read(label string) (string, error) {
	_, _ = fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrAborted
		}

		return "", errors.WithStack(err)
	}

	return strings.TrimRight(line, "\r\n"), nil
}

func (p *linePrompter) Input(label, defaultValue string) (string, error) {
	line, err := p.read(label)
	if err != nil {
		return "", err
	}
	if line == "" {
		return defaultValue, nil
	}

	return line, nil
}

func (p *linePrompter) Password(label string) (string, error) {
	return p.read(label)
}

func (p *linePrompter) Confirm(label string) (bool, error) {
	line, err := p.read(label + " [y/N]")
	if err != nil {
		return false, err
	}

	return isYes(line), nil
}

func (p *linePrompter) Line(label string) (string, error) {
	return p.read(label)
}

func isYes(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))

	return s == "y" || s == "yes"
}
