package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Confirmer asks the operator a yes/no question and reports the answer.
type Confirmer interface {
	Confirm(question string) bool
}

// Terminal prompts on an interactive terminal. When stdin is not a TTY the
// question is declined without blocking, so unattended runs stay
// deterministic.
type Terminal struct {
	in         *bufio.Reader
	out        io.Writer
	isTerminal func() bool
}

var _ Confirmer = (*Terminal)(nil)

// NewTerminal constructs a prompter over stdio. Nil readers and writers
// default to os.Stdin and os.Stdout.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}

	isTerminal := func() bool {
		file, ok := in.(*os.File)
		return ok && term.IsTerminal(int(file.Fd()))
	}

	return &Terminal{in: bufio.NewReader(in), out: out, isTerminal: isTerminal}
}

// Confirm prints the question and accepts y or yes, case-insensitively.
// Anything else, a read error, or a non-interactive stdin declines.
func (t *Terminal) Confirm(question string) bool {
	if !t.isTerminal() {
		fmt.Fprintf(t.out, "%s [y/N]: no (stdin is not a terminal)\n", question)
		return false
	}

	fmt.Fprintf(t.out, "%s [y/N]: ", question)

	line, err := t.in.ReadString('\n')
	if err != nil {
		return false
	}

	line = strings.ToLower(strings.TrimSpace(line))
	return line == "y" || line == "yes"
}

// Auto answers every question the same way without prompting, for
// assume-yes runs.
type Auto bool

var _ Confirmer = Auto(false)

// Confirm returns the preset answer.
func (a Auto) Confirm(string) bool {
	return bool(a)
}
