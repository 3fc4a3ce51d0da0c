package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// prompter wraps line-oriented interactive input.
type prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

// ask prints a prompt and reads one line of input. ok is false once the
// input is exhausted.
func (p *prompter) ask(prompt string) (answer string, ok bool, err error) {
	fmt.Fprint(p.out, prompt)
	if p.scanner.Scan() {
		return strings.TrimSpace(p.scanner.Text()), true, nil
	}
	return "", false, p.scanner.Err()
}
