// Package prompt reads answers from the user. Console wraps a line-oriented
// reader and writer; Question drives a single variable through the
// Pending / HelpRequested / Invalid / Answered states until it has a value.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/templer-labs/templer/internal/errors"
)

// Prompter is the input side of an interactive run.
type Prompter interface {
	// Line prints question and returns the answer without its line ending.
	// When echo is false and the input is a terminal, typing is hidden.
	Line(ctx context.Context, question string, echo bool) (string, error)
	// Confirm asks a yes/no question; an empty answer returns def.
	Confirm(ctx context.Context, question string, def bool) (bool, error)
}

type lineResult struct {
	text string
	err  error
}

// Console is a Prompter over an io.Reader and io.Writer.
type Console struct {
	in   *bufio.Reader
	file *os.File
	out  io.Writer

	// pending holds a read that outlived a cancelled call.
	pending chan lineResult
}

// NewConsole returns a Console reading from in and writing questions to out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	c := &Console{in: bufio.NewReader(in), out: out}
	if f, ok := in.(*os.File); ok {
		c.file = f
	}
	return c
}

// IsTerminal reports whether r is an interactive terminal.
func IsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (c *Console) Line(ctx context.Context, question string, echo bool) (string, error) {
	fmt.Fprint(c.out, question)
	if !echo && c.file != nil && IsTerminal(c.file) {
		line, err := c.await(ctx, c.readHidden)
		fmt.Fprintln(c.out)
		return line, err
	}
	return c.await(ctx, c.readLine)
}

func (c *Console) Confirm(ctx context.Context, question string, def bool) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	for {
		answer, err := c.Line(ctx, question+" "+hint+" ", true)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(c.out, "Please answer y or n.")
	}
}

// await runs read in the background so a cancelled context returns at once.
// The read keeps going; its result is consumed by the next call.
func (c *Console) await(ctx context.Context, read func() lineResult) (string, error) {
	if c.pending == nil {
		ch := make(chan lineResult, 1)
		go func() { ch <- read() }()
		c.pending = ch
	}
	select {
	case <-ctx.Done():
		return "", errors.Wrap(ctx.Err(), errors.ErrAborted, "input cancelled")
	case res := <-c.pending:
		c.pending = nil
		return res.text, res.err
	}
}

func (c *Console) readLine() lineResult {
	s, err := c.in.ReadString('\n')
	if err == io.EOF && s != "" {
		err = nil
	}
	if err == io.EOF {
		return lineResult{err: errors.New(errors.ErrAborted, "end of input")}
	}
	if err != nil {
		return lineResult{err: fmt.Errorf("reading answer: %w", err)}
	}
	return lineResult{text: strings.TrimRight(s, "\r\n")}
}

func (c *Console) readHidden() lineResult {
	b, err := term.ReadPassword(int(c.file.Fd()))
	if err != nil {
		return lineResult{err: fmt.Errorf("reading hidden answer: %w", err)}
	}
	return lineResult{text: string(b)}
}
