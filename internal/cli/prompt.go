package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
)

// ErrAborted is returned when the user cancels a prompt (ctrl+c in the
// selector, or ctx cancelled while waiting for a line).
var ErrAborted = errors.New("prompt aborted")

// Prompter collects answers from the user. Implementations return io.EOF
// once input is exhausted.
type Prompter interface {
	Select(ctx context.Context, label string, options []string) (int, error)
	Input(ctx context.Context, label string) (string, error)
	Confirm(ctx context.Context, label string) (bool, error)
}

// NewPrompter picks the arrow-key selector when in is a terminal and plain
// numbered line input otherwise.
func NewPrompter(in *os.File, out io.Writer) Prompter {
	line := NewLinePrompter(in, out)
	fd := in.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return &ttyPrompter{LinePrompter: line, in: in, out: out}
	}
	return line
}

// LinePrompter reads one answer per line. It is what scripted sessions and
// tests drive.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer

	// pending holds the read still in flight after a cancelled prompt.
	pending chan lineResult
}

type lineResult struct {
	line string
	err  error
}

func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// readLine waits for the next line or for ctx to be cancelled. Reads are
// started on demand so nothing is consumed ahead of the caller.
func (p *LinePrompter) readLine(ctx context.Context) (string, error) {
	if p.pending == nil {
		ch := make(chan lineResult, 1)
		p.pending = ch
		go func() {
			line, err := p.in.ReadString('\n')
			ch <- lineResult{line: line, err: err}
		}()
	}
	select {
	case <-ctx.Done():
		return "", ErrAborted
	case r := <-p.pending:
		p.pending = nil
		if r.err != nil {
			if errors.Is(r.err, io.EOF) && r.line != "" {
				return strings.TrimRight(r.line, "\r\n"), nil
			}
			return "", r.err
		}
		return strings.TrimRight(r.line, "\r\n"), nil
	}
}

// Select lists the options numbered from 1 and asks until a valid number is
// entered. It returns the zero-based index.
func (p *LinePrompter) Select(ctx context.Context, label string, options []string) (int, error) {
	promptColor.Fprintln(p.out, label)
	for i, opt := range options {
		fmt.Fprintf(p.out, "  %2d) %s\n", i+1, opt)
	}
	for {
		fmt.Fprintf(p.out, "Choice [1-%d]: ", len(options))
		answer, err := p.readLine(ctx)
		if err != nil {
			return -1, err
		}
		n, convErr := strconv.Atoi(strings.TrimSpace(answer))
		if convErr == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		warnColor.Fprintf(p.out, "Please enter a number between 1 and %d.\n", len(options))
	}
}

func (p *LinePrompter) Input(ctx context.Context, label string) (string, error) {
	promptColor.Fprintf(p.out, "%s ", label)
	return p.readLine(ctx)
}

// Confirm treats "y" and "yes" (any case) as yes and everything else as no.
func (p *LinePrompter) Confirm(ctx context.Context, label string) (bool, error) {
	promptColor.Fprintf(p.out, "%s (y/N) ", label)
	answer, err := p.readLine(ctx)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

type ttyPrompter struct {
	*LinePrompter
	in  io.Reader
	out io.Writer
}

func (p *ttyPrompter) Select(ctx context.Context, label string, options []string) (int, error) {
	return runSelect(ctx, label, options, p.in, p.out)
}
