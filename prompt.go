package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/handsomefox/imagemachine/api"
	"golang.org/x/term"
)

// Prompter asks the operator a question and returns the answer.
type Prompter interface {
	Ask(ctx context.Context, question string) (string, error)
}

// NewPrompter returns a line prompter when in is a terminal.
// Otherwise nobody can answer, and every question fails with api.ErrSubredditNotFound.
func NewPrompter(in *os.File, out io.Writer) Prompter {
	if term.IsTerminal(int(in.Fd())) {
		return NewLinePrompter(in, out)
	}
	return noPrompter{}
}

// LinePrompter reads answers line by line. A single background reader owns in,
// so an Ask abandoned on cancellation does not race the next one.
type LinePrompter struct {
	in    io.Reader
	out   io.Writer
	once  sync.Once
	lines chan promptLine
}

type promptLine struct {
	line string
	err  error
}

func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: in, out: out, lines: make(chan promptLine)}
}

func (lp *LinePrompter) Ask(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := fmt.Fprint(lp.out, question); err != nil {
		return "", err
	}
	lp.once.Do(func() { go lp.read() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case a, ok := <-lp.lines:
		if !ok {
			return "", fmt.Errorf("%w: no answer from operator", io.EOF)
		}
		if a.err != nil && a.line == "" {
			return "", fmt.Errorf("%w: no answer from operator", a.err)
		}
		return strings.TrimSpace(a.line), nil
	}
}

func (lp *LinePrompter) read() {
	defer close(lp.lines)
	r := bufio.NewReader(lp.in)
	for {
		line, err := r.ReadString('\n')
		lp.lines <- promptLine{line: line, err: err}
		if err != nil {
			return
		}
	}
}

type noPrompter struct{}

func (noPrompter) Ask(context.Context, string) (string, error) {
	return "", api.ErrSubredditNotFound
}
